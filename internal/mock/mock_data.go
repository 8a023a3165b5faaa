// Package mock generates synthetic exchange quotes for simulations and tests.
package mock

import (
	"math/rand/v2"

	"github.com/bughtuch/tennis-trader-ai/internal/models"
	"github.com/bughtuch/tennis-trader-ai/internal/ticks"
	"github.com/bughtuch/tennis-trader-ai/internal/util"
)

// ladderDepth is the number of price levels generated on each side of a runner.
const ladderDepth = 3

// QuoteFeed walks a back price around the tick ladder with the lay one tick above.
type QuoteFeed struct {
	rng  *rand.Rand
	back float64
}

// NewQuoteFeed starts a feed at the tick nearest start. The same seed replays
// the same sequence.
func NewQuoteFeed(start float64, seed uint64) *QuoteFeed {
	return &QuoteFeed{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		back: clampBack(ticks.RoundToTick(start)),
	}
}

// clampBack keeps room for a lay tick above the back price.
func clampBack(p float64) float64 {
	if p >= ticks.MaxPrice {
		return ticks.MoveByTicks(ticks.MaxPrice, -1)
	}
	return p
}

// Current returns the quote without moving the feed.
func (f *QuoteFeed) Current() models.Quote {
	return models.Quote{Back: f.back, Lay: ticks.MoveByTicks(f.back, 1)}
}

// Next moves the back price by -2..+2 ticks and returns the new quote.
func (f *QuoteFeed) Next() models.Quote {
	step := f.rng.IntN(5) - 2
	f.back = clampBack(ticks.MoveByTicks(f.back, step))
	return f.Current()
}

// Runner returns the current market as a runner with a few levels of depth.
func (f *QuoteFeed) Runner(name string, selectionID int64) models.Runner {
	q := f.Current()
	r := models.Runner{
		Name:        name,
		SelectionID: selectionID,
	}
	for i := 0; i < ladderDepth; i++ {
		r.AvailableToBack = append(r.AvailableToBack, models.PriceSize{
			Price: ticks.MoveByTicks(q.Back, -i),
			Size:  f.size(),
		})
		r.AvailableToLay = append(r.AvailableToLay, models.PriceSize{
			Price: ticks.MoveByTicks(q.Lay, i),
			Size:  f.size(),
		})
	}
	return r
}

func (f *QuoteFeed) size() float64 {
	return util.Round2(2 + f.rng.Float64()*500)
}
