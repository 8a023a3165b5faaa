package ticks

import (
	"math"

	"github.com/bughtuch/tennis-trader-ai/internal/util"
)

// tieTolerance treats two distances this close as equal.
const tieTolerance = 1e-8

// RoundToTick snaps price to the nearest valid tick, clamped to [MinPrice, MaxPrice].
// A price equidistant from two ticks rounds up.
func RoundToTick(price float64) float64 {
	if price <= MinPrice {
		return MinPrice
	}
	if price >= MaxPrice {
		return MaxPrice
	}

	b, ok := bandFor(price)
	if !ok {
		return util.Round2(price)
	}

	steps := util.FloorSteps(price-b.Min, b.Increment)
	lower := util.Round2(b.Min + steps*b.Increment)
	upper := util.Round2(b.Min + (steps+1)*b.Increment)
	if upper >= b.Max {
		upper = util.Round2(b.Max)
	}

	distLower := math.Abs(price - lower)
	distUpper := math.Abs(upper - price)
	if math.Abs(distLower-distUpper) < tieTolerance {
		return upper
	}
	if distLower < distUpper {
		return lower
	}
	return upper
}

// IsValid reports whether price is already on the ladder.
func IsValid(price float64) bool {
	return price >= MinPrice && price <= MaxPrice && RoundToTick(price) == price
}
