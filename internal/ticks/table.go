package ticks

import (
	"math"

	"github.com/bughtuch/tennis-trader-ai/internal/util"
)

const (
	// MinPrice is the lowest tradable price.
	MinPrice = 1.01
	// MaxPrice is the highest tradable price.
	MaxPrice = 1000.0
	// fallbackIncrement applies below MinPrice and to anything no band matches.
	fallbackIncrement = 0.01
	// downOffset is subtracted before a downward band lookup so that a price on a
	// band boundary resolves to the band below it.
	downOffset = 0.001
)

// Band is a half-open price range [Min, Max) quoted in steps of Increment.
type Band struct {
	Min       float64
	Max       float64
	Increment float64
}

var table = [...]Band{
	{Min: 1.01, Max: 2.0, Increment: 0.01},
	{Min: 2.0, Max: 3.0, Increment: 0.02},
	{Min: 3.0, Max: 4.0, Increment: 0.05},
	{Min: 4.0, Max: 6.0, Increment: 0.1},
	{Min: 6.0, Max: 10.0, Increment: 0.2},
	{Min: 10.0, Max: 20.0, Increment: 0.5},
	{Min: 20.0, Max: 30.0, Increment: 1.0},
	{Min: 30.0, Max: 50.0, Increment: 2.0},
	{Min: 50.0, Max: 100.0, Increment: 5.0},
	{Min: 100.0, Max: 1000.0, Increment: 10.0},
}

// Bands returns a copy of the tick table in ascending order.
func Bands() []Band {
	out := make([]Band, len(table))
	copy(out, table[:])
	return out
}

// bandFor is the only place the half-open matching rule lives.
func bandFor(price float64) (Band, bool) {
	for _, b := range table {
		if price >= b.Min && price < b.Max {
			return b, true
		}
	}
	return Band{}, false
}

// Increment returns the tick size for the band containing price.
// MaxPrice belongs to the last band; anything else unmatched gets 0.01.
func Increment(price float64) float64 {
	if b, ok := bandFor(price); ok {
		return b.Increment
	}
	if price == MaxPrice {
		return table[len(table)-1].Increment
	}
	return fallbackIncrement
}

// Ladder returns every valid price from MinPrice to MaxPrice inclusive.
func Ladder() []float64 {
	prices := make([]float64, 0, 350)
	for _, b := range table {
		steps := int(math.Round((b.Max - b.Min) / b.Increment))
		for k := 0; k < steps; k++ {
			prices = append(prices, util.Round2(b.Min+float64(k)*b.Increment))
		}
	}
	return append(prices, MaxPrice)
}
