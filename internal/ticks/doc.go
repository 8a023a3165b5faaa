// Package ticks implements the exchange price ladder: the banded tick table,
// snapping arbitrary prices to a valid tick, and stepping a price by whole ticks.
//
// Prices outside [MinPrice, MaxPrice] are clamped rather than rejected, and an
// unmatched price falls back to the smallest increment. Nothing in this package
// returns an error and every function is safe for concurrent use.
package ticks
