// Package util provides common rounding helpers for price and stake calculations.
package util

import "math"

// floorEpsilon nudges a step count up before flooring so that a value which is
// an exact multiple of the increment, but stored just below it, floors correctly.
const floorEpsilon = 1e-9

// Round2 rounds x to 2 decimal places, ties away from zero.
// For example, 1.335 becomes 1.34 and 25.665 becomes 25.66 or 25.67 depending
// on its binary representation.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FloorSteps returns how many whole increments of tick fit in x.
// A non-positive tick returns 0.
func FloorSteps(x, tick float64) float64 {
	if tick <= 0 {
		return 0
	}
	return math.Floor(x/tick + floorEpsilon)
}
