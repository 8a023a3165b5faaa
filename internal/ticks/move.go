package ticks

import "github.com/bughtuch/tennis-trader-ai/internal/util"

// SearchLimit caps the tick-distance search in TicksBetween.
const SearchLimit = 200

// MoveByTicks moves price n ticks up (n > 0) or down (n < 0), crossing band
// boundaries with the increment of the band being entered from. The input is
// quantized first and the result is clamped to [MinPrice, MaxPrice].
func MoveByTicks(price float64, n int) float64 {
	current := RoundToTick(price)

	if n > 0 {
		for i := 0; i < n; i++ {
			next := util.Round2(current + Increment(current))
			if next > MaxPrice {
				return MaxPrice
			}
			current = RoundToTick(next)
		}
		return current
	}

	for i := 0; i < -n; i++ {
		// Not rounded: Round2(1.999) is 2.00 and would select the band above.
		below := current - downOffset
		inc := fallbackIncrement
		if below >= MinPrice {
			inc = Increment(below)
		}
		next := util.Round2(current - inc)
		if next < MinPrice {
			return MinPrice
		}
		current = RoundToTick(next)
	}
	return current
}

// TicksBetween counts single-tick moves from from until to is reached or passed,
// stepping at most limit times. converged is false when the limit was hit first,
// in which case the count is not a real distance.
func TicksBetween(from, to float64, limit int) (count int, converged bool) {
	if limit <= 0 {
		limit = SearchLimit
	}
	down := from > to
	price := from
	for count < limit {
		if down && price <= to || !down && price >= to {
			return count, true
		}
		if down {
			price = MoveByTicks(price, -1)
		} else {
			price = MoveByTicks(price, 1)
		}
		count++
	}
	if down && price <= to || !down && price >= to {
		return count, true
	}
	return count, false
}
