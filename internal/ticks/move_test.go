package ticks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveByTicks(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		n        int
		expected float64
	}{
		{"one tick up", 1.54, 1, 1.55},
		{"up into next band", 1.99, 1, 2.0},
		{"down across boundary uses lower increment", 2.0, -1, 1.99},
		{"down inside 0.02 band", 2.02, -1, 2.0},
		{"down across 3.0", 3.0, -1, 2.98},
		{"up across 3.0", 2.98, 2, 3.05},
		{"clamps at minimum", 1.01, -5, 1.01},
		{"clamps at maximum", 990, 3, 1000},
		{"maximum stays", 1000, 1, 1000},
		{"zero ticks quantizes", 1.546, 0, 1.55},
		{"unquantized input snapped first", 2.029, 1, 2.04},
		{"several ticks down", 1.60, -6, 1.54},
		{"long walk up", 1.01, 349, 1000},
		{"long walk down", 1000, -349, 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MoveByTicks(tt.price, tt.n))
		})
	}
}

func TestMoveByTicks_WalksLadder(t *testing.T) {
	ladder := Ladder()
	for i := 0; i+1 < len(ladder); i++ {
		assert.Equal(t, ladder[i+1], MoveByTicks(ladder[i], 1), "up from %v", ladder[i])
		assert.Equal(t, ladder[i], MoveByTicks(ladder[i+1], -1), "down from %v", ladder[i+1])
	}
}

func TestMoveByTicks_RoundTrip(t *testing.T) {
	ladder := Ladder()
	for i, p := range ladder {
		for _, n := range []int{1, 2, 3, 4, 5, 20, 50, 120} {
			if i+n >= len(ladder) {
				continue
			}
			up := MoveByTicks(p, n)
			assert.Equal(t, ladder[i+n], up, "p=%v n=%d", p, n)
			assert.Equal(t, p, MoveByTicks(up, -n), "p=%v n=%d", p, n)
		}
	}
}

func TestTicksBetween(t *testing.T) {
	tests := []struct {
		name          string
		from, to      float64
		limit         int
		wantCount     int
		wantConverged bool
	}{
		{"same price", 1.5, 1.5, SearchLimit, 0, true},
		{"down within band", 1.60, 1.54, SearchLimit, 6, true},
		{"up across boundary", 1.95, 2.04, SearchLimit, 7, true},
		{"target between ticks is passed", 2.10, 2.01, SearchLimit, 5, true},
		{"target below ladder never reached", 1.5, 0.5, SearchLimit, SearchLimit, false},
		{"limit hit first", 1.01, 1000, 3, 3, false},
		{"non-positive limit uses default", 1.60, 1.54, 0, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, converged := TicksBetween(tt.from, tt.to, tt.limit)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantConverged, converged)
		})
	}
}
