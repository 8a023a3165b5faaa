package util

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{
			name:     "basic rounding down",
			x:        1.2345,
			expected: 1.23,
		},
		{
			name:     "tie rounds away from zero",
			x:        0.125,
			expected: 0.13,
		},
		{
			name:     "negative tie rounds away from zero",
			x:        -0.125,
			expected: -0.13,
		},
		{
			name:     "hedge profit with float noise",
			x:        50*(1.54-1) - 51.33*(1.50-1),
			expected: 1.34,
		},
		{
			name:     "already two decimals",
			x:        51.33,
			expected: 51.33,
		},
		{
			name:     "zero",
			x:        0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round2(tt.x)
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Round2(%v) = %v, expected %v", tt.x, result, tt.expected)
			}
		})
	}
}

func TestFloorSteps(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		tick     float64
		expected float64
	}{
		{
			name:     "exact multiple stored below",
			x:        2.03 - 2.0,
			tick:     0.02,
			expected: 1,
		},
		{
			name:     "exact multiple",
			x:        0.30,
			tick:     0.05,
			expected: 6,
		},
		{
			name:     "basic floor",
			x:        0.237,
			tick:     0.01,
			expected: 23,
		},
		{
			name:     "zero tick",
			x:        1.5,
			tick:     0,
			expected: 0,
		},
		{
			name:     "negative tick",
			x:        1.5,
			tick:     -0.01,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FloorSteps(tt.x, tt.tick)
			if result != tt.expected {
				t.Errorf("FloorSteps(%v, %v) = %v, expected %v", tt.x, tt.tick, result, tt.expected)
			}
		})
	}
}

func TestRound2EdgeCases(t *testing.T) {
	t.Run("NaN returns NaN", func(t *testing.T) {
		if result := Round2(math.NaN()); !math.IsNaN(result) {
			t.Errorf("Round2(NaN) = %v, expected NaN", result)
		}
	})

	t.Run("infinite inputs return unchanged", func(t *testing.T) {
		if result := Round2(math.Inf(1)); !math.IsInf(result, 1) {
			t.Errorf("Round2(+Inf) = %v, expected +Inf", result)
		}
		if result := Round2(math.Inf(-1)); !math.IsInf(result, -1) {
			t.Errorf("Round2(-Inf) = %v, expected -Inf", result)
		}
	})
}
