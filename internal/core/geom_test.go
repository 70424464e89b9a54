package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{10.0, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestWrapF(t *testing.T) {
	tests := []struct {
		name                    string
		val, min, max, expected float64
	}{
		{"inside", 5, 0, 10, 5},
		{"past right edge", 12, 0, 10, 2},
		{"past left edge", -3, 0, 10, 7},
		{"max maps to min", 10, 0, 10, 0},
		{"multiple spans", 25, 0, 10, 5},
		{"far negative", -1e6 - 3, 0, 10, 7},
		{"offset range", 4, 5, 15, 14},
		{"degenerate range", 3, 5, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := WrapF(tc.val, tc.min, tc.max)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("WrapF(%g, %g, %g) = %g, expected %g", tc.val, tc.min, tc.max, result, tc.expected)
			}
			if result < tc.min || (tc.max > tc.min && result >= tc.max) {
				t.Errorf("WrapF(%g) = %g outside [%g, %g)", tc.val, result, tc.min, tc.max)
			}
		})
	}
}
