package search

import (
	"math"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"inception", "incepton", 1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Inception", "Inception", 1},
		{"case insensitive", "INCEPTION", "inception", 1},
		{"single typo", "Incepton", "Inception", 1 - 1.0/9},
		{"empty pair", "", "", 1},
		{"disjoint", "abc", "xyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchRatio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("matchRatio(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
