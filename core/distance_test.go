package core

import (
	"math"
	"testing"
)

func TestCosineSimilarity32(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		want    float32
		wantErr bool
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1,
		},
		{
			name: "zero vector yields zero",
			a:    []float32{0, 0},
			b:    []float32{1, 1},
			want: 0,
		},
		{
			name:    "dimension mismatch",
			a:       []float32{1, 2},
			b:       []float32{1, 2, 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity32(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity64(t *testing.T) {
	got, err := CosineSimilarity64([]float64{3, 4}, []float64{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("got %f, want 1", got)
	}

	if _, err := CosineSimilarity64([]float64{1}, []float64{1, 2}); err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestRatingRangeContains(t *testing.T) {
	rr := RatingRange{Min: 8, Max: 10}
	if !rr.Contains(8) || !rr.Contains(10) || !rr.Contains(9.5) {
		t.Error("bounds should be inclusive")
	}
	if rr.Contains(7.9) {
		t.Error("7.9 should be outside 8-10")
	}
}

func TestMovieRecordHasRating(t *testing.T) {
	if (MovieRecord{Rating: math.NaN()}).HasRating() {
		t.Error("NaN rating should read as absent")
	}
	if !(MovieRecord{Rating: 7.5}).HasRating() {
		t.Error("7.5 should read as present")
	}
}
