package ai

import (
	"reflect"
	"testing"
)

func TestMoodClassify(t *testing.T) {
	mc := NewMoodClassifier()

	tests := []struct {
		name string
		text string
		want Mood
	}{
		{"sad text", "i m feeling sad tonight", MoodSad},
		{"happy text", "something happy and fun", MoodHappy},
		{"neutral text", "movies from 2020", MoodNeutral},
		{"empty text", "", MoodNeutral},
		{"mixed leans negative", "good but mostly miserable and gloomy", MoodSad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mc.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestMoodPolarityBounds(t *testing.T) {
	mc := NewMoodClassifier()
	for _, text := range []string{"amazing awesome wonderful", "terrible awful miserable", "nothing scored here"} {
		p := mc.Polarity(text)
		if p < -1 || p > 1 {
			t.Errorf("Polarity(%q) = %f out of [-1,1]", text, p)
		}
	}
}

func TestMoodGenres(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"sad keyword", "sad", []string{"drama", "romance"}},
		{"happy keyword", "happy", []string{"comedy", "family"}},
		{"romantic and bored union", "something romantic when bored", []string{"romance", "drama", "thriller", "mystery"}},
		{"scared dedupes thriller", "bored and scared", []string{"thriller", "mystery", "horror"}},
		{"no keyword", "movies from 2020", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoodGenres(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MoodGenres(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
