package ai

import "strings"

// Mood is the coarse sentiment bucket used to bias genre filters. It is
// distinct from the compound sentiment score used for display.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodNeutral Mood = "neutral"
)

// MoodClassifier maps normalized text to a coarse mood label via a plain
// polarity average, and mood keywords to candidate genres via a static
// table. The polarity here is a simple lexicon mean with no negation or
// intensity handling; the richer compound score lives in SentimentAnalyzer.
type MoodClassifier struct {
	polarity map[string]float64
}

// NewMoodClassifier creates a mood classifier with its predefined lexicon.
func NewMoodClassifier() *MoodClassifier {
	return &MoodClassifier{polarity: moodPolarityLexicon()}
}

// Classify returns happy for polarity > 0.1, sad for polarity < -0.1, and
// neutral otherwise.
func (mc *MoodClassifier) Classify(normalizedText string) Mood {
	p := mc.Polarity(normalizedText)
	switch {
	case p > 0.1:
		return MoodHappy
	case p < -0.1:
		return MoodSad
	default:
		return MoodNeutral
	}
}

// Polarity returns the mean lexicon polarity of the scored words, in [-1, 1].
// Words outside the lexicon contribute nothing.
func (mc *MoodClassifier) Polarity(text string) float64 {
	var total float64
	var count int
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if p, ok := mc.polarity[w]; ok {
			total += p
			count++
		}
	}
	if count == 0 {
		return 0
	}
	p := total / float64(count)
	if p > 1 {
		p = 1
	} else if p < -1 {
		p = -1
	}
	return p
}

// moodGenreTable maps mood keywords to genre hints. Both classifier labels
// (happy, sad) and raw mood keywords (romantic, bored, ...) are keys, so a
// typed keyword triggers hints even when the classifier stays neutral.
var moodGenreTable = []struct {
	mood   string
	genres []string
}{
	{"sad", []string{"drama", "romance"}},
	{"happy", []string{"comedy", "family"}},
	{"romantic", []string{"romance", "drama"}},
	{"bored", []string{"thriller", "mystery"}},
	{"adventurous", []string{"action", "adventure", "fantasy"}},
	{"scared", []string{"horror", "thriller"}},
}

// MoodGenres unions the genre hints of every mood keyword contained in the
// text. Containment is tested on the raw text, not the classifier output.
func MoodGenres(text string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, entry := range moodGenreTable {
		if !strings.Contains(text, entry.mood) {
			continue
		}
		for _, g := range entry.genres {
			if !seen[g] {
				seen[g] = true
				found = append(found, g)
			}
		}
	}
	return found
}

// moodPolarityLexicon holds the word polarities for mood classification.
func moodPolarityLexicon() map[string]float64 {
	return map[string]float64{
		// positive
		"happy":      0.8,
		"joyful":     0.8,
		"cheerful":   0.7,
		"glad":       0.6,
		"great":      0.7,
		"good":       0.5,
		"fun":        0.6,
		"funny":      0.6,
		"love":       0.7,
		"lovely":     0.6,
		"excited":    0.7,
		"amazing":    0.8,
		"awesome":    0.8,
		"wonderful":  0.8,
		"uplifting":  0.7,
		"delightful": 0.7,
		"best":       0.6,
		"laugh":      0.6,
		"cheer":      0.6,
		"feelgood":   0.7,

		// negative
		"sad":        -0.8,
		"unhappy":    -0.7,
		"depressed":  -0.8,
		"depressing": -0.7,
		"gloomy":     -0.6,
		"miserable":  -0.8,
		"lonely":     -0.6,
		"cry":        -0.6,
		"crying":     -0.6,
		"heartbreak": -0.7,
		"down":       -0.4,
		"blue":       -0.3,
		"terrible":   -0.8,
		"awful":      -0.8,
		"bad":        -0.5,
		"worst":      -0.7,
		"bored":      -0.4,
		"boring":     -0.5,
		"tired":      -0.4,
		"upset":      -0.6,
	}
}
