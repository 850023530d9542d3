package ai

import (
	"context"
	"regexp"
	"strings"
)

// SentimentScore represents sentiment analysis results.
type SentimentScore struct {
	Compound   float64 `json:"compound"`   // -1.0 to 1.0
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Label      string  `json:"label"`      // positive, negative, neutral
}

// SentimentAnalyzer produces a valence-aware compound sentiment score for
// arbitrary text. It handles negation and intensification, which the plain
// polarity mean in MoodClassifier deliberately does not. The score is a
// display annotation only; it never drives filtering decisions.
type SentimentAnalyzer struct {
	positiveWords map[string]float64
	negativeWords map[string]float64
	intensifiers  map[string]float64
	negators      map[string]bool
}

// NewSentimentAnalyzer creates a sentiment analyzer with predefined lexicons.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	sa := &SentimentAnalyzer{}
	sa.initializeLexicons()
	return sa
}

// AnalyzeSentiment analyzes the sentiment of the given content.
func (sa *SentimentAnalyzer) AnalyzeSentiment(ctx context.Context, content string) (SentimentScore, error) {
	words := strings.Fields(sa.normalizeText(content))
	if len(words) == 0 {
		return SentimentScore{Label: "neutral"}, nil
	}

	score := sa.compound(words)

	return SentimentScore{
		Compound:   score,
		Confidence: sa.confidence(score, len(words)),
		Label:      sentimentLabel(score),
	}, nil
}

// Compound is a convenience wrapper returning only the compound score.
func (sa *SentimentAnalyzer) Compound(text string) float64 {
	score, _ := sa.AnalyzeSentiment(context.Background(), text)
	return score.Compound
}

// compound computes the valence score over the token stream.
func (sa *SentimentAnalyzer) compound(words []string) float64 {
	var total float64
	var scored int

	for i, word := range words {
		var wordScore float64
		if s, ok := sa.positiveWords[word]; ok {
			wordScore = s
		} else if s, ok := sa.negativeWords[word]; ok {
			wordScore = -s
		} else {
			continue
		}

		// Negation flips valence with slightly reduced intensity.
		if sa.isNegated(words, i) {
			wordScore = -wordScore * 0.8
		}

		wordScore *= sa.intensity(words, i)

		total += wordScore
		scored++
	}

	if scored == 0 {
		return 0
	}

	score := total / float64(scored)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

// isNegated looks at the previous 3 words for a negator.
func (sa *SentimentAnalyzer) isNegated(words []string, idx int) bool {
	start := idx - 3
	if start < 0 {
		start = 0
	}
	for i := start; i < idx; i++ {
		if sa.negators[words[i]] {
			return true
		}
	}
	return false
}

// intensity multiplies the intensifiers found in the previous 2 words.
func (sa *SentimentAnalyzer) intensity(words []string, idx int) float64 {
	multiplier := 1.0
	start := idx - 2
	if start < 0 {
		start = 0
	}
	for i := start; i < idx; i++ {
		if m, ok := sa.intensifiers[words[i]]; ok {
			multiplier *= m
		}
	}
	return multiplier
}

// confidence grows with score magnitude and text length.
func (sa *SentimentAnalyzer) confidence(score float64, wordCount int) float64 {
	confidence := score
	if confidence < 0 {
		confidence = -confidence
	}
	if wordCount > 10 {
		confidence *= 1.2
	} else if wordCount < 5 {
		confidence *= 0.8
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func sentimentLabel(score float64) string {
	switch {
	case score > 0.1:
		return "positive"
	case score < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

var (
	sentimentPunct = regexp.MustCompile(`[^\w\s]`)
	sentimentSpace = regexp.MustCompile(`\s+`)
)

func (sa *SentimentAnalyzer) normalizeText(text string) string {
	text = strings.ToLower(text)
	text = sentimentPunct.ReplaceAllString(text, " ")
	text = sentimentSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// initializeLexicons sets up the sentiment word lists. Weights lean on
// vocabulary common in film synopses and reviews.
func (sa *SentimentAnalyzer) initializeLexicons() {
	sa.positiveWords = map[string]float64{
		"amazing":      0.9,
		"masterpiece":  0.9,
		"brilliant":    0.8,
		"excellent":    0.9,
		"wonderful":    0.8,
		"beautiful":    0.7,
		"great":        0.7,
		"good":         0.6,
		"charming":     0.6,
		"heartwarming": 0.8,
		"triumphant":   0.8,
		"thrilling":    0.7,
		"captivating":  0.7,
		"delightful":   0.7,
		"inspiring":    0.7,
		"uplifting":    0.7,
		"joy":          0.7,
		"joyful":       0.8,
		"happy":        0.7,
		"love":         0.7,
		"hope":         0.6,
		"hopeful":      0.7,
		"friendship":   0.5,
		"hero":         0.4,
		"heroic":       0.6,
		"victory":      0.6,
		"success":      0.6,
		"successful":   0.6,
		"fun":          0.6,
		"funny":        0.6,
		"hilarious":    0.8,
		"epic":         0.5,
		"stunning":     0.7,
		"magical":      0.6,
		"redemption":   0.5,
		"peace":        0.5,
		"perfect":      0.9,
	}

	sa.negativeWords = map[string]float64{
		"terrible":    0.9,
		"horrible":    0.9,
		"awful":       0.8,
		"dreadful":    0.8,
		"bad":         0.6,
		"worst":       0.8,
		"tragedy":     0.7,
		"tragic":      0.7,
		"death":       0.6,
		"dead":        0.5,
		"dies":        0.6,
		"murder":      0.8,
		"killer":      0.7,
		"war":         0.5,
		"violence":    0.6,
		"violent":     0.6,
		"cruel":       0.7,
		"brutal":      0.7,
		"dark":        0.4,
		"fear":        0.6,
		"terror":      0.8,
		"horror":      0.6,
		"nightmare":   0.7,
		"sad":         0.6,
		"grief":       0.7,
		"loss":        0.5,
		"lost":        0.4,
		"betrayal":    0.7,
		"revenge":     0.5,
		"evil":        0.7,
		"sinister":    0.7,
		"disaster":    0.7,
		"destruction": 0.7,
		"doomed":      0.7,
		"despair":     0.8,
		"lonely":      0.6,
		"pain":        0.6,
		"suffering":   0.7,
		"haunted":     0.5,
		"corrupt":     0.6,
		"crime":       0.4,
		"deadly":      0.6,
	}

	sa.intensifiers = map[string]float64{
		"very":        1.5,
		"extremely":   2.0,
		"incredibly":  1.8,
		"absolutely":  1.7,
		"completely":  1.6,
		"totally":     1.6,
		"utterly":     1.7,
		"deeply":      1.5,
		"truly":       1.4,
		"really":      1.4,
		"quite":       1.3,
		"rather":      1.2,
		"somewhat":    1.1,
		"slightly":    0.8,
		"barely":      0.7,
		"hardly":      0.6,
		"most":        1.3,
		"remarkably":  1.6,
		"profoundly":  1.7,
		"relentlessly": 1.5,
	}

	negators := []string{
		"not", "no", "never", "nothing", "nobody", "neither", "nor", "none",
		"cannot", "cant", "wont", "wouldnt", "shouldnt", "couldnt", "dont",
		"doesnt", "didnt", "isnt", "arent", "wasnt", "werent", "without",
		"lack", "lacking",
	}
	sa.negators = make(map[string]bool, len(negators))
	for _, w := range negators {
		sa.negators[w] = true
	}
}
