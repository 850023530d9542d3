package presenter

import (
	"fmt"
	"math/rand"

	"github.com/hibafl/filmo/core"
	"github.com/hibafl/filmo/core/ai"
)

// MovieCard is one fully derived display row: the record plus every
// presentational string the UI layers consume.
type MovieCard struct {
	Movie             core.MovieRecord
	TrailerURL        string
	StreamingPlatform string
	StreamingURL      string
	IMDbURL           string
	SpokenSummary     string
	Sentiment         float64
}

// Presenter turns records into cards. The sentiment analyzer annotates each
// synopsis for display only; it never feeds back into retrieval.
type Presenter struct {
	sentiment *ai.SentimentAnalyzer
	rng       *rand.Rand
}

// New creates a presenter. rng drives the streaming platform pick.
func New(rng *rand.Rand) *Presenter {
	return &Presenter{
		sentiment: ai.NewSentimentAnalyzer(),
		rng:       rng,
	}
}

// Card derives all display fields for one movie.
func (p *Presenter) Card(m core.MovieRecord) MovieCard {
	platform, streamURL := StreamingLink(m.Title, p.rng)
	return MovieCard{
		Movie:             m,
		TrailerURL:        TrailerLink(m.Title),
		StreamingPlatform: platform.Name,
		StreamingURL:      streamURL,
		IMDbURL:           IMDbLink(m.ExternalID),
		SpokenSummary:     spokenSummary(m),
		Sentiment:         p.sentiment.Compound(m.Synopsis),
	}
}

// Cards derives display fields for an ordered result list.
func (p *Presenter) Cards(movies []core.MovieRecord) []MovieCard {
	cards := make([]MovieCard, len(movies))
	for i, m := range movies {
		cards[i] = p.Card(m)
	}
	return cards
}

func spokenSummary(m core.MovieRecord) string {
	rating := "unrated"
	if m.HasRating() {
		rating = fmt.Sprintf("%.1f", m.Rating)
	}
	return fmt.Sprintf("Here's a movie you may like: %s released in %d. Rating: %s",
		m.Title, m.ReleaseYear, rating)
}
