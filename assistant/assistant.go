// Package assistant wires the retrieval components into the end-to-end
// conversational pipeline: parse the utterance, run filtered search, fall
// back to semantic search when filtering finds nothing.
package assistant

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/core"
	"github.com/hibafl/filmo/query"
	"github.com/hibafl/filmo/search"
)

// SessionContext carries what the previous interaction produced. The
// pipeline writes a fresh copy per request; callers decide whether to keep
// it around. Keeping it explicit keeps the pipeline free of ambient state.
type SessionContext struct {
	ID          string
	LastQuery   string
	LastFilters core.QueryFilters
	LastTitles  []string
}

// NewSessionContext creates an empty session with a fresh ID.
func NewSessionContext() *SessionContext {
	return &SessionContext{ID: uuid.New().String()}
}

// Response is the outcome of one pipeline run.
type Response struct {
	Movies []core.MovieRecord
	// Fallback reports that filtered search was empty and the results came
	// from semantic search instead.
	Fallback bool
	Filters  core.QueryFilters
}

// Assistant runs the query pipeline over an immutable catalog.
type Assistant struct {
	catalog     *catalog.Store
	parser      *query.Parser
	filtered    *search.Filtered
	semantic    *search.Semantic
	recommender *search.Recommender
	rng         *rand.Rand
}

// New assembles an assistant from already-built components. semantic may be
// nil when no embedding engine is configured; the fallback then returns
// empty results. rng drives the fun-fact movie pick.
func New(cat *catalog.Store, semantic *search.Semantic, rng *rand.Rand) *Assistant {
	return &Assistant{
		catalog:     cat,
		parser:      query.NewParser(cat),
		filtered:    search.NewFiltered(cat),
		semantic:    semantic,
		recommender: search.NewRecommender(cat),
		rng:         rng,
	}
}

// Ask runs one utterance through the pipeline and updates session. An empty
// result is a valid outcome, never an error; errors are reserved for broken
// infrastructure, which Ask does not touch after construction.
func (a *Assistant) Ask(ctx context.Context, session *SessionContext, utterance string) Response {
	filters := a.parser.Parse(utterance)
	movies := a.filtered.Search(filters)

	resp := Response{Movies: movies, Filters: filters}
	if len(movies) == 0 && a.semantic != nil {
		resp.Movies = a.semantic.Search(ctx, utterance, search.DefaultSemanticTopK)
		resp.Fallback = true
	}

	if session != nil {
		session.LastQuery = utterance
		session.LastFilters = filters
		session.LastTitles = titlesOf(resp.Movies)
	}
	return resp
}

// Recommend returns up to 5 movies similar to the given title, excluding
// the matched movie itself. Unknown titles yield an empty list.
func (a *Assistant) Recommend(title string) []core.MovieRecord {
	return a.recommender.Recommend(title)
}

// FunFact picks a random catalog movie and phrases its director as a fact.
func (a *Assistant) FunFact() string {
	records := a.catalog.Records()
	if len(records) == 0 {
		return ""
	}
	m := records[a.rng.Intn(len(records))]
	return fmt.Sprintf("Fun fact: Did you know that %s was directed by %s?", m.Title, m.Director)
}

// Catalog exposes the underlying store for read-only lookups.
func (a *Assistant) Catalog() *catalog.Store {
	return a.catalog
}

func titlesOf(movies []core.MovieRecord) []string {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles
}
