package search

import (
	"strings"

	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/core"
)

// DefaultFilterLimit caps how many records a filtered search returns.
const DefaultFilterLimit = 10

// Filtered applies structured filters against the catalog as successive AND
// narrowing. Results preserve catalog order; no scoring happens here.
type Filtered struct {
	catalog *catalog.Store
	limit   int
}

// NewFiltered creates a filtered search over the catalog.
func NewFiltered(cat *catalog.Store) *Filtered {
	return &Filtered{catalog: cat, limit: DefaultFilterLimit}
}

// Search returns the first records surviving every active filter, in
// catalog order, capped at the configured limit. Absent filters constrain
// nothing; a fully empty filter set matches the whole catalog head.
func (f *Filtered) Search(filters core.QueryFilters) []core.MovieRecord {
	working := f.catalog.Records()

	if len(filters.Years) > 0 {
		working = narrow(working, func(m core.MovieRecord) bool {
			return filters.Years[m.ReleaseYear]
		})
	}

	if filters.Rating != nil {
		working = narrow(working, func(m core.MovieRecord) bool {
			return m.HasRating() && filters.Rating.Contains(m.Rating)
		})
	}

	// Each genre hint narrows independently, so mood hints and explicit
	// mentions compound restrictively. The semantic fallback covers the
	// over-constrained case.
	for _, genre := range filters.Genres {
		g := genre
		working = narrow(working, func(m core.MovieRecord) bool {
			return strings.Contains(strings.ToLower(m.Genres), g)
		})
	}

	if filters.Director != "" {
		director := strings.ToLower(filters.Director)
		working = narrow(working, func(m core.MovieRecord) bool {
			return strings.Contains(strings.ToLower(m.Director), director)
		})
	}

	if filters.Keywords != "" {
		kw := filters.Keywords
		working = narrow(working, func(m core.MovieRecord) bool {
			return strings.Contains(strings.ToLower(m.Synopsis), kw) ||
				strings.Contains(strings.ToLower(m.Title), kw)
		})
	}

	if len(working) > f.limit {
		working = working[:f.limit]
	}
	return working
}

func narrow(records []core.MovieRecord, keep func(core.MovieRecord) bool) []core.MovieRecord {
	out := make([]core.MovieRecord, 0, len(records))
	for _, m := range records {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
