package search

import (
	"sort"

	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/core"
)

// Recommender limits and thresholds.
const (
	DefaultRecommendLimit = 5
	fuzzyMatchCutoff      = 0.6
)

// Recommender finds near-neighbors of a movie by lexical similarity. The
// title is fuzzy-matched to a catalog entry first, then the entry's TF-IDF
// synopsis vector is compared against every other record.
type Recommender struct {
	catalog    *catalog.Store
	vectorizer *TFIDFVectorizer

	// One sparse vector per catalog record, in catalog order. Built once.
	vectors [][]float64
}

// NewRecommender fits a TF-IDF vectorizer over the catalog's synopses and
// keeps the resulting vectors for similarity lookups.
func NewRecommender(cat *catalog.Store) *Recommender {
	v := NewTFIDFVectorizer()
	return &Recommender{
		catalog:    cat,
		vectorizer: v,
		vectors:    v.Fit(cat.Synopses()),
	}
}

// Match fuzzy-matches title against the catalog and returns the best
// record. ok is false when no title clears the acceptance cutoff.
func (r *Recommender) Match(title string) (core.MovieRecord, bool) {
	idx, ok := r.matchIndex(title)
	if !ok {
		return core.MovieRecord{}, false
	}
	return r.catalog.Records()[idx], true
}

// Recommend returns up to 5 records most similar to the movie whose title
// best matches the input, excluding the matched movie itself. An
// unmatchable title yields an empty list, not an error. Results are fully
// deterministic for a fixed catalog.
func (r *Recommender) Recommend(title string) []core.MovieRecord {
	matched, ok := r.matchIndex(title)
	if !ok {
		return nil
	}

	target := r.vectors[matched]
	records := r.catalog.Records()
	ranked := make([]core.RankedMovie, 0, len(r.vectors)-1)
	for i, vec := range r.vectors {
		if i == matched {
			continue
		}
		sim, err := core.CosineSimilarity64(target, vec)
		if err != nil {
			continue
		}
		ranked = append(ranked, core.RankedMovie{Movie: records[i], Score: sim})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if len(ranked) > DefaultRecommendLimit {
		ranked = ranked[:DefaultRecommendLimit]
	}
	return core.Records(ranked)
}

func (r *Recommender) matchIndex(title string) (int, bool) {
	best := -1
	bestRatio := 0.0
	for i, m := range r.catalog.Records() {
		ratio := matchRatio(title, m.Title)
		if ratio > bestRatio {
			bestRatio = ratio
			best = i
		}
	}
	if best < 0 || bestRatio < fuzzyMatchCutoff {
		return 0, false
	}
	return best, true
}
