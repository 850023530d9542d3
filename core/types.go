package core

import "math"

// MovieRecord is one catalog entry. Every field is always present after
// load; missing source columns are defaulted so lookups never fail, they
// just never match.
type MovieRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Synopsis    string  `json:"synopsis"`
	ReleaseYear int     `json:"release_year,omitempty"` // 0 when absent
	Rating      float64 `json:"rating,omitempty"`       // NaN when absent
	CoverURL    string  `json:"cover_url,omitempty"`
	Genres      string  `json:"genres,omitempty"` // comma-separated, as in the source data
	Director    string  `json:"director,omitempty"`
	ExternalID  string  `json:"external_id,omitempty"` // IMDb identifier
}

// HasRating reports whether the record carries a rating value.
func (m MovieRecord) HasRating() bool {
	return !math.IsNaN(m.Rating)
}

// RatingRange is an inclusive [Min, Max] rating constraint.
type RatingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether r falls inside the range.
func (rr RatingRange) Contains(r float64) bool {
	return !math.IsNaN(r) && r >= rr.Min && r <= rr.Max
}

// QueryFilters is the structured intent extracted from one user utterance.
// Absent fields mean "no constraint on this dimension", never "exclude
// everything". Genres is an ordered list, not a set: the same genre may
// appear twice (mood hint plus explicit mention) and consumers apply each
// entry as a further AND narrowing.
type QueryFilters struct {
	Genres   []string     `json:"genres,omitempty"`
	Director string       `json:"director,omitempty"`
	Years    map[int]bool `json:"years,omitempty"`
	Rating   *RatingRange `json:"rating,omitempty"`
	Keywords string       `json:"keywords"` // always set, possibly ""
}

// Empty reports whether the filters carry no constraint at all.
func (f QueryFilters) Empty() bool {
	return len(f.Genres) == 0 && f.Director == "" && len(f.Years) == 0 &&
		f.Rating == nil && f.Keywords == ""
}

// RankedMovie pairs a catalog record with a similarity score. Scores are an
// internal ranking detail; presenters consume the records only.
type RankedMovie struct {
	Movie MovieRecord `json:"movie"`
	Score float64     `json:"score"`
}

// Records strips the scores from a ranked list.
func Records(ranked []RankedMovie) []MovieRecord {
	out := make([]MovieRecord, len(ranked))
	for i, r := range ranked {
		out[i] = r.Movie
	}
	return out
}
