// Package catalog holds the immutable movie catalog and its derived
// vocabularies. A Store is built once at startup and is safe for
// unsynchronized concurrent reads; no write path exists after construction.
package catalog

import (
	"sort"
	"strings"

	"github.com/hibafl/filmo/core"
)

// Store is the read-only movie catalog.
type Store struct {
	records   []core.MovieRecord
	byID      map[string]int
	genres    []string // distinct lowercase genre tokens, sorted
	directors []string // distinct director names, longest first
}

// NewStore builds a catalog from the loaded records. Record order is
// preserved; filtered search results rely on it.
func NewStore(records []core.MovieRecord) *Store {
	s := &Store{
		records: records,
		byID:    make(map[string]int, len(records)),
	}

	genreSet := make(map[string]bool)
	directorSet := make(map[string]bool)

	for i, rec := range records {
		s.byID[rec.ID] = i

		for _, g := range strings.Split(rec.Genres, ",") {
			g = strings.ToLower(strings.TrimSpace(g))
			if g != "" {
				genreSet[g] = true
			}
		}

		if d := strings.TrimSpace(rec.Director); d != "" {
			directorSet[d] = true
		}
	}

	for g := range genreSet {
		s.genres = append(s.genres, g)
	}
	sort.Strings(s.genres)

	for d := range directorSet {
		s.directors = append(s.directors, d)
	}
	// Longest name first so substring detection prefers the most specific
	// director; ties fall back to lexical order for determinism.
	sort.Slice(s.directors, func(i, j int) bool {
		if len(s.directors[i]) != len(s.directors[j]) {
			return len(s.directors[i]) > len(s.directors[j])
		}
		return s.directors[i] < s.directors[j]
	})

	return s
}

// Records returns all catalog entries in load order. The returned slice is
// shared and must not be mutated.
func (s *Store) Records() []core.MovieRecord {
	return s.records
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	return len(s.records)
}

// ByID looks up a record by its stable identity.
func (s *Store) ByID(id string) (core.MovieRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return core.MovieRecord{}, false
	}
	return s.records[i], true
}

// Titles returns all catalog titles in load order.
func (s *Store) Titles() []string {
	titles := make([]string, len(s.records))
	for i, rec := range s.records {
		titles[i] = rec.Title
	}
	return titles
}

// ByTitle looks up a record by exact title. The first occurrence wins when
// titles collide.
func (s *Store) ByTitle(title string) (core.MovieRecord, bool) {
	for _, rec := range s.records {
		if rec.Title == title {
			return rec, true
		}
	}
	return core.MovieRecord{}, false
}

// GenreVocabulary returns the distinct lowercase genre tokens found in the
// catalog, built by splitting each record's comma-separated genre field.
func (s *Store) GenreVocabulary() []string {
	return s.genres
}

// Directors returns the distinct director names, longest name first.
func (s *Store) Directors() []string {
	return s.directors
}

// Synopses returns the synopsis text of every record in load order. Used to
// fit the sparse vectorizer and precompute dense embeddings.
func (s *Store) Synopses() []string {
	out := make([]string, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Synopsis
	}
	return out
}
