// Package query turns free-text user utterances into structured catalog
// filters. Parsing is heuristic and never fails: a query that matches no
// vocabulary still yields a keywords-only filter set.
package query

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/core"
	"github.com/hibafl/filmo/core/ai"
)

var yearPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// Rating bands keyed off intent words in the query.
var (
	topRatingBand = core.RatingRange{Min: 8.0, Max: 10.0}
	badRatingBand = core.RatingRange{Min: 0.0, Max: 4.0}
)

// Parser extracts QueryFilters from raw queries using the catalog's genre
// and director vocabularies plus mood classification.
type Parser struct {
	catalog *catalog.Store
	mood    *ai.MoodClassifier
	cache   *parseCache
}

// NewParser creates a parser bound to a catalog.
func NewParser(cat *catalog.Store) *Parser {
	return &Parser{
		catalog: cat,
		mood:    ai.NewMoodClassifier(),
		cache:   newParseCache(1000),
	}
}

// Parse builds a structured filter set from one user utterance. The result
// is deterministic and idempotent for a fixed catalog, so repeated queries
// are served from a small cache.
func (p *Parser) Parse(rawQuery string) core.QueryFilters {
	if cached, found := p.cache.get(rawQuery); found {
		return cached
	}

	var filters core.QueryFilters
	q := ai.Normalize(rawQuery)

	// Mood-derived genre hints: the classifier label and any raw mood
	// keyword in the query both contribute.
	mood := p.mood.Classify(q)
	filters.Genres = append(filters.Genres, ai.MoodGenres(string(mood))...)
	for _, g := range ai.MoodGenres(q) {
		filters.Genres = appendGenre(filters.Genres, g)
	}

	// Explicit genre mentions from the catalog vocabulary. Duplicates with
	// the mood hints are allowed; filtered search treats the list as
	// successive AND narrowing either way.
	for _, g := range p.catalog.GenreVocabulary() {
		if strings.Contains(q, g) {
			filters.Genres = append(filters.Genres, g)
		}
	}

	filters.Director = p.detectDirector(q)

	if years := yearPattern.FindAllString(q, -1); len(years) > 0 {
		filters.Years = make(map[int]bool, len(years))
		for _, y := range years {
			n, _ := strconv.Atoi(y)
			filters.Years[n] = true
		}
	}

	// Mutually exclusive, checked in this order.
	if strings.Contains(q, "top") || strings.Contains(q, "best") {
		band := topRatingBand
		filters.Rating = &band
	} else if strings.Contains(q, "bad") || strings.Contains(q, "worst") {
		band := badRatingBand
		filters.Rating = &band
	}

	filters.Keywords = q

	p.cache.set(rawQuery, filters)
	return filters
}

// detectDirector scans the catalog's directors for a case-insensitive
// substring hit. Directors are ordered longest name first, so the most
// specific match wins ("ridley scott" is preferred over a bare "scott").
func (p *Parser) detectDirector(q string) string {
	for _, d := range p.catalog.Directors() {
		if strings.Contains(q, strings.ToLower(d)) {
			return d
		}
	}
	return ""
}

// appendGenre appends g unless it is already present. Mood hints are
// deduplicated between themselves; explicit catalog mentions are not.
func appendGenre(genres []string, g string) []string {
	for _, have := range genres {
		if have == g {
			return genres
		}
	}
	return append(genres, g)
}

// parseCache memoizes recent parses.
type parseCache struct {
	mu       sync.RWMutex
	cache    map[string]parseEntry
	maxSize  int
	eviction []string
}

type parseEntry struct {
	filters    core.QueryFilters
	expiration time.Time
}

func newParseCache(maxSize int) *parseCache {
	return &parseCache{
		cache:    make(map[string]parseEntry),
		maxSize:  maxSize,
		eviction: make([]string, 0, maxSize),
	}
}

func (pc *parseCache) get(query string) (core.QueryFilters, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	entry, exists := pc.cache[query]
	if !exists || time.Now().After(entry.expiration) {
		return core.QueryFilters{}, false
	}
	return entry.filters, true
}

func (pc *parseCache) set(query string, filters core.QueryFilters) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if len(pc.cache) >= pc.maxSize && len(pc.eviction) > 0 {
		oldest := pc.eviction[0]
		delete(pc.cache, oldest)
		pc.eviction = pc.eviction[1:]
	}

	pc.cache[query] = parseEntry{
		filters:    filters,
		expiration: time.Now().Add(10 * time.Minute),
	}
	pc.eviction = append(pc.eviction, query)
}
