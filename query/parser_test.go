package query

import (
	"reflect"
	"testing"

	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/core"
	"github.com/hibafl/filmo/core/ai"
)

func testStore() *catalog.Store {
	return catalog.NewStore([]core.MovieRecord{
		{ID: "0", Title: "Inception", Genres: "Sci-Fi, Thriller", Director: "Christopher Nolan"},
		{ID: "1", Title: "The Notebook", Genres: "Drama, Romance", Director: "Nick Cassavetes"},
		{ID: "2", Title: "Alien", Genres: "Horror, Sci-Fi", Director: "Ridley Scott"},
		{ID: "3", Title: "Paddington", Genres: "Comedy, Family", Director: "Paul King"},
	})
}

func TestParseKeywordsAlwaysNormalized(t *testing.T) {
	p := NewParser(testStore())

	queries := []string{
		"Find a horror movie",
		"top rated movies from 2020",
		"I'm feeling sad tonight",
		"",
		"the film",
	}
	for _, q := range queries {
		got := p.Parse(q)
		if got.Keywords != ai.Normalize(q) {
			t.Errorf("Parse(%q).Keywords = %q, want %q", q, got.Keywords, ai.Normalize(q))
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	p := NewParser(testStore())
	q := "sad horror movies by ridley scott from 1979"

	first := p.Parse(q)
	second := p.Parse(q)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse not idempotent:\n first: %+v\nsecond: %+v", first, second)
	}
}

func TestParseMoodHints(t *testing.T) {
	p := NewParser(testStore())

	got := p.Parse("I'm feeling sad tonight")
	want := []string{"drama", "romance"}
	if !reflect.DeepEqual(got.Genres, want) {
		t.Errorf("Genres = %v, want %v", got.Genres, want)
	}
}

func TestParseRatingAndYears(t *testing.T) {
	p := NewParser(testStore())

	got := p.Parse("top rated movies from 2020")
	if got.Rating == nil || got.Rating.Min != 8.0 || got.Rating.Max != 10.0 {
		t.Errorf("Rating = %+v, want 8.0-10.0", got.Rating)
	}
	if !reflect.DeepEqual(got.Years, map[int]bool{2020: true}) {
		t.Errorf("Years = %v, want {2020}", got.Years)
	}

	got = p.Parse("worst movies of 1999 and 2003")
	if got.Rating == nil || got.Rating.Min != 0.0 || got.Rating.Max != 4.0 {
		t.Errorf("Rating = %+v, want 0.0-4.0", got.Rating)
	}
	if !reflect.DeepEqual(got.Years, map[int]bool{1999: true, 2003: true}) {
		t.Errorf("Years = %v", got.Years)
	}

	// "top" wins over "worst" when both appear.
	got = p.Parse("top of the worst")
	if got.Rating == nil || got.Rating.Min != 8.0 {
		t.Errorf("Rating = %+v, want the top band", got.Rating)
	}

	if got := p.Parse("movies from 1850"); got.Years != nil {
		t.Errorf("out-of-range year parsed: %v", got.Years)
	}
}

func TestParseGenresAndDirector(t *testing.T) {
	p := NewParser(testStore())

	got := p.Parse("show me a horror movie")
	if !containsString(got.Genres, "horror") {
		t.Errorf("Genres = %v, want horror present", got.Genres)
	}

	got = p.Parse("movies by christopher nolan")
	if got.Director != "Christopher Nolan" {
		t.Errorf("Director = %q, want Christopher Nolan", got.Director)
	}

	// The full name must appear; a bare surname is not a director match.
	got = p.Parse("anything by scott")
	if got.Director != "" {
		t.Errorf("Director = %q, want no match for a bare surname", got.Director)
	}

	got = p.Parse("films by RIDLEY SCOTT please")
	if got.Director != "Ridley Scott" {
		t.Errorf("Director = %q, want Ridley Scott", got.Director)
	}
}

func TestParseEmptyQuery(t *testing.T) {
	p := NewParser(testStore())

	got := p.Parse("")
	if !got.Empty() {
		t.Errorf("empty query should produce empty filters, got %+v", got)
	}
}

func TestParseCacheReturnsSameResult(t *testing.T) {
	p := NewParser(testStore())
	q := "sad sci-fi from 2010"

	first := p.Parse(q)
	// Second call is served from cache; must be indistinguishable.
	second := p.Parse(q)
	if !reflect.DeepEqual(first, second) {
		t.Error("cached parse differs from fresh parse")
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
