package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibafl/filmo/assistant"
	"github.com/hibafl/filmo/catalog"
	"github.com/hibafl/filmo/core"
	"github.com/hibafl/filmo/core/ai"
	"github.com/hibafl/filmo/presenter"
	"github.com/hibafl/filmo/search"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	store := catalog.NewStore([]core.MovieRecord{
		{
			ID: "0", Title: "Inception", ReleaseYear: 2010, Rating: 8.8,
			Genres: "Sci-Fi, Thriller", Director: "Christopher Nolan",
			Synopsis:   "A thief who steals secrets through dream-sharing technology.",
			ExternalID: "tt1375666",
		},
		{
			ID: "1", Title: "The Notebook", ReleaseYear: 2004, Rating: 7.8,
			Genres: "Drama, Romance", Director: "Nick Cassavetes",
			Synopsis: "A poor young man and a rich young woman fall in love one summer.",
		},
		{
			ID: "2", Title: "Alien", ReleaseYear: 1979, Rating: 8.5,
			Genres: "Horror, Sci-Fi", Director: "Ridley Scott",
			Synopsis: "The crew of a commercial spacecraft encounters a deadly lifeform.",
		},
	})

	engine := ai.NewMockEmbeddingEngine(ai.ModelConfig{Name: "mock"})
	semantic := search.NewSemantic(store, engine, nil)
	require.NoError(t, semantic.Build(context.Background()))

	rng := rand.New(rand.NewSource(1))
	a := assistant.New(store, semantic, rng)
	return NewServer(a, presenter.New(rng), DefaultServerConfig())
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestHandleAsk(t *testing.T) {
	s := testServer(t)

	t.Run("filtered hit", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/ask", AskRequest{Query: "inception"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Movies, 1)
		assert.Equal(t, "Inception", resp.Movies[0].Title)
		assert.False(t, resp.Fallback)
		assert.Contains(t, resp.Movies[0].TrailerURL, "youtube.com")
		require.NotNil(t, resp.Movies[0].Rating)
		assert.Equal(t, 8.8, *resp.Movies[0].Rating)
	})

	t.Run("semantic fallback", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/ask", AskRequest{Query: "dream thief stealing corporate secrets"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Fallback)
		assert.NotEmpty(t, resp.Movies)
	})

	t.Run("missing query", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/ask", AskRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGetMovie(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/movies/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MovieResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alien", resp.Title)
	assert.NotEmpty(t, resp.SpokenSummary)

	rec = doRequest(t, s, http.MethodGet, "/movies/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSimilar(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/movies/0/similar", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []MovieResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, m := range resp {
		assert.NotEqual(t, "Inception", m.Title)
	}

	rec = doRequest(t, s, http.MethodGet, "/movies/99/similar", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleFunFactAndStats(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/funfact", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fact FunFactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fact))
	assert.Contains(t, fact.Fact, "was directed by")

	rec = doRequest(t, s, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Movies)
}
