package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hibafl/filmo/assistant"
	"github.com/hibafl/filmo/core"
	"github.com/hibafl/filmo/presenter"
)

// Health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
	s.respondWithJSON(w, http.StatusOK, response)
}

// AskRequest is one user utterance.
type AskRequest struct {
	Query string `json:"query"`
}

// MovieResponse is the wire form of one result card. Rating is a pointer so
// unrated movies serialize as null instead of NaN.
type MovieResponse struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Synopsis          string   `json:"synopsis"`
	ReleaseYear       int      `json:"release_year,omitempty"`
	Rating            *float64 `json:"rating"`
	CoverURL          string   `json:"cover_url,omitempty"`
	Genres            string   `json:"genres,omitempty"`
	Director          string   `json:"director,omitempty"`
	TrailerURL        string   `json:"trailer_url"`
	StreamingPlatform string   `json:"streaming_platform"`
	StreamingURL      string   `json:"streaming_url"`
	IMDbURL           string   `json:"imdb_url,omitempty"`
	SpokenSummary     string   `json:"spoken_summary"`
	Sentiment         float64  `json:"sentiment"`
}

// AskResponse is the result of one pipeline run.
type AskResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Fallback bool            `json:"fallback"`
}

// handleAsk runs one utterance through the pipeline
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		s.respondWithError(w, http.StatusBadRequest, "Query is required")
		return
	}

	session := assistant.NewSessionContext()
	resp := s.assistant.Ask(r.Context(), session, req.Query)

	s.respondWithJSON(w, http.StatusOK, AskResponse{
		Movies:   s.movieResponses(resp.Movies),
		Fallback: resp.Fallback,
	})
}

// handleGetMovie returns one movie card by catalog ID
func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	movie, ok := s.assistant.Catalog().ByID(vars["id"])
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}
	s.respondWithJSON(w, http.StatusOK, s.movieResponse(movie))
}

// handleSimilar returns up to 5 movies similar to the given one
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	movie, ok := s.assistant.Catalog().ByID(vars["id"])
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "Movie not found")
		return
	}
	similar := s.assistant.Recommend(movie.Title)
	s.respondWithJSON(w, http.StatusOK, s.movieResponses(similar))
}

// FunFactResponse wraps a random catalog fact.
type FunFactResponse struct {
	Fact string `json:"fact"`
}

// handleFunFact returns a random movie fact
func (s *Server) handleFunFact(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, FunFactResponse{Fact: s.assistant.FunFact()})
}

// StatsResponse reports catalog size.
type StatsResponse struct {
	Movies    int       `json:"movies"`
	Timestamp time.Time `json:"timestamp"`
}

// handleStats returns catalog statistics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, StatsResponse{
		Movies:    s.assistant.Catalog().Len(),
		Timestamp: time.Now(),
	})
}

func (s *Server) movieResponse(m core.MovieRecord) MovieResponse {
	card := s.presenter.Card(m)
	return movieResponseFromCard(card)
}

func (s *Server) movieResponses(movies []core.MovieRecord) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, card := range s.presenter.Cards(movies) {
		out[i] = movieResponseFromCard(card)
	}
	return out
}

func movieResponseFromCard(card presenter.MovieCard) MovieResponse {
	m := card.Movie
	resp := MovieResponse{
		ID:                m.ID,
		Title:             m.Title,
		Synopsis:          m.Synopsis,
		ReleaseYear:       m.ReleaseYear,
		CoverURL:          m.CoverURL,
		Genres:            m.Genres,
		Director:          m.Director,
		TrailerURL:        card.TrailerURL,
		StreamingPlatform: card.StreamingPlatform,
		StreamingURL:      card.StreamingURL,
		IMDbURL:           card.IMDbURL,
		SpokenSummary:     card.SpokenSummary,
		Sentiment:         card.Sentiment,
	}
	if m.HasRating() {
		rating := m.Rating
		resp.Rating = &rating
	}
	return resp
}
