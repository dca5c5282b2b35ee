// internal/httpserver/routes_scores.go
//
// HTTP routes for results and the daily leaderboard.
//   - GET /scores/leaderboard → top 20 finished games for today (or ?date=YYYY-MM-DD)
//   - GET /scores/best        → the signed-in user's best game (requires auth)

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/bowling/internal/scores"
)

// mountScores registers all /scores routes.
func (s *Server) mountScores() {
	s.r.Route("/scores", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.With(s.requireAuth()).Get("/best", s.handleBest)
	})
}

// lbRes is returned by /scores/leaderboard.
type lbRes struct {
	Date string          `json:"date"`
	Top  []scores.Result `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = scores.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
		return
	}
	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	rows, err := s.scores.Leaderboard(r.Context(), date, limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}

// handleBest returns the caller's highest scoring finished game.
func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r.Context())
	best, err := s.scores.PersonalBest(r.Context(), me.ID)
	if errors.Is(err, scores.ErrNotFound) {
		http.Error(w, `{"error":"no_results"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(best)
}
