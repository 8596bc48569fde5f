package api

import (
	"net/http"

	"github.com/bekzat/lingotrack/internal/errors"
)

func (s *Server) handleWeeklyLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID := queryInt64(r, "user_id")
	if userID <= 0 {
		handleError(w, r, errors.NewBadRequestError("user_id is required"))
		return
	}

	board, err := s.ProgressService.WeeklyLeaderboard(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, board)
}

func (s *Server) handleXPStats(w http.ResponseWriter, r *http.Request) {
	userID := queryInt64(r, "user_id")
	if userID <= 0 {
		handleError(w, r, errors.NewBadRequestError("user_id is required"))
		return
	}

	stats, err := s.ProgressService.XPStats(r.Context(), userID, queryIntOr(r, "days", 7))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleStreakStats(w http.ResponseWriter, r *http.Request) {
	userID := queryInt64(r, "user_id")
	if userID <= 0 {
		handleError(w, r, errors.NewBadRequestError("user_id is required"))
		return
	}

	stats, err := s.ProgressService.StreakStats(r.Context(), userID, queryIntOr(r, "days", 7))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleUserProgress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	progress, err := s.ProgressService.UserProgress(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, progress)
}
