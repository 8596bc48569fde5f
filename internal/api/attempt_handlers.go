package api

import (
	"net/http"

	"github.com/bekzat/lingotrack/internal/errors"
	"github.com/bekzat/lingotrack/internal/models"
)

func (s *Server) handleStartAttempt(w http.ResponseWriter, r *http.Request) {
	var req models.StartAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.AttemptService.Start(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, attempt)
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	filter := models.AttemptFilter{
		UserID:   queryInt64(r, "user_id"),
		LessonID: queryInt64(r, "lesson_id"),
		Page:     queryIntOr(r, "page", 1),
		Limit:    queryIntOr(r, "limit", 10),
	}

	page, err := s.AttemptService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.AttemptService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, attempt)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req models.SubmitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.AttemptService.Submit(r.Context(), id, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleCompleteAttempt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req models.CompleteAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.AttemptService.Complete(r.Context(), id, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, attempt)
}

func (s *Server) handleBestAttempt(w http.ResponseWriter, r *http.Request) {
	userID := queryInt64(r, "user_id")
	lessonID := queryInt64(r, "lesson_id")
	if userID <= 0 || lessonID <= 0 {
		handleError(w, r, errors.NewBadRequestError("user_id and lesson_id are required"))
		return
	}

	best, err := s.AttemptService.GetBest(r.Context(), userID, lessonID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// best is null when the user has no completed attempts on the lesson.
	respondJSON(w, r, http.StatusOK, best)
}

func (s *Server) handleAttemptHistory(w http.ResponseWriter, r *http.Request) {
	userID := queryInt64(r, "user_id")
	lessonID := queryInt64(r, "lesson_id")
	if userID <= 0 || lessonID <= 0 {
		handleError(w, r, errors.NewBadRequestError("user_id and lesson_id are required"))
		return
	}

	history, err := s.AttemptService.GetHistory(r.Context(), userID, lessonID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, history)
}
