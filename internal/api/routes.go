package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/attempts", func(r chi.Router) {
			r.Post("/", s.handleStartAttempt)
			r.Get("/", s.handleListAttempts)
			r.Get("/best", s.handleBestAttempt)
			r.Get("/history", s.handleAttemptHistory)
			r.Get("/{id}", s.handleGetAttempt)
			r.Post("/{id}/submissions", s.handleSubmitAnswer)
			r.Post("/{id}/complete", s.handleCompleteAttempt)
		})

		r.Get("/leaderboard/weekly", s.handleWeeklyLeaderboard)
		r.Get("/stats/xp", s.handleXPStats)
		r.Get("/stats/streak", s.handleStreakStats)

		r.Get("/lessons", s.handleListLessons)
		r.Get("/lessons/{id}", s.handleGetLesson)
		r.Get("/users/{id}/progress", s.handleUserProgress)
	})

	return r
}
