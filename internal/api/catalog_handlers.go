package api

import "net/http"

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.CatalogService.ListLessons(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, lessons)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	lesson, err := s.CatalogService.GetLesson(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, lesson)
}
