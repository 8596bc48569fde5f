package api

import (
	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/services"
)

// Server holds the wired services behind the HTTP handlers.
type Server struct {
	AttemptService  services.AttemptService
	ProgressService services.ProgressService
	CatalogService  services.CatalogService
	DB              *db.DB
}
