package services

import (
	"context"

	"github.com/bekzat/lingotrack/internal/errors"
	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/repository"
)

// CatalogService exposes read-only lesson lookups. Authoring lives in a
// different system; this service never writes.
type CatalogService interface {
	GetLesson(ctx context.Context, id int64) (*models.LessonWithExercises, error)
	ListLessons(ctx context.Context) ([]models.Lesson, error)
}

type catalogService struct {
	catalog repository.CatalogRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalog repository.CatalogRepository) CatalogService {
	return &catalogService{catalog: catalog}
}

func (s *catalogService) GetLesson(ctx context.Context, id int64) (*models.LessonWithExercises, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting lesson: id=%d", id)

	lesson, err := s.catalog.GetLesson(ctx, id)
	if err != nil {
		log.Error("failed to load lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", id)
	}

	exercises, err := s.catalog.LessonExercises(ctx, id)
	if err != nil {
		log.Error("failed to load exercises: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.LessonWithExercises{Lesson: *lesson, Exercises: exercises}, nil
}

func (s *catalogService) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing lessons")

	lessons, err := s.catalog.ListLessons(ctx)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}
