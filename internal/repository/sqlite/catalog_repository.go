package sqlite

import (
	"context"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/repository"
)

type catalogRepository struct {
	db *db.DB
}

// NewCatalogRepository creates a new CatalogRepository implementation
func NewCatalogRepository(db *db.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	return r.db.GetLesson(ctx, id)
}

func (r *catalogRepository) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	return r.db.ListLessons(ctx)
}

func (r *catalogRepository) LessonExercises(ctx context.Context, lessonID int64) ([]models.Exercise, error) {
	return r.db.LessonExercises(ctx, lessonID)
}

func (r *catalogRepository) GetLessonExercise(ctx context.Context, lessonID, exerciseID int64) (*models.Exercise, error) {
	return r.db.GetLessonExercise(ctx, lessonID, exerciseID)
}
