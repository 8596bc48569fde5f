package sqlite

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type attemptRepository struct {
	db *db.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *db.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, attempt models.Attempt) (int64, error) {
	return r.db.InsertAttempt(ctx, attempt)
}

func (r *attemptRepository) Get(ctx context.Context, id int64) (*models.Attempt, error) {
	return r.db.GetAttempt(ctx, id)
}

func (r *attemptRepository) Count(ctx context.Context, userID, lessonID int64) (int, error) {
	return r.db.CountAttempts(ctx, userID, lessonID)
}

func (r *attemptRepository) Details(ctx context.Context, attemptID int64) ([]models.AttemptDetail, error) {
	return r.db.AttemptDetails(ctx, attemptID)
}

func (r *attemptRepository) Best(ctx context.Context, userID, lessonID int64) (*models.Attempt, error) {
	return r.db.BestAttempt(ctx, userID, lessonID)
}

func (r *attemptRepository) History(ctx context.Context, userID, lessonID int64) ([]models.Attempt, error) {
	return r.db.AttemptHistory(ctx, userID, lessonID)
}

func (r *attemptRepository) SubmitAnswer(ctx context.Context, attemptID int64, exercise models.Exercise, req models.SubmitAnswerRequest) (*models.AttemptDetail, error) {
	return r.db.SubmitAnswer(ctx, attemptID, exercise, req)
}

func (r *attemptRepository) Complete(ctx context.Context, attemptID int64, durationSec *int) (*models.Attempt, error) {
	return r.db.CompleteAttempt(ctx, attemptID, durationSec)
}

func (r *attemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: user_id=%d, lesson_id=%d, page=%d, limit=%d",
		filter.UserID, filter.LessonID, filter.Page, filter.Limit)

	query := sqlBuilder.Select(
		"id", "user_id", "lesson_id", "attempt_number", "max_score", "total_score",
		"correct_count", "incorrect_count", "skip_count", "accuracy_pct", "is_completed",
		"duration_sec", "created_at", "updated_at",
	).From("attempts")

	query = applyAttemptFilter(query, filter)
	query = query.OrderBy("created_at DESC", "id DESC")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	query = query.Limit(uint64(limit)).Offset(uint64((page - 1) * limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		a, err := scanAttemptListRow(rows)
		if err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, *a)
	}

	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

func (r *attemptRepository) CountFiltered(ctx context.Context, filter models.AttemptFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query := applyAttemptFilter(sqlBuilder.Select("COUNT(*)").From("attempts"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func applyAttemptFilter(query squirrel.SelectBuilder, filter models.AttemptFilter) squirrel.SelectBuilder {
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.LessonID != 0 {
		query = query.Where(squirrel.Eq{"lesson_id": filter.LessonID})
	}
	return query
}
