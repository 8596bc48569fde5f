package repository

import (
	"context"
	"time"

	"github.com/bekzat/lingotrack/internal/models"
)

// AttemptRepository handles attempt lifecycle data access
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
	Get(ctx context.Context, id int64) (*models.Attempt, error)
	Count(ctx context.Context, userID, lessonID int64) (int, error)
	Details(ctx context.Context, attemptID int64) ([]models.AttemptDetail, error)
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error)
	CountFiltered(ctx context.Context, filter models.AttemptFilter) (int, error)
	Best(ctx context.Context, userID, lessonID int64) (*models.Attempt, error)
	History(ctx context.Context, userID, lessonID int64) ([]models.Attempt, error)
	SubmitAnswer(ctx context.Context, attemptID int64, exercise models.Exercise, req models.SubmitAnswerRequest) (*models.AttemptDetail, error)
	Complete(ctx context.Context, attemptID int64, durationSec *int) (*models.Attempt, error)
}

// CatalogRepository reads the authored content catalog
type CatalogRepository interface {
	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)
	ListLessons(ctx context.Context) ([]models.Lesson, error)
	LessonExercises(ctx context.Context, lessonID int64) ([]models.Exercise, error)
	GetLessonExercise(ctx context.Context, lessonID, exerciseID int64) (*models.Exercise, error)
}

// UserRepository handles user directory data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	AttemptTotals(ctx context.Context, userID int64) (total, completed int, avgAccuracy float64, err error)
}

// ProgressRepository serves the leaderboard and XP/streak read side
type ProgressRepository interface {
	WeeklyScores(ctx context.Context, grade int, start, end time.Time) ([]models.LeaderboardEntry, error)
	DailyXP(ctx context.Context, userID int64, since string) ([]models.DailyXP, error)
	DailyStreakXP(ctx context.Context, userID int64, since string) ([]models.DailyXP, error)
}
