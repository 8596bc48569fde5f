package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/samber/lo"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/errors"
	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/repository"
)

// AttemptService owns the attempt lifecycle: start, repeated submissions,
// and the one-way completion.
type AttemptService interface {
	Start(ctx context.Context, req models.StartAttemptRequest) (*models.Attempt, error)
	Submit(ctx context.Context, attemptID int64, req models.SubmitAnswerRequest) (*models.AttemptDetail, error)
	Complete(ctx context.Context, attemptID int64, req models.CompleteAttemptRequest) (*models.Attempt, error)
	GetByID(ctx context.Context, attemptID int64) (*models.AttemptWithDetails, error)
	List(ctx context.Context, filter models.AttemptFilter) (*models.AttemptPage, error)
	GetBest(ctx context.Context, userID, lessonID int64) (*models.Attempt, error)
	GetHistory(ctx context.Context, userID, lessonID int64) ([]models.Attempt, error)
}

type attemptService struct {
	attempts repository.AttemptRepository
	catalog  repository.CatalogRepository
	users    repository.UserRepository
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(attempts repository.AttemptRepository, catalog repository.CatalogRepository, users repository.UserRepository) AttemptService {
	return &attemptService{
		attempts: attempts,
		catalog:  catalog,
		users:    users,
	}
}

func (s *attemptService) Start(ctx context.Context, req models.StartAttemptRequest) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting attempt: user_id=%d, lesson_id=%d", req.UserID, req.LessonID)

	if req.UserID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be a positive id")
	}
	if req.LessonID <= 0 {
		return nil, errors.NewValidationError("lesson_id", "must be a positive id")
	}

	user, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", req.UserID)
	}

	lesson, err := s.catalog.GetLesson(ctx, req.LessonID)
	if err != nil {
		log.Error("failed to load lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", req.LessonID)
	}

	exercises, err := s.catalog.LessonExercises(ctx, req.LessonID)
	if err != nil {
		log.Error("failed to load lesson exercises: %v", err)
		return nil, errors.NewInternalError(err)
	}
	// Snapshot the lesson's current point total; later catalog edits must not
	// change this attempt's ceiling.
	maxScore := lo.SumBy(exercises, func(e models.Exercise) int { return e.Points })

	prior, err := s.attempts.Count(ctx, req.UserID, req.LessonID)
	if err != nil {
		log.Error("failed to count prior attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := time.Now().UTC()
	attempt := models.Attempt{
		UserID:        req.UserID,
		LessonID:      req.LessonID,
		AttemptNumber: prior + 1,
		MaxScore:      maxScore,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.attempts.Insert(ctx, attempt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	attempt.ID = id
	log.Info("attempt started: id=%d, user_id=%d, lesson_id=%d, number=%d", id, req.UserID, req.LessonID, attempt.AttemptNumber)
	return &attempt, nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID int64, req models.SubmitAnswerRequest) (*models.AttemptDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: attempt_id=%d, exercise_id=%d", attemptID, req.ExerciseID)

	if req.ExerciseID <= 0 {
		return nil, errors.NewValidationError("exercise_id", "must be a positive id")
	}
	if req.Points != nil && *req.Points < 0 {
		return nil, errors.NewValidationError("points", "must not be negative")
	}
	if req.TimeSec != nil && *req.TimeSec < 0 {
		return nil, errors.NewValidationError("time_sec", "must not be negative")
	}

	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		log.Error("failed to load attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("attempt", attemptID)
	}
	if !attempt.Open() {
		return nil, errors.NewInvalidStateError("attempt is already completed")
	}

	exercise, err := s.catalog.GetLessonExercise(ctx, attempt.LessonID, req.ExerciseID)
	if err != nil {
		log.Error("failed to load exercise: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if exercise == nil {
		return nil, errors.NewInvalidStateError("exercise does not belong to the attempt's lesson")
	}

	detail, err := s.attempts.SubmitAnswer(ctx, attemptID, *exercise, req)
	if err != nil {
		log.Error("failed to record submission: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("answer recorded: attempt_id=%d, exercise_id=%d, correct=%v, attempts=%d",
		attemptID, req.ExerciseID, detail.IsCorrect, detail.Attempts)
	return detail, nil
}

func (s *attemptService) Complete(ctx context.Context, attemptID int64, req models.CompleteAttemptRequest) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing attempt: id=%d", attemptID)

	if req.DurationSec != nil && *req.DurationSec < 0 {
		return nil, errors.NewValidationError("duration_sec", "must not be negative")
	}

	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		log.Error("failed to load attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("attempt", attemptID)
	}
	if !attempt.Open() {
		return nil, errors.NewInvalidStateError("attempt is already completed")
	}

	completed, err := s.attempts.Complete(ctx, attemptID, req.DurationSec)
	if err != nil {
		// The conditional update lost a completion race after our check.
		if stderrors.Is(err, db.ErrAttemptCompleted) {
			return nil, errors.NewInvalidStateError("attempt is already completed")
		}
		if stderrors.Is(err, db.ErrStreakConflict) {
			return nil, errors.NewConflictError("streak update conflicted, retry the completion")
		}
		log.Error("failed to complete attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("attempt completed: id=%d, score=%d/%d", completed.ID, completed.TotalScore, completed.MaxScore)
	return completed, nil
}

func (s *attemptService) GetByID(ctx context.Context, attemptID int64) (*models.AttemptWithDetails, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting attempt: id=%d", attemptID)

	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		log.Error("failed to load attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("attempt", attemptID)
	}

	details, err := s.attempts.Details(ctx, attemptID)
	if err != nil {
		log.Error("failed to load attempt details: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.AttemptWithDetails{Attempt: *attempt, Details: details}, nil
}

func (s *attemptService) List(ctx context.Context, filter models.AttemptFilter) (*models.AttemptPage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing attempts: user_id=%d, lesson_id=%d, page=%d, limit=%d",
		filter.UserID, filter.LessonID, filter.Page, filter.Limit)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	attempts, err := s.attempts.List(ctx, filter)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	total, err := s.attempts.CountFiltered(ctx, filter)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	totalPages := total / filter.Limit
	if total%filter.Limit != 0 {
		totalPages++
	}

	return &models.AttemptPage{
		Data:       attempts,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *attemptService) GetBest(ctx context.Context, userID, lessonID int64) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting best attempt: user_id=%d, lesson_id=%d", userID, lessonID)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be a positive id")
	}
	if lessonID <= 0 {
		return nil, errors.NewValidationError("lesson_id", "must be a positive id")
	}

	best, err := s.attempts.Best(ctx, userID, lessonID)
	if err != nil {
		log.Error("failed to get best attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return best, nil
}

func (s *attemptService) GetHistory(ctx context.Context, userID, lessonID int64) ([]models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting attempt history: user_id=%d, lesson_id=%d", userID, lessonID)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be a positive id")
	}
	if lessonID <= 0 {
		return nil, errors.NewValidationError("lesson_id", "must be a positive id")
	}

	history, err := s.attempts.History(ctx, userID, lessonID)
	if err != nil {
		log.Error("failed to get attempt history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}
