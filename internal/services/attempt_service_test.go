package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/errors"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/services"
	"github.com/bekzat/lingotrack/internal/testutil/mocks"
)

func newAttemptService() (services.AttemptService, *mocks.MockAttemptRepository, *mocks.MockCatalogRepository, *mocks.MockUserRepository) {
	attempts := new(mocks.MockAttemptRepository)
	catalog := new(mocks.MockCatalogRepository)
	users := new(mocks.MockUserRepository)
	return services.NewAttemptService(attempts, catalog, users), attempts, catalog, users
}

func requireAppError(t *testing.T, err error, code string) *errors.AppError {
	t.Helper()
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestAttemptService_Start(t *testing.T) {
	ctx := context.Background()
	svc, attempts, catalog, users := newAttemptService()

	users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1, Name: "aruzhan", Grade: 4}, nil)
	catalog.On("GetLesson", ctx, int64(2)).Return(&models.Lesson{ID: 2, Title: "Greetings"}, nil)
	catalog.On("LessonExercises", ctx, int64(2)).Return([]models.Exercise{
		{ID: 10, Points: 10},
		{ID: 11, Points: 15},
	}, nil)
	attempts.On("Count", ctx, int64(1), int64(2)).Return(2, nil)
	attempts.On("Insert", ctx, mock.AnythingOfType("models.Attempt")).Return(int64(77), nil)

	attempt, err := svc.Start(ctx, models.StartAttemptRequest{UserID: 1, LessonID: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(77), attempt.ID)
	assert.Equal(t, 3, attempt.AttemptNumber, "numbering continues from prior attempts")
	assert.Equal(t, 25, attempt.MaxScore, "ceiling snapshots the lesson point total")
	assert.True(t, attempt.Open())
	attempts.AssertExpectations(t)
}

func TestAttemptService_Start_UserNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _, users := newAttemptService()

	users.On("Get", ctx, int64(42)).Return(nil, nil)

	_, err := svc.Start(ctx, models.StartAttemptRequest{UserID: 42, LessonID: 2})
	requireAppError(t, err, errors.ErrCodeNotFound)
}

func TestAttemptService_Start_LessonNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog, users := newAttemptService()

	users.On("Get", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	catalog.On("GetLesson", ctx, int64(9)).Return(nil, nil)

	_, err := svc.Start(ctx, models.StartAttemptRequest{UserID: 1, LessonID: 9})
	requireAppError(t, err, errors.ErrCodeNotFound)
}

func TestAttemptService_Start_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAttemptService()

	_, err := svc.Start(ctx, models.StartAttemptRequest{UserID: 0, LessonID: 2})
	requireAppError(t, err, errors.ErrCodeValidation)

	_, err = svc.Start(ctx, models.StartAttemptRequest{UserID: 1, LessonID: -1})
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestAttemptService_Submit(t *testing.T) {
	ctx := context.Background()
	svc, attempts, catalog, _ := newAttemptService()

	exercise := models.Exercise{ID: 10, LessonID: 2, Points: 10}
	req := models.SubmitAnswerRequest{ExerciseID: 10, IsCorrect: true}

	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5, LessonID: 2}, nil)
	catalog.On("GetLessonExercise", ctx, int64(2), int64(10)).Return(&exercise, nil)
	attempts.On("SubmitAnswer", ctx, int64(5), exercise, req).Return(&models.AttemptDetail{
		ID: 1, AttemptID: 5, ExerciseID: 10, IsCorrect: true, Points: 10, Attempts: 1,
	}, nil)

	detail, err := svc.Submit(ctx, 5, req)
	require.NoError(t, err)
	assert.Equal(t, 10, detail.Points)
	attempts.AssertExpectations(t)
}

func TestAttemptService_Submit_CompletedAttempt(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5, IsCompleted: true}, nil)

	_, err := svc.Submit(ctx, 5, models.SubmitAnswerRequest{ExerciseID: 10})
	requireAppError(t, err, errors.ErrCodeInvalidState)
	attempts.AssertNotCalled(t, "SubmitAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttemptService_Submit_ExerciseOutsideLesson(t *testing.T) {
	ctx := context.Background()
	svc, attempts, catalog, _ := newAttemptService()

	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5, LessonID: 2}, nil)
	catalog.On("GetLessonExercise", ctx, int64(2), int64(99)).Return(nil, nil)

	_, err := svc.Submit(ctx, 5, models.SubmitAnswerRequest{ExerciseID: 99})
	requireAppError(t, err, errors.ErrCodeInvalidState)
}

func TestAttemptService_Submit_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAttemptService()

	_, err := svc.Submit(ctx, 5, models.SubmitAnswerRequest{ExerciseID: 0})
	requireAppError(t, err, errors.ErrCodeValidation)

	negative := -5
	_, err = svc.Submit(ctx, 5, models.SubmitAnswerRequest{ExerciseID: 10, Points: &negative})
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestAttemptService_Complete(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	duration := 90
	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5}, nil)
	attempts.On("Complete", ctx, int64(5), &duration).Return(&models.Attempt{
		ID: 5, IsCompleted: true, TotalScore: 20, MaxScore: 25,
	}, nil)

	attempt, err := svc.Complete(ctx, 5, models.CompleteAttemptRequest{DurationSec: &duration})
	require.NoError(t, err)
	assert.True(t, attempt.IsCompleted)
	attempts.AssertExpectations(t)
}

func TestAttemptService_Complete_AlreadyCompleted(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5, IsCompleted: true}, nil)

	_, err := svc.Complete(ctx, 5, models.CompleteAttemptRequest{})
	requireAppError(t, err, errors.ErrCodeInvalidState)
}

func TestAttemptService_Complete_LostRace(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	// The pre-check saw an open attempt but the conditional update lost.
	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5}, nil)
	attempts.On("Complete", ctx, int64(5), (*int)(nil)).Return(nil, db.ErrAttemptCompleted)

	_, err := svc.Complete(ctx, 5, models.CompleteAttemptRequest{})
	requireAppError(t, err, errors.ErrCodeInvalidState)
}

func TestAttemptService_Complete_StreakConflict(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5}, nil)
	attempts.On("Complete", ctx, int64(5), (*int)(nil)).Return(nil, db.ErrStreakConflict)

	_, err := svc.Complete(ctx, 5, models.CompleteAttemptRequest{})
	appErr := requireAppError(t, err, errors.ErrCodeConflict)
	assert.Equal(t, 409, appErr.Status)
}

func TestAttemptService_List_Pagination(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	normalized := models.AttemptFilter{UserID: 1, Page: 1, Limit: 10}
	attempts.On("List", ctx, normalized).Return([]models.Attempt{{ID: 1}, {ID: 2}}, nil)
	attempts.On("CountFiltered", ctx, normalized).Return(21, nil)

	page, err := svc.List(ctx, models.AttemptFilter{UserID: 1, Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 21, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 2)
}

func TestAttemptService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	now := time.Now().UTC()
	attempts.On("Get", ctx, int64(5)).Return(&models.Attempt{ID: 5, CreatedAt: now}, nil)
	attempts.On("Details", ctx, int64(5)).Return([]models.AttemptDetail{{ID: 1}, {ID: 2}}, nil)

	got, err := svc.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Len(t, got.Details, 2)
}

func TestAttemptService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	attempts.On("Get", ctx, int64(404)).Return(nil, nil)

	_, err := svc.GetByID(ctx, 404)
	requireAppError(t, err, errors.ErrCodeNotFound)
}

func TestAttemptService_GetBest_NilWhenNone(t *testing.T) {
	ctx := context.Background()
	svc, attempts, _, _ := newAttemptService()

	attempts.On("Best", ctx, int64(1), int64(2)).Return(nil, nil)

	best, err := svc.GetBest(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, best)
}
