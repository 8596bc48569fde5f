package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bekzat/lingotrack/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, attempt models.Attempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) Get(ctx context.Context, id int64) (*models.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) Count(ctx context.Context, userID, lessonID int64) (int, error) {
	args := m.Called(ctx, userID, lessonID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) Details(ctx context.Context, attemptID int64) ([]models.AttemptDetail, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptDetail), args.Error(1)
}

func (m *MockAttemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) CountFiltered(ctx context.Context, filter models.AttemptFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) Best(ctx context.Context, userID, lessonID int64) (*models.Attempt, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) History(ctx context.Context, userID, lessonID int64) ([]models.Attempt, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) SubmitAnswer(ctx context.Context, attemptID int64, exercise models.Exercise, req models.SubmitAnswerRequest) (*models.AttemptDetail, error) {
	args := m.Called(ctx, attemptID, exercise, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptDetail), args.Error(1)
}

func (m *MockAttemptRepository) Complete(ctx context.Context, attemptID int64, durationSec *int) (*models.Attempt, error) {
	args := m.Called(ctx, attemptID, durationSec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}
