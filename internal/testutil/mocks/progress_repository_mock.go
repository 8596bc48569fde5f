package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bekzat/lingotrack/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) WeeklyScores(ctx context.Context, grade int, start, end time.Time) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, grade, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

func (m *MockProgressRepository) DailyXP(ctx context.Context, userID int64, since string) ([]models.DailyXP, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyXP), args.Error(1)
}

func (m *MockProgressRepository) DailyStreakXP(ctx context.Context, userID int64, since string) ([]models.DailyXP, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyXP), args.Error(1)
}
