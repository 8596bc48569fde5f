package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bekzat/lingotrack/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AttemptTotals(ctx context.Context, userID int64) (int, int, float64, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Get(2).(float64), args.Error(3)
}
