package sqlite

import (
	"context"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/repository"
)

type userRepository struct {
	db *db.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *db.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	return r.db.GetUser(ctx, id)
}

func (r *userRepository) AttemptTotals(ctx context.Context, userID int64) (total, completed int, avgAccuracy float64, err error) {
	return r.db.UserAttemptTotals(ctx, userID)
}
