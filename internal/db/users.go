package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
)

func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching user: id=%d", id)

	var u models.User
	err := db.QueryRowContext(ctx, `
SELECT id, name, grade, xp, streak_days, is_active, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Name, &u.Grade, &u.XP, &u.StreakDays, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

// UserAttemptTotals returns the attempt counters feeding the progress
// summary: total attempts, completed attempts, and the mean accuracy over
// completed ones.
func (db *DB) UserAttemptTotals(ctx context.Context, userID int64) (total, completed int, avgAccuracy float64, err error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching attempt totals: user_id=%d", userID)

	err = db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(is_completed), 0),
       COALESCE(AVG(CASE WHEN is_completed = 1 THEN accuracy_pct END), 0)
FROM attempts
WHERE user_id = ?
`, userID).Scan(&total, &completed, &avgAccuracy)
	if err != nil {
		log.Error("failed to get attempt totals: %v", err)
	}
	return total, completed, avgAccuracy, err
}
