package models

import "time"

type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Grade      int       `json:"grade"` // cohort key for the weekly leaderboard
	XP         int       `json:"xp"`
	StreakDays int       `json:"streak_days"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserProgress is the read-only summary exposed at /users/{id}/progress.
type UserProgress struct {
	UserID            int64   `json:"user_id"`
	Name              string  `json:"name"`
	XP                int     `json:"xp"`
	StreakDays        int     `json:"streak_days"`
	TotalAttempts     int     `json:"total_attempts"`
	CompletedAttempts int     `json:"completed_attempts"`
	AverageAccuracy   float64 `json:"average_accuracy"`
}
