package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/scoring"
)

const dayFormat = "2006-01-02"

// awardXP appends one ledger row and bumps the user's running total. Zero
// and negative scores earn nothing and leave the ledger untouched.
func awardXP(ctx context.Context, t *sql.Tx, a *models.Attempt, now time.Time) error {
	if a.TotalScore <= 0 {
		return nil
	}
	_, err := t.ExecContext(ctx, `
INSERT INTO xp_logs (user_id, amount, source, lesson_id, created_at)
VALUES (?, ?, ?, ?, ?)
`, a.UserID, a.TotalScore, models.XPSourceLessonCompletion, a.LessonID, now)
	if err != nil {
		return err
	}
	_, err = t.ExecContext(ctx, `UPDATE users SET xp = xp + ? WHERE id = ?`, a.TotalScore, a.UserID)
	return err
}

// updateStreak maintains the per-day streak log and the user's streak
// counter. The first completion of a UTC day decides continue/reset; later
// completions only refresh the day's XP sum. The unique (user_id, day) index
// is the backstop that turns a lost insert race into one retry, then a
// conflict.
func updateStreak(ctx context.Context, t *sql.Tx, userID int64, now time.Time) error {
	today := now.Format(dayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(dayFormat)

	earned, err := sumXPForDay(ctx, t, userID, today)
	if err != nil {
		return err
	}

	var todayID int64
	err = t.QueryRowContext(ctx, `
SELECT id FROM streak_logs WHERE user_id = ? AND day = ?
`, userID, today).Scan(&todayID)
	if err == nil {
		// Not the first completion today: refresh the day's XP, leave the
		// streak counter alone.
		_, err = t.ExecContext(ctx, `UPDATE streak_logs SET xp_earned = ? WHERE id = ?`, earned, todayID)
		return err
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var prevID int64
	completedYesterday := true
	err = t.QueryRowContext(ctx, `
SELECT id FROM streak_logs WHERE user_id = ? AND day = ?
`, userID, yesterday).Scan(&prevID)
	if errors.Is(err, sql.ErrNoRows) {
		completedYesterday = false
	} else if err != nil {
		return err
	}

	var current int
	if err := t.QueryRowContext(ctx, `SELECT streak_days FROM users WHERE id = ?`, userID).Scan(&current); err != nil {
		return err
	}

	next := scoring.NextStreak(current, completedYesterday)
	if _, err := t.ExecContext(ctx, `UPDATE users SET streak_days = ? WHERE id = ?`, next, userID); err != nil {
		return err
	}

	_, err = t.ExecContext(ctx, `
INSERT INTO streak_logs (user_id, day, xp_earned, created_at)
VALUES (?, ?, ?, ?)
`, userID, today, earned, now)
	if isUniqueViolation(err) {
		// Lost the race for today's row: retry exactly once as an update.
		if _, uerr := t.ExecContext(ctx, `
UPDATE streak_logs SET xp_earned = ? WHERE user_id = ? AND day = ?
`, earned, userID, today); uerr != nil {
			return ErrStreakConflict
		}
		return nil
	}
	return err
}

func sumXPForDay(ctx context.Context, t *sql.Tx, userID int64, day string) (int, error) {
	var sum int
	err := t.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount), 0) FROM xp_logs WHERE user_id = ? AND date(created_at) = ?
`, userID, day).Scan(&sum)
	return sum, err
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint
}
