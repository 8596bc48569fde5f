package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/scoring"
)

// runner lets the attempt queries run on either the pool or an open
// transaction.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const attemptColumns = `id, user_id, lesson_id, attempt_number, max_score, total_score, correct_count,
       incorrect_count, skip_count, accuracy_pct, is_completed, duration_sec, created_at, updated_at`

func scanAttempt(row interface{ Scan(...any) error }) (*models.Attempt, error) {
	var a models.Attempt
	var durationSec sql.NullInt64
	err := row.Scan(&a.ID, &a.UserID, &a.LessonID, &a.AttemptNumber, &a.MaxScore, &a.TotalScore,
		&a.CorrectCount, &a.IncorrectCount, &a.SkipCount, &a.AccuracyPct, &a.IsCompleted,
		&durationSec, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if durationSec.Valid {
		v := int(durationSec.Int64)
		a.DurationSec = &v
	}
	return &a, nil
}

func (db *DB) InsertAttempt(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting attempt: user_id=%d, lesson_id=%d, number=%d", a.UserID, a.LessonID, a.AttemptNumber)

	res, err := db.ExecContext(ctx, `
INSERT INTO attempts (user_id, lesson_id, attempt_number, max_score, total_score, correct_count,
                      incorrect_count, skip_count, accuracy_pct, is_completed, created_at, updated_at)
VALUES (?, ?, ?, ?, 0, 0, 0, 0, 0, 0, ?, ?)
`, a.UserID, a.LessonID, a.AttemptNumber, a.MaxScore, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	log.Debug("attempt inserted: id=%d", id)
	return id, nil
}

func (db *DB) GetAttempt(ctx context.Context, id int64) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching attempt: id=%d", id)

	a, err := getAttempt(ctx, db, id)
	if err != nil {
		log.Error("failed to get attempt: %v", err)
		return nil, err
	}
	if a == nil {
		log.Debug("attempt not found: id=%d", id)
	}
	return a, nil
}

func getAttempt(ctx context.Context, r runner, id int64) (*models.Attempt, error) {
	a, err := scanAttempt(r.QueryRowContext(ctx, `
SELECT `+attemptColumns+`
FROM attempts
WHERE id = ?
`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// CountAttempts counts prior attempts for one (user, lesson) pair; attempt
// numbering is 1 + this count.
func (db *DB) CountAttempts(ctx context.Context, userID, lessonID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("counting attempts: user_id=%d, lesson_id=%d", userID, lessonID)

	var count int
	err := db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM attempts WHERE user_id = ? AND lesson_id = ?
`, userID, lessonID).Scan(&count)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func (db *DB) AttemptDetails(ctx context.Context, attemptID int64) ([]models.AttemptDetail, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching attempt details: attempt_id=%d", attemptID)

	details, err := attemptDetails(ctx, db, attemptID)
	if err != nil {
		log.Error("failed to query attempt details: %v", err)
		return nil, err
	}
	log.Debug("found %d details", len(details))
	return details, nil
}

func attemptDetails(ctx context.Context, r runner, attemptID int64) ([]models.AttemptDetail, error) {
	rows, err := r.QueryContext(ctx, `
SELECT d.id, d.attempt_id, d.exercise_id, d.is_correct, d.selected_option_id, d.selected_option2_id,
       d.time_sec, d.points, d.max_points, d.attempts, d.created_at, d.updated_at,
       p.id, p.accuracy, p.fluency, p.completeness, p.overall, p.created_at, p.updated_at
FROM attempt_details d
LEFT JOIN pronunciation_scores p ON p.attempt_detail_id = d.id
WHERE d.attempt_id = ?
ORDER BY d.id ASC
`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.AttemptDetail
	for rows.Next() {
		d, err := scanDetailRow(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

func scanDetailRow(rows *sql.Rows) (*models.AttemptDetail, error) {
	var d models.AttemptDetail
	var selected, selected2 sql.NullInt64
	var timeSec sql.NullInt64
	var pronID sql.NullInt64
	var accuracy, fluency, completeness, overall sql.NullFloat64
	var pronCreated, pronUpdated sql.NullTime

	err := rows.Scan(&d.ID, &d.AttemptID, &d.ExerciseID, &d.IsCorrect, &selected, &selected2,
		&timeSec, &d.Points, &d.MaxPoints, &d.Attempts, &d.CreatedAt, &d.UpdatedAt,
		&pronID, &accuracy, &fluency, &completeness, &overall, &pronCreated, &pronUpdated)
	if err != nil {
		return nil, err
	}
	if selected.Valid {
		d.SelectedOptionID = &selected.Int64
	}
	if selected2.Valid {
		d.SelectedOption2ID = &selected2.Int64
	}
	if timeSec.Valid {
		v := int(timeSec.Int64)
		d.TimeSec = &v
	}
	if pronID.Valid {
		d.Pronunciation = &models.PronunciationScore{
			ID:              pronID.Int64,
			AttemptDetailID: d.ID,
			Accuracy:        accuracy.Float64,
			Fluency:         fluency.Float64,
			Completeness:    completeness.Float64,
			Overall:         overall.Float64,
			CreatedAt:       pronCreated.Time,
			UpdatedAt:       pronUpdated.Time,
		}
	}
	return &d, nil
}

func getDetail(ctx context.Context, r runner, attemptID, exerciseID int64) (*models.AttemptDetail, error) {
	rows, err := r.QueryContext(ctx, `
SELECT d.id, d.attempt_id, d.exercise_id, d.is_correct, d.selected_option_id, d.selected_option2_id,
       d.time_sec, d.points, d.max_points, d.attempts, d.created_at, d.updated_at,
       p.id, p.accuracy, p.fluency, p.completeness, p.overall, p.created_at, p.updated_at
FROM attempt_details d
LEFT JOIN pronunciation_scores p ON p.attempt_detail_id = d.id
WHERE d.attempt_id = ? AND d.exercise_id = ?
`, attemptID, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanDetailRow(rows)
}

// BestAttempt returns the user's highest scoring completed attempt on a
// lesson, ties broken by accuracy, or nil when none exist.
func (db *DB) BestAttempt(ctx context.Context, userID, lessonID int64) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching best attempt: user_id=%d, lesson_id=%d", userID, lessonID)

	a, err := scanAttempt(db.QueryRowContext(ctx, `
SELECT `+attemptColumns+`
FROM attempts
WHERE user_id = ? AND lesson_id = ? AND is_completed = 1
ORDER BY total_score DESC, accuracy_pct DESC, id ASC
LIMIT 1
`, userID, lessonID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no completed attempts: user_id=%d, lesson_id=%d", userID, lessonID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get best attempt: %v", err)
		return nil, err
	}
	return a, nil
}

func (db *DB) AttemptHistory(ctx context.Context, userID, lessonID int64) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching attempt history: user_id=%d, lesson_id=%d", userID, lessonID)

	rows, err := db.QueryContext(ctx, `
SELECT `+attemptColumns+`
FROM attempts
WHERE user_id = ? AND lesson_id = ?
ORDER BY attempt_number ASC
`, userID, lessonID)
	if err != nil {
		log.Error("failed to query attempt history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, *a)
	}

	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

// SubmitAnswer upserts the detail row for (attempt, exercise), applies the
// retry merge, upserts the pronunciation sub-score, and recomputes the
// attempt aggregate, all in one transaction.
func (db *DB) SubmitAnswer(ctx context.Context, attemptID int64, exercise models.Exercise, req models.SubmitAnswerRequest) (*models.AttemptDetail, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("submitting answer: attempt_id=%d, exercise_id=%d, correct=%v", attemptID, req.ExerciseID, req.IsCorrect)

	var out *models.AttemptDetail
	err := tx(ctx, db, func(t *sql.Tx) error {
		now := time.Now().UTC()

		prev, err := getDetail(ctx, t, attemptID, req.ExerciseID)
		if err != nil {
			return err
		}

		var prevAnswer *scoring.Answer
		if prev != nil {
			prevAnswer = &scoring.Answer{
				Choice:       prev.SelectedOptionID,
				SecondChoice: prev.SelectedOption2ID,
				Correct:      prev.IsCorrect,
				Submissions:  prev.Attempts,
			}
		}
		merged := scoring.Merge(prevAnswer, scoring.Answer{
			Choice:       req.SelectedOptionID,
			SecondChoice: req.SelectedOption2ID,
			Correct:      req.IsCorrect,
		})
		points := scoring.AwardedPoints(req.IsCorrect, req.Points, exercise.Points)

		var detailID int64
		if prev == nil {
			res, err := t.ExecContext(ctx, `
INSERT INTO attempt_details (attempt_id, exercise_id, is_correct, selected_option_id, selected_option2_id,
                             time_sec, points, max_points, attempts, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, attemptID, req.ExerciseID, req.IsCorrect, merged.Choice, merged.SecondChoice,
				req.TimeSec, points, exercise.Points, merged.Submissions, now, now)
			if err != nil {
				return err
			}
			detailID, err = res.LastInsertId()
			if err != nil {
				return err
			}
		} else {
			detailID = prev.ID
			_, err := t.ExecContext(ctx, `
UPDATE attempt_details
SET is_correct = ?, selected_option_id = ?, selected_option2_id = ?, time_sec = ?,
    points = ?, max_points = ?, attempts = ?, updated_at = ?
WHERE id = ?
`, req.IsCorrect, merged.Choice, merged.SecondChoice, req.TimeSec,
				points, exercise.Points, merged.Submissions, now, detailID)
			if err != nil {
				return err
			}
		}

		if req.Pronunciation != nil {
			_, err := t.ExecContext(ctx, `
INSERT INTO pronunciation_scores (attempt_detail_id, accuracy, fluency, completeness, overall, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(attempt_detail_id) DO UPDATE SET
    accuracy = excluded.accuracy,
    fluency = excluded.fluency,
    completeness = excluded.completeness,
    overall = excluded.overall,
    updated_at = excluded.updated_at
`, detailID, req.Pronunciation.Accuracy, req.Pronunciation.Fluency,
				req.Pronunciation.Completeness, req.Pronunciation.Overall, now, now)
			if err != nil {
				return err
			}
		}

		if err := recomputeAttempt(ctx, t, attemptID, now); err != nil {
			return err
		}

		out, err = getDetail(ctx, t, attemptID, req.ExerciseID)
		return err
	})
	if err != nil {
		log.Error("failed to submit answer: %v", err)
		return nil, err
	}
	log.Debug("answer recorded: detail_id=%d, attempts=%d, points=%d", out.ID, out.Attempts, out.Points)
	return out, nil
}

// recomputeAttempt rebuilds the stored aggregate from the current detail
// snapshot. Runs inside the same transaction as every detail write so the
// stored numbers can never drift.
func recomputeAttempt(ctx context.Context, r runner, attemptID int64, now time.Time) error {
	details, err := attemptDetails(ctx, r, attemptID)
	if err != nil {
		return err
	}
	sum := scoring.Aggregate(details)
	_, err = r.ExecContext(ctx, `
UPDATE attempts
SET total_score = ?, correct_count = ?, incorrect_count = ?, skip_count = ?, accuracy_pct = ?, updated_at = ?
WHERE id = ?
`, sum.TotalScore, sum.CorrectCount, sum.IncorrectCount, sum.SkipCount, sum.AccuracyPct, now, attemptID)
	return err
}

// CompleteAttempt finalizes an attempt: defensive recompute, conditional
// one-way completion flip, XP award, streak update. The four effects commit
// or roll back together. A race between two completions yields one winner;
// the loser gets ErrAttemptCompleted.
func (db *DB) CompleteAttempt(ctx context.Context, attemptID int64, durationSec *int) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("completing attempt: id=%d", attemptID)

	var out *models.Attempt
	err := tx(ctx, db, func(t *sql.Tx) error {
		now := time.Now().UTC()

		if err := recomputeAttempt(ctx, t, attemptID, now); err != nil {
			return err
		}

		res, err := t.ExecContext(ctx, `
UPDATE attempts
SET is_completed = 1, duration_sec = ?, updated_at = ?
WHERE id = ? AND is_completed = 0
`, durationSec, now, attemptID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrAttemptCompleted
		}

		a, err := getAttempt(ctx, t, attemptID)
		if err != nil {
			return err
		}
		if a == nil {
			return sql.ErrNoRows
		}

		if err := awardXP(ctx, t, a, now); err != nil {
			return err
		}
		if err := updateStreak(ctx, t, a.UserID, now); err != nil {
			return err
		}

		out = a
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAttemptCompleted) {
			log.Error("failed to complete attempt: %v", err)
		}
		return nil, err
	}
	log.Info("attempt completed: id=%d, score=%d/%d, accuracy=%.1f%%", out.ID, out.TotalScore, out.MaxScore, out.AccuracyPct)
	return out, nil
}
