package sqlite

import (
	"database/sql"

	"github.com/bekzat/lingotrack/internal/models"
)

func scanAttemptListRow(rows *sql.Rows) (*models.Attempt, error) {
	var a models.Attempt
	var durationSec sql.NullInt64
	err := rows.Scan(&a.ID, &a.UserID, &a.LessonID, &a.AttemptNumber, &a.MaxScore, &a.TotalScore,
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
