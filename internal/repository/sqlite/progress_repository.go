package sqlite

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/repository"
)

type progressRepository struct {
	db *db.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *db.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

// WeeklyScores sums completed-attempt scores per active cohort member over
// the window, filtering on attempt creation time (an attempt started before
// the window but completed inside it is excluded on purpose). Every active
// member appears, zero scores included. Ties order by ascending user id so
// ranks are deterministic.
func (r *progressRepository) WeeklyScores(ctx context.Context, grade int, start, end time.Time) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching weekly scores: grade=%d, window=[%s, %s)", grade, start.Format("2006-01-02"), end.Format("2006-01-02"))

	query := sqlBuilder.Select(
		"u.id",
		"u.name",
		"COALESCE(SUM(a.total_score), 0) AS score",
	).From("users u").
		LeftJoin("attempts a ON a.user_id = u.id AND a.is_completed = 1 AND a.created_at >= ? AND a.created_at < ?", start, end).
		Where(squirrel.Eq{"u.grade": grade, "u.is_active": 1}).
		GroupBy("u.id", "u.name").
		OrderBy("score DESC", "u.id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query weekly scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.TotalScore); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}

	log.Debug("found %d cohort members", len(entries))
	return entries, rows.Err()
}

func (r *progressRepository) DailyXP(ctx context.Context, userID int64, since string) ([]models.DailyXP, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching daily xp: user_id=%d, since=%s", userID, since)

	query := sqlBuilder.Select(
		"date(created_at) AS day",
		"COALESCE(SUM(amount), 0)",
	).From("xp_logs").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date(created_at)": since}).
		GroupBy("day").
		OrderBy("day ASC")

	return r.queryDaily(ctx, query)
}

func (r *progressRepository) DailyStreakXP(ctx context.Context, userID int64, since string) ([]models.DailyXP, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching daily streak xp: user_id=%d, since=%s", userID, since)

	query := sqlBuilder.Select("day", "xp_earned").
		From("streak_logs").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"day": since}).
		OrderBy("day ASC")

	return r.queryDaily(ctx, query)
}

func (r *progressRepository) queryDaily(ctx context.Context, query squirrel.SelectBuilder) ([]models.DailyXP, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query daily series: %v", err)
		return nil, err
	}
	defer rows.Close()

	var series []models.DailyXP
	for rows.Next() {
		var d models.DailyXP
		if err := rows.Scan(&d.Date, &d.XPEarned); err != nil {
			log.Error("failed to scan daily row: %v", err)
			return nil, err
		}
		series = append(series, d)
	}
	return series, rows.Err()
}
