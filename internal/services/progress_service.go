package services

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/bekzat/lingotrack/internal/errors"
	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
	"github.com/bekzat/lingotrack/internal/repository"
)

// ProgressService serves the read side built on committed attempt, XP and
// streak state: the weekly leaderboard, per-day XP/streak series, and the
// per-user progress summary.
type ProgressService interface {
	WeeklyLeaderboard(ctx context.Context, userID int64) (*models.LeaderboardResult, error)
	XPStats(ctx context.Context, userID int64, days int) (*models.XPStatsResult, error)
	StreakStats(ctx context.Context, userID int64, days int) (*models.XPStatsResult, error)
	UserProgress(ctx context.Context, userID int64) (*models.UserProgress, error)
}

type progressService struct {
	progress repository.ProgressRepository
	users    repository.UserRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(progress repository.ProgressRepository, users repository.UserRepository) ProgressService {
	return &progressService{
		progress: progress,
		users:    users,
	}
}

// weekWindow returns the half-open [Monday 00:00, next Monday 00:00) UTC
// window containing now. Weekday is shifted so Sunday maps 6 days back.
func weekWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	back := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -back)
	return monday, monday.AddDate(0, 0, 7)
}

func (s *progressService) WeeklyLeaderboard(ctx context.Context, userID int64) (*models.LeaderboardResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("building weekly leaderboard: user_id=%d", userID)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be a positive id")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	start, end := weekWindow(time.Now())
	scores, err := s.progress.WeeklyScores(ctx, user.Grade, start, end)
	if err != nil {
		log.Error("failed to load weekly scores: %v", err)
		return nil, errors.NewInternalError(err)
	}

	entries := lo.Map(scores, func(e models.LeaderboardEntry, i int) models.LeaderboardEntry {
		e.Rank = i + 1
		return e
	})

	currentUserRank := 0
	if me, ok := lo.Find(entries, func(e models.LeaderboardEntry) bool { return e.UserID == userID }); ok {
		currentUserRank = me.Rank
	}

	log.Debug("leaderboard built: grade=%d, entries=%d, current_rank=%d", user.Grade, len(entries), currentUserRank)
	return &models.LeaderboardResult{
		Entries:         entries,
		CurrentUserRank: currentUserRank,
		WeekStart:       start,
		WeekEnd:         end,
		Grade:           user.Grade,
	}, nil
}

func (s *progressService) XPStats(ctx context.Context, userID int64, days int) (*models.XPStatsResult, error) {
	return s.dailyStats(ctx, userID, days, s.progress.DailyXP)
}

func (s *progressService) StreakStats(ctx context.Context, userID int64, days int) (*models.XPStatsResult, error) {
	return s.dailyStats(ctx, userID, days, s.progress.DailyStreakXP)
}

func (s *progressService) dailyStats(ctx context.Context, userID int64, days int, fetch func(context.Context, int64, string) ([]models.DailyXP, error)) (*models.XPStatsResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching daily stats: user_id=%d, days=%d", userID, days)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be a positive id")
	}
	if days <= 0 {
		days = 7
	}
	if days > 365 {
		return nil, errors.NewValidationError("days", "must be at most 365")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	since := time.Now().UTC().AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	series, err := fetch(ctx, userID, since)
	if err != nil {
		log.Error("failed to load daily series: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.XPStatsResult{
		Data:    series,
		TotalXP: lo.SumBy(series, func(d models.DailyXP) int { return d.XPEarned }),
		Days:    days,
	}, nil
}

func (s *progressService) UserProgress(ctx context.Context, userID int64) (*models.UserProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("building progress summary: user_id=%d", userID)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be a positive id")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	total, completed, avgAccuracy, err := s.users.AttemptTotals(ctx, userID)
	if err != nil {
		log.Error("failed to load attempt totals: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.UserProgress{
		UserID:            user.ID,
		Name:              user.Name,
		XP:                user.XP,
		StreakDays:        user.StreakDays,
		TotalAttempts:     total,
		CompletedAttempts: completed,
		AverageAccuracy:   avgAccuracy,
	}, nil
}
