package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/repository"
	"github.com/bekzat/lingotrack/internal/repository/sqlite"
	"github.com/bekzat/lingotrack/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) seedUser(name string, grade, active int) int64 {
	res, err := s.db.ExecContext(context.Background(), `
		INSERT INTO users (name, grade, is_active) VALUES (?, ?, ?)
	`, name, grade, active)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *ProgressRepositorySuite) seedLesson() int64 {
	res, err := s.db.ExecContext(context.Background(), `
		INSERT INTO lessons (topic_id, title) VALUES (1, 'Greetings')
	`)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *ProgressRepositorySuite) seedCompletedAttempt(userID, lessonID int64, score int, createdAt time.Time) {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO attempts (user_id, lesson_id, attempt_number, max_score, total_score, is_completed, created_at, updated_at)
		VALUES (?, ?, 1, 100, ?, 1, ?, ?)
	`, userID, lessonID, score, createdAt, createdAt)
	s.Require().NoError(err)
}

func (s *ProgressRepositorySuite) TestWeeklyScores_WindowAndRanking() {
	ctx := context.Background()
	lessonID := s.seedLesson()

	alice := s.seedUser("alice", 4, 1)
	bota := s.seedUser("bota", 4, 1)
	chingiz := s.seedUser("chingiz", 4, 1)

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // a Monday
	end := start.AddDate(0, 0, 7)

	s.seedCompletedAttempt(alice, lessonID, 30, start.Add(24*time.Hour))
	s.seedCompletedAttempt(alice, lessonID, 20, start.Add(48*time.Hour))
	s.seedCompletedAttempt(bota, lessonID, 40, start.Add(time.Hour))
	s.seedCompletedAttempt(bota, lessonID, 99, start.Add(-time.Hour))       // before the window
	s.seedCompletedAttempt(chingiz, lessonID, 99, end.Add(time.Minute))     // after the window
	s.seedCompletedAttempt(chingiz, lessonID, 99, start.Add(-48*time.Hour)) // previous week

	entries, err := s.repo.WeeklyScores(ctx, 4, start, end)
	s.Require().NoError(err)
	s.Require().Len(entries, 3, "every active cohort member appears")

	s.Assert().Equal(alice, entries[0].UserID)
	s.Assert().Equal(50, entries[0].TotalScore)
	s.Assert().Equal(bota, entries[1].UserID)
	s.Assert().Equal(40, entries[1].TotalScore)
	s.Assert().Equal(chingiz, entries[2].UserID)
	s.Assert().Equal(0, entries[2].TotalScore, "out-of-window attempts count for nothing")
}

func (s *ProgressRepositorySuite) TestWeeklyScores_ExcludesOtherCohortsAndInactive() {
	ctx := context.Background()
	lessonID := s.seedLesson()

	inGrade := s.seedUser("alice", 4, 1)
	otherGrade := s.seedUser("dastan", 5, 1)
	inactive := s.seedUser("erke", 4, 0)

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	s.seedCompletedAttempt(otherGrade, lessonID, 50, start.Add(time.Hour))
	s.seedCompletedAttempt(inactive, lessonID, 50, start.Add(time.Hour))

	entries, err := s.repo.WeeklyScores(ctx, 4, start, end)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Assert().Equal(inGrade, entries[0].UserID)
}

func (s *ProgressRepositorySuite) TestWeeklyScores_OpenAttemptsExcluded() {
	ctx := context.Background()
	lessonID := s.seedLesson()
	alice := s.seedUser("alice", 4, 1)

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (user_id, lesson_id, attempt_number, max_score, total_score, is_completed, created_at, updated_at)
		VALUES (?, ?, 1, 100, 60, 0, ?, ?)
	`, alice, lessonID, start.Add(time.Hour), start.Add(time.Hour))
	s.Require().NoError(err)

	entries, err := s.repo.WeeklyScores(ctx, 4, start, end)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Assert().Equal(0, entries[0].TotalScore)
}

func (s *ProgressRepositorySuite) TestWeeklyScores_TiesOrderByUserID() {
	ctx := context.Background()
	lessonID := s.seedLesson()

	first := s.seedUser("alice", 4, 1)
	second := s.seedUser("bota", 4, 1)

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	s.seedCompletedAttempt(second, lessonID, 30, start.Add(time.Hour))
	s.seedCompletedAttempt(first, lessonID, 30, start.Add(2*time.Hour))

	entries, err := s.repo.WeeklyScores(ctx, 4, start, end)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Assert().Equal(first, entries[0].UserID, "equal scores order by ascending user id")
	s.Assert().Equal(second, entries[1].UserID)
}

func (s *ProgressRepositorySuite) TestDailyXP() {
	ctx := context.Background()
	alice := s.seedUser("alice", 4, 1)

	now := time.Now().UTC()
	for _, row := range []struct {
		amount  int
		daysAgo int
	}{
		{10, 0},
		{5, 0},
		{20, 1},
		{99, 10}, // outside the window
	} {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO xp_logs (user_id, amount, source, created_at) VALUES (?, ?, 'lesson_completion', ?)
		`, alice, row.amount, now.AddDate(0, 0, -row.daysAgo))
		s.Require().NoError(err)
	}

	since := now.AddDate(0, 0, -6).Format("2006-01-02")
	series, err := s.repo.DailyXP(ctx, alice, since)
	s.Require().NoError(err)
	s.Require().Len(series, 2)

	s.Assert().Equal(now.AddDate(0, 0, -1).Format("2006-01-02"), series[0].Date)
	s.Assert().Equal(20, series[0].XPEarned)
	s.Assert().Equal(now.Format("2006-01-02"), series[1].Date)
	s.Assert().Equal(15, series[1].XPEarned, "same-day rows are summed")
}

func (s *ProgressRepositorySuite) TestDailyStreakXP() {
	ctx := context.Background()
	alice := s.seedUser("alice", 4, 1)

	now := time.Now().UTC()
	for _, row := range []struct {
		daysAgo int
		earned  int
	}{
		{0, 15},
		{1, 20},
		{9, 99},
	} {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO streak_logs (user_id, day, xp_earned) VALUES (?, ?, ?)
		`, alice, now.AddDate(0, 0, -row.daysAgo).Format("2006-01-02"), row.earned)
		s.Require().NoError(err)
	}

	since := now.AddDate(0, 0, -6).Format("2006-01-02")
	series, err := s.repo.DailyStreakXP(ctx, alice, since)
	s.Require().NoError(err)
	s.Require().Len(series, 2)
	s.Assert().Equal(20, series[0].XPEarned)
	s.Assert().Equal(15, series[1].XPEarned)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
