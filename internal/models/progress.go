package models

import "time"

// XPSourceLessonCompletion tags ledger rows written by the attempt completion path.
const XPSourceLessonCompletion = "lesson_completion"

// XPLog is one append-only ledger row. Rows are never mutated or deleted;
// User.XP is always reconstructible as the sum of that user's rows.
type XPLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Amount    int       `json:"amount"`
	Source    string    `json:"source"`
	LessonID  *int64    `json:"lesson_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StreakLog holds one user's XP for one UTC calendar day. At most one row
// exists per (user, day); the unique index is the race backstop.
type StreakLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Day       string    `json:"day"` // YYYY-MM-DD, UTC
	XPEarned  int       `json:"xp_earned"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	Rank       int    `json:"rank"`
}

type LeaderboardResult struct {
	Entries         []LeaderboardEntry `json:"entries"`
	CurrentUserRank int                `json:"current_user_rank"` // 0 when absent from the cohort
	WeekStart       time.Time          `json:"week_start"`
	WeekEnd         time.Time          `json:"week_end"`
	Grade           int                `json:"grade"`
}

type DailyXP struct {
	Date     string `json:"date"` // YYYY-MM-DD, UTC
	XPEarned int    `json:"xp_earned"`
}

type XPStatsResult struct {
	Data    []DailyXP `json:"data"`
	TotalXP int       `json:"total_xp"`
	Days    int       `json:"days"`
}
