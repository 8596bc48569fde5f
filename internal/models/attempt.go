package models

import "time"

type Attempt struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	LessonID       int64     `json:"lesson_id"`
	AttemptNumber  int       `json:"attempt_number"` // 1-based sequence per (user, lesson)
	MaxScore       int       `json:"max_score"`      // sum of lesson exercise points, snapshotted at start
	TotalScore     int       `json:"total_score"`
	CorrectCount   int       `json:"correct_count"`
	IncorrectCount int       `json:"incorrect_count"`
	SkipCount      int       `json:"skip_count"`
	AccuracyPct    float64   `json:"accuracy_pct"`
	IsCompleted    bool      `json:"is_completed"`
	DurationSec    *int      `json:"duration_sec"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Open reports whether the attempt still accepts submissions. The transition
// to completed is one-way and enforced by a conditional update in storage.
func (a *Attempt) Open() bool {
	return !a.IsCompleted
}

type AttemptDetail struct {
	ID                int64               `json:"id"`
	AttemptID         int64               `json:"attempt_id"`
	ExerciseID        int64               `json:"exercise_id"`
	IsCorrect         bool                `json:"is_correct"`
	SelectedOptionID  *int64              `json:"selected_option_id"`
	SelectedOption2ID *int64              `json:"selected_option2_id"` // retry memory: the previous guess
	TimeSec           *int                `json:"time_sec"`
	Points            int                 `json:"points"`
	MaxPoints         int                 `json:"max_points"`
	Attempts          int                 `json:"attempts"` // submission counter for this exercise
	Pronunciation     *PronunciationScore `json:"pronunciation,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// PronunciationScore is an opaque sub-score produced by the external speech
// assessment service, owned 1:1 by an attempt detail.
type PronunciationScore struct {
	ID              int64     `json:"id"`
	AttemptDetailID int64     `json:"attempt_detail_id"`
	Accuracy        float64   `json:"accuracy"`
	Fluency         float64   `json:"fluency"`
	Completeness    float64   `json:"completeness"`
	Overall         float64   `json:"overall"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AttemptWithDetails struct {
	Attempt
	Details []AttemptDetail `json:"details"`
}

// AttemptFilter narrows attempt listings. Zero values mean "no filter".
type AttemptFilter struct {
	UserID   int64
	LessonID int64
	Page     int
	Limit    int
}

type AttemptPage struct {
	Data       []Attempt `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
