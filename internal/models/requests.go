package models

// Request bodies for the attempt lifecycle endpoints.

type StartAttemptRequest struct {
	UserID   int64 `json:"user_id"`
	LessonID int64 `json:"lesson_id"`
}

type SubmitAnswerRequest struct {
	ExerciseID        int64               `json:"exercise_id"`
	IsCorrect         bool                `json:"is_correct"`
	SelectedOptionID  *int64              `json:"selected_option_id"`
	SelectedOption2ID *int64              `json:"selected_option2_id"`
	TimeSec           *int                `json:"time_sec"`
	Points            *int                `json:"points"` // overrides the exercise's point value when correct
	Pronunciation     *PronunciationInput `json:"pronunciation"`
}

// PronunciationInput carries the external speech assessment result attached to
// a submission. Values are consumed opaquely.
type PronunciationInput struct {
	Accuracy     float64 `json:"accuracy"`
	Fluency      float64 `json:"fluency"`
	Completeness float64 `json:"completeness"`
	Overall      float64 `json:"overall"`
}

type CompleteAttemptRequest struct {
	DurationSec *int `json:"duration_sec"`
}
