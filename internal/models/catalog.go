package models

import "time"

// Lesson and Exercise form the authored content catalog. The progress
// subsystem only ever reads them; authoring happens elsewhere.

type Lesson struct {
	ID        int64     `json:"id"`
	TopicID   int64     `json:"topic_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Exercise struct {
	ID        int64     `json:"id"`
	LessonID  int64     `json:"lesson_id"`
	Type      string    `json:"type"` // e.g. "multiple_choice", "listening", "speaking"
	Points    int       `json:"points"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type LessonWithExercises struct {
	Lesson
	Exercises []Exercise `json:"exercises"`
}
