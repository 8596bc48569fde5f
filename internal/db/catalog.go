package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/models"
)

func (db *DB) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching lesson: id=%d", id)

	var l models.Lesson
	err := db.QueryRowContext(ctx, `
SELECT id, topic_id, title, position, created_at
FROM lessons
WHERE id = ?
`, id).Scan(&l.ID, &l.TopicID, &l.Title, &l.Position, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return &l, nil
}

func (db *DB) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing lessons")

	rows, err := db.QueryContext(ctx, `
SELECT id, topic_id, title, position, created_at
FROM lessons
ORDER BY position ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.TopicID, &l.Title, &l.Position, &l.CreatedAt); err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		lessons = append(lessons, l)
	}

	log.Debug("found %d lessons", len(lessons))
	return lessons, rows.Err()
}

// LessonExercises returns the lesson's exercises in authored order.
func (db *DB) LessonExercises(ctx context.Context, lessonID int64) ([]models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching exercises: lesson_id=%d", lessonID)

	rows, err := db.QueryContext(ctx, `
SELECT id, lesson_id, type, points, position, created_at
FROM exercises
WHERE lesson_id = ?
ORDER BY position ASC, id ASC
`, lessonID)
	if err != nil {
		log.Error("failed to query exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.LessonID, &e.Type, &e.Points, &e.Position, &e.CreatedAt); err != nil {
			log.Error("failed to scan exercise row: %v", err)
			return nil, err
		}
		exercises = append(exercises, e)
	}

	log.Debug("found %d exercises", len(exercises))
	return exercises, rows.Err()
}

// GetLessonExercise looks an exercise up by id scoped to one lesson, so a
// match also proves lesson membership.
func (db *DB) GetLessonExercise(ctx context.Context, lessonID, exerciseID int64) (*models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching exercise: lesson_id=%d, exercise_id=%d", lessonID, exerciseID)

	var e models.Exercise
	err := db.QueryRowContext(ctx, `
SELECT id, lesson_id, type, points, position, created_at
FROM exercises
WHERE id = ? AND lesson_id = ?
`, exerciseID, lessonID).Scan(&e.ID, &e.LessonID, &e.Type, &e.Points, &e.Position, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("exercise not in lesson: lesson_id=%d, exercise_id=%d", lessonID, exerciseID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get exercise: %v", err)
		return nil, err
	}
	return &e, nil
}
