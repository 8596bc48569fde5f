package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/repository"
	"github.com/bekzat/lingotrack/internal/repository/sqlite"
	"github.com/bekzat/lingotrack/internal/testutil"
)

type CatalogRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.CatalogRepository
}

func (s *CatalogRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCatalogRepository(s.db)
}

func (s *CatalogRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CatalogRepositorySuite) seedLesson(title string, position int) int64 {
	res, err := s.db.ExecContext(context.Background(), `
		INSERT INTO lessons (topic_id, title, position) VALUES (1, ?, ?)
	`, title, position)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *CatalogRepositorySuite) seedExercise(lessonID int64, points, position int) int64 {
	res, err := s.db.ExecContext(context.Background(), `
		INSERT INTO exercises (lesson_id, type, points, position) VALUES (?, 'multiple_choice', ?, ?)
	`, lessonID, points, position)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *CatalogRepositorySuite) TestGetLesson() {
	ctx := context.Background()
	id := s.seedLesson("Greetings", 1)

	lesson, err := s.repo.GetLesson(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(lesson)
	s.Assert().Equal("Greetings", lesson.Title)

	missing, err := s.repo.GetLesson(ctx, 9999)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *CatalogRepositorySuite) TestListLessons_AuthoredOrder() {
	ctx := context.Background()
	s.seedLesson("Second", 2)
	s.seedLesson("First", 1)

	lessons, err := s.repo.ListLessons(ctx)
	s.Require().NoError(err)
	s.Require().Len(lessons, 2)
	s.Assert().Equal("First", lessons[0].Title)
	s.Assert().Equal("Second", lessons[1].Title)
}

func (s *CatalogRepositorySuite) TestLessonExercises_AuthoredOrder() {
	ctx := context.Background()
	lessonID := s.seedLesson("Greetings", 1)
	second := s.seedExercise(lessonID, 10, 2)
	first := s.seedExercise(lessonID, 5, 1)

	exercises, err := s.repo.LessonExercises(ctx, lessonID)
	s.Require().NoError(err)
	s.Require().Len(exercises, 2)
	s.Assert().Equal(first, exercises[0].ID)
	s.Assert().Equal(second, exercises[1].ID)
}

func (s *CatalogRepositorySuite) TestGetLessonExercise_ScopedToLesson() {
	ctx := context.Background()
	lessonID := s.seedLesson("Greetings", 1)
	otherLessonID := s.seedLesson("Numbers", 2)
	exerciseID := s.seedExercise(lessonID, 10, 1)

	exercise, err := s.repo.GetLessonExercise(ctx, lessonID, exerciseID)
	s.Require().NoError(err)
	s.Require().NotNil(exercise)
	s.Assert().Equal(10, exercise.Points)

	// The same exercise id under a different lesson is not a match.
	exercise, err = s.repo.GetLessonExercise(ctx, otherLessonID, exerciseID)
	s.Require().NoError(err)
	s.Assert().Nil(exercise)
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositorySuite))
}
