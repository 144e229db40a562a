package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/academy_api/dto"
	"github.com/brightpath-edu/academy_api/shared"
)

func newTestContentService(t *testing.T) (*ContentService, *AssessmentService) {
	t.Helper()

	assessmentSvc := newTestAssessmentService(t)
	contentSvc := &ContentService{
		sqlSvc:        assessmentSvc.sqlSvc,
		assessmentSvc: assessmentSvc,
	}
	return contentSvc, assessmentSvc
}

func TestGetCourseLessonsLockFlags(t *testing.T) {
	contentSvc, assessmentSvc := newTestContentService(t)
	seedCourse(t, contentSvc.sqlSvc.Db())

	resp, err := contentSvc.GetCourseLessons("user-1", "course-1")
	require.NoError(t, err)
	require.Len(t, resp.Lessons, 2)
	assert.Equal(t, 0, resp.MaxUnlockedIndex)
	assert.False(t, resp.Lessons[0].IsLocked)
	assert.True(t, resp.Lessons[1].IsLocked)

	_, err = assessmentSvc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-a",
		Answers:  allCorrect("lesson-a", 2),
	})
	require.NoError(t, err)

	resp, err = contentSvc.GetCourseLessons("user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MaxUnlockedIndex)
	assert.False(t, resp.Lessons[1].IsLocked)
}

func TestGetLessonContentStripsAnswers(t *testing.T) {
	contentSvc, _ := newTestContentService(t)
	seedCourse(t, contentSvc.sqlSvc.Db())

	lesson, err := contentSvc.GetLessonContent("user-1", "lesson-a")
	require.NoError(t, err)
	require.Len(t, lesson.Questions, 2)
	for _, q := range lesson.Questions {
		assert.NotEmpty(t, q.Question)
		assert.NotEmpty(t, q.Options)
	}
}

func TestGetLessonContentRefusesLockedLesson(t *testing.T) {
	contentSvc, _ := newTestContentService(t)
	seedCourse(t, contentSvc.sqlSvc.Db())

	_, err := contentSvc.GetLessonContent("user-1", "lesson-b")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindLessonLocked, appErr.Kind)
}

func TestCreateLessonRejectsAnswerOutsideOptions(t *testing.T) {
	contentSvc, _ := newTestContentService(t)
	seedCourse(t, contentSvc.sqlSvc.Db())

	_, err := contentSvc.CreateLessonFromRequest(dto.CreateLessonRequest{
		CourseID: "course-1",
		Title:    "Broken Quiz",
		Order:    2,
		Questions: []dto.CreateQuestionRequest{
			{Question: "Pick one", Options: []string{"A", "B"}, Answer: "Z"},
		},
	})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindBadRequest, appErr.Kind)
}

func TestCreateLessonDefaultsTimeLimit(t *testing.T) {
	contentSvc, _ := newTestContentService(t)
	seedCourse(t, contentSvc.sqlSvc.Db())

	lesson, err := contentSvc.CreateLessonFromRequest(dto.CreateLessonRequest{
		CourseID: "course-1",
		Title:    "Extra Lesson",
		Order:    2,
		Questions: []dto.CreateQuestionRequest{
			{Question: "Pick one", Options: []string{"A", "B"}, Answer: "A"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, shared.DefaultTimeLimitMinutes, lesson.TimeLimitMinutes)
}
