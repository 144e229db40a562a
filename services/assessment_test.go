package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brightpath-edu/academy_api/dto"
	"github.com/brightpath-edu/academy_api/model"
	"github.com/brightpath-edu/academy_api/shared"
)

func newTestAssessmentService(t *testing.T) *AssessmentService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.Lesson{},
		&model.LessonProgress{},
		&model.CourseEnrollment{},
	))

	return &AssessmentService{sqlSvc: &SqlService{db: db}}
}

func seedCourse(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&model.Course{
		ID: "course-1", Title: "Demo Course", IsActive: true,
	}).Error)

	lessons := []model.Lesson{
		makeTestLesson("lesson-a", "Lesson A", 0, 2),
		makeTestLesson("lesson-b", "Lesson B", 1, 3),
	}
	for _, lesson := range lessons {
		require.NoError(t, db.Create(&lesson).Error)
	}
}

func makeTestLesson(id, title string, order, questionCount int) model.Lesson {
	questions := make([]model.Question, questionCount)
	for i := range questions {
		questions[i] = model.Question{
			ID:       fmt.Sprintf("%s-q%d", id, i+1),
			Question: fmt.Sprintf("Question %d", i+1),
			Options:  []string{"A", "B", "C"},
			Answer:   "A",
		}
	}
	raw, _ := json.Marshal(questions)

	return model.Lesson{
		ID:        id,
		CourseID:  "course-1",
		Title:     title,
		Order:     order,
		Questions: raw,
		IsActive:  true,
	}
}

func allCorrect(lessonID string, questionCount int) map[string]string {
	answers := map[string]string{}
	for i := 1; i <= questionCount; i++ {
		answers[fmt.Sprintf("%s-q%d", lessonID, i)] = "A"
	}
	return answers
}

func TestSubmitQuizEndToEnd(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	// full marks on Lesson A
	resp, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-a",
		Answers:  allCorrect("lesson-a", 2),
	})
	require.NoError(t, err)
	assert.True(t, resp.Passed)
	assert.Equal(t, 2, resp.Score)
	assert.Equal(t, 2, resp.Total)

	// one of three on Lesson B fails the 70% mark but still completes it
	resp, err = svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-b",
		Answers:  map[string]string{"lesson-b-q1": "A", "lesson-b-q2": "B"},
	})
	require.NoError(t, err)
	assert.False(t, resp.Passed)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, 3, resp.Total)

	summary, err := svc.GetCourseSummary("user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "3/5", summary.Grade)
	assert.Equal(t, "Lesson A: 2/2 | Lesson B: 1/3", summary.GradeDetails)
	assert.Equal(t, 100, summary.ProgressPercent)
	assert.Equal(t, shared.CourseStatusCompleted, summary.Status)

	unlock, err := svc.GetUnlockState("user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 2, unlock.MaxUnlockedIndex)
	assert.Equal(t, 2, unlock.LessonCount)
}

func TestSubmitQuizResubmissionIsIdempotent(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	req := dto.SubmitQuizRequest{LessonID: "lesson-a", Answers: allCorrect("lesson-a", 2)}

	first, err := svc.SubmitQuiz("user-1", req)
	require.NoError(t, err)
	second, err := svc.SubmitQuiz("user-1", req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var progressRows int64
	require.NoError(t, svc.sqlSvc.Db().Model(&model.LessonProgress{}).
		Where("user_id = ?", "user-1").Count(&progressRows).Error)
	assert.Equal(t, int64(1), progressRows)

	var enrollmentRows int64
	require.NoError(t, svc.sqlSvc.Db().Model(&model.CourseEnrollment{}).
		Where("user_id = ?", "user-1").Count(&enrollmentRows).Error)
	assert.Equal(t, int64(1), enrollmentRows)
}

func TestSubmitQuizRetakeOverwritesScore(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	_, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-a",
		Answers:  map[string]string{"lesson-a-q1": "A"},
	})
	require.NoError(t, err)

	resp, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-a",
		Answers:  allCorrect("lesson-a", 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Score)

	summary, err := svc.GetCourseSummary("user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "2/5", summary.Grade)
}

func TestSubmitQuizForcedZeroIgnoresAnswers(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	resp, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID:   "lesson-a",
		Answers:    allCorrect("lesson-a", 2),
		ForcedZero: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, 2, resp.Total)
	assert.False(t, resp.Passed)

	// the attempt still marks the lesson completed for navigation
	var progress model.LessonProgress
	require.NoError(t, svc.sqlSvc.Db().
		Where("user_id = ? AND lesson_id = ?", "user-1", "lesson-a").
		First(&progress).Error)
	assert.True(t, progress.IsCompleted)
	assert.Equal(t, 0, progress.QuizScore)
}

func TestSubmitQuizUnknownLesson(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	_, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{LessonID: "missing"})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindLessonNotFound, appErr.Kind)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestSubmitQuizQuizlessLessonRejectedWithoutWrites(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	reading := model.Lesson{
		ID: "lesson-reading", CourseID: "course-1", Title: "Reading", Order: 2, IsActive: true,
	}
	require.NoError(t, svc.sqlSvc.Db().Create(&reading).Error)

	_, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{LessonID: "lesson-reading"})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindNoGradableContent, appErr.Kind)
	assert.Equal(t, 422, appErr.StatusCode)

	var rows int64
	require.NoError(t, svc.sqlSvc.Db().Model(&model.LessonProgress{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestGetCourseSummaryBeforeAnySubmission(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	summary, err := svc.GetCourseSummary("user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "0/5", summary.Grade)
	assert.Equal(t, "Lesson A: -/2 | Lesson B: -/3", summary.GradeDetails)
	assert.Equal(t, 0, summary.ProgressPercent)
	assert.Equal(t, shared.CourseStatusInProgress, summary.Status)
}

func TestGetCourseProgressOrdersByLesson(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	_, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-b",
		Answers:  allCorrect("lesson-b", 3),
	})
	require.NoError(t, err)
	_, err = svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-a",
		Answers:  allCorrect("lesson-a", 2),
	})
	require.NoError(t, err)

	progress, err := svc.GetCourseProgress("user-1", "course-1")
	require.NoError(t, err)
	require.Len(t, progress.Records, 2)
	assert.Equal(t, "lesson-a", progress.Records[0].LessonID)
	assert.Equal(t, "lesson-b", progress.Records[1].LessonID)
}

func TestCheckLessonAccessEnforcesGate(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	var lessonB model.Lesson
	require.NoError(t, svc.sqlSvc.Db().Where("id = ?", "lesson-b").First(&lessonB).Error)

	err := svc.CheckLessonAccess("user-1", &lessonB)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindLessonLocked, appErr.Kind)
	assert.Equal(t, 403, appErr.StatusCode)

	// a failed attempt on lesson A still unlocks lesson B
	_, err = svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-a",
		Answers:  map[string]string{"lesson-a-q1": "B"},
	})
	require.NoError(t, err)

	assert.NoError(t, svc.CheckLessonAccess("user-1", &lessonB))
}

func TestUnlockStateIsolatedPerUser(t *testing.T) {
	svc := newTestAssessmentService(t)
	seedCourse(t, svc.sqlSvc.Db())

	_, err := svc.SubmitQuiz("user-1", dto.SubmitQuizRequest{
		LessonID: "lesson-a",
		Answers:  allCorrect("lesson-a", 2),
	})
	require.NoError(t, err)

	unlock, err := svc.GetUnlockState("user-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1, unlock.MaxUnlockedIndex)

	unlock, err = svc.GetUnlockState("user-2", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0, unlock.MaxUnlockedIndex)
}
