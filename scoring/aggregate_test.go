package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightpath-edu/academy_api/model"
	"github.com/brightpath-edu/academy_api/shared"
)

func twoLessonCourse() []LessonStat {
	return []LessonStat{
		{LessonID: "l1", Title: "Lesson A", QuestionCount: 2},
		{LessonID: "l2", Title: "Lesson B", QuestionCount: 3},
	}
}

func TestAggregateFullyAttemptedCourse(t *testing.T) {
	records := map[string]model.LessonProgress{
		"l1": {LessonID: "l1", IsCompleted: true, QuizScore: 2},
		"l2": {LessonID: "l2", IsCompleted: true, QuizScore: 1},
	}

	summary := Aggregate(twoLessonCourse(), records)

	assert.Equal(t, "3/5", summary.Grade)
	assert.Equal(t, "Lesson A: 2/2 | Lesson B: 1/3", summary.GradeDetails)
	assert.Equal(t, 100, summary.ProgressPercent)
	assert.Equal(t, shared.CourseStatusCompleted, summary.Status)
	assert.Equal(t, 2, summary.LessonsCompleted)
}

func TestAggregateUnattemptedLessonShowsDash(t *testing.T) {
	records := map[string]model.LessonProgress{
		"l1": {LessonID: "l1", IsCompleted: true, QuizScore: 2},
	}

	summary := Aggregate(twoLessonCourse(), records)

	assert.Equal(t, "2/5", summary.Grade)
	assert.Equal(t, "Lesson A: 2/2 | Lesson B: -/3", summary.GradeDetails)
	assert.Equal(t, 50, summary.ProgressPercent)
	assert.Equal(t, shared.CourseStatusInProgress, summary.Status)
}

func TestAggregateNoRecords(t *testing.T) {
	summary := Aggregate(twoLessonCourse(), map[string]model.LessonProgress{})

	assert.Equal(t, "0/5", summary.Grade)
	assert.Equal(t, "Lesson A: -/2 | Lesson B: -/3", summary.GradeDetails)
	assert.Equal(t, 0, summary.ProgressPercent)
	assert.Equal(t, shared.CourseStatusInProgress, summary.Status)
}

func TestAggregateQuizlessLessonExcludedFromDetails(t *testing.T) {
	lessons := []LessonStat{
		{LessonID: "l1", Title: "Reading", QuestionCount: 0},
		{LessonID: "l2", Title: "Quiz", QuestionCount: 2},
	}
	records := map[string]model.LessonProgress{
		"l2": {LessonID: "l2", IsCompleted: true, QuizScore: 2},
	}

	summary := Aggregate(lessons, records)

	assert.Equal(t, "2/2", summary.Grade)
	assert.Equal(t, "Quiz: 2/2", summary.GradeDetails)
	// the quizless lesson still counts toward completion
	assert.Equal(t, 50, summary.ProgressPercent)
}

func TestAggregateProgressPercentRounds(t *testing.T) {
	lessons := []LessonStat{
		{LessonID: "l1", Title: "One", QuestionCount: 1},
		{LessonID: "l2", Title: "Two", QuestionCount: 1},
		{LessonID: "l3", Title: "Three", QuestionCount: 1},
	}

	summary := Aggregate(lessons, map[string]model.LessonProgress{
		"l1": {LessonID: "l1", IsCompleted: true, QuizScore: 1},
	})
	assert.Equal(t, 33, summary.ProgressPercent)

	summary = Aggregate(lessons, map[string]model.LessonProgress{
		"l1": {LessonID: "l1", IsCompleted: true, QuizScore: 1},
		"l2": {LessonID: "l2", IsCompleted: true, QuizScore: 1},
	})
	assert.Equal(t, 67, summary.ProgressPercent)
}

func TestAggregateEmptyCourse(t *testing.T) {
	summary := Aggregate(nil, map[string]model.LessonProgress{})

	assert.Equal(t, "0/0", summary.Grade)
	assert.Equal(t, "", summary.GradeDetails)
	assert.Equal(t, 0, summary.ProgressPercent)
	assert.Equal(t, shared.CourseStatusInProgress, summary.Status)
}

func TestAggregateDeterministic(t *testing.T) {
	records := map[string]model.LessonProgress{
		"l1": {LessonID: "l1", IsCompleted: true, QuizScore: 1},
	}

	first := Aggregate(twoLessonCourse(), records)
	second := Aggregate(twoLessonCourse(), records)

	assert.Equal(t, first, second)
}
