package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/brightpath-edu/academy_api/model"
	"github.com/brightpath-edu/academy_api/shared"
)

// LessonStat is the slice of a lesson the fold needs: identity, title
// for the details string, and how many points the lesson can yield.
type LessonStat struct {
	LessonID      string
	Title         string
	QuestionCount int
}

type Summary struct {
	Grade            string
	GradeDetails     string
	ProgressPercent  int
	Status           string
	LessonsCompleted int
	TotalEarned      int
	TotalPossible    int
}

// Aggregate folds a learner's ledger rows over a course's ordered
// lesson list into the enrollment summary. It is recomputed from
// scratch on every submission rather than patched incrementally, so the
// summary can never drift from ledger truth.
//
// GradeDetails is a display string but its shape is load-bearing:
// "Title: earned/possible" segments joined by " | ", with "-" marking
// lessons not yet attempted. Admin tooling parses it back by splitting
// on the delimiter and the ": " separator. Lessons without questions
// contribute nothing and are excluded from the details.
func Aggregate(lessons []LessonStat, records map[string]model.LessonProgress) Summary {
	totalEarned := 0
	totalPossible := 0
	lessonsCompleted := 0
	var segments []string

	for _, lesson := range lessons {
		record, attempted := records[lesson.LessonID]

		if attempted {
			totalEarned += record.QuizScore
			if record.IsCompleted {
				lessonsCompleted++
			}
		}

		if lesson.QuestionCount == 0 {
			continue
		}
		totalPossible += lesson.QuestionCount

		earned := shared.GradeNotAttempted
		if attempted {
			earned = fmt.Sprintf("%d", record.QuizScore)
		}
		segments = append(segments, fmt.Sprintf("%s%s%s/%d",
			lesson.Title, shared.GradeDetailsSeparator, earned, lesson.QuestionCount))
	}

	progressPercent := 0
	if len(lessons) > 0 {
		progressPercent = int(math.Round(100 * float64(lessonsCompleted) / float64(len(lessons))))
	}

	status := shared.CourseStatusInProgress
	if progressPercent == 100 {
		status = shared.CourseStatusCompleted
	}

	return Summary{
		Grade:            fmt.Sprintf("%d/%d", totalEarned, totalPossible),
		GradeDetails:     strings.Join(segments, shared.GradeDetailsDelimiter),
		ProgressPercent:  progressPercent,
		Status:           status,
		LessonsCompleted: lessonsCompleted,
		TotalEarned:      totalEarned,
		TotalPossible:    totalPossible,
	}
}
