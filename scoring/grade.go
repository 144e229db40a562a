// Package scoring holds the pure quiz computations: grading one
// submission, folding ledger rows into a course summary, and deriving
// the unlock gate. Nothing here touches storage or the clock, so
// repeated calls over the same snapshot always produce identical output.
package scoring

import (
	"errors"

	"github.com/brightpath-edu/academy_api/model"
	"github.com/brightpath-edu/academy_api/shared"
)

var ErrNoGradableContent = errors.New("lesson has no questions to grade")

type GradeResult struct {
	Score         int  `json:"score"`
	TotalPossible int  `json:"total_possible"`
	Passed        bool `json:"passed"`
}

// passMark is the minimum score to pass, ceil(threshold% of total).
func passMark(total int) int {
	return (shared.PassThresholdPercent*total + 99) / 100
}

// Grade scores a submitted answer map against a lesson's question set.
// One point per question, exact match only; missing or mismatched
// answers score zero. A lesson must have at least one question to be
// submitted as a quiz.
func Grade(questions []model.Question, answers map[string]string) (GradeResult, error) {
	if len(questions) == 0 {
		return GradeResult{}, ErrNoGradableContent
	}

	score := 0
	for _, q := range questions {
		if answer, ok := answers[q.ID]; ok && answer == q.Answer {
			score++
		}
	}

	return GradeResult{
		Score:         score,
		TotalPossible: len(questions),
		Passed:        score >= passMark(len(questions)),
	}, nil
}

// ForcedZero records a zero-credit result without inspecting any
// submitted answers. Used for proctoring forfeits and expired sessions
// with nothing recorded, so a malformed payload can never score.
func ForcedZero(questions []model.Question) (GradeResult, error) {
	if len(questions) == 0 {
		return GradeResult{}, ErrNoGradableContent
	}

	return GradeResult{
		Score:         0,
		TotalPossible: len(questions),
		Passed:        false,
	}, nil
}
