package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-edu/academy_api/model"
)

func makeQuestions(n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("Question %d", i+1),
			Options:  []string{"A", "B", "C"},
			Answer:   "A",
		}
	}
	return questions
}

func TestGradePassMarkRoundsUp(t *testing.T) {
	questions := makeQuestions(4)

	// 3 of 4 clears ceil(0.7 * 4) = 3
	result, err := Grade(questions, map[string]string{"q1": "A", "q2": "A", "q3": "A", "q4": "B"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 4, result.TotalPossible)
	assert.True(t, result.Passed)

	// 2 of 4 does not
	result, err = Grade(questions, map[string]string{"q1": "A", "q2": "A"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)
	assert.False(t, result.Passed)
}

func TestGradeSingleQuestionNeedsFullMarks(t *testing.T) {
	questions := makeQuestions(1)

	result, err := Grade(questions, map[string]string{"q1": "A"})
	require.NoError(t, err)
	assert.True(t, result.Passed)

	result, err = Grade(questions, map[string]string{"q1": "B"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
}

func TestGradeExactMatchOnly(t *testing.T) {
	questions := makeQuestions(1)

	cases := map[string]string{
		"lowercase":         "a",
		"leading space":     " A",
		"trailing space":    "A ",
		"different option":  "B",
		"not in option set": "Z",
	}
	for name, answer := range cases {
		result, err := Grade(questions, map[string]string{"q1": answer})
		require.NoError(t, err, name)
		assert.Equal(t, 0, result.Score, name)
	}
}

func TestGradeIgnoresUnknownQuestionIDs(t *testing.T) {
	questions := makeQuestions(2)

	result, err := Grade(questions, map[string]string{"q1": "A", "q99": "A", "bogus": "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalPossible)
}

func TestGradeMissingAnswersScoreZero(t *testing.T) {
	questions := makeQuestions(3)

	result, err := Grade(questions, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 3, result.TotalPossible)
	assert.False(t, result.Passed)
}

func TestGradeNoQuestions(t *testing.T) {
	_, err := Grade(nil, map[string]string{"q1": "A"})
	assert.ErrorIs(t, err, ErrNoGradableContent)
}

func TestForcedZeroIgnoresAnswers(t *testing.T) {
	questions := makeQuestions(3)

	result, err := ForcedZero(questions)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 3, result.TotalPossible)
	assert.False(t, result.Passed)
}

func TestForcedZeroNoQuestions(t *testing.T) {
	_, err := ForcedZero(nil)
	assert.ErrorIs(t, err, ErrNoGradableContent)
}
