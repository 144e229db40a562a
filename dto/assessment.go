package dto

// SubmitQuizRequest is one terminal quiz submission. Answers maps
// question id to the chosen option; it may be empty on forced-zero
// paths (timeout with nothing recorded, proctoring forfeit).
type SubmitQuizRequest struct {
	LessonID   string            `json:"lesson_id" validate:"required"`
	Answers    map[string]string `json:"answers"`
	ForcedZero bool              `json:"forced_zero"`
}

func (r SubmitQuizRequest) Validate() error {
	return GetValidator().Struct(r)
}

// SubmitQuizResponse reports the current attempt, not the course summary.
type SubmitQuizResponse struct {
	Passed bool `json:"passed"`
	Score  int  `json:"score"`
	Total  int  `json:"total"`
}

type LessonProgressResponse struct {
	LessonID    string `json:"lesson_id"`
	IsCompleted bool   `json:"is_completed"`
	QuizScore   int    `json:"quiz_score"`
	CompletedAt int64  `json:"completed_at"`
}

type CourseProgressResponse struct {
	CourseID string                   `json:"course_id"`
	Records  []LessonProgressResponse `json:"records"`
}

type CourseSummaryResponse struct {
	CourseID        string `json:"course_id"`
	Grade           string `json:"grade"`
	GradeDetails    string `json:"grade_details"`
	ProgressPercent int    `json:"progress_percent"`
	Status          string `json:"status"`
}

// UnlockStateResponse is the derived navigation gate for one course.
// A lesson ordinal is navigable iff it is <= MaxUnlockedIndex.
type UnlockStateResponse struct {
	CourseID         string `json:"course_id"`
	MaxUnlockedIndex int    `json:"max_unlocked_index"`
	LessonCount      int    `json:"lesson_count"`
}
