package dto

// Lesson DTOs. Question responses never carry the stored answer.
type QuestionResponse struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

type LessonResponse struct {
	ID               string `json:"id"`
	CourseID         string `json:"course_id"`
	Title            string `json:"title"`
	Order            int    `json:"order"`
	Content          string `json:"content"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`

	Questions []QuestionResponse `json:"questions"`
	IsLocked  bool               `json:"is_locked"`
}

type CourseResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LessonCount int    `json:"lesson_count"`
}

type CourseLessonsResponse struct {
	Course           CourseResponse   `json:"course"`
	Lessons          []LessonResponse `json:"lessons"`
	MaxUnlockedIndex int              `json:"max_unlocked_index"`
}

// Course/lesson authoring DTOs (admin surface; content stays read-only
// to the assessment engine itself).
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func (r CreateCourseRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CreateQuestionRequest struct {
	ID       string   `json:"id"`
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"required,min=2"`
	Answer   string   `json:"answer" validate:"required"`
}

type CreateLessonRequest struct {
	CourseID         string                  `json:"course_id" validate:"required"`
	Title            string                  `json:"title" validate:"required"`
	Order            int                     `json:"order" validate:"gte=0"`
	Content          string                  `json:"content"`
	TimeLimitMinutes int                     `json:"time_limit_minutes" validate:"gte=0"`
	Questions        []CreateQuestionRequest `json:"questions" validate:"dive"`
}

func (r CreateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}
