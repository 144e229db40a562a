// model/assessment.go
package model

import (
	"encoding/json"
	"time"
)

// Course groups ordered lessons. Owned by content authoring; the
// assessment engine only reads it.
type Course struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Lesson is one ordered unit of course content, optionally carrying a quiz.
type Lesson struct {
	ID               string          `json:"id" gorm:"primaryKey"`
	CourseID         string          `json:"course_id" gorm:"not null;index"`
	Title            string          `json:"title" gorm:"not null"`
	Order            int             `json:"order" gorm:"not null"` // Lesson order within course
	Content          string          `json:"content" gorm:"type:text"`
	TimeLimitMinutes int             `json:"time_limit_minutes"` // 0 = engine default
	Questions        json.RawMessage `json:"questions" gorm:"type:text"` // JSON array of questions
	IsActive         bool            `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationship
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

// Question is a quiz question embedded in a lesson. Each question is
// worth one point; Answer must exactly match one of Options.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// LessonProgress is the durable per-(user, lesson) ledger row. At most
// one row exists per pair; submissions upsert on the composite key.
type LessonProgress struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson"`
	LessonID    string    `json:"lesson_id" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson"`
	IsCompleted bool      `json:"is_completed" gorm:"not null"`
	QuizScore   int       `json:"quiz_score" gorm:"not null"` // points from the most recent graded attempt
	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseEnrollment is the per-(user, course) aggregate grade row,
// recomputed in full from LessonProgress on every submission.
type CourseEnrollment struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	UserID          string    `json:"user_id" gorm:"not null;uniqueIndex:idx_course_enrollment_user_course"`
	CourseID        string    `json:"course_id" gorm:"not null;uniqueIndex:idx_course_enrollment_user_course"`
	Grade           string    `json:"grade"` // "earned/total" across the whole course
	GradeDetails    string    `json:"grade_details" gorm:"type:text"` // "Title: e/q" segments, " | " joined
	ProgressPercent int       `json:"progress_percent" gorm:"not null"`
	Status          string    `json:"status" gorm:"not null"` // in_progress, completed
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
