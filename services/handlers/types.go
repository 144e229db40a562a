package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brightpath-edu/academy_api/dto"
)

type AuthServiceInterface interface {
	RequiredAuth() fiber.Handler
}

type ContentServiceInterface interface {
	GetCourses() ([]dto.CourseResponse, error)
	GetCourseLessons(userID, courseID string) (*dto.CourseLessonsResponse, error)
	GetLessonContent(userID, lessonID string) (*dto.LessonResponse, error)
	CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	CreateLessonFromRequest(req dto.CreateLessonRequest) (*dto.LessonResponse, error)
}

type AssessmentServiceInterface interface {
	SubmitQuiz(userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetCourseProgress(userID, courseID string) (*dto.CourseProgressResponse, error)
	GetCourseSummary(userID, courseID string) (*dto.CourseSummaryResponse, error)
	GetUnlockState(userID, courseID string) (*dto.UnlockStateResponse, error)
}
