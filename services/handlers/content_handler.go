package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brightpath-edu/academy_api/dto"
	"github.com/brightpath-edu/academy_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// @Summary Get Courses
// @Description Get the list of active courses
// @Tags content
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.CourseResponse}
// @Router /api/v1/content/courses [get]
func (h *ContentHandler) GetCourses(c *fiber.Ctx) error {
	courses, err := h.contentSvc.GetCourses()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", courses)
}

// @Summary Get Course Lessons
// @Description Get the ordered lessons of a course with per-lesson lock flags
// @Tags content
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseLessonsResponse}
// @Router /api/v1/content/courses/{courseId}/lessons [get]
func (h *ContentHandler) GetCourseLessons(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	lessons, err := h.contentSvc.GetCourseLessons(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lessons)
}

// @Summary Get Lesson
// @Description Get lesson content and its quiz questions. Locked lessons are refused.
// @Tags content
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/content/lessons/{lessonId} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	lessonID := c.Params("lessonId")

	lesson, err := h.contentSvc.GetLessonContent(userID, lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lesson)
}

// ==================== ADMIN ENDPOINTS ====================

// @Summary Create Course
// @Description Create a new course
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param courseRequest body dto.CreateCourseRequest true "Course request"
// @Success 201 {object} shared.Response{data=dto.CourseResponse}
// @Router /api/v1/admin/courses [post]
func (h *ContentHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	course, err := h.contentSvc.CreateCourse(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Course created", course)
}

// @Summary Create Lesson
// @Description Create a lesson with an optional embedded quiz
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param lessonRequest body dto.CreateLessonRequest true "Lesson request"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/admin/lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lesson, err := h.contentSvc.CreateLessonFromRequest(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Lesson created", lesson)
}
