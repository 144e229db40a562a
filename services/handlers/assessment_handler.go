package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brightpath-edu/academy_api/dto"
	"github.com/brightpath-edu/academy_api/shared"
)

type AssessmentHandler struct {
	assessmentSvc AssessmentServiceInterface
}

func NewAssessmentHandler(assessmentSvc AssessmentServiceInterface) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentSvc: assessmentSvc,
	}
}

// @Summary Submit Quiz
// @Description Grade a terminal quiz submission and update course progress atomically
// @Tags assessment
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param submitRequest body dto.SubmitQuizRequest true "Quiz submission"
// @Success 200 {object} shared.Response{data=dto.SubmitQuizResponse}
// @Router /api/v1/assessment/submit [post]
func (h *AssessmentHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewInvalidAnswersError(err, "Answers must map question ids to selected options")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.assessmentSvc.SubmitQuiz(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Submission graded", result)
}

// @Summary Get Course Progress
// @Description Get the learner's per-lesson ledger rows for a course
// @Tags assessment
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseProgressResponse}
// @Router /api/v1/assessment/courses/{courseId}/progress [get]
func (h *AssessmentHandler) GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	progress, err := h.assessmentSvc.GetCourseProgress(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}

// @Summary Get Course Summary
// @Description Get the aggregated course grade, details string and completion status
// @Tags assessment
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseSummaryResponse}
// @Router /api/v1/assessment/courses/{courseId}/summary [get]
func (h *AssessmentHandler) GetCourseSummary(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	summary, err := h.assessmentSvc.GetCourseSummary(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", summary)
}

// @Summary Get Unlock State
// @Description Get how far the learner may navigate within a course
// @Tags assessment
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=dto.UnlockStateResponse}
// @Router /api/v1/assessment/courses/{courseId}/unlock [get]
func (h *AssessmentHandler) GetUnlockState(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	courseID := c.Params("courseId")

	unlock, err := h.assessmentSvc.GetUnlockState(userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", unlock)
}
