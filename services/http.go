package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	_ "github.com/brightpath-edu/academy_api/docs"
	"github.com/brightpath-edu/academy_api/services/handlers"
	"github.com/brightpath-edu/academy_api/shared"
)

// HttpService exposes the assessment and content APIs. Service errors
// travel as AppError values and are shaped into the response envelope
// in one place, the fiber error handler.
type HttpService struct {
	context.DefaultService

	authSvc       handlers.AuthServiceInterface
	contentSvc    *ContentService
	assessmentSvc *AssessmentService
	monitoringSvc *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.assessmentSvc = svc.Service(ASSESSMENT_SVC).(*AssessmentService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		JSONEncoder:  shared.JSONEncoder,
		JSONDecoder:  shared.JSONDecoder,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	assessmentHandler := handlers.NewAssessmentHandler(svc.assessmentSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	content := v1.Group("/content", svc.authSvc.RequiredAuth())
	content.Get("/courses", contentHandler.GetCourses)
	content.Get("/courses/:courseId/lessons", contentHandler.GetCourseLessons)
	content.Get("/lessons/:lessonId", contentHandler.GetLesson)

	assessment := v1.Group("/assessment", svc.authSvc.RequiredAuth())
	assessment.Post("/submit", assessmentHandler.SubmitQuiz)
	assessment.Get("/courses/:courseId/progress", assessmentHandler.GetCourseProgress)
	assessment.Get("/courses/:courseId/summary", assessmentHandler.GetCourseSummary)
	assessment.Get("/courses/:courseId/unlock", assessmentHandler.GetUnlockState)

	admin := v1.Group("/admin", svc.authSvc.RequiredAuth())
	admin.Post("/courses", contentHandler.CreateCourse)
	admin.Post("/lessons", contentHandler.CreateLesson)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, fiber.StatusNotFound, "Page not found", nil)
	})

	svc.server = app

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, fiber.Map{
			"kind":      appErr.Kind,
			"retryable": appErr.Retryable(),
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled request error")
	return shared.ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
}
