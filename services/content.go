// services/content.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brightpath-edu/academy_api/dto"
	"github.com/brightpath-edu/academy_api/model"
	"github.com/brightpath-edu/academy_api/scoring"
	"github.com/brightpath-edu/academy_api/services/repositories"
	"github.com/brightpath-edu/academy_api/shared"
)

// ContentService serves the course/lesson catalogue to learners and the
// authoring surface to admins. Lock state is derived per learner from
// the progress ledger; stored answers never leave this layer.
type ContentService struct {
	context.DefaultService
	sqlSvc        *SqlService
	assessmentSvc *AssessmentService
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.assessmentSvc = svc.Service(ASSESSMENT_SVC).(*AssessmentService)
	return nil
}

// ==================== COURSE METHODS ====================

func (svc *ContentService) GetCourses() ([]dto.CourseResponse, error) {
	repo := repositories.NewContentRepository(svc.sqlSvc.Db())

	courses, err := repo.GetCourses()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = svc.mapCourseToResponse(&course)

		lessons, err := repo.GetCourseLessons(course.ID)
		if err != nil {
			log.Printf("Failed to get lesson count for course %s: %v", course.ID, err)
			continue
		}
		responses[i].LessonCount = len(lessons)
	}

	return responses, nil
}

// GetCourseLessons returns the ordered lesson list for one course with
// per-lesson lock flags for the requesting learner.
func (svc *ContentService) GetCourseLessons(userID, courseID string) (*dto.CourseLessonsResponse, error) {
	repo := repositories.NewContentRepository(svc.sqlSvc.Db())

	course, err := repo.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewLessonNotFoundError(err)
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	lessons, err := repo.GetCourseLessons(courseID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	unlock, err := svc.assessmentSvc.GetUnlockState(userID, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, len(lessons))
	for i := range lessons {
		responses[i] = svc.mapLessonToResponse(&lessons[i])
		responses[i].IsLocked = i > unlock.MaxUnlockedIndex
	}

	courseResponse := svc.mapCourseToResponse(course)
	courseResponse.LessonCount = len(lessons)

	return &dto.CourseLessonsResponse{
		Course:           courseResponse,
		Lessons:          responses,
		MaxUnlockedIndex: unlock.MaxUnlockedIndex,
	}, nil
}

// ==================== LESSON METHODS ====================

// GetLessonContent serves one lesson's content and sanitized quiz. A
// lesson past the learner's unlock frontier is refused outright rather
// than served partially.
func (svc *ContentService) GetLessonContent(userID, lessonID string) (*dto.LessonResponse, error) {
	repo := repositories.NewContentRepository(svc.sqlSvc.Db())

	lesson, err := repo.GetLesson(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewLessonNotFoundError(err)
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := svc.assessmentSvc.CheckLessonAccess(userID, lesson); err != nil {
		return nil, err
	}

	response := svc.mapLessonToResponse(lesson)
	return &response, nil
}

func (svc *ContentService) mapCourseToResponse(course *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
	}
}

func (svc *ContentService) mapLessonToResponse(lesson *model.Lesson) dto.LessonResponse {
	questions := []dto.QuestionResponse{}
	raw, err := repositories.DecodeQuestions(lesson)
	if err != nil {
		log.Printf("Failed to unmarshal questions for lesson %s: %v", lesson.ID, err)
	} else {
		questions = make([]dto.QuestionResponse, len(raw))
		for i, q := range raw {
			// Answer deliberately omitted
			questions[i] = dto.QuestionResponse{
				ID:       q.ID,
				Question: q.Question,
				Options:  q.Options,
			}
		}
	}

	timeLimit := lesson.TimeLimitMinutes
	if timeLimit <= 0 {
		timeLimit = shared.DefaultTimeLimitMinutes
	}

	return dto.LessonResponse{
		ID:               lesson.ID,
		CourseID:         lesson.CourseID,
		Title:            lesson.Title,
		Order:            lesson.Order,
		Content:          lesson.Content,
		TimeLimitMinutes: timeLimit,
		Questions:        questions,
	}
}

// ==================== ADMIN METHODS ====================

func (svc *ContentService) CreateCourse(req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	repo := repositories.NewContentRepository(svc.sqlSvc.Db())

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}

	created, err := repo.CreateCourse(course)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	response := svc.mapCourseToResponse(created)
	return &response, nil
}

func (svc *ContentService) CreateLessonFromRequest(req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	repo := repositories.NewContentRepository(svc.sqlSvc.Db())

	if _, err := repo.GetCourse(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewBadRequestError(err, "Course not found")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	var questionsJSON json.RawMessage
	if len(req.Questions) > 0 {
		questions := make([]model.Question, len(req.Questions))
		for i, q := range req.Questions {
			if q.ID == "" {
				q.ID = fmt.Sprintf("q_%d", i+1)
			}
			if !optionListContains(q.Options, q.Answer) {
				return nil, shared.NewBadRequestError(
					fmt.Errorf("question %s: answer not among options", q.ID),
					"Each answer must match one of its options")
			}
			questions[i] = model.Question{
				ID:       q.ID,
				Question: q.Question,
				Options:  q.Options,
				Answer:   q.Answer,
			}
		}

		var err error
		questionsJSON, err = json.Marshal(questions)
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to marshal questions")
		}
	}

	timeLimit := req.TimeLimitMinutes
	if timeLimit <= 0 {
		timeLimit = shared.DefaultTimeLimitMinutes
	}

	lesson := &model.Lesson{
		CourseID:         req.CourseID,
		Title:            req.Title,
		Order:            req.Order,
		Content:          req.Content,
		TimeLimitMinutes: timeLimit,
		Questions:        questionsJSON,
		IsActive:         true,
	}

	created, err := repo.CreateLesson(lesson)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	response := svc.mapLessonToResponse(created)
	return &response, nil
}

func optionListContains(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}
