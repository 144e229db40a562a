package repositories

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath-edu/academy_api/model"
)

// ContentRepository reads the course/lesson catalogue. The assessment
// engine treats this data as read-only; the create/update methods back
// the admin authoring surface.
type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ContentRepository) GetCourse(id string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (ds *ContentRepository) GetCourses() ([]model.Course, error) {
	var courses []model.Course
	if err := ds.db.Where("is_active = ?", true).Order("created_at ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (ds *ContentRepository) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Preload("Course").Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *ContentRepository) GetCourseLessons(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("\"order\" ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (ds *ContentRepository) CreateCourse(course *model.Course) (*model.Course, error) {
	if course.ID == "" {
		id, _ := uuid.NewV7()
		course.ID = id.String()
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()

	if err := ds.db.Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (ds *ContentRepository) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (ds *ContentRepository) UpdateLesson(lesson *model.Lesson) error {
	lesson.UpdatedAt = time.Now()
	if err := ds.db.Save(lesson).Error; err != nil {
		return err
	}
	return nil
}

// DecodeQuestions unpacks the lesson's embedded question set. A lesson
// without a quiz yields an empty slice.
func DecodeQuestions(lesson *model.Lesson) ([]model.Question, error) {
	if len(lesson.Questions) == 0 {
		return nil, nil
	}
	var questions []model.Question
	if err := json.Unmarshal(lesson.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
