package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightpath-edu/academy_api/model"
)

// EnrollmentRepository owns the per-(user, course) summary rows. Every
// submission fully overwrites the summary with freshly aggregated
// values; nothing is patched incrementally.
type EnrollmentRepository struct {
	BaseRepository
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *EnrollmentRepository) Upsert(enrollment *model.CourseEnrollment) error {
	if enrollment.ID == "" {
		id, _ := uuid.NewV7()
		enrollment.ID = id.String()
	}
	now := time.Now()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now

	return ds.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"grade", "grade_details", "progress_percent", "status", "updated_at",
		}),
	}).Create(enrollment).Error
}

func (ds *EnrollmentRepository) GetByUserAndCourse(userID, courseID string) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	if err := ds.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}
