package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightpath-edu/academy_api/model"
)

// ProgressRepository owns the per-(user, lesson) ledger rows. Writes go
// through Upsert only: the composite key guarantees at most one row per
// pair, and resubmission overwrites instead of duplicating.
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) Upsert(progress *model.LessonProgress) error {
	if progress.ID == "" {
		id, _ := uuid.NewV7()
		progress.ID = id.String()
	}
	now := time.Now()
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = now
	}
	progress.UpdatedAt = now

	return ds.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_completed", "quiz_score", "completed_at", "updated_at",
		}),
	}).Create(progress).Error
}

func (ds *ProgressRepository) GetByUserAndLesson(userID, lessonID string) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	if err := ds.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetByUserAndLessons returns the learner's ledger rows restricted to
// the given lesson set, keyed by lesson id for the aggregation fold.
func (ds *ProgressRepository) GetByUserAndLessons(userID string, lessonIDs []string) (map[string]model.LessonProgress, error) {
	if len(lessonIDs) == 0 {
		return map[string]model.LessonProgress{}, nil
	}

	var rows []model.LessonProgress
	if err := ds.db.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make(map[string]model.LessonProgress, len(rows))
	for _, row := range rows {
		records[row.LessonID] = row
	}
	return records, nil
}
