package scoring

import (
	"github.com/brightpath-edu/academy_api/model"
)

// MaxUnlockedIndex derives how far a learner may navigate in a course:
// one past the highest-ordered lesson whose ledger row is completed,
// zero when nothing is completed. A lesson at ordinal i is navigable
// iff i <= MaxUnlockedIndex.
func MaxUnlockedIndex(lessons []LessonStat, records map[string]model.LessonProgress) int {
	maxIndex := 0
	for i, lesson := range lessons {
		if record, ok := records[lesson.LessonID]; ok && record.IsCompleted {
			if i+1 > maxIndex {
				maxIndex = i + 1
			}
		}
	}
	return maxIndex
}

// IsUnlocked reports whether the lesson at the given ordinal is
// navigable for the learner.
func IsUnlocked(ordinal int, lessons []LessonStat, records map[string]model.LessonProgress) bool {
	return ordinal <= MaxUnlockedIndex(lessons, records)
}
