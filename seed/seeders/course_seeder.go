// seeders/course_seeder.go
package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/brightpath-edu/academy_api/model"
)

// CourseSeeder handles seeding demo courses
type CourseSeeder struct {
	db *gorm.DB
}

// NewCourseSeeder creates a new course seeder
func NewCourseSeeder(db *gorm.DB) *CourseSeeder {
	return &CourseSeeder{db: db}
}

// SeedCourses seeds the database with demo courses
func (s *CourseSeeder) SeedCourses() error {
	courses := s.getDemoCourses()

	for _, course := range courses {
		var existing model.Course
		if err := s.db.Where("id = ?", course.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&course).Error; err != nil {
					log.Printf("Error creating course %s: %v", course.Title, err)
					return err
				}
				log.Printf("Created course: %s", course.Title)
			} else {
				log.Printf("Error checking course %s: %v", course.Title, err)
				return err
			}
		} else {
			log.Printf("Course %s already exists, skipping", course.Title)
		}
	}

	log.Println("Course seeding completed successfully")
	return nil
}

func (s *CourseSeeder) getDemoCourses() []model.Course {
	now := time.Now()

	return []model.Course{
		{
			ID:          "course_go_basics",
			Title:       "Programming Fundamentals",
			Description: "Variables, control flow and functions, with a short proctored quiz after each lesson.",
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "course_sql_intro",
			Title:       "Introduction to SQL",
			Description: "Queries, joins and aggregation against a sample schema.",
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
