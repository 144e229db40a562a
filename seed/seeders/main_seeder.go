package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// 1. Seed courses first (no dependencies)
	courseSeeder := NewCourseSeeder(s.db)
	if err := courseSeeder.SeedCourses(); err != nil {
		log.Printf("Course seeding failed: %v", err)
		return err
	}

	// 2. Seed lessons (depends on courses)
	lessonSeeder := NewLessonSeeder(s.db)
	if err := lessonSeeder.SeedLessons(); err != nil {
		log.Printf("Lesson seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedCoursesOnly seeds only courses
func (s *MainSeeder) SeedCoursesOnly() error {
	courseSeeder := NewCourseSeeder(s.db)
	return courseSeeder.SeedCourses()
}

// SeedLessonsOnly seeds only lessons
func (s *MainSeeder) SeedLessonsOnly() error {
	lessonSeeder := NewLessonSeeder(s.db)
	return lessonSeeder.SeedLessons()
}
