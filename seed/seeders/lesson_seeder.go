// seeders/lesson_seeder.go
package seeders

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/brightpath-edu/academy_api/model"
)

// LessonSeeder handles seeding lessons for the demo courses
type LessonSeeder struct {
	db *gorm.DB
}

// NewLessonSeeder creates a new lesson seeder
func NewLessonSeeder(db *gorm.DB) *LessonSeeder {
	return &LessonSeeder{db: db}
}

// SeedLessons seeds the database with ordered lessons and their quizzes
func (s *LessonSeeder) SeedLessons() error {
	lessons := s.getDemoLessons()

	for _, lesson := range lessons {
		var existing model.Lesson
		if err := s.db.Where("id = ?", lesson.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&lesson).Error; err != nil {
					log.Printf("Error creating lesson %s: %v", lesson.Title, err)
					return err
				}
				log.Printf("Created lesson: %s", lesson.Title)
			} else {
				log.Printf("Error checking lesson %s: %v", lesson.Title, err)
				return err
			}
		} else {
			log.Printf("Lesson %s already exists, skipping", lesson.Title)
		}
	}

	log.Println("Lesson seeding completed successfully")
	return nil
}

func (s *LessonSeeder) getDemoLessons() []model.Lesson {
	now := time.Now()

	return []model.Lesson{
		{
			ID:               "lesson_go_basics_1",
			CourseID:         "course_go_basics",
			Title:            "Variables and Types",
			Order:            0,
			Content:          "A variable names a storage location with a declared type. Typed declarations catch whole classes of mistakes before the program ever runs...",
			TimeLimitMinutes: 10,
			Questions: encodeQuestions([]model.Question{
				{
					ID:       "q_vars_1",
					Question: "What does a variable declaration bind together?",
					Options:  []string{"A name and a storage location", "Two functions", "A file and a process"},
					Answer:   "A name and a storage location",
				},
				{
					ID:       "q_vars_2",
					Question: "When are type errors in a statically typed language detected?",
					Options:  []string{"At runtime", "Before the program runs", "Never"},
					Answer:   "Before the program runs",
				},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:               "lesson_go_basics_2",
			CourseID:         "course_go_basics",
			Title:            "Control Flow",
			Order:            1,
			Content:          "Conditionals and loops decide which statements run and how often. Every loop needs a condition that eventually becomes false...",
			TimeLimitMinutes: 10,
			Questions: encodeQuestions([]model.Question{
				{
					ID:       "q_flow_1",
					Question: "Which construct repeats a block while a condition holds?",
					Options:  []string{"A loop", "A constant", "A comment"},
					Answer:   "A loop",
				},
				{
					ID:       "q_flow_2",
					Question: "What happens when a loop condition never becomes false?",
					Options:  []string{"The loop runs forever", "The loop is skipped", "The compiler rejects it"},
					Answer:   "The loop runs forever",
				},
				{
					ID:       "q_flow_3",
					Question: "What does a conditional statement select?",
					Options:  []string{"Which branch of code runs", "The program's file name", "The CPU model"},
					Answer:   "Which branch of code runs",
				},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:               "lesson_go_basics_3",
			CourseID:         "course_go_basics",
			Title:            "Functions",
			Order:            2,
			Content:          "Functions package behavior behind a name and a signature. Small, single-purpose functions are easier to test and reuse...",
			TimeLimitMinutes: 15,
			Questions: encodeQuestions([]model.Question{
				{
					ID:       "q_func_1",
					Question: "What describes a function's inputs and outputs?",
					Options:  []string{"Its signature", "Its file size", "Its author"},
					Answer:   "Its signature",
				},
				{
					ID:       "q_func_2",
					Question: "Why prefer small single-purpose functions?",
					Options:  []string{"They are easier to test and reuse", "They run on more CPUs", "They need no names"},
					Answer:   "They are easier to test and reuse",
				},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:               "lesson_sql_intro_1",
			CourseID:         "course_sql_intro",
			Title:            "SELECT Basics",
			Order:            0,
			Content:          "SELECT reads rows from a table. The WHERE clause filters which rows come back...",
			TimeLimitMinutes: 10,
			Questions: encodeQuestions([]model.Question{
				{
					ID:       "q_sel_1",
					Question: "Which clause filters the rows returned by SELECT?",
					Options:  []string{"WHERE", "ORDER BY", "GROUP BY"},
					Answer:   "WHERE",
				},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:               "lesson_sql_intro_2",
			CourseID:         "course_sql_intro",
			Title:            "Joins",
			Order:            1,
			Content:          "A join combines rows from two tables on a matching condition. Inner joins keep only matching rows...",
			TimeLimitMinutes: 15,
			Questions: encodeQuestions([]model.Question{
				{
					ID:       "q_join_1",
					Question: "What does an inner join keep?",
					Options:  []string{"Only rows that match in both tables", "All rows from both tables", "Only the first table's rows"},
					Answer:   "Only rows that match in both tables",
				},
				{
					ID:       "q_join_2",
					Question: "A join condition typically compares what?",
					Options:  []string{"Key columns of the two tables", "Table names", "Database versions"},
					Answer:   "Key columns of the two tables",
				},
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// encodeQuestions packs the question set into the lesson's JSON column
func encodeQuestions(questions []model.Question) json.RawMessage {
	data, _ := json.Marshal(questions)
	return json.RawMessage(data)
}
