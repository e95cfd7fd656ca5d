package database

import (
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"edusync/models"
	"edusync/utils"
)

// Seed loads the development fixture set on first start. It is skipped once
// any user exists; a failure anywhere rolls the whole pass back.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding database...")

	return db.Transaction(func(tx *gorm.DB) error {
		passwordHash, err := utils.HashPassword("Test123!")
		if err != nil {
			return err
		}

		instructor := models.User{
			Name:         "Test Instructor",
			Email:        "instructor@test.com",
			Role:         models.RoleInstructor,
			PasswordHash: passwordHash,
		}
		student := models.User{
			Name:         "Test Student",
			Email:        "student@test.com",
			Role:         models.RoleStudent,
			PasswordHash: passwordHash,
		}
		if err := tx.Create(&instructor).Error; err != nil {
			return err
		}
		if err := tx.Create(&student).Error; err != nil {
			return err
		}

		courses := []models.Course{
			{
				Title:        "Introduction to Programming",
				Description:  "Learn the basics of programming",
				MediaURL:     "https://example.com/course1",
				InstructorID: instructor.ID,
			},
			{
				Title:        "Web Development",
				Description:  "Learn modern web development",
				MediaURL:     "https://example.com/course2",
				InstructorID: instructor.ID,
			},
		}
		if err := tx.Create(&courses).Error; err != nil {
			return err
		}

		dueDate := time.Now().UTC().AddDate(0, 0, 7)
		assessments := []models.Assessment{
			{
				CourseID:    courses[0].ID,
				Title:       "Programming Basics Quiz",
				Description: "Test your knowledge of programming basics",
				MaxScore:    10,
				DueDate:     dueDate,
				Questions: []models.Question{
					{
						Text:          "What is the output of 2 + 2?",
						Options:       datatypes.NewJSONSlice([]string{"3", "4", "5", "6"}),
						CorrectOption: 1,
						Marks:         5,
					},
					{
						Text:          "Which language is used for web apps?",
						Options:       datatypes.NewJSONSlice([]string{"Python", "JavaScript", "C++", "Java"}),
						CorrectOption: 1,
						Marks:         5,
					},
				},
			},
			{
				CourseID:    courses[1].ID,
				Title:       "Web Development Quiz",
				Description: "Test your knowledge of web development",
				MaxScore:    10,
				DueDate:     dueDate,
				Questions: []models.Question{
					{
						Text:          "What does HTML stand for?",
						Options:       datatypes.NewJSONSlice([]string{"Hyper Trainer Marking Language", "Hyper Text Markup Language", "Hyper Text Marketing Language", "Hyper Text Markup Leveler"}),
						CorrectOption: 1,
						Marks:         5,
					},
					{
						Text:          "Which is a JavaScript framework?",
						Options:       datatypes.NewJSONSlice([]string{"Django", "Flask", "React", "Laravel"}),
						CorrectOption: 2,
						Marks:         5,
					},
				},
			},
		}
		if err := tx.Create(&assessments).Error; err != nil {
			return err
		}

		results := []models.Result{
			{
				AssessmentID: assessments[0].ID,
				UserID:       student.ID,
				Score:        85,
				CompletedAt:  time.Now().UTC(),
			},
			{
				AssessmentID: assessments[1].ID,
				UserID:       student.ID,
				Score:        90,
				CompletedAt:  time.Now().UTC(),
			},
		}
		return tx.Create(&results).Error
	})
}
