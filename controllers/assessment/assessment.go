package assessmentController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"edusync/database"
	"edusync/middleware"
	"edusync/models"
	assessmentValidator "edusync/validators/assessment"
)

type assessmentResponse struct {
	models.Assessment
	CourseTitle string `json:"courseTitle"`
}

func toAssessmentResponses(db *gorm.DB, assessments []models.Assessment) ([]assessmentResponse, error) {
	courseIDs := make([]uuid.UUID, 0, len(assessments))
	seen := make(map[uuid.UUID]bool)
	for _, a := range assessments {
		if !seen[a.CourseID] {
			seen[a.CourseID] = true
			courseIDs = append(courseIDs, a.CourseID)
		}
	}

	titles := make(map[uuid.UUID]string, len(courseIDs))
	if len(courseIDs) > 0 {
		var courses []models.Course
		if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
			return nil, err
		}
		for _, course := range courses {
			titles[course.ID] = course.Title
		}
	}

	responses := make([]assessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		responses = append(responses, assessmentResponse{
			Assessment:  a,
			CourseTitle: titles[a.CourseID],
		})
	}
	return responses, nil
}

func buildQuestions(assessmentID uuid.UUID, reqQuestions []assessmentValidator.QuestionRequest) []models.Question {
	questions := make([]models.Question, 0, len(reqQuestions))
	for _, q := range reqQuestions {
		questions = append(questions, models.Question{
			AssessmentID:  assessmentID,
			Text:          q.Text,
			Options:       datatypes.NewJSONSlice(q.Options),
			CorrectOption: q.CorrectOption,
			Marks:         q.Marks,
		})
	}
	return questions
}

// courseOwnedBy loads the course and checks the caller owns it.
func courseOwnedBy(db *gorm.DB, courseID, userID uuid.UUID) (int, string) {
	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.StatusNotFound, "Course not found"
		}
		log.Printf("Error fetching course: %v", err)
		return fiber.StatusInternalServerError, "An error occurred while checking the course"
	}
	if course.InstructorID != userID {
		return fiber.StatusForbidden, "You can only manage assessments of your own courses!"
	}
	return 0, ""
}

func GetAllAssessments(c *fiber.Ctx) error {
	db := database.Database.Db

	var assessments []models.Assessment
	if err := db.Preload("Questions").Order("created_at desc").Find(&assessments).Error; err != nil {
		log.Printf("Error fetching assessments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching assessments", nil)
	}

	responses, err := toAssessmentResponses(db, assessments)
	if err != nil {
		log.Printf("Error resolving course titles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching assessments", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessments fetched successfully!", responses)
}

// GetInstructorAssessments lists only the assessments that belong to the
// authenticated instructor's own courses.
func GetInstructorAssessments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var assessments []models.Assessment
	err := db.Preload("Questions").
		Joins("JOIN courses ON courses.id = assessments.course_id").
		Where("courses.instructor_id = ?", userID).
		Order("assessments.created_at desc").
		Find(&assessments).Error
	if err != nil {
		log.Printf("Error fetching instructor assessments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching instructor assessments", nil)
	}

	responses, err := toAssessmentResponses(db, assessments)
	if err != nil {
		log.Printf("Error resolving course titles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching instructor assessments", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessments fetched successfully!", responses)
}

func GetAssessmentByID(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
	}

	db := database.Database.Db

	var assessment models.Assessment
	if err := db.Preload("Questions").Where("id = ?", assessmentID).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found", nil)
		}
		log.Printf("Error fetching assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching the assessment", nil)
	}

	responses, err := toAssessmentResponses(db, []models.Assessment{assessment})
	if err != nil {
		log.Printf("Error resolving course title: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching the assessment", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment fetched successfully!", responses[0])
}

func CreateAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssessment").(*assessmentValidator.AssessmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if status, message := courseOwnedBy(db, reqData.CourseID, userID); status != 0 {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	assessment := models.Assessment{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		MaxScore:    reqData.MaxScore,
		DueDate:     reqData.DueDate,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assessment).Error; err != nil {
			return err
		}
		questions := buildQuestions(assessment.ID, reqData.Questions)
		return tx.Create(&questions).Error
	})
	if err != nil {
		log.Printf("Error creating assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while creating the assessment", nil)
	}

	if err := db.Preload("Questions").First(&assessment, "id = ?", assessment.ID).Error; err != nil {
		log.Printf("Error reloading assessment: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully!", assessment)
}

// UpdateAssessment overwrites the assessment fields and replaces its whole
// question set with the submitted one.
func UpdateAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
	}

	reqData, ok := c.Locals("validatedAssessment").(*assessmentValidator.AssessmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var assessment models.Assessment
	if err := db.Where("id = ?", assessmentID).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found", nil)
		}
		log.Printf("Error fetching assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while updating the assessment", nil)
	}

	if status, message := courseOwnedBy(db, assessment.CourseID, userID); status != 0 {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	assessment.Title = reqData.Title
	assessment.Description = reqData.Description
	assessment.MaxScore = reqData.MaxScore
	assessment.DueDate = reqData.DueDate

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&assessment).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_id = ?", assessment.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		questions := buildQuestions(assessment.ID, reqData.Questions)
		return tx.Create(&questions).Error
	})
	if err != nil {
		log.Printf("Error updating assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while updating the assessment", nil)
	}

	if err := db.Preload("Questions").First(&assessment, "id = ?", assessment.ID).Error; err != nil {
		log.Printf("Error reloading assessment: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment updated successfully!", assessment)
}

func DeleteAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
	}

	db := database.Database.Db

	var assessment models.Assessment
	if err := db.Where("id = ?", assessmentID).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found", nil)
		}
		log.Printf("Error fetching assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while deleting the assessment", nil)
	}

	if status, message := courseOwnedBy(db, assessment.CourseID, userID); status != 0 {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	if err := database.DeleteAssessment(db, assessmentID); err != nil {
		log.Printf("Error deleting assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while deleting the assessment", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment deleted successfully!", nil)
}

// Submit is a placeholder: automatic scoring does not exist yet.
func Submit(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
	}

	var assessment models.Assessment
	if err := database.Database.Db.Where("id = ?", assessmentID).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found", nil)
		}
		log.Printf("Error fetching assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while submitting the assessment", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment submission is not available yet.", nil)
}
