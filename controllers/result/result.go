package resultController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edusync/database"
	"edusync/middleware"
	"edusync/models"
	resultValidator "edusync/validators/result"
)

type resultResponse struct {
	models.Result
	UserName        string `json:"userName"`
	AssessmentTitle string `json:"assessmentTitle"`
}

func toResultResponses(db *gorm.DB, results []models.Result) ([]resultResponse, error) {
	userIDs := make([]uuid.UUID, 0, len(results))
	assessmentIDs := make([]uuid.UUID, 0, len(results))
	seenUsers := make(map[uuid.UUID]bool)
	seenAssessments := make(map[uuid.UUID]bool)
	for _, r := range results {
		if !seenUsers[r.UserID] {
			seenUsers[r.UserID] = true
			userIDs = append(userIDs, r.UserID)
		}
		if !seenAssessments[r.AssessmentID] {
			seenAssessments[r.AssessmentID] = true
			assessmentIDs = append(assessmentIDs, r.AssessmentID)
		}
	}

	userNames := make(map[uuid.UUID]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			userNames[u.ID] = u.Name
		}
	}

	assessmentTitles := make(map[uuid.UUID]string, len(assessmentIDs))
	if len(assessmentIDs) > 0 {
		var assessments []models.Assessment
		if err := db.Where("id IN ?", assessmentIDs).Find(&assessments).Error; err != nil {
			return nil, err
		}
		for _, a := range assessments {
			assessmentTitles[a.ID] = a.Title
		}
	}

	responses := make([]resultResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, resultResponse{
			Result:          r,
			UserName:        userNames[r.UserID],
			AssessmentTitle: assessmentTitles[r.AssessmentID],
		})
	}
	return responses, nil
}

func GetAllResults(c *fiber.Ctx) error {
	db := database.Database.Db

	var results []models.Result
	if err := db.Order("completed_at desc").Find(&results).Error; err != nil {
		log.Printf("Error fetching results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching results", nil)
	}

	responses, err := toResultResponses(db, results)
	if err != nil {
		log.Printf("Error resolving result names: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching results", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", responses)
}

// GetResultByID returns one result. Only the student it belongs to or an
// instructor may read it.
func GetResultByID(c *fiber.Ctx) error {
	callerID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	callerRole, _ := c.Locals("userRole").(string)

	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid result id!", nil)
	}

	db := database.Database.Db

	var result models.Result
	if err := db.Where("id = ?", resultID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Result not found", nil)
		}
		log.Printf("Error fetching result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching the result", nil)
	}

	if callerRole != string(models.RoleInstructor) && result.UserID != callerID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own results!", nil)
	}

	responses, err := toResultResponses(db, []models.Result{result})
	if err != nil {
		log.Printf("Error resolving result names: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching the result", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", responses[0])
}

// GetResultsByUser lists a student's results. Only the student themselves
// or an instructor may read them.
func GetResultsByUser(c *fiber.Ctx) error {
	callerID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	callerRole, _ := c.Locals("userRole").(string)

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	if callerRole != string(models.RoleInstructor) && callerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own results!", nil)
	}

	db := database.Database.Db

	var results []models.Result
	if err := db.Where("user_id = ?", userID).Order("completed_at desc").Find(&results).Error; err != nil {
		log.Printf("Error fetching user results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching user results", nil)
	}

	responses, err := toResultResponses(db, results)
	if err != nil {
		log.Printf("Error resolving result names: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching user results", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", responses)
}

func CreateResult(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResult").(*resultValidator.CreateResultRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ?", reqData.AssessmentID).First(&models.Assessment{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found", nil)
		}
		log.Printf("Error fetching assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while creating the result", nil)
	}
	if err := db.Where("id = ?", reqData.UserID).First(&models.User{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		log.Printf("Error fetching user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while creating the result", nil)
	}

	result := models.Result{
		AssessmentID: reqData.AssessmentID,
		UserID:       reqData.UserID,
		Score:        reqData.Score,
		CompletedAt:  time.Now().UTC(),
	}

	if err := db.Create(&result).Error; err != nil {
		log.Printf("Error creating result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while creating the result", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Result recorded successfully!", result)
}

func UpdateResult(c *fiber.Ctx) error {
	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid result id!", nil)
	}

	reqData, ok := c.Locals("validatedResultUpdate").(*resultValidator.UpdateResultRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var result models.Result
	if err := db.Where("id = ?", resultID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Result not found", nil)
		}
		log.Printf("Error fetching result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while updating the result", nil)
	}

	result.Score = reqData.Score
	if reqData.CompletedAt != nil {
		result.CompletedAt = *reqData.CompletedAt
	}

	if err := db.Save(&result).Error; err != nil {
		log.Printf("Error updating result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while updating the result", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result updated successfully!", result)
}

func DeleteResult(c *fiber.Ctx) error {
	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid result id!", nil)
	}

	db := database.Database.Db

	var result models.Result
	if err := db.Where("id = ?", resultID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Result not found", nil)
		}
		log.Printf("Error fetching result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while deleting the result", nil)
	}

	if err := db.Delete(&result).Error; err != nil {
		log.Printf("Error deleting result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while deleting the result", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result deleted successfully!", nil)
}
