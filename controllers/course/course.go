package courseController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edusync/database"
	"edusync/middleware"
	"edusync/models"
	courseValidator "edusync/validators/course"
)

type courseResponse struct {
	CourseID       uuid.UUID `json:"courseId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	MediaURL       string    `json:"mediaUrl"`
	InstructorID   uuid.UUID `json:"instructorId"`
	InstructorName string    `json:"instructorName"`
}

// toCourseResponses resolves instructor names by lookup instead of embedding
// the user record into each course.
func toCourseResponses(db *gorm.DB, courses []models.Course) ([]courseResponse, error) {
	instructorIDs := make([]uuid.UUID, 0, len(courses))
	seen := make(map[uuid.UUID]bool)
	for _, course := range courses {
		if !seen[course.InstructorID] {
			seen[course.InstructorID] = true
			instructorIDs = append(instructorIDs, course.InstructorID)
		}
	}

	names := make(map[uuid.UUID]string, len(instructorIDs))
	if len(instructorIDs) > 0 {
		var instructors []models.User
		if err := db.Where("id IN ?", instructorIDs).Find(&instructors).Error; err != nil {
			return nil, err
		}
		for _, instructor := range instructors {
			names[instructor.ID] = instructor.Name
		}
	}

	responses := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, courseResponse{
			CourseID:       course.ID,
			Title:          course.Title,
			Description:    course.Description,
			MediaURL:       course.MediaURL,
			InstructorID:   course.InstructorID,
			InstructorName: names[course.InstructorID],
		})
	}
	return responses, nil
}

func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching courses", nil)
	}

	responses, err := toCourseResponses(db, courses)
	if err != nil {
		log.Printf("Error resolving instructors: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching courses", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", responses)
}

// GetInstructorCourses lists only the authenticated instructor's courses.
func GetInstructorCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("instructor_id = ?", userID).Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching instructor courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching instructor courses", nil)
	}

	responses, err := toCourseResponses(db, courses)
	if err != nil {
		log.Printf("Error resolving instructors: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching instructor courses", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", responses)
}

func GetCourseByID(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching the course", nil)
	}

	responses, err := toCourseResponses(db, []models.Course{course})
	if err != nil {
		log.Printf("Error resolving instructor: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while fetching the course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", responses[0])
}

func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		MediaURL:     reqData.MediaURL,
		InstructorID: userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while creating the course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while updating the course", nil)
	}

	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only modify your own courses!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.MediaURL = reqData.MediaURL

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while updating the course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes the course and everything hanging off it.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while deleting the course", nil)
	}

	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only modify your own courses!", nil)
	}

	if err := database.DeleteCourse(db, courseID); err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while deleting the course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// Enroll is a placeholder: enrollment bookkeeping does not exist yet.
func Enroll(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while enrolling in the course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment is not available yet.", nil)
}
