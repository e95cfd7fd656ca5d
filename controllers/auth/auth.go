package authController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edusync/database"
	"edusync/middleware"
	"edusync/models"
	"edusync/utils"
	authValidator "edusync/validators/auth"
)

// Register creates the user and issues their first token. Creation and
// token issuance are atomic: a minting failure rolls the insert back.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email already registered", nil)
	}

	passwordHash, err := utils.HashPassword(reqData.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:         reqData.Name,
		Email:        reqData.Email,
		Role:         models.Role(reqData.Role),
		PasswordHash: passwordHash,
	}

	var token string
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		signed, err := middleware.GenerateJWT(newUser.ID, newUser.Email, newUser.Role)
		if err != nil {
			return err
		}
		token = signed
		return nil
	})
	if err != nil {
		// Two registrations racing on the same email: the unique index is
		// the safety net, surfaced as the same duplicate condition.
		if database.IsDuplicateKey(err) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email already registered", nil)
		}
		log.Printf("Error registering user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred during registration. Please try again.", nil)
	}

	middleware.SetTokenCookie(c, token)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration successful", fiber.Map{
		"user":  newUser,
		"token": token,
	})
}

// Login verifies credentials and issues a fresh token. The failure message
// never reveals whether the email or the password was wrong.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error looking up user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred during login. Please try again.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password", nil)
	}

	if !utils.CheckPassword(reqData.Password, user.PasswordHash) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred during login. Please try again.", nil)
	}

	middleware.SetTokenCookie(c, token)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated caller's identity.
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		log.Printf("Error fetching user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while retrieving user data", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User retrieved successfully", user)
}
