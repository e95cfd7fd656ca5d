package resultValidator

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"edusync/middleware"
)

var validate = validator.New()

type CreateResultRequest struct {
	AssessmentID uuid.UUID `json:"assessmentId" validate:"required"`
	UserID       uuid.UUID `json:"userId" validate:"required"`
	Score        int       `json:"score" validate:"min=0"`
}

type UpdateResultRequest struct {
	Score       int        `json:"score" validate:"min=0"`
	CompletedAt *time.Time `json:"completedAt"`
}

func resultFieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}
	for _, e := range validationErrors {
		switch e.Field() {
		case "AssessmentID":
			errors["assessmentId"] = "Assessment id is required!"
		case "UserID":
			errors["userId"] = "User id is required!"
		case "Score":
			errors["score"] = "Score must not be negative!"
		}
	}
	return errors
}

// CreateResult validator middleware
func CreateResult() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateResultRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, resultFieldErrors(err))
		}

		c.Locals("validatedResult", reqData)
		return c.Next()
	}
}

// UpdateResult validator middleware
func UpdateResult() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateResultRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, resultFieldErrors(err))
		}

		c.Locals("validatedResultUpdate", reqData)
		return c.Next()
	}
}
