package courseValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edusync/middleware"
)

var validate = validator.New()

type CourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	MediaURL    string `json:"mediaUrl" validate:"required,url"`
}

func courseFieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}
	for _, e := range validationErrors {
		switch e.Field() {
		case "Title":
			errors["title"] = "Title is required!"
		case "Description":
			errors["description"] = "Description is required!"
		case "MediaURL":
			errors["mediaUrl"] = "A valid media URL is required!"
		}
	}
	return errors
}

// SaveCourse validates the create/update course payload.
func SaveCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, courseFieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
