package assessmentValidator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"edusync/middleware"
)

var validate = validator.New()

type QuestionRequest struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectOption int      `json:"correctOption"`
	Marks         int      `json:"marks" validate:"min=0"`
}

type AssessmentRequest struct {
	CourseID    uuid.UUID         `json:"courseId"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	MaxScore    int               `json:"maxScore" validate:"min=1"`
	DueDate     time.Time         `json:"dueDate" validate:"required"`
	Questions   []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

func assessmentFieldErrors(err error) map[string]string {
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
		case "MaxScore":
			errors["maxScore"] = "Max score must be at least 1!"
		case "DueDate":
			errors["dueDate"] = "Due date is required!"
		case "Questions":
			errors["questions"] = "At least one question is required!"
		case "Text":
			errors["questions"] = "Every question needs its text!"
		case "Options":
			errors["questions"] = "Every question needs at least two options!"
		case "Marks":
			errors["questions"] = "Question marks must not be negative!"
		}
	}
	return errors
}

// SaveAssessment validates the create/update assessment payload, including
// that every correctOption actually indexes into that question's options.
func SaveAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssessmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			errors = assessmentFieldErrors(err)
		}

		for i, q := range reqData.Questions {
			if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
				errors["questions"] = fmt.Sprintf("Question %d: correctOption must reference one of its options!", i+1)
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}
