package assessmentRoutes

import (
	"github.com/gofiber/fiber/v2"

	assessmentControllers "edusync/controllers/assessment"
	"edusync/middleware"
	"edusync/models"
	assessmentValidators "edusync/validators/assessment"
)

func SetupAssessmentRoutes(app *fiber.App) {
	assessmentGroup := app.Group("/api/assessments", middleware.JWTMiddleware)

	assessmentGroup.Get("/", assessmentControllers.GetAllAssessments)
	assessmentGroup.Get("/instructor", middleware.RequireRole(models.RoleInstructor), assessmentControllers.GetInstructorAssessments)
	assessmentGroup.Get("/:id", assessmentControllers.GetAssessmentByID)

	assessmentGroup.Post("/", middleware.RequireRole(models.RoleInstructor), assessmentValidators.SaveAssessment(), assessmentControllers.CreateAssessment)
	assessmentGroup.Put("/:id", middleware.RequireRole(models.RoleInstructor), assessmentValidators.SaveAssessment(), assessmentControllers.UpdateAssessment)
	assessmentGroup.Delete("/:id", middleware.RequireRole(models.RoleInstructor), assessmentControllers.DeleteAssessment)

	assessmentGroup.Post("/:id/submit", middleware.RequireRole(models.RoleStudent), assessmentControllers.Submit)
}
