package resultRoutes

import (
	"github.com/gofiber/fiber/v2"

	resultControllers "edusync/controllers/result"
	"edusync/middleware"
	"edusync/models"
	resultValidators "edusync/validators/result"
)

func SetupResultRoutes(app *fiber.App) {
	resultGroup := app.Group("/api/results", middleware.JWTMiddleware)

	// Any authenticated caller may read their own results; the
	// owner-or-instructor rule is enforced in the controller.
	resultGroup.Get("/user/:userId", resultControllers.GetResultsByUser)

	resultGroup.Get("/", middleware.RequireRole(models.RoleInstructor), resultControllers.GetAllResults)
	resultGroup.Get("/:id", resultControllers.GetResultByID)
	resultGroup.Post("/", middleware.RequireRole(models.RoleInstructor), resultValidators.CreateResult(), resultControllers.CreateResult)
	resultGroup.Put("/:id", middleware.RequireRole(models.RoleInstructor), resultValidators.UpdateResult(), resultControllers.UpdateResult)
	resultGroup.Delete("/:id", middleware.RequireRole(models.RoleInstructor), resultControllers.DeleteResult)
}
