package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "edusync/controllers/course"
	"edusync/middleware"
	"edusync/models"
	courseValidators "edusync/validators/course"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses", middleware.JWTMiddleware)

	courseGroup.Get("/", courseControllers.GetAllCourses)
	courseGroup.Get("/instructor", middleware.RequireRole(models.RoleInstructor), courseControllers.GetInstructorCourses)
	courseGroup.Get("/:id", courseControllers.GetCourseByID)

	courseGroup.Post("/", middleware.RequireRole(models.RoleInstructor), courseValidators.SaveCourse(), courseControllers.CreateCourse)
	courseGroup.Put("/:id", middleware.RequireRole(models.RoleInstructor), courseValidators.SaveCourse(), courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.RequireRole(models.RoleInstructor), courseControllers.DeleteCourse)

	courseGroup.Post("/:id/enroll", middleware.RequireRole(models.RoleStudent), courseControllers.Enroll)
}
