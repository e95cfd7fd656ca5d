package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userControllers "edusync/controllers/user"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user")

	userGroup.Get("/:id", userControllers.GetUser)
}
