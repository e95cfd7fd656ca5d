package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "edusync/controllers/auth"
	"edusync/middleware"
	authValidators "edusync/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
}
