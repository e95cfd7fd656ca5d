package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"edusync/config"
	"edusync/database"
	assessmentRoutes "edusync/routers/assessmentRoutes"
	authRoutes "edusync/routers/authRoutes"
	courseRoutes "edusync/routers/courseRoutes"
	resultRoutes "edusync/routers/resultRoutes"
	userRoutes "edusync/routers/userRoutes"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Seeding failure is logged but never stops the server.
	if err := database.Seed(database.Database.Db); err != nil {
		log.Printf("Error during database seeding: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true, // the token cookie must survive CORS
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	assessmentRoutes.SetupAssessmentRoutes(app)
	resultRoutes.SetupResultRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
