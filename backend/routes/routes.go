package routes

import (
	"studytrack/backend/config"
	"studytrack/backend/controllers"
	"studytrack/backend/middleware"
	"studytrack/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	userService := services.NewUserService(db, cfg)
	topicService := services.NewTopicService(db, userService.Policy)
	progressService := services.NewProgressService(db, userService.Policy)

	// Auth routes
	authController := controllers.NewAuthController(userService)
	app.Post("/register", authController.Register)
	app.Post("/token", authController.Login)

	authMiddleware := middleware.AuthMiddleware(userService)

	// User routes; /users/me must be registered before /users/:username
	userController := controllers.NewUserController(userService)
	progressController := controllers.NewProgressController(progressService)
	users := app.Group("/users", authMiddleware)
	users.Get("/me", userController.GetMe)
	users.Put("/me", userController.UpdateMe)
	users.Delete("/me", userController.DeleteMe)
	users.Get("/:username", userController.GetUser)
	users.Put("/:username", userController.UpdateUser)
	users.Delete("/:username", userController.DeleteUser)
	users.Get("/:username/progress", progressController.GetStudentProgress)

	// Topic routes
	topicController := controllers.NewTopicController(topicService)
	topics := app.Group("/topics", authMiddleware)
	topics.Get("/", topicController.ListTopics)
	topics.Post("/", topicController.CreateTopic)
	topics.Get("/:id", topicController.GetTopic)
	topics.Put("/:id", topicController.UpdateTopic)
	topics.Delete("/:id", topicController.DeleteTopic)
	topics.Get("/:id/progress", topicController.GetTopicProgress)

	// Progress routes
	progress := app.Group("/progress", authMiddleware)
	progress.Get("/", progressController.GetProgress)
	progress.Post("/", progressController.StartTopic)
	progress.Put("/:id", progressController.UpdateProgress)
}
