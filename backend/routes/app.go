package routes

import (
	"studytrack/backend/config"
	"studytrack/backend/middleware"
	"studytrack/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/op/go-logging"
	"gorm.io/gorm"
)

// NewApp builds the fiber app with the error handler, global middleware and
// every route.
func NewApp(db *gorm.DB, cfg *config.Config, logger *logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "studytrack",
		ErrorHandler: utils.ErrorHandler(logger),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	SetupRoutes(app, db, cfg)
	return app
}
