package middleware

import (
	"studytrack/backend/models"
	"studytrack/backend/services"
	"studytrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// AuthMiddleware verifies the bearer token and stores the account it names
// for CurrentUser.
func AuthMiddleware(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := utils.ExtractSubjectFromToken(c, users.Cfg)
		if err != nil {
			return err
		}

		user, err := users.CurrentUser(c.UserContext(), subject)
		if err != nil {
			return err
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the account resolved by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
