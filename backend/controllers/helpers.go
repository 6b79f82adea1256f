package controllers

import (
	"studytrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// idParam reads a positive numeric path parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, utils.NewValidationError("Invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}
