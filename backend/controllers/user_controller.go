package controllers

import (
	"studytrack/backend/middleware"
	"studytrack/backend/services"
	"studytrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GetMe godoc
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// UpdateMe godoc
// @Summary Update current user
// @Description Only the supplied fields change
// @Tags users
// @Accept json
// @Produce json
// @Param input body services.UserUpdate true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (uc *UserController) UpdateMe(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var input services.UserUpdate
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return err
	}

	user, err := uc.Users.Update(c.UserContext(), actor, actor.Username, input)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// DeleteMe godoc
// @Summary Delete current user
// @Tags users
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (uc *UserController) DeleteMe(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := uc.Users.Delete(c.UserContext(), actor, actor.Username); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// GetUser godoc
// @Summary Get a user
// @Description Teachers can read any account, students only their own
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [get]
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	user, err := uc.Users.Get(c.UserContext(), middleware.CurrentUser(c), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateUser godoc
// @Summary Update another user
// @Description Teacher only. Only the supplied fields change
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param input body services.UserUpdate true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [put]
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	username := c.Params("username")

	// Teacher-only even for the caller's own name; self-service is /users/me.
	// Forbidden wins over a malformed body or a missing target.
	if err := uc.Users.Policy.RequireTeacher(actor, "update other users"); err != nil {
		return err
	}

	var input services.UserUpdate
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return err
	}

	user, err := uc.Users.Update(c.UserContext(), actor, username, input)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary Delete another user
// @Description Teacher only. Removes the user's progress records as well
// @Tags users
// @Param username path string true "Username"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [delete]
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := uc.Users.Policy.RequireTeacher(actor, "delete other users"); err != nil {
		return err
	}
	if err := uc.Users.Delete(c.UserContext(), actor, c.Params("username")); err != nil {
		return err
	}
	return utils.NoContent(c)
}
