package controllers

import (
	"studytrack/backend/services"
	"studytrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterRequest true "User registration data"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := ac.Users.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return utils.Record(c, fiber.StatusOK, user)
}

// Login godoc
// @Summary User login
// @Description Authenticate with username and password and return a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /token [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := ac.Users.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, err := ac.Users.IssueToken(user)
	if err != nil {
		return err
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   utils.TokenType,
	})
}
