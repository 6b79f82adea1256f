package controllers

import (
	"studytrack/backend/middleware"
	"studytrack/backend/services"
	"studytrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// GetProgress godoc
// @Summary Get own progress
// @Description Returns the caller with their progress on every started topic
// @Tags progress
// @Produce json
// @Success 200 {object} models.StudentProgress
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	progress, err := pc.Progress.ForStudent(c.UserContext(), actor, actor.Username)
	if err != nil {
		return err
	}
	return c.JSON(progress)
}

// StartTopic godoc
// @Summary Start a topic
// @Description Creates the caller's progress entry for a topic
// @Tags progress
// @Accept json
// @Produce json
// @Param input body services.ProgressCreate true "Progress"
// @Success 201 {object} models.Progress
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /progress [post]
func (pc *ProgressController) StartTopic(c *fiber.Ctx) error {
	var req services.ProgressCreate
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	progress, err := pc.Progress.Start(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return utils.Created(c, progress)
}

// UpdateProgress godoc
// @Summary Update a progress entry
// @Description Owner or teacher. Marking completed without a date stamps the current time
// @Tags progress
// @Accept json
// @Produce json
// @Param id path int true "Progress ID"
// @Param input body services.ProgressUpdate true "Fields to change"
// @Success 200 {object} models.Progress
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /progress/{id} [put]
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input services.ProgressUpdate
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return err
	}

	progress, err := pc.Progress.Update(c.UserContext(), middleware.CurrentUser(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(progress)
}

// GetStudentProgress godoc
// @Summary Get a student's progress
// @Description Teachers can read anyone's progress, students only their own
// @Tags progress
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.StudentProgress
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /users/{username}/progress [get]
func (pc *ProgressController) GetStudentProgress(c *fiber.Ctx) error {
	progress, err := pc.Progress.ForStudent(c.UserContext(), middleware.CurrentUser(c), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(progress)
}
