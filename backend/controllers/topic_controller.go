package controllers

import (
	"studytrack/backend/middleware"
	"studytrack/backend/services"
	"studytrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type TopicController struct {
	Topics *services.TopicService
}

func NewTopicController(topics *services.TopicService) *TopicController {
	return &TopicController{Topics: topics}
}

// ListTopics godoc
// @Summary List topics
// @Tags topics
// @Produce json
// @Param subject query string false "Filter by subject"
// @Param search query string false "Search in name and description"
// @Success 200 {array} models.Topic
// @Security BearerAuth
// @Router /topics [get]
func (tc *TopicController) ListTopics(c *fiber.Ctx) error {
	topics, err := tc.Topics.List(c.UserContext(), c.Query("subject"), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(topics)
}

// GetTopic godoc
// @Summary Get a topic
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} models.Topic
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /topics/{id} [get]
func (tc *TopicController) GetTopic(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	topic, err := tc.Topics.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(topic)
}

// CreateTopic godoc
// @Summary Create a topic
// @Description Teacher only
// @Tags topics
// @Accept json
// @Produce json
// @Param input body services.TopicRequest true "Topic"
// @Success 201 {object} models.Topic
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /topics [post]
func (tc *TopicController) CreateTopic(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := tc.Topics.Policy.RequireTeacher(actor, "create topics"); err != nil {
		return err
	}

	var req services.TopicRequest
	if err := utils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	topic, err := tc.Topics.Create(c.UserContext(), actor, req)
	if err != nil {
		return err
	}
	return utils.Created(c, topic)
}

// UpdateTopic godoc
// @Summary Update a topic
// @Description Teacher only. Only the supplied fields change
// @Tags topics
// @Accept json
// @Produce json
// @Param id path int true "Topic ID"
// @Param input body services.TopicUpdate true "Fields to change"
// @Success 200 {object} models.Topic
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /topics/{id} [put]
func (tc *TopicController) UpdateTopic(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if err := tc.Topics.Policy.RequireTeacher(actor, "update topics"); err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var input services.TopicUpdate
	if err := utils.ParseAndValidate(c, &input); err != nil {
		return err
	}

	topic, err := tc.Topics.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(topic)
}

// DeleteTopic godoc
// @Summary Delete a topic
// @Description Teacher only. Fails while progress records reference the topic
// @Tags topics
// @Param id path int true "Topic ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /topics/{id} [delete]
func (tc *TopicController) DeleteTopic(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := tc.Topics.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// GetTopicProgress godoc
// @Summary Progress of all students on a topic
// @Description Teacher only
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} models.TopicProgress
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /topics/{id}/progress [get]
func (tc *TopicController) GetTopicProgress(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	progress, err := tc.Topics.Progress(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(progress)
}
