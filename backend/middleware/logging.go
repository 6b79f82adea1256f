package middleware

import (
	"time"

	"studytrack/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/op/go-logging"
)

func LoggingMiddleware(logger *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The error handler runs after us, so a returned error decides the
		// status that will be sent.
		status := c.Response().StatusCode()
		if err != nil {
			status = utils.StatusCode(err)
		}
		latency := time.Since(start)

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Errorf("%s %s %s %d %v", c.IP(), c.Method(), c.Path(), status, latency)
		case err != nil:
			logger.Warningf("%s %s %s %d %v: %v", c.IP(), c.Method(), c.Path(), status, latency, err)
		default:
			logger.Infof("%s %s %s %d %v", c.IP(), c.Method(), c.Path(), status, latency)
		}

		return err
	}
}
