package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppic-api/internal/infrastructure/messaging"
	"github.com/jhoicas/ppic-api/pkg/logger"
)

const localRequestID = "requestid"

// RequestLogger una línea por petición y propagación del request id como correlation id.
// Va después de requestid.New().
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(localRequestID).(string)
		if reqID != "" {
			c.SetUserContext(messaging.WithCorrelationID(c.UserContext(), reqID))
		}

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el status antes de registrar
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return nil
	}
}
