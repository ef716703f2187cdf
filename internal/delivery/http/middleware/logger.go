package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// HeaderRequestID - заголовок с идентификатором запроса
	HeaderRequestID = "X-Request-ID"
	// LocalRequestID - ключ c.Locals с идентификатором запроса
	LocalRequestID = "request_id"
)

// Logger - middleware логирования запросов. Идентификатор берётся из X-Request-ID
// или генерируется и возвращается клиенту в том же заголовке.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalRequestID, requestID)
		c.Set(HeaderRequestID, requestID)

		err := c.Next()
		if err != nil {
			// ErrorHandler выставит статус ответа до логирования
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("HTTP request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Debug("HTTP request", fields...)
		}

		return nil
	}
}
