package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorLocalKey holds the error a handler answered with, for the request log only.
const ErrorLocalKey = "handler_error"

// Logger logs each HTTP request as one structured entry with request_id,
// method, path, status and latency in milliseconds. 5xx responses log at
// error level with the underlying cause; 4xx at warn.
//
// Errors returned up the chain are rendered by the app's ErrorHandler here,
// so outer middleware observes the final status.
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			c.Locals(ErrorLocalKey, chainErr)
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if err, ok := c.Locals(ErrorLocalKey).(error); ok && err != nil {
			fields = append(fields, zap.Error(err))
		}

		lvl := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			lvl = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			lvl = zapcore.WarnLevel
		}
		log.Log(lvl, "request", fields...)

		return nil
	}
}
