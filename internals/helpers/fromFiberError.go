package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"campusfee_backend/internals/logger"
)

// ErrorHandler renders anything that escapes a handler (usually *fiber.Error
// from middleware) in the standard error envelope. Non-fiber errors become a
// generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message, nil)
	}
	logger.Log.Error("unhandled error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("reqid")),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error", err)
}
