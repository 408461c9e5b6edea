package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"campusfee_backend/internals/features/finance/fees/service"
	helper "campusfee_backend/internals/helpers"
	"campusfee_backend/internals/logger"
)

// respondError maps a service failure to its HTTP envelope. Business
// rejections keep their message; infrastructure failures get serverMsg and
// the raw error only in debug mode.
func respondError(c *fiber.Ctx, err error, serverMsg string) error {
	fe, ok := service.AsFeeError(err)
	if !ok {
		logError(c, serverMsg, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, serverMsg, err)
	}

	switch fe.Kind {
	case service.KindNotFound:
		return helper.JsonError(c, fiber.StatusNotFound, fe.Message, nil)
	case service.KindWrite, service.KindStore:
		logError(c, serverMsg, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, serverMsg, err)
	case service.KindValidation:
		if len(fe.Fields) > 0 {
			return helper.JsonValidationError(c, fe.Message, fe.Fields)
		}
	}
	return helper.JsonError(c, fiber.StatusBadRequest, fe.Message, nil)
}

func logError(c *fiber.Ctx, msg string, err error) {
	logger.Log.Error(msg,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("reqid")),
		zap.Error(err),
	)
}
