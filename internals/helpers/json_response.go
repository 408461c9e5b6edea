// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Envelope
   success: {success: true, message?, ...payload}
   error:   {success: false, message, error?, errors?}
=================================*/

// ExposeErrors adds the internal error string to error envelopes. Only for
// debug builds; set from APP_DEBUG at startup.
var ExposeErrors bool

func envelope(message string, payload fiber.Map) fiber.Map {
	body := fiber.Map{"success": true}
	if strings.TrimSpace(message) != "" {
		body["message"] = message
	}
	for k, v := range payload {
		if k == "success" {
			continue
		}
		body[k] = v
	}
	return body
}

// JsonOK: response sukses generic (GET detail, list, dsb)
func JsonOK(c *fiber.Ctx, message string, payload fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(envelope(message, payload))
}

// JsonCreated: response sukses create (POST)
func JsonCreated(c *fiber.Ctx, message string, payload fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(envelope(message, payload))
}

// JsonError: error generic. err is only rendered when ExposeErrors is on.
func JsonError(c *fiber.Ctx, status int, message string, err error) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if ExposeErrors && err != nil {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// JsonValidationError: 400 with per-field messages.
func JsonValidationError(c *fiber.Ctx, message string, fields map[string]string) error {
	if strings.TrimSpace(message) == "" {
		message = "Validation failed"
	}
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
