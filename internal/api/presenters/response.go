package presenters

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/logging"
	"errors"
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse writes {success, message} plus data. A fiber.Map payload is
// merged into the top level, anything else goes under "data".
func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	switch v := data.(type) {
	case nil:
	case fiber.Map:
		for k, val := range v {
			body[k] = val
		}
	default:
		body["data"] = v
	}
	return c.Status(status).JSON(body)
}

// StatusFor maps an error kind to its HTTP status. Errors without a kind use
// fallback.
func StatusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError
	default:
		return fallback
	}
}

// ErrorResponse writes {success: false, message, error}. Storage failures and
// unclassified server errors are logged and reported with message only.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	status = StatusFor(err, status)

	detail := message
	if err != nil && (domain.IsClientError(err) || status < fiber.StatusInternalServerError) {
		detail = err.Error()
	} else {
		logging.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg(message)
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   detail,
	})
}
