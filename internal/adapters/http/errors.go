package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/roomradar/roomradar/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: validation_error, not_found, forbidden, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errFromDomain maps the core error taxonomy onto HTTP responses. Storage
// failures are reported generically; their detail goes to the log, not the
// client.
func errFromDomain(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return newError(c, fiber.StatusBadRequest, "validation_error", verr.Error())
	}
	if errors.Is(err, domain.ErrNotFound) {
		return newError(c, fiber.StatusNotFound, "not_found", "listing not found")
	}
	if errors.Is(err, domain.ErrForbidden) {
		return newError(c, fiber.StatusForbidden, "forbidden", "you do not own this listing")
	}
	var serr *domain.StorageError
	if errors.As(err, &serr) {
		return newError(c, fiber.StatusInternalServerError, "storage_error", "storage unavailable")
	}
	return newError(c, fiber.StatusInternalServerError, "internal_error", "internal error")
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errUnauthorized(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusUnauthorized, "unauthorized", msg)
}

func errForbidden(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusForbidden, "forbidden", msg)
}
