package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response shape returned by every operation.
// Clients inspect Success rather than the HTTP status; the status is set to
// match the error kind as a courtesy to generic tooling.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Code    string `json:"code,omitempty"`
}

// Respond writes a success envelope with the given message and data.
func Respond(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

// RespondNegative writes a success=false envelope that is not an error, such
// as an unauthenticated auth check or a "not applied" probe.
func RespondNegative(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Envelope{Success: false, Message: message, Data: data})
}

// RespondWithError writes a failure envelope for err, deriving the HTTP
// status from the error code. Unknown errors are treated as internal.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}

	return c.Status(statusFor(appErr.Code)).JSON(Envelope{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Code,
	})
}

func statusFor(code string) int {
	switch code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeAuth:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
