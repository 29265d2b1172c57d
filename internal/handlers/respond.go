package handlers

import (
	"log"

	"akun/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// respond writes the JSON envelope every endpoint uses.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// respondError maps a kinded service error to its HTTP status.
// Unclassified errors are logged with full detail and reported as a
// generic internal error so nothing leaks to the caller.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch apperr.Kind(err) {
	case apperr.ErrValidation:
		status = fiber.StatusBadRequest
	case apperr.ErrConflict:
		status = fiber.StatusConflict
	case apperr.ErrInvalidCredentials, apperr.ErrUnauthenticated:
		status = fiber.StatusUnauthorized
	case apperr.ErrForbidden:
		status = fiber.StatusForbidden
	case apperr.ErrNotFound:
		status = fiber.StatusNotFound
	default:
		log.Printf("Internal error: %v", err)
		return respond(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return respond(c, status, err.Error(), nil)
}
