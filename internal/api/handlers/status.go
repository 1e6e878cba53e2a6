package handlers

import (
	"recipebook/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service errors onto HTTP status codes; anything not in
// the taxonomy is treated as a bad request.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrRatingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrFilterRequiresIdentity):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}
