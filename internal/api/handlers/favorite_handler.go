package handlers

import (
	"recipebook/domain"
	"recipebook/internal/api/presenters"
	"recipebook/pkg/favorite"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		SetFavorite(c *fiber.Ctx) error
		GetFavorite(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
		validator       *validator.Validate
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService, validator *validator.Validate) FavoriteHandler {
	return &favoriteHandler{
		favoriteService: favoriteService,
		validator:       validator,
	}
}

func (h *favoriteHandler) SetFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")
	req := new(domain.SetFavoriteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetFavorite, err)
	}

	if err := h.favoriteService.SetFavorite(c.Context(), recipeID, *req.Favorite, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSetFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetFavorite)
}

func (h *favoriteHandler) GetFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.favoriteService.GetFavorite(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorite)
}
