package handlers

import (
	"recipebook/domain"
	"recipebook/internal/api/presenters"
	"recipebook/pkg/suggest"

	"github.com/gofiber/fiber/v2"
)

type (
	SuggestHandler interface {
		SuggestTags(c *fiber.Ctx) error
		SuggestIngredients(c *fiber.Ctx) error
	}

	suggestHandler struct {
		suggestService suggest.SuggestService
	}
)

func NewSuggestHandler(suggestService suggest.SuggestService) SuggestHandler {
	return &suggestHandler{suggestService: suggestService}
}

func (h *suggestHandler) SuggestTags(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	text := c.Query("text")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	res, err := h.suggestService.SuggestTags(c.Context(), text, page, limit, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSuggestTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestTags)
}

func (h *suggestHandler) SuggestIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	text := c.Query("text")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	res, err := h.suggestService.SuggestIngredients(c.Context(), text, page, limit, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSuggestIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestIngredients)
}
