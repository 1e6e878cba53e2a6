package handlers

import (
	"recipebook/domain"
	"recipebook/internal/api/presenters"
	"recipebook/pkg/rating"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RatingHandler interface {
		RateRecipe(c *fiber.Ctx) error
		DeleteRating(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService rating.RatingService
		validator     *validator.Validate
	}
)

func NewRatingHandler(ratingService rating.RatingService, validator *validator.Validate) RatingHandler {
	return &ratingHandler{
		ratingService: ratingService,
		validator:     validator,
	}
}

func (h *ratingHandler) RateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")
	req := new(domain.RateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRateRecipe, err)
	}

	res, err := h.ratingService.RateRecipe(c.Context(), recipeID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRateRecipe)
}

func (h *ratingHandler) DeleteRating(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.ratingService.DeleteRating(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteRating, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRating)
}
