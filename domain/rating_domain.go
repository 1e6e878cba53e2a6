package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRateRecipe   = "recipe rated successfully"
	MessageSuccessDeleteRating = "rating removed successfully"

	MessageFailedRateRecipe   = "failed to rate recipe"
	MessageFailedDeleteRating = "failed to remove rating"

	ErrRatingNotFound = errors.New("rating not found")
)

type (
	RateRecipeRequest struct {
		Stars   int    `json:"stars" validate:"required,min=1,max=5"`
		Comment string `json:"comment" validate:"max=255"`
	}

	RatingResponse struct {
		ID            string    `json:"id"`
		RecipeID      string    `json:"recipe_id"`
		Stars         int       `json:"stars"`
		Comment       string    `json:"comment,omitempty"`
		AverageRating float64   `json:"average_rating"`
		CreatedAt     time.Time `json:"created_at"`
	}
)
