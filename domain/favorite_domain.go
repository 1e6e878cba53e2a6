package domain

var (
	MessageSuccessSetFavorite = "favorite updated successfully"
	MessageSuccessGetFavorite = "success get favorite"

	MessageFailedSetFavorite = "failed to update favorite"
	MessageFailedGetFavorite = "failed to get favorite"
)

type (
	SetFavoriteRequest struct {
		Favorite *bool `json:"favorite" validate:"required"`
	}

	FavoriteResponse struct {
		RecipeID string `json:"recipe_id"`
		Favorite bool   `json:"favorite"`
	}
)
