package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrInvalidSortField         = errors.New("invalid sort field")
	ErrFilterRequiresIdentity   = errors.New("favorites filter requires an authenticated user")
)

// Sort fields accepted by the recipe listing.
const (
	SortByTitle         = "title"
	SortByCreatedAt     = "created_at"
	SortByAverageRating = "average_rating"
)

type (
	IngredientInput struct {
		Name   string  `json:"name" validate:"required,min=3,max=15"`
		Amount float64 `json:"amount" validate:"required,gt=0"`
		Unit   string  `json:"unit" validate:"required,oneof=grams kilograms milliliters liters teaspoons tablespoons cups pieces"`
	}

	TagInput struct {
		Name string `json:"name" validate:"required"`
	}

	CreateRecipeRequest struct {
		Title       string            `json:"title" validate:"required,min=4,max=15"`
		Description string            `json:"description"`
		Directions  string            `json:"directions"`
		Yield       float64           `json:"yield"`
		Image       string            `json:"image"`
		Ingredients []IngredientInput `json:"ingredients" validate:"omitempty,dive"`
		Tags        []TagInput        `json:"tags" validate:"omitempty,dive"`
	}

	UpdateRecipeRequest struct {
		Title       string            `json:"title" validate:"required,min=4,max=15"`
		Description string            `json:"description"`
		Directions  string            `json:"directions"`
		Yield       float64           `json:"yield"`
		Image       string            `json:"image"`
		Ingredients []IngredientInput `json:"ingredients" validate:"omitempty,dive"`
		Tags        []TagInput        `json:"tags" validate:"omitempty,dive"`
	}

	// RecipeFilter fields are all optional; empty fields impose no
	// constraint. Tag and ingredient matching is existential: a recipe
	// matches when it carries at least one of the given names.
	RecipeFilter struct {
		TitleSubstring  string   `json:"title_substring"`
		TagNames        []string `json:"tag_names"`
		IngredientNames []string `json:"ingredient_names"`
		MinimumRating   float64  `json:"minimum_rating"`
		FavoritesOnly   bool     `json:"favorites_only"`
		MyRecipesOnly   bool     `json:"my_recipes_only"`
	}

	RecipeSort struct {
		Field      string `json:"field"`
		Descending bool   `json:"descending"`
	}

	RecipeIngredientResponse struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	}

	RecipeResponse struct {
		ID            string                     `json:"id"`
		UserID        string                     `json:"user_id"`
		Title         string                     `json:"title"`
		Description   string                     `json:"description"`
		Directions    string                     `json:"directions"`
		Yield         float64                    `json:"yield"`
		Image         string                     `json:"image,omitempty"`
		AverageRating float64                    `json:"average_rating"`
		Ingredients   []RecipeIngredientResponse `json:"ingredients"`
		Tags          []string                   `json:"tags"`
		CreatedAt     time.Time                  `json:"created_at"`
	}

	RecipeListResponse struct {
		Recipes []RecipeResponse `json:"recipes"`
		Total   int64            `json:"total"`
	}
)
