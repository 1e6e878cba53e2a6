package recipe

import (
	"recipebook/domain"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// BuildFilterScopes translates the optional filter fields into a set of
// AND-combined query scopes. Tag and ingredient filters match a recipe when
// at least one of the given names is attached to it.
func BuildFilterScopes(filter domain.RecipeFilter, userID string) ([]func(*gorm.DB) *gorm.DB, error) {
	var scopes []func(*gorm.DB) *gorm.DB

	if title := strings.TrimSpace(filter.TitleSubstring); title != "" {
		pattern := "%" + strings.ToLower(title) + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(recipes.title) LIKE ?", pattern)
		})
	}

	if len(filter.TagNames) > 0 {
		tagNames := filter.TagNames
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"EXISTS (SELECT 1 FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE recipe_tags.recipe_id = recipes.id AND tags.name IN ?)",
				tagNames,
			)
		})
	}

	if len(filter.IngredientNames) > 0 {
		ingredientNames := filter.IngredientNames
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"EXISTS (SELECT 1 FROM recipe_ingredients JOIN ingredient_names ON ingredient_names.id = recipe_ingredients.ingredient_name_id WHERE recipe_ingredients.recipe_id = recipes.id AND ingredient_names.name IN ?)",
				ingredientNames,
			)
		})
	}

	if filter.MinimumRating > 0 {
		minimumRating := filter.MinimumRating
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.average_rating >= ?", minimumRating)
		})
	}

	if filter.FavoritesOnly {
		if userID == "" {
			return nil, domain.ErrFilterRequiresIdentity
		}
		favoritesUserID := userID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"EXISTS (SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)",
				favoritesUserID,
			)
		})
	}

	if filter.MyRecipesOnly {
		if userID == "" {
			return nil, domain.ErrFilterRequiresIdentity
		}
		ownerID := userID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.user_id = ?", ownerID)
		})
	}

	return scopes, nil
}

// BuildOrder maps the sort specification to an ORDER BY clause. The id
// tiebreak keeps page boundaries stable for a fixed filter and sort.
func BuildOrder(sort domain.RecipeSort) (string, error) {
	field := sort.Field
	descending := sort.Descending
	if field == "" {
		field = domain.SortByCreatedAt
		descending = true
	}

	switch field {
	case domain.SortByTitle, domain.SortByCreatedAt, domain.SortByAverageRating:
	default:
		return "", domain.ErrInvalidSortField
	}

	direction := "asc"
	if descending {
		direction = "desc"
	}
	return fmt.Sprintf("recipes.%s %s, recipes.id asc", field, direction), nil
}

func ClampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
