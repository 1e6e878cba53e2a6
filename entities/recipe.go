package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"index" json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Directions    string    `gorm:"type:text" json:"directions"`
	Yield         float64   `json:"yield"`
	Image         string    `json:"image,omitempty"`
	AverageRating float64   `gorm:"default:0" json:"average_rating"`

	User        *User              `gorm:"foreignKey:UserID"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	RecipeTags  []RecipeTag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ratings     []Rating           `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	FavoritedBy []Favorite         `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type RecipeIngredient struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID         uuid.UUID `gorm:"index" json:"recipe_id"`
	IngredientNameID uuid.UUID `json:"ingredient_name_id"`
	Amount           float64   `json:"amount"`
	Unit             string    `json:"unit"`

	Recipe         *Recipe         `gorm:"foreignKey:RecipeID"`
	IngredientName *IngredientName `gorm:"foreignKey:IngredientNameID"`
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"uniqueIndex:idx_recipe_tags_recipe_tag" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"uniqueIndex:idx_recipe_tags_recipe_tag" json:"tag_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Tag    *Tag    `gorm:"foreignKey:TagID"`
}
