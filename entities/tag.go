package entities

import (
	"github.com/google/uuid"
)

// Tag and IngredientName are owner-scoped registries. Count tracks how many
// recipes currently reference the name and must never go negative.
type Tag struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"uniqueIndex:idx_tags_user_name" json:"user_id"`
	Name   string    `gorm:"uniqueIndex:idx_tags_user_name" json:"name"`
	Count  int       `gorm:"default:0" json:"count"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type IngredientName struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"uniqueIndex:idx_ingredient_names_user_name" json:"user_id"`
	Name   string    `gorm:"uniqueIndex:idx_ingredient_names_user_name" json:"name"`
	Count  int       `gorm:"default:0" json:"count"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
