package entities

import (
	"github.com/google/uuid"
)

// A user may hold at most one rating per recipe; re-rating updates the row.
type Rating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:idx_ratings_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"uniqueIndex:idx_ratings_user_recipe" json:"recipe_id"`
	Stars    int       `json:"stars"`
	Comment  string    `gorm:"type:varchar(255)" json:"comment,omitempty"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
