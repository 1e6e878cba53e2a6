package favorite

import (
	"recipebook/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteRepository interface {
		SetFavorite(ctx context.Context, userID, recipeID uuid.UUID, favorite bool) error
		IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) SetFavorite(ctx context.Context, userID, recipeID uuid.UUID, favorite bool) error {
	if !favorite {
		// No-op when there is nothing to remove.
		return r.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&entities.Favorite{}).Error
	}

	var existing entities.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error; err == nil {
		// Already favorited
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := entities.Favorite{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *favoriteRepository) IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
