package rating

import (
	"recipebook/domain"
	"recipebook/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RatingRepository interface {
		GetRating(ctx context.Context, userID, recipeID uuid.UUID) (*entities.Rating, error)
		// SaveRating inserts or replaces the caller's rating and returns
		// the recipe's new average.
		SaveRating(ctx context.Context, userID, recipeID uuid.UUID, stars int, comment string) (*entities.Rating, float64, error)
		// DeleteRating removes the caller's rating and returns the
		// recipe's new average.
		DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) (float64, error)
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetRating(ctx context.Context, userID, recipeID uuid.UUID) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// SaveRating runs the whole rate/re-rate transition in one transaction with
// the recipe row locked, so two concurrent raters never compute the new
// average from the same stale base.
func (r *ratingRepository) SaveRating(ctx context.Context, userID, recipeID uuid.UUID, stars int, comment string) (*entities.Rating, float64, error) {
	var saved *entities.Rating
	var newAverage float64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}

		var ratingCount int64
		if err := tx.Model(&entities.Rating{}).
			Where("recipe_id = ?", recipeID).
			Count(&ratingCount).Error; err != nil {
			return err
		}

		var existing entities.Rating
		err = tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating := &entities.Rating{
				ID:       uuid.New(),
				UserID:   userID,
				RecipeID: recipeID,
				Stars:    stars,
				Comment:  comment,
			}
			if err := tx.Create(rating).Error; err != nil {
				return err
			}
			newAverage = (recipe.AverageRating*float64(ratingCount) + float64(stars)) / float64(ratingCount+1)
			saved = rating
		case err != nil:
			return err
		default:
			if existing.Stars == stars && existing.Comment == comment {
				newAverage = recipe.AverageRating
				saved = &existing
				return nil
			}
			previousStars := existing.Stars
			existing.Stars = stars
			existing.Comment = comment
			if err := tx.Model(&entities.Rating{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"stars":   stars,
					"comment": comment,
				}).Error; err != nil {
				return err
			}
			saved = &existing
			if previousStars == stars {
				// Comment-only change; the average is untouched.
				newAverage = recipe.AverageRating
				return nil
			}
			newAverage = (recipe.AverageRating*float64(ratingCount) - float64(previousStars) + float64(stars)) / float64(ratingCount)
		}

		return tx.Model(&entities.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn("average_rating", newAverage).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return saved, newAverage, nil
}

func (r *ratingRepository) DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) (float64, error) {
	var newAverage float64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockRecipe(tx, recipeID)
		if err != nil {
			return err
		}

		var rating entities.Rating
		if err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			First(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRatingNotFound
			}
			return err
		}

		var ratingCount int64
		if err := tx.Model(&entities.Rating{}).
			Where("recipe_id = ?", recipeID).
			Count(&ratingCount).Error; err != nil {
			return err
		}

		if err := tx.Where("id = ?", rating.ID).Delete(&entities.Rating{}).Error; err != nil {
			return err
		}

		if ratingCount <= 1 {
			// Zero-rating floor, not NaN.
			newAverage = 0
		} else {
			newAverage = (recipe.AverageRating*float64(ratingCount) - float64(rating.Stars)) / float64(ratingCount-1)
		}

		return tx.Model(&entities.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn("average_rating", newAverage).Error
	})
	if err != nil {
		return 0, err
	}
	return newAverage, nil
}

// lockRecipe loads the recipe under a row lock on postgres. SQLite has no
// FOR UPDATE and serializes writers on its own.
func lockRecipe(tx *gorm.DB, recipeID uuid.UUID) (*entities.Recipe, error) {
	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var recipe entities.Recipe
	if err := query.Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}
