package favorite

import (
	"recipebook/domain"
	"recipebook/pkg/recipe"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteService interface {
		SetFavorite(ctx context.Context, recipeID string, favorite bool, userID string) error
		GetFavorite(ctx context.Context, recipeID string, userID string) (domain.FavoriteResponse, error)
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, recipeRepository recipe.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		recipeRepository:   recipeRepository,
	}
}

func (s *favoriteService) SetFavorite(ctx context.Context, recipeID string, favorite bool, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	return s.favoriteRepository.SetFavorite(ctx, userUUID, recipeUUID, favorite)
}

func (s *favoriteService) GetFavorite(ctx context.Context, recipeID string, userID string) (domain.FavoriteResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FavoriteResponse{}, domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.FavoriteResponse{}, domain.ErrParseUUID
	}

	favorited, err := s.favoriteRepository.IsFavorite(ctx, userUUID, recipeUUID)
	if err != nil {
		return domain.FavoriteResponse{}, err
	}
	return domain.FavoriteResponse{
		RecipeID: recipeID,
		Favorite: favorited,
	}, nil
}
