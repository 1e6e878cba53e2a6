package rating

import (
	"recipebook/domain"
	"context"

	"github.com/google/uuid"
)

type (
	RatingService interface {
		RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) (domain.RatingResponse, error)
		DeleteRating(ctx context.Context, recipeID string, userID string) error
	}

	ratingService struct {
		ratingRepository RatingRepository
	}
)

func NewRatingService(ratingRepository RatingRepository) RatingService {
	return &ratingService{ratingRepository: ratingRepository}
}

func (s *ratingService) RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) (domain.RatingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RatingResponse{}, domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.RatingResponse{}, domain.ErrParseUUID
	}

	rating, newAverage, err := s.ratingRepository.SaveRating(ctx, userUUID, recipeUUID, req.Stars, req.Comment)
	if err != nil {
		return domain.RatingResponse{}, err
	}

	return domain.RatingResponse{
		ID:            rating.ID.String(),
		RecipeID:      recipeID,
		Stars:         rating.Stars,
		Comment:       rating.Comment,
		AverageRating: newAverage,
		CreatedAt:     rating.CreatedAt,
	}, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, recipeID string, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	_, err = s.ratingRepository.DeleteRating(ctx, userUUID, recipeUUID)
	return err
}
