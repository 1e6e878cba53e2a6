package recipe

import (
	"recipebook/domain"
	"recipebook/entities"
	"recipebook/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, sort domain.RecipeSort, page, limit int, userID string) (domain.RecipeListResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipeID := uuid.New()

	// Image upload is best-effort: on failure the raw input is stored
	// unchanged so recipe creation never blocks on the image service.
	image := req.Image
	if image != "" {
		objectKey := fmt.Sprintf("recipes/%s", recipeID)
		url, uploadErr := s.s3.UploadBase64(objectKey, image, storage.AllowImage...)
		if uploadErr != nil {
			log.Printf("image upload failed, keeping raw input: %v", uploadErr)
		} else {
			image = url
		}
	}

	recipe := &entities.Recipe{
		ID:            recipeID,
		UserID:        userUUID,
		Title:         req.Title,
		Description:   req.Description,
		Directions:    req.Directions,
		Yield:         req.Yield,
		Image:         image,
		AverageRating: 0,
	}

	lines := normalizeIngredients(req.Ingredients)
	tagNames := normalizeTags(req.Tags)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, lines, tagNames); err != nil {
		return domain.RecipeResponse{}, err
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(created), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, sort domain.RecipeSort, page, limit int, userID string) (domain.RecipeListResponse, error) {
	scopes, err := BuildFilterScopes(filter, userID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	order, err := BuildOrder(sort)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	page, limit = ClampPagination(page, limit)

	recipes, total, err := s.recipeRepository.GetRecipes(ctx, ListRecipesQuery{
		Scopes: scopes,
		Order:  order,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	response := domain.RecipeListResponse{
		Recipes: make([]domain.RecipeResponse, 0, len(recipes)),
		Total:   total,
	}
	for _, recipe := range recipes {
		response.Recipes = append(response.Recipes, toRecipeResponse(recipe))
	}
	return response, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	if recipe.UserID.String() != userID {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.Directions = req.Directions
	recipe.Yield = req.Yield
	recipe.Image = req.Image

	lines := normalizeIngredients(req.Ingredients)
	tagNames := normalizeTags(req.Tags)

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, lines, tagNames); err != nil {
		return domain.RecipeResponse{}, err
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(updated), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.UserID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

// normalizeIngredients drops duplicate names, keeping the last occurrence.
func normalizeIngredients(inputs []domain.IngredientInput) []IngredientLine {
	byName := make(map[string]int, len(inputs))
	lines := make([]IngredientLine, 0, len(inputs))
	for _, input := range inputs {
		line := IngredientLine{Name: input.Name, Amount: input.Amount, Unit: input.Unit}
		if i, seen := byName[input.Name]; seen {
			lines[i] = line
			continue
		}
		byName[input.Name] = len(lines)
		lines = append(lines, line)
	}
	return lines
}

func normalizeTags(inputs []domain.TagInput) []string {
	seen := make(map[string]bool, len(inputs))
	names := make([]string, 0, len(inputs))
	for _, input := range inputs {
		if seen[input.Name] {
			continue
		}
		seen[input.Name] = true
		names = append(names, input.Name)
	}
	return names
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		name := ""
		if ingredient.IngredientName != nil {
			name = ingredient.IngredientName.Name
		}
		ingredients = append(ingredients, domain.RecipeIngredientResponse{
			Name:   name,
			Amount: ingredient.Amount,
			Unit:   ingredient.Unit,
		})
	}

	tags := make([]string, 0, len(recipe.RecipeTags))
	for _, recipeTag := range recipe.RecipeTags {
		if recipeTag.Tag != nil {
			tags = append(tags, recipeTag.Tag.Name)
		}
	}

	return domain.RecipeResponse{
		ID:            recipe.ID.String(),
		UserID:        recipe.UserID.String(),
		Title:         recipe.Title,
		Description:   recipe.Description,
		Directions:    recipe.Directions,
		Yield:         recipe.Yield,
		Image:         recipe.Image,
		AverageRating: recipe.AverageRating,
		Ingredients:   ingredients,
		Tags:          tags,
		CreatedAt:     recipe.CreatedAt,
	}
}
