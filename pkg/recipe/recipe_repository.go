package recipe

import (
	"recipebook/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// IngredientLine is a requested ingredient reference before its
	// owner-scoped IngredientName row has been resolved.
	IngredientLine struct {
		Name   string
		Amount float64
		Unit   string
	}

	ListRecipesQuery struct {
		Scopes []func(*gorm.DB) *gorm.DB
		Order  string
		Page   int
		Limit  int
	}

	RecipeRepository interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, query ListRecipesQuery) ([]*entities.Recipe, int64, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []IngredientLine, tagNames []string) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, lines []IngredientLine, tagNames []string) error
		DeleteRecipe(ctx context.Context, id string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients.IngredientName").
		Preload("RecipeTags.Tag").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query ListRecipesQuery) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	offset := (query.Page - 1) * query.Limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(query.Scopes...).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(query.Scopes...).
		Preload("Ingredients.IngredientName").
		Preload("RecipeTags.Tag").
		Order(query.Order).
		Offset(offset).
		Limit(query.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []IngredientLine, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		for _, line := range lines {
			nameID, err := connectOrCreateIngredientName(tx, recipe.UserID, line.Name)
			if err != nil {
				return err
			}
			ingredient := &entities.RecipeIngredient{
				ID:               uuid.New(),
				RecipeID:         recipe.ID,
				IngredientNameID: nameID,
				Amount:           line.Amount,
				Unit:             line.Unit,
			}
			if err := tx.Create(ingredient).Error; err != nil {
				return err
			}
		}

		for _, tagName := range tagNames {
			tagID, err := connectOrCreateTag(tx, recipe.UserID, tagName)
			if err != nil {
				return err
			}
			recipeTag := &entities.RecipeTag{
				ID:       uuid.New(),
				RecipeID: recipe.ID,
				TagID:    tagID,
			}
			if err := tx.Create(recipeTag).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, lines []IngredientLine, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRecipe(tx, recipe.ID); err != nil {
			return err
		}

		// average_rating is deliberately left out: it belongs to the
		// rating transaction and may have moved since this recipe was read.
		if err := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"title":       recipe.Title,
				"description": recipe.Description,
				"directions":  recipe.Directions,
				"yield":       recipe.Yield,
				"image":       recipe.Image,
			}).Error; err != nil {
			return err
		}

		if err := reconcileIngredients(tx, recipe, lines); err != nil {
			return err
		}
		return reconcileTags(tx, recipe, tagNames)
	})
}

func reconcileIngredients(tx *gorm.DB, recipe *entities.Recipe, lines []IngredientLine) error {
	var current []entities.RecipeIngredient
	if err := tx.Preload("IngredientName").
		Where("recipe_id = ?", recipe.ID).
		Find(&current).Error; err != nil {
		return err
	}

	requested := make(map[string]IngredientLine, len(lines))
	for _, line := range lines {
		requested[line.Name] = line
	}

	kept := make(map[string]bool, len(current))
	for _, ingredient := range current {
		name := ingredient.IngredientName.Name
		line, wanted := requested[name]
		if !wanted {
			result := tx.Where("id = ?", ingredient.ID).Delete(&entities.RecipeIngredient{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				if err := decrementCount(tx, &entities.IngredientName{}, ingredient.IngredientNameID); err != nil {
					return err
				}
			}
			continue
		}
		kept[name] = true
		if err := tx.Model(&entities.RecipeIngredient{}).
			Where("id = ?", ingredient.ID).
			Updates(map[string]interface{}{
				"amount": line.Amount,
				"unit":   line.Unit,
			}).Error; err != nil {
			return err
		}
	}

	for _, line := range lines {
		if kept[line.Name] {
			continue
		}
		nameID, err := connectOrCreateIngredientName(tx, recipe.UserID, line.Name)
		if err != nil {
			return err
		}
		ingredient := &entities.RecipeIngredient{
			ID:               uuid.New(),
			RecipeID:         recipe.ID,
			IngredientNameID: nameID,
			Amount:           line.Amount,
			Unit:             line.Unit,
		}
		if err := tx.Create(ingredient).Error; err != nil {
			return err
		}
	}

	return nil
}

func reconcileTags(tx *gorm.DB, recipe *entities.Recipe, tagNames []string) error {
	var current []entities.RecipeTag
	if err := tx.Preload("Tag").
		Where("recipe_id = ?", recipe.ID).
		Find(&current).Error; err != nil {
		return err
	}

	requested := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		requested[name] = true
	}

	kept := make(map[string]bool, len(current))
	for _, recipeTag := range current {
		name := recipeTag.Tag.Name
		if !requested[name] {
			result := tx.Where("id = ?", recipeTag.ID).Delete(&entities.RecipeTag{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				if err := decrementCount(tx, &entities.Tag{}, recipeTag.TagID); err != nil {
					return err
				}
			}
			continue
		}
		kept[name] = true
	}

	for _, name := range tagNames {
		if kept[name] {
			continue
		}
		tagID, err := connectOrCreateTag(tx, recipe.UserID, name)
		if err != nil {
			return err
		}
		recipeTag := &entities.RecipeTag{
			ID:       uuid.New(),
			RecipeID: recipe.ID,
			TagID:    tagID,
		}
		if err := tx.Create(recipeTag).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe entities.Recipe
		if err := tx.Preload("Ingredients").
			Preload("RecipeTags").
			Where("id = ?", id).
			First(&recipe).Error; err != nil {
			return err
		}
		if err := lockRecipe(tx, recipe.ID); err != nil {
			return err
		}

		for _, ingredient := range recipe.Ingredients {
			if err := decrementCount(tx, &entities.IngredientName{}, ingredient.IngredientNameID); err != nil {
				return err
			}
		}
		for _, recipeTag := range recipe.RecipeTags {
			if err := decrementCount(tx, &entities.Tag{}, recipeTag.TagID); err != nil {
				return err
			}
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", recipe.ID).Delete(&entities.Recipe{}).Error
	})
}

// connectOrCreateIngredientName resolves the owner-scoped name, creating it
// on first use, and bumps its reference count. The count bump runs as a SQL
// expression so concurrent writers never read a stale base.
func connectOrCreateIngredientName(tx *gorm.DB, userID uuid.UUID, name string) (uuid.UUID, error) {
	row := &entities.IngredientName{ID: uuid.New(), UserID: userID, Name: name}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(row).Error; err != nil {
		return uuid.Nil, err
	}

	var existing entities.IngredientName
	if err := tx.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err != nil {
		return uuid.Nil, err
	}

	if err := tx.Model(&entities.IngredientName{}).
		Where("id = ?", existing.ID).
		UpdateColumn("count", gorm.Expr("count + ?", 1)).Error; err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

func connectOrCreateTag(tx *gorm.DB, userID uuid.UUID, name string) (uuid.UUID, error) {
	row := &entities.Tag{ID: uuid.New(), UserID: userID, Name: name}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(row).Error; err != nil {
		return uuid.Nil, err
	}

	var existing entities.Tag
	if err := tx.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err != nil {
		return uuid.Nil, err
	}

	if err := tx.Model(&entities.Tag{}).
		Where("id = ?", existing.ID).
		UpdateColumn("count", gorm.Expr("count + ?", 1)).Error; err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

func decrementCount(tx *gorm.DB, model interface{}, id uuid.UUID) error {
	return tx.Model(model).
		Where("id = ?", id).
		UpdateColumn("count", gorm.Expr("count - ?", 1)).Error
}

// lockRecipe serializes read-modify-write transactions on one recipe.
// SQLite has no FOR UPDATE and serializes writers on its own.
func lockRecipe(tx *gorm.DB, id uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	var recipe entities.Recipe
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&recipe).Error
}
