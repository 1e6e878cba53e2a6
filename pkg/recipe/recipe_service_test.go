package recipe

import (
	"recipebook/domain"
	"recipebook/entities"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) UploadBase64(objectKey string, data string, allowed ...string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeUploader) DeleteFile(objectKey string) error { return nil }

func (f *fakeUploader) GetObjectKeyFromLink(link string) string { return "" }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory store.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Tag{},
		&entities.IngredientName{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeTag{},
		&entities.Rating{},
		&entities.Favorite{},
	))
	return db
}

func newTestService(t *testing.T) (RecipeService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewRecipeService(NewRecipeRepository(db), &fakeUploader{url: "https://img.test/object"}), db
}

func createUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &entities.User{ID: uuid.New(), Name: "tester", Email: uuid.NewString() + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func soupRequest() domain.CreateRecipeRequest {
	return domain.CreateRecipeRequest{
		Title:       "Soup",
		Description: "simple soup",
		Directions:  "boil everything",
		Yield:       4,
		Ingredients: []domain.IngredientInput{
			{Name: "salt", Amount: 1, Unit: "grams"},
		},
		Tags: []domain.TagInput{{Name: "quick"}},
	}
}

func tagCount(t *testing.T, db *gorm.DB, name string) int {
	t.Helper()
	var tag entities.Tag
	err := db.Where("name = ?", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return -1
	}
	require.NoError(t, err)
	return tag.Count
}

func ingredientCount(t *testing.T, db *gorm.DB, name string) int {
	t.Helper()
	var row entities.IngredientName
	err := db.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return -1
	}
	require.NoError(t, err)
	return row.Count
}

func TestCreateRecipe(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db).String()

	res, err := service.CreateRecipe(context.Background(), soupRequest(), userID)
	require.NoError(t, err)

	require.Equal(t, "Soup", res.Title)
	require.Equal(t, float64(0), res.AverageRating)
	require.Len(t, res.Ingredients, 1)
	require.Equal(t, "salt", res.Ingredients[0].Name)
	require.Equal(t, []string{"quick"}, res.Tags)

	require.Equal(t, 1, ingredientCount(t, db, "salt"))
	require.Equal(t, 1, tagCount(t, db, "quick"))
}

func TestCreateRecipeSharedNames(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db).String()

	_, err := service.CreateRecipe(context.Background(), soupRequest(), userID)
	require.NoError(t, err)

	second := soupRequest()
	second.Title = "Salty"
	_, err = service.CreateRecipe(context.Background(), second, userID)
	require.NoError(t, err)

	require.Equal(t, 2, ingredientCount(t, db, "salt"))
	require.Equal(t, 2, tagCount(t, db, "quick"))

	var names int64
	require.NoError(t, db.Model(&entities.IngredientName{}).Count(&names).Error)
	require.Equal(t, int64(1), names)
}

func TestCreateRecipeOwnerScopedNames(t *testing.T) {
	service, db := newTestService(t)
	first := createUser(t, db).String()
	second := createUser(t, db).String()

	_, err := service.CreateRecipe(context.Background(), soupRequest(), first)
	require.NoError(t, err)
	_, err = service.CreateRecipe(context.Background(), soupRequest(), second)
	require.NoError(t, err)

	// Each owner holds a private registry of names.
	var names int64
	require.NoError(t, db.Model(&entities.IngredientName{}).Where("name = ?", "salt").Count(&names).Error)
	require.Equal(t, int64(2), names)
}

func TestCreateRecipeImageFallback(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db).String()

	failing := NewRecipeService(NewRecipeRepository(db), &fakeUploader{err: errors.New("bucket unavailable")})
	req := soupRequest()
	req.Image = "raw-base64-payload"

	res, err := failing.CreateRecipe(context.Background(), req, userID)
	require.NoError(t, err)
	require.Equal(t, "raw-base64-payload", res.Image)

	working := NewRecipeService(NewRecipeRepository(db), &fakeUploader{url: "https://img.test/soup"})
	req.Title = "Soup Two"
	res, err = working.CreateRecipe(context.Background(), req, userID)
	require.NoError(t, err)
	require.Equal(t, "https://img.test/soup", res.Image)
}

func TestUpdateRecipeReconciliation(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db).String()

	req := domain.CreateRecipeRequest{
		Title: "Stew",
		Ingredients: []domain.IngredientInput{
			{Name: "salt", Amount: 1, Unit: "grams"},
			{Name: "pepper", Amount: 2, Unit: "grams"},
		},
		Tags: []domain.TagInput{{Name: "quick"}, {Name: "easy"}},
	}
	created, err := service.CreateRecipe(context.Background(), req, userID)
	require.NoError(t, err)

	update := domain.UpdateRecipeRequest{
		Title: "Stew Two",
		Yield: 6,
		Ingredients: []domain.IngredientInput{
			{Name: "salt", Amount: 3, Unit: "kilograms"},
			{Name: "chili", Amount: 1, Unit: "pieces"},
		},
		Tags: []domain.TagInput{{Name: "quick"}},
	}
	updated, err := service.UpdateRecipe(context.Background(), created.ID, update, userID)
	require.NoError(t, err)

	require.Equal(t, "Stew Two", updated.Title)
	require.Equal(t, float64(6), updated.Yield)
	require.Len(t, updated.Ingredients, 2)
	require.Equal(t, []string{"quick"}, updated.Tags)

	// Dereferenced names lose a count, new names gain one, retained stay.
	require.Equal(t, 1, ingredientCount(t, db, "salt"))
	require.Equal(t, 0, ingredientCount(t, db, "pepper"))
	require.Equal(t, 1, ingredientCount(t, db, "chili"))
	require.Equal(t, 1, tagCount(t, db, "quick"))
	require.Equal(t, 0, tagCount(t, db, "easy"))

	for _, ingredient := range updated.Ingredients {
		if ingredient.Name == "salt" {
			require.Equal(t, float64(3), ingredient.Amount)
			require.Equal(t, "kilograms", ingredient.Unit)
		}
	}
}

func TestUpdateRecipeNotFound(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db).String()

	_, err := service.UpdateRecipe(context.Background(), uuid.NewString(), domain.UpdateRecipeRequest{Title: "Nope"}, userID)
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestUpdateRecipeUnauthorized(t *testing.T) {
	service, db := newTestService(t)
	owner := createUser(t, db).String()
	intruder := createUser(t, db).String()

	created, err := service.CreateRecipe(context.Background(), soupRequest(), owner)
	require.NoError(t, err)

	_, err = service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{Title: "Steal"}, intruder)
	require.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)
}

func TestDeleteRecipe(t *testing.T) {
	service, db := newTestService(t)
	userUUID := createUser(t, db)
	userID := userUUID.String()

	created, err := service.CreateRecipe(context.Background(), soupRequest(), userID)
	require.NoError(t, err)

	recipeUUID := uuid.MustParse(created.ID)
	require.NoError(t, db.Create(&entities.Rating{ID: uuid.New(), UserID: userUUID, RecipeID: recipeUUID, Stars: 5}).Error)
	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: userUUID, RecipeID: recipeUUID}).Error)

	require.NoError(t, service.DeleteRecipe(context.Background(), created.ID, userID))

	require.Equal(t, 0, ingredientCount(t, db, "salt"))
	require.Equal(t, 0, tagCount(t, db, "quick"))

	for _, model := range []interface{}{
		&entities.Recipe{}, &entities.RecipeIngredient{}, &entities.RecipeTag{},
		&entities.Rating{}, &entities.Favorite{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Equal(t, int64(0), count)
	}
}

func TestDeleteRecipeUnauthorized(t *testing.T) {
	service, db := newTestService(t)
	owner := createUser(t, db).String()
	intruder := createUser(t, db).String()

	created, err := service.CreateRecipe(context.Background(), soupRequest(), owner)
	require.NoError(t, err)

	err = service.DeleteRecipe(context.Background(), created.ID, intruder)
	require.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	require.Equal(t, 1, ingredientCount(t, db, "salt"))
}

func TestDeleteRecipeNotFound(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db).String()

	err := service.DeleteRecipe(context.Background(), uuid.NewString(), userID)
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipeRollsBackOnFailure(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db).String()

	created, err := service.CreateRecipe(context.Background(), soupRequest(), userID)
	require.NoError(t, err)

	// Breaking a table mid-way must leave counters and the recipe intact.
	require.NoError(t, db.Migrator().DropTable(&entities.Rating{}))

	err = service.DeleteRecipe(context.Background(), created.ID, userID)
	require.Error(t, err)

	require.Equal(t, 1, ingredientCount(t, db, "salt"))
	require.Equal(t, 1, tagCount(t, db, "quick"))

	var recipes int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&recipes).Error)
	require.Equal(t, int64(1), recipes)
}
