package rating

import (
	"recipebook/domain"
	"recipebook/entities"
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

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

func seedRecipe(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	owner := &entities.User{ID: uuid.New(), Name: "owner", Email: uuid.NewString() + "@example.com", Password: "x"}
	require.NoError(t, db.Create(owner).Error)
	recipe := &entities.Recipe{ID: uuid.New(), UserID: owner.ID, Title: "Soup"}
	require.NoError(t, db.Create(recipe).Error)
	return owner.ID, recipe.ID
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &entities.User{ID: uuid.New(), Name: "rater", Email: uuid.NewString() + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func storedAverage(t *testing.T, db *gorm.DB, recipeID uuid.UUID) float64 {
	t.Helper()
	var recipe entities.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", recipeID).Error)
	return recipe.AverageRating
}

func TestRateThenRerate(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	userID, recipeID := seedRecipe(t, db)

	res, err := service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: 4}, userID.String())
	require.NoError(t, err)
	require.Equal(t, float64(4), res.AverageRating)

	res, err = service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: 2}, userID.String())
	require.NoError(t, err)
	require.Equal(t, float64(2), res.AverageRating)
	require.Equal(t, float64(2), storedAverage(t, db, recipeID))

	// One rating row per user and recipe regardless of how often they re-rate.
	var count int64
	require.NoError(t, db.Model(&entities.Rating{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestTwoRatersThenRemoveOne(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	first, recipeID := seedRecipe(t, db)
	second := seedUser(t, db)

	_, err := service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: 5}, first.String())
	require.NoError(t, err)
	res, err := service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: 3}, second.String())
	require.NoError(t, err)
	require.Equal(t, float64(4), res.AverageRating)

	require.NoError(t, service.DeleteRating(context.Background(), recipeID.String(), first.String()))
	require.Equal(t, float64(3), storedAverage(t, db, recipeID))
}

func TestLastRatingRemovedResetsAverage(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	userID, recipeID := seedRecipe(t, db)

	_, err := service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: 5}, userID.String())
	require.NoError(t, err)

	require.NoError(t, service.DeleteRating(context.Background(), recipeID.String(), userID.String()))
	require.Equal(t, float64(0), storedAverage(t, db, recipeID))
}

func TestCommentOnlyUpdateKeepsAverage(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	userID, recipeID := seedRecipe(t, db)

	_, err := service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: 4, Comment: "fine"}, userID.String())
	require.NoError(t, err)

	res, err := service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: 4, Comment: "actually great"}, userID.String())
	require.NoError(t, err)
	require.Equal(t, "actually great", res.Comment)
	require.Equal(t, float64(4), storedAverage(t, db, recipeID))
}

func TestRateMissingRecipe(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	userID := seedUser(t, db)

	_, err := service.RateRecipe(context.Background(), uuid.NewString(), domain.RateRecipeRequest{Stars: 3}, userID.String())
	require.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteMissingRating(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	userID, recipeID := seedRecipe(t, db)

	err := service.DeleteRating(context.Background(), recipeID.String(), userID.String())
	require.ErrorIs(t, err, domain.ErrRatingNotFound)
}

// TestIncrementalAverageMatchesRecompute drives a random sequence of rate,
// re-rate and unrate calls and checks after every step that the maintained
// average equals the mean recomputed from the rating rows.
func TestIncrementalAverageMatchesRecompute(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	_, recipeID := seedRecipe(t, db)

	raters := make([]uuid.UUID, 5)
	for i := range raters {
		raters[i] = seedUser(t, db)
	}

	rng := rand.New(rand.NewSource(42))
	expected := make(map[uuid.UUID]int)

	for step := 0; step < 50; step++ {
		rater := raters[rng.Intn(len(raters))]

		if rng.Intn(4) == 0 {
			err := service.DeleteRating(context.Background(), recipeID.String(), rater.String())
			if _, rated := expected[rater]; rated {
				require.NoError(t, err, "step %d", step)
				delete(expected, rater)
			} else {
				require.ErrorIs(t, err, domain.ErrRatingNotFound, "step %d", step)
			}
		} else {
			stars := 1 + rng.Intn(5)
			_, err := service.RateRecipe(context.Background(), recipeID.String(), domain.RateRecipeRequest{Stars: stars}, rater.String())
			require.NoError(t, err, "step %d", step)
			expected[rater] = stars
		}

		want := 0.0
		if len(expected) > 0 {
			sum := 0
			for _, stars := range expected {
				sum += stars
			}
			want = float64(sum) / float64(len(expected))
		}
		require.InDelta(t, want, storedAverage(t, db, recipeID), 1e-9,
			fmt.Sprintf("step %d with %d ratings", step, len(expected)))
	}
}
