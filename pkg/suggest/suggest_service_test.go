package suggest

import (
	"recipebook/domain"
	"recipebook/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (SuggestService, *gorm.DB) {
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
	))

	return NewSuggestService(NewSuggestRepository(db)), db
}

func seedTags(t *testing.T, db *gorm.DB, userID uuid.UUID, counts map[string]int) {
	t.Helper()
	for name, count := range counts {
		require.NoError(t, db.Create(&entities.Tag{
			ID:     uuid.New(),
			UserID: userID,
			Name:   name,
			Count:  count,
		}).Error)
	}
}

func TestSuggestTags(t *testing.T) {
	service, db := newTestService(t)
	userID := uuid.New()
	otherID := uuid.New()

	seedTags(t, db, userID, map[string]int{
		"quick":      3,
		"quiche-ish": 7,
		"quinoa":     3,
		"hearty":     9,
		"quitted":    0,
	})
	seedTags(t, db, otherID, map[string]int{"quilted": 5})

	got, err := service.SuggestTags(context.Background(), "qui", 1, 10, userID.String())
	require.NoError(t, err)

	// Highest count first, ties by name; zero-count and foreign names excluded.
	require.Equal(t, []domain.Suggestion{
		{Name: "quiche-ish", Count: 7},
		{Name: "quick", Count: 3},
		{Name: "quinoa", Count: 3},
	}, got)
}

func TestSuggestShortTextSkipsQuery(t *testing.T) {
	service, db := newTestService(t)
	userID := uuid.New()
	seedTags(t, db, userID, map[string]int{"qs": 4})

	got, err := service.SuggestTags(context.Background(), "qs", 1, 10, userID.String())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSuggestEscapesWildcards(t *testing.T) {
	service, db := newTestService(t)
	userID := uuid.New()
	seedTags(t, db, userID, map[string]int{
		"100%_real": 2,
		"100s":      5,
	})

	got, err := service.SuggestTags(context.Background(), "100%", 1, 10, userID.String())
	require.NoError(t, err)
	require.Equal(t, []domain.Suggestion{{Name: "100%_real", Count: 2}}, got)
}

func TestSuggestIngredients(t *testing.T) {
	service, db := newTestService(t)
	userID := uuid.New()

	for name, count := range map[string]int{"salt": 4, "salmon": 2, "sugar": 6} {
		require.NoError(t, db.Create(&entities.IngredientName{
			ID:     uuid.New(),
			UserID: userID,
			Name:   name,
			Count:  count,
		}).Error)
	}

	got, err := service.SuggestIngredients(context.Background(), "sal", 1, 10, userID.String())
	require.NoError(t, err)
	require.Equal(t, []domain.Suggestion{
		{Name: "salt", Count: 4},
		{Name: "salmon", Count: 2},
	}, got)
}

func TestSuggestPagination(t *testing.T) {
	service, db := newTestService(t)
	userID := uuid.New()
	seedTags(t, db, userID, map[string]int{
		"quick-a": 5,
		"quick-b": 4,
		"quick-c": 3,
	})

	page2, err := service.SuggestTags(context.Background(), "quick", 2, 2, userID.String())
	require.NoError(t, err)
	require.Equal(t, []domain.Suggestion{{Name: "quick-c", Count: 3}}, page2)
}

func TestSuggestInvalidUser(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.SuggestTags(context.Background(), "quick", 1, 10, "nope")
	require.ErrorIs(t, err, domain.ErrParseUUID)
}
