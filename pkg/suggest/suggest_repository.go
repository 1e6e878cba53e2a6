package suggest

import (
	"recipebook/domain"
	"recipebook/entities"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SuggestRepository interface {
		SuggestTags(ctx context.Context, userID uuid.UUID, prefix string, page, limit int) ([]domain.Suggestion, error)
		SuggestIngredients(ctx context.Context, userID uuid.UUID, prefix string, page, limit int) ([]domain.Suggestion, error)
	}

	suggestRepository struct {
		db *gorm.DB
	}
)

func NewSuggestRepository(db *gorm.DB) SuggestRepository {
	return &suggestRepository{db: db}
}

func (r *suggestRepository) SuggestTags(ctx context.Context, userID uuid.UUID, prefix string, page, limit int) ([]domain.Suggestion, error) {
	suggestions := []domain.Suggestion{}
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Select("name", "count").
		Where(`user_id = ? AND name LIKE ? ESCAPE '\' AND count > 0`, userID, likePrefix(prefix)).
		Order("count desc, name asc").
		Offset(offset).
		Limit(limit).
		Scan(&suggestions).Error; err != nil {
		return nil, err
	}

	return suggestions, nil
}

func (r *suggestRepository) SuggestIngredients(ctx context.Context, userID uuid.UUID, prefix string, page, limit int) ([]domain.Suggestion, error) {
	suggestions := []domain.Suggestion{}
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.IngredientName{}).
		Select("name", "count").
		Where(`user_id = ? AND name LIKE ? ESCAPE '\' AND count > 0`, userID, likePrefix(prefix)).
		Order("count desc, name asc").
		Offset(offset).
		Limit(limit).
		Scan(&suggestions).Error; err != nil {
		return nil, err
	}

	return suggestions, nil
}

func likePrefix(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "%"
}
