package suggest

import (
	"recipebook/domain"
	"recipebook/internal/utils"
	"context"
	"strconv"

	"github.com/google/uuid"
)

const (
	defaultMinChars = 3
	defaultLimit    = 10
	maxLimit        = 50
)

type (
	SuggestService interface {
		SuggestTags(ctx context.Context, text string, page, limit int, userID string) ([]domain.Suggestion, error)
		SuggestIngredients(ctx context.Context, text string, page, limit int, userID string) ([]domain.Suggestion, error)
	}

	suggestService struct {
		suggestRepository SuggestRepository
		minChars          int
	}
)

func NewSuggestService(suggestRepository SuggestRepository) SuggestService {
	minChars := defaultMinChars
	if configured, err := strconv.Atoi(utils.GetConfig("SUGGEST_MIN_CHARS")); err == nil && configured > 0 {
		minChars = configured
	}
	return &suggestService{
		suggestRepository: suggestRepository,
		minChars:          minChars,
	}
}

func (s *suggestService) SuggestTags(ctx context.Context, text string, page, limit int, userID string) ([]domain.Suggestion, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	// Short prompts return empty without touching the store.
	if len([]rune(text)) < s.minChars {
		return []domain.Suggestion{}, nil
	}

	page, limit = clampPagination(page, limit)
	return s.suggestRepository.SuggestTags(ctx, userUUID, text, page, limit)
}

func (s *suggestService) SuggestIngredients(ctx context.Context, text string, page, limit int, userID string) ([]domain.Suggestion, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if len([]rune(text)) < s.minChars {
		return []domain.Suggestion{}, nil
	}

	page, limit = clampPagination(page, limit)
	return s.suggestRepository.SuggestIngredients(ctx, userUUID, text, page, limit)
}

func clampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
