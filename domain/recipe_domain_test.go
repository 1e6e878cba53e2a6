package domain

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func validRecipeRequest() CreateRecipeRequest {
	return CreateRecipeRequest{
		Title: "Tomato Soup",
		Ingredients: []IngredientInput{
			{Name: "tomato", Amount: 2, Unit: "pieces"},
		},
		Tags: []TagInput{{Name: "quick"}},
	}
}

func TestCreateRecipeRequestValidation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		mutate  func(*CreateRecipeRequest)
		wantErr bool
	}{
		{name: "valid request", mutate: func(r *CreateRecipeRequest) {}},
		{name: "no ingredients or tags is fine", mutate: func(r *CreateRecipeRequest) {
			r.Ingredients = nil
			r.Tags = nil
		}},
		{name: "title required", mutate: func(r *CreateRecipeRequest) { r.Title = "" }, wantErr: true},
		{name: "title too short", mutate: func(r *CreateRecipeRequest) { r.Title = "abc" }, wantErr: true},
		{name: "title too long", mutate: func(r *CreateRecipeRequest) { r.Title = "a very long recipe title" }, wantErr: true},
		{name: "ingredient name too short", mutate: func(r *CreateRecipeRequest) {
			r.Ingredients[0].Name = "ab"
		}, wantErr: true},
		{name: "ingredient amount must be positive", mutate: func(r *CreateRecipeRequest) {
			r.Ingredients[0].Amount = 0
		}, wantErr: true},
		{name: "unit outside the catalog", mutate: func(r *CreateRecipeRequest) {
			r.Ingredients[0].Unit = "handfuls"
		}, wantErr: true},
		{name: "empty tag name", mutate: func(r *CreateRecipeRequest) {
			r.Tags[0].Name = ""
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRecipeRequest()
			tt.mutate(&req)
			err := validate.Struct(req)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRateRecipeRequestValidation(t *testing.T) {
	validate := validator.New()

	require.NoError(t, validate.Struct(RateRecipeRequest{Stars: 5, Comment: "great"}))
	require.Error(t, validate.Struct(RateRecipeRequest{Stars: 0}))
	require.Error(t, validate.Struct(RateRecipeRequest{Stars: 6}))
}
