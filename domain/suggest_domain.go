package domain

var (
	MessageSuccessSuggestTags        = "success get tag suggestions"
	MessageSuccessSuggestIngredients = "success get ingredient suggestions"

	MessageFailedSuggestTags        = "failed to get tag suggestions"
	MessageFailedSuggestIngredients = "failed to get ingredient suggestions"
)

type Suggestion struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
