package usecase

import (
	"testing"

	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecipes = []model.Recipe{
	{ID: 1, Title: "Борщ", Ingredients: []int64{1, 2, 4}},
	{ID: 2, Title: "Плов", Ingredients: []int64{2, 4}},
	{ID: 3, Title: "Салат", Ingredients: []int64{1, 3}},
}

func exclude(ingredientIDs ...int64) []model.Preference {
	preferences := make([]model.Preference, 0, len(ingredientIDs))
	for _, ingredientID := range ingredientIDs {
		preferences = append(preferences, model.Preference{IngredientID: ingredientID, Preferable: false})
	}
	return preferences
}

func include(ingredientIDs ...int64) []model.Preference {
	preferences := make([]model.Preference, 0, len(ingredientIDs))
	for _, ingredientID := range ingredientIDs {
		preferences = append(preferences, model.Preference{IngredientID: ingredientID, Preferable: true})
	}
	return preferences
}

func candidateIDs(recipes []model.Recipe) []int64 {
	ids := make([]int64, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}
	return ids
}

func TestFilterExcludeDominance(t *testing.T) {
	excludeSet, includeSet := partitionPreferences(exclude(2))
	candidates := filterRecipes(testRecipes, excludeSet, includeSet)
	assert.Equal(t, []int64{3}, candidateIDs(candidates))
}

func TestFilterEmptyIncludeIsUnconstrained(t *testing.T) {
	excludeSet, includeSet := partitionPreferences(exclude(3))
	candidates := filterRecipes(testRecipes, excludeSet, includeSet)
	assert.Equal(t, []int64{1, 2}, candidateIDs(candidates))
}

func TestFilterIncludeRequiresIntersection(t *testing.T) {
	excludeSet, includeSet := partitionPreferences(include(3))
	candidates := filterRecipes(testRecipes, excludeSet, includeSet)
	assert.Equal(t, []int64{3}, candidateIDs(candidates))
}

func TestPartitionExclusionBeatsInclusion(t *testing.T) {
	preferences := append(exclude(2), include(2)...)
	excludeSet, includeSet := partitionPreferences(preferences)

	assert.Contains(t, excludeSet, int64(2))
	assert.Empty(t, includeSet)

	candidates := filterRecipes(testRecipes, excludeSet, includeSet)
	for _, recipe := range candidates {
		assert.NotContains(t, recipe.Ingredients, int64(2))
	}
}

func TestPartitionCollapsesDuplicates(t *testing.T) {
	preferences := append(exclude(2, 2, 2), include(1, 1)...)
	excludeSet, includeSet := partitionPreferences(preferences)
	assert.Len(t, excludeSet, 1)
	assert.Len(t, includeSet, 1)
}

func TestPickNoMatch(t *testing.T) {
	recipes := NewRecipeUsecase()
	_, err := recipes.Pick(testRecipes, exclude(1, 2, 3, 4))
	assert.ErrorIs(t, err, model.ErrNoRecipeMatch)
}

func TestPickReturnsCandidate(t *testing.T) {
	recipes := NewRecipeUsecase()
	for i := 0; i < 20; i++ {
		recipe, err := recipes.Pick(testRecipes, exclude(3))
		require.NoError(t, err)
		assert.Contains(t, []int64{1, 2}, recipe.ID)
	}
}
