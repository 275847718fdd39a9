package usecase

import (
	"math/rand"

	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
)

// RecipeUsecase selects a recipe satisfying a conversation's recorded
// preferences. Selection among qualifying recipes is uniform-random.
type RecipeUsecase struct{}

func NewRecipeUsecase() *RecipeUsecase {
	return &RecipeUsecase{}
}

// Pick returns one qualifying recipe or model.ErrNoRecipeMatch when the
// candidate set is empty.
func (r *RecipeUsecase) Pick(recipes []model.Recipe, preferences []model.Preference) (model.Recipe, error) {
	exclude, include := partitionPreferences(preferences)
	candidates := filterRecipes(recipes, exclude, include)
	if len(candidates) == 0 {
		return model.Recipe{}, model.ErrNoRecipeMatch
	}
	return candidates[rand.Intn(len(candidates))], nil
}

// partitionPreferences collapses duplicate preferences into exclude/include
// ingredient id sets. An ingredient declared both required and excluded
// counts as excluded.
func partitionPreferences(preferences []model.Preference) (exclude, include map[int64]struct{}) {
	exclude = make(map[int64]struct{})
	include = make(map[int64]struct{})
	for _, preference := range preferences {
		if !preference.Preferable {
			exclude[preference.IngredientID] = struct{}{}
		}
	}
	for _, preference := range preferences {
		if !preference.Preferable {
			continue
		}
		if _, banned := exclude[preference.IngredientID]; banned {
			continue
		}
		include[preference.IngredientID] = struct{}{}
	}
	return exclude, include
}

// filterRecipes keeps recipes whose ingredient set avoids the exclude set
// entirely and, when the include set is non-empty, uses at least one required
// ingredient.
func filterRecipes(recipes []model.Recipe, exclude, include map[int64]struct{}) []model.Recipe {
	candidates := make([]model.Recipe, 0, len(recipes))
recipesLoop:
	for _, recipe := range recipes {
		hasIncluded := false
		for _, ingredientID := range recipe.Ingredients {
			if _, ok := exclude[ingredientID]; ok {
				continue recipesLoop
			}
			if _, ok := include[ingredientID]; ok {
				hasIncluded = true
			}
		}
		if len(include) > 0 && !hasIncluded {
			continue
		}
		candidates = append(candidates, recipe)
	}
	return candidates
}
