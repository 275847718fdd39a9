package in_memory

import (
	"context"

	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
)

type CatalogStorage struct {
	ingredientsByName map[string]model.Ingredient
	recipes           []model.Recipe
}

func NewCatalogStorage(ingredients []model.Ingredient, recipes []model.Recipe) *CatalogStorage {
	ingredientsByName := make(map[string]model.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		ingredientsByName[model.NormalizeIngredientName(ingredient.Name)] = ingredient
	}
	return &CatalogStorage{
		ingredientsByName: ingredientsByName,
		recipes:           recipes,
	}
}

func (s *CatalogStorage) GetIngredientByName(_ context.Context, name string) (model.Ingredient, error) {
	ingredient, ok := s.ingredientsByName[name]
	if !ok {
		return model.Ingredient{}, model.ErrIngredientNotFound
	}
	return ingredient, nil
}

func (s *CatalogStorage) ListRecipes(_ context.Context) ([]model.Recipe, error) {
	recipes := make([]model.Recipe, 0, len(s.recipes))
	recipes = append(recipes, s.recipes...)
	return recipes, nil
}
