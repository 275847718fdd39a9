package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// CatalogStorage is the read-mostly recipe catalog backed by sqlite. The
// schema is applied on open; catalog data is seeded outside the bot.
type CatalogStorage struct {
	db *sql.DB
}

func NewCatalogStorage(path string) (*CatalogStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply catalog schema: %w", err)
	}
	return &CatalogStorage{db: db}, nil
}

func (s *CatalogStorage) Close() error {
	return s.db.Close()
}

func (s *CatalogStorage) GetIngredientByName(ctx context.Context, name string) (model.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM ingredients WHERE name = ?", name)
	var ingredient model.Ingredient
	if err := row.Scan(&ingredient.ID, &ingredient.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Ingredient{}, model.ErrIngredientNotFound
		}
		return model.Ingredient{}, fmt.Errorf("failed to query ingredient %q: %w", name, err)
	}
	return ingredient, nil
}

func (s *CatalogStorage) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, description, url FROM recipes")
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]model.Recipe, 0)
	indexByID := make(map[int64]int)
	for rows.Next() {
		var recipe model.Recipe
		if err = rows.Scan(&recipe.ID, &recipe.Title, &recipe.Description, &recipe.URL); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		indexByID[recipe.ID] = len(recipes)
		recipes = append(recipes, recipe)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	linkRows, err := s.db.QueryContext(ctx, "SELECT recipe_id, ingredient_id FROM recipe_ingredients")
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var recipeID, ingredientID int64
		if err = linkRows.Scan(&recipeID, &ingredientID); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		if i, ok := indexByID[recipeID]; ok {
			recipes[i].Ingredients = append(recipes[i].Ingredients, ingredientID)
		}
	}
	if err = linkRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipe ingredients: %w", err)
	}
	return recipes, nil
}
