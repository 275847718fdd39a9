package model

import "strings"

// Ingredient names are stored normalized: trimmed and lower-cased.
type Ingredient struct {
	ID   int64
	Name string
}

type Recipe struct {
	ID          int64
	Title       string
	Description string
	URL         string
	Ingredients []int64
}

// NormalizeIngredientName brings a user-supplied product name to the
// catalog's lookup form.
func NormalizeIngredientName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
