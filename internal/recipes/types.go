// Package recipes implements the catalog core: name-normalized recipe
// CRUD, the shared ingredient type registry, the ingredient
// reconciliation applied on update, and the multi-criteria search.
package recipes

// IngredientInput carries one desired ingredient of a create or update
// call. Name is free text and is normalized before any comparison.
type IngredientInput struct {
	ID     uint
	Name   string
	Volume string
	Remark string
}

// RecipeInput is the full desired state of a recipe. ID must be zero on
// create and must match the addressed recipe on update.
type RecipeInput struct {
	ID           uint
	Name         string
	IsVegetarian bool
	Servings     int
	Instructions string
	Ingredients  []IngredientInput
}

// IngredientDetail is the read view of one ingredient; the name comes
// from the shared ingredient type.
type IngredientDetail struct {
	ID     uint
	Name   string
	Volume string
	Remark string
}

// RecipeDetail is the full read view returned by single-recipe
// operations.
type RecipeDetail struct {
	ID           uint
	Name         string
	IsVegetarian bool
	Servings     int
	Instructions string
	Ingredients  []IngredientDetail
}

// RecipeHeader is the list/search projection: identity and the scalar
// facts, no ingredients or instructions.
type RecipeHeader struct {
	ID           uint
	Name         string
	IsVegetarian bool
	Servings     int
}
