package recipes

import (
	"strings"

	"cookery/internal/names"
	"cookery/models"
)

// Criteria holds the independently optional search constraints. Every
// present constraint must hold for a recipe to match, so the zero value
// matches everything.
type Criteria struct {
	Vegetarian  *bool
	MinServings *int
	MaxServings *int
	// Includes and Excludes name ingredient types; each listed name
	// must be present (respectively absent), compared after
	// normalization.
	Includes []string
	Excludes []string
	// Instruction is a case-insensitive substring of the instructions.
	Instruction string
}

type recipePredicate func(recipe *models.Recipe) bool

// Filter evaluates the criteria over the whole collection with a plain
// linear scan. There is no index; at catalog scale that is fine, and
// the cost is recipes x ingredients x criteria.
func Filter(collection []models.Recipe, criteria Criteria) []models.Recipe {
	predicates := criteria.predicates()
	matched := make([]models.Recipe, 0, len(collection))
	for i := range collection {
		if matchesAll(&collection[i], predicates) {
			matched = append(matched, collection[i])
		}
	}
	return matched
}

// Matches reports whether a single recipe satisfies every present
// criterion.
func (c Criteria) Matches(recipe *models.Recipe) bool {
	return matchesAll(recipe, c.predicates())
}

func matchesAll(recipe *models.Recipe, predicates []recipePredicate) bool {
	for _, predicate := range predicates {
		if !predicate(recipe) {
			return false
		}
	}
	return true
}

func (c Criteria) predicates() []recipePredicate {
	var predicates []recipePredicate

	if c.Vegetarian != nil {
		want := *c.Vegetarian
		predicates = append(predicates, func(recipe *models.Recipe) bool {
			return recipe.IsVegetarian == want
		})
	}
	if c.MinServings != nil {
		min := *c.MinServings
		predicates = append(predicates, func(recipe *models.Recipe) bool {
			return recipe.Servings >= min
		})
	}
	if c.MaxServings != nil {
		max := *c.MaxServings
		predicates = append(predicates, func(recipe *models.Recipe) bool {
			return recipe.Servings <= max
		})
	}
	for _, include := range c.Includes {
		name := names.TitleCase(include)
		predicates = append(predicates, func(recipe *models.Recipe) bool {
			return hasIngredientNamed(recipe, name)
		})
	}
	for _, exclude := range c.Excludes {
		name := names.TitleCase(exclude)
		predicates = append(predicates, func(recipe *models.Recipe) bool {
			return !hasIngredientNamed(recipe, name)
		})
	}
	if c.Instruction != "" {
		fragment := strings.ToLower(c.Instruction)
		predicates = append(predicates, func(recipe *models.Recipe) bool {
			return strings.Contains(strings.ToLower(recipe.Instructions), fragment)
		})
	}

	return predicates
}

func hasIngredientNamed(recipe *models.Recipe, name string) bool {
	for i := range recipe.Ingredients {
		if strings.EqualFold(storedTypeName(recipe.Ingredients[i]), name) {
			return true
		}
	}
	return false
}
