package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cookery/internal/recipes"
)

func seedSearchCatalog(t *testing.T) {
	t.Helper()
	inputs := []recipes.RecipeInput{
		{
			Name: "Mushroom Risotto", IsVegetarian: true, Servings: 4,
			Instructions: "Stir until creamy.",
			Ingredients: []recipes.IngredientInput{
				{Name: "onion", Volume: "1 piece"},
				{Name: "mushrooms", Volume: "300 grams"},
			},
		},
		{
			Name: "Chili Con Carne", IsVegetarian: false, Servings: 6,
			Instructions: "Stew slowly.",
			Ingredients: []recipes.IngredientInput{
				{Name: "onion", Volume: "2 pieces"},
				{Name: "bell peppers", Volume: "2 pieces"},
			},
		},
		{
			Name: "Lentil Soup", IsVegetarian: true, Servings: 6,
			Instructions: "Simmer until tender.",
			Ingredients: []recipes.IngredientInput{
				{Name: "onion", Volume: "1 piece"},
				{Name: "red lentils", Volume: "250 grams"},
			},
		},
		{
			Name: "Pancakes", IsVegetarian: true, Servings: 4,
			Instructions: "Fry thin in a pan.",
			Ingredients: []recipes.IngredientInput{
				{Name: "flour", Volume: "200 grams"},
				{Name: "milk", Volume: "300 ml"},
			},
		},
	}
	for _, input := range inputs {
		seedRecipe(t, input)
	}
}

func searchNames(t *testing.T, target string) []string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	RecipeSearch(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for %q, got %d: %s", target, rec.Code, rec.Body.String())
	}
	var headers []recipeHeaderResponse
	if err := json.NewDecoder(rec.Body).Decode(&headers); err != nil {
		t.Fatalf("failed to decode search response: %v", err)
	}
	names := make([]string, 0, len(headers))
	for _, header := range headers {
		names = append(names, header.Name)
	}
	return names
}

func TestRecipeSearchWithoutDatabase(t *testing.T) {
	Configure(nil)

	req := httptest.NewRequest(http.MethodGet, "/recipesearch", nil)
	rec := httptest.NewRecorder()
	RecipeSearch(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without database, got %d", rec.Code)
	}
}

func TestRecipeSearchOnlyAcceptsGet(t *testing.T) {
	withRecipeTestDatabase(t)

	req := httptest.NewRequest(http.MethodPost, "/recipesearch", nil)
	rec := httptest.NewRecorder()
	RecipeSearch(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRecipeSearchWithoutParametersListsEverything(t *testing.T) {
	withRecipeTestDatabase(t)
	seedSearchCatalog(t)

	names := searchNames(t, "/recipesearch")
	if len(names) != 4 {
		t.Fatalf("expected all 4 recipes, got %v", names)
	}
}

func TestRecipeSearchEmptyResultIsOK(t *testing.T) {
	withRecipeTestDatabase(t)

	names := searchNames(t, "/recipesearch?instruction=bake")
	if len(names) != 0 {
		t.Fatalf("expected empty match list, got %v", names)
	}
}

func TestRecipeSearchCombinesCriteria(t *testing.T) {
	withRecipeTestDatabase(t)
	seedSearchCatalog(t)

	names := searchNames(t, "/recipesearch?isVegetarian=true&minServings=5")
	if len(names) != 1 || names[0] != "Lentil Soup" {
		t.Fatalf("expected just Lentil Soup, got %v", names)
	}
}

func TestRecipeSearchIncludeExclude(t *testing.T) {
	withRecipeTestDatabase(t)
	seedSearchCatalog(t)

	names := searchNames(t, "/recipesearch?includedIngredients=onion&excludedIngredients=bell%20peppers")
	if len(names) != 2 {
		t.Fatalf("expected 2 matches, got %v", names)
	}
	for _, name := range names {
		if name != "Mushroom Risotto" && name != "Lentil Soup" {
			t.Fatalf("unexpected match %q in %v", name, names)
		}
	}
}

func TestRecipeSearchInstructionSubstring(t *testing.T) {
	withRecipeTestDatabase(t)
	seedSearchCatalog(t)

	names := searchNames(t, "/recipesearch?instruction=SIMMER")
	if len(names) != 1 || names[0] != "Lentil Soup" {
		t.Fatalf("expected just Lentil Soup, got %v", names)
	}
}

func TestRecipeSearchRejectsMalformedParameters(t *testing.T) {
	withRecipeTestDatabase(t)

	for _, target := range []string{
		"/recipesearch?isVegetarian=maybe",
		"/recipesearch?minServings=two",
		"/recipesearch?maxServings=1.5",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		RecipeSearch(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", target, rec.Code)
		}
	}
}
