package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseVegetarian(t *testing.T) {
	t.Parallel()

	truthy := []string{"yes", "YES", " y ", "true", "1"}
	for _, value := range truthy {
		if !parseVegetarian(value) {
			t.Fatalf("expected %q to parse as vegetarian", value)
		}
	}
	falsy := []string{"", "no", "n", "false", "0", "maybe"}
	for _, value := range falsy {
		if parseVegetarian(value) {
			t.Fatalf("expected %q to parse as non-vegetarian", value)
		}
	}
}

func TestParseIngredientList(t *testing.T) {
	t.Parallel()

	ingredients := parseIngredientList("onion | 1 piece | diced; flour | 200 grams; ; salt")
	if len(ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %+v", ingredients)
	}
	if ingredients[0].Name != "onion" || ingredients[0].Volume != "1 piece" || ingredients[0].Remark != "diced" {
		t.Fatalf("unexpected first ingredient: %+v", ingredients[0])
	}
	if ingredients[1].Name != "flour" || ingredients[1].Volume != "200 grams" || ingredients[1].Remark != "" {
		t.Fatalf("unexpected second ingredient: %+v", ingredients[1])
	}
	if ingredients[2].Name != "salt" || ingredients[2].Volume != "" {
		t.Fatalf("unexpected third ingredient: %+v", ingredients[2])
	}
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	content := `name,vegetarian,servings,instructions,ingredients
Tomato Soup,yes,4,Roast and blend.,tomato | 1 kilogram | ripe; basil | 1 bunch
Cottage Pie,no,4,Cover with mash and bake.,ground meat | 300 grams; mash | 300 grams
`
	path := filepath.Join(t.TempDir(), "recipes.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	inputs, err := readCSV(path)
	if err != nil {
		t.Fatalf("readCSV failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(inputs))
	}

	soup := inputs[0]
	if soup.Name != "Tomato Soup" || !soup.IsVegetarian || soup.Servings != 4 {
		t.Fatalf("unexpected soup input: %+v", soup)
	}
	if len(soup.Ingredients) != 2 || soup.Ingredients[0].Remark != "ripe" {
		t.Fatalf("unexpected soup ingredients: %+v", soup.Ingredients)
	}

	pie := inputs[1]
	if pie.IsVegetarian {
		t.Fatalf("expected cottage pie to be non-vegetarian: %+v", pie)
	}
}

func TestReadCSVRejectsBadServings(t *testing.T) {
	t.Parallel()

	content := `name,vegetarian,servings,instructions,ingredients
Tomato Soup,yes,several,Roast and blend.,tomato | 1 kilogram
`
	path := filepath.Join(t.TempDir(), "recipes.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := readCSV(path); err == nil {
		t.Fatal("expected error for non-numeric servings")
	}
}

func TestParseRecipeBlocks(t *testing.T) {
	t.Parallel()

	text := `Recipe: Tomato Soup
Vegetarian: yes
Servings: 4
Instructions: Roast and blend.
- tomato | 1 kilogram | ripe
- basil | 1 bunch

Recipe: Cottage Pie
Vegetarian: no
Servings: 4
Instructions: Cover with mash and bake.
- ground meat | 300 grams
`
	inputs, err := parseRecipeBlocks(text)
	if err != nil {
		t.Fatalf("parseRecipeBlocks failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 recipe blocks, got %d", len(inputs))
	}
	soup := inputs[0]
	if soup.Name != "Tomato Soup" || !soup.IsVegetarian || soup.Servings != 4 {
		t.Fatalf("unexpected soup block: %+v", soup)
	}
	if len(soup.Ingredients) != 2 || soup.Ingredients[0].Name != "tomato" {
		t.Fatalf("unexpected soup ingredients: %+v", soup.Ingredients)
	}
	if inputs[1].Name != "Cottage Pie" || inputs[1].IsVegetarian {
		t.Fatalf("unexpected pie block: %+v", inputs[1])
	}
}

func TestParseRecipeBlocksRequiresAtLeastOneBlock(t *testing.T) {
	t.Parallel()

	if _, err := parseRecipeBlocks("just some prose\nwith no markers"); err == nil {
		t.Fatal("expected error for text without recipe blocks")
	}
}

func TestReadRecipesRejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	if _, err := readRecipes("recipes.xlsx"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
