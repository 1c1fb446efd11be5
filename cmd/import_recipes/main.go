// Command import_recipes bulk-loads a recipe catalog from a CSV export
// or a structured PDF document. Rows are fed through the recipe service
// so names get normalized and ingredient types deduplicate the same way
// they do for API writes; recipes whose normalized name already exists
// are updated in place.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"

	"cookery/internal/config"
	"cookery/internal/db"
	"cookery/internal/recipes"
)

func main() {
	path := "recipes.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stdout, "loaded environment from .env")
	}

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("input path must not be empty")
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate input: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	inputs, err := readRecipes(path)
	if err != nil {
		return fmt.Errorf("read recipes: %w", err)
	}

	service := recipes.NewService(database)
	ctx := context.Background()

	created, updated := 0, 0
	for idx, input := range inputs {
		existing, err := service.FindByName(ctx, input.Name)
		if err != nil {
			return fmt.Errorf("record %d (%s): %w", idx+1, input.Name, err)
		}
		if existing == nil {
			if _, err := service.Create(ctx, input); err != nil {
				return fmt.Errorf("record %d (%s): %w", idx+1, input.Name, err)
			}
			created++
			continue
		}
		input.ID = existing.ID
		if _, err := service.Update(ctx, existing.ID, input); err != nil {
			return fmt.Errorf("record %d (%s): %w", idx+1, input.Name, err)
		}
		updated++
	}

	fmt.Fprintf(os.Stdout, "Imported %d recipes (%d new, %d updated) from %s\n",
		created+updated, created, updated, filepath.Base(path))
	return nil
}

func readRecipes(path string) ([]recipes.RecipeInput, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".pdf":
		text, err := extractPDFText(path)
		if err != nil {
			return nil, err
		}
		return parseRecipeBlocks(text)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

// readCSV expects a header row of name, vegetarian, servings,
// instructions, ingredients; the ingredients cell holds semicolon
// separated "name | volume | remark" entries.
func readCSV(path string) ([]recipes.RecipeInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	inputs := make([]recipes.RecipeInput, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for col, key := range header {
			if col >= len(row) {
				continue
			}
			record[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(row[col])
		}

		input, err := buildRecipeInput(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", idx+2, err)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

func buildRecipeInput(record map[string]string) (recipes.RecipeInput, error) {
	servings, err := strconv.Atoi(record["servings"])
	if err != nil {
		return recipes.RecipeInput{}, fmt.Errorf("bad servings %q", record["servings"])
	}

	return recipes.RecipeInput{
		Name:         record["name"],
		IsVegetarian: parseVegetarian(record["vegetarian"]),
		Servings:     servings,
		Instructions: record["instructions"],
		Ingredients:  parseIngredientList(record["ingredients"]),
	}, nil
}

func parseVegetarian(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

// parseIngredientList splits "name | volume | remark; name | volume"
// into ingredient inputs, dropping blank entries.
func parseIngredientList(cell string) []recipes.IngredientInput {
	var ingredients []recipes.IngredientInput
	for _, entry := range strings.Split(cell, ";") {
		fields := strings.Split(entry, "|")
		name := strings.TrimSpace(fields[0])
		if name == "" {
			continue
		}
		ingredient := recipes.IngredientInput{Name: name}
		if len(fields) > 1 {
			ingredient.Volume = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			ingredient.Remark = strings.TrimSpace(fields[2])
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients
}

func extractPDFText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// parseRecipeBlocks reads the line-oriented layout used by the PDF
// exports: a "Recipe:" line opens a block, followed by "Vegetarian:",
// "Servings:", and "Instructions:" lines and one "- name | volume |
// remark" line per ingredient. A new "Recipe:" line closes the previous
// block.
func parseRecipeBlocks(text string) ([]recipes.RecipeInput, error) {
	var inputs []recipes.RecipeInput
	var current *recipes.RecipeInput

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		switch {
		case strings.HasPrefix(line, "Recipe:"):
			if current != nil {
				inputs = append(inputs, *current)
			}
			current = &recipes.RecipeInput{Name: strings.TrimSpace(strings.TrimPrefix(line, "Recipe:"))}
		case current == nil || line == "":
			continue
		case strings.HasPrefix(line, "Vegetarian:"):
			current.IsVegetarian = parseVegetarian(strings.TrimPrefix(line, "Vegetarian:"))
		case strings.HasPrefix(line, "Servings:"):
			servings, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Servings:")))
			if err != nil {
				return nil, fmt.Errorf("recipe %q: bad servings line %q", current.Name, line)
			}
			current.Servings = servings
		case strings.HasPrefix(line, "Instructions:"):
			current.Instructions = strings.TrimSpace(strings.TrimPrefix(line, "Instructions:"))
		case strings.HasPrefix(line, "-"):
			current.Ingredients = append(current.Ingredients, parseIngredientList(strings.TrimPrefix(line, "-"))...)
		}
	}
	if current != nil {
		inputs = append(inputs, *current)
	}

	if len(inputs) == 0 {
		return nil, errors.New("no recipe blocks found")
	}
	return inputs, nil
}
