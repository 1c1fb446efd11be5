package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	applog "cookery/internal/log"
	"cookery/internal/names"
	"cookery/models"
)

// Service orchestrates recipe CRUD and search. Each operation runs to
// completion within a single request; concurrent writers are kept
// honest by the storage-level unique indexes on recipe and ingredient
// type names, not by any in-process locking.
type Service struct {
	db    *gorm.DB
	types *TypeRegistry
}

// NewService builds a Service and its ingredient type registry over the
// given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, types: NewTypeRegistry(db)}
}

// Registry exposes the shared ingredient type registry.
func (s *Service) Registry() *TypeRegistry {
	return s.types
}

// Create stores a brand-new recipe. The input must not carry an id and
// the normalized name must not collide with an existing recipe.
func (s *Service) Create(ctx context.Context, input RecipeInput) (*RecipeDetail, error) {
	if input.ID != 0 {
		return nil, fmt.Errorf("%w: new recipe should not have an id", ErrInvalidArgument)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	recipeName := names.TitleCase(input.Name)
	existing, err := s.FindByName(ctx, recipeName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		applog.Warn(ctx, "recipe already exists", "name", recipeName)
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, recipeName)
	}

	if _, err := normalizedDesiredNames(input.Ingredients); err != nil {
		return nil, err
	}

	ingredients := make([]models.Ingredient, 0, len(input.Ingredients))
	for _, ingredientInput := range input.Ingredients {
		ingredientType, err := s.types.ResolveOrCreate(ctx, ingredientInput.Name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, models.Ingredient{
			IngredientTypeID: ingredientType.ID,
			Volume:           ingredientInput.Volume,
			Remark:           ingredientInput.Remark,
		})
	}

	recipe := models.Recipe{
		Name:         recipeName,
		IsVegetarian: input.IsVegetarian,
		Servings:     input.Servings,
		Instructions: input.Instructions,
		Ingredients:  ingredients,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent writer beat the existence check to the
			// unique index; surface it the same as the check would.
			applog.Warn(ctx, "recipe already exists", "name", recipeName)
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, recipeName)
		}
		return nil, fmt.Errorf("create recipe %q: %w", recipeName, err)
	}

	return s.GetByID(ctx, recipe.ID)
}

// GetByID returns the full detail view for one recipe. A zero id or a
// missing row both report ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id uint) (*RecipeDetail, error) {
	recipe, err := s.loadRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := detailFromModel(*recipe)
	return &detail, nil
}

// Update replaces a recipe's scalar fields and reconciles its
// ingredient set against the desired one, reusing rows for unchanged
// names, deleting dropped ones, and creating the rest.
func (s *Service) Update(ctx context.Context, id uint, input RecipeInput) (*RecipeDetail, error) {
	stored, err := s.loadRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ID != id {
		return nil, fmt.Errorf("%w: body id %d does not match path id %d", ErrInvalidArgument, input.ID, id)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	merged, obsolete, err := s.mergeIngredients(ctx, stored.Ingredients, input.Ingredients)
	if err != nil {
		return nil, err
	}

	for i := range merged {
		merged[i].RecipeID = stored.ID
		if err := s.db.WithContext(ctx).Save(&merged[i]).Error; err != nil {
			return nil, fmt.Errorf("save ingredient for recipe %d: %w", stored.ID, err)
		}
	}

	recipeName := names.TitleCase(input.Name)
	updates := map[string]any{
		"name":          recipeName,
		"is_vegetarian": input.IsVegetarian,
		"servings":      input.Servings,
		"instructions":  input.Instructions,
	}
	if err := s.db.WithContext(ctx).Model(stored).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			applog.Warn(ctx, "recipe rename collides with existing name", "name", recipeName)
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, recipeName)
		}
		return nil, fmt.Errorf("update recipe %d: %w", stored.ID, err)
	}

	for i := range obsolete {
		if err := s.db.WithContext(ctx).Unscoped().Delete(&obsolete[i]).Error; err != nil {
			return nil, fmt.Errorf("delete obsolete ingredient %d: %w", obsolete[i].ID, err)
		}
	}

	return s.GetByID(ctx, stored.ID)
}

// Delete removes a recipe and the ingredient rows it owns. A bad or
// unknown id reports ErrNotFound; a storage failure mid-delete is
// logged and reported as false rather than an error, so the caller can
// answer with an internal failure instead of a client one. Shared
// ingredient types are never removed.
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	stored, err := s.loadRecipe(ctx, id)
	if err != nil {
		return false, err
	}

	// Deletes are hard. Leaving soft-deleted rows behind would keep the
	// unique name index occupied and block recreating the recipe.
	if err := s.db.WithContext(ctx).Unscoped().Where("recipe_id = ?", stored.ID).Delete(&models.Ingredient{}).Error; err != nil {
		applog.Error(ctx, "failed to delete ingredients of recipe", "error", err, "id", stored.ID)
		return false, nil
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(&models.Recipe{}, stored.ID).Error; err != nil {
		applog.Error(ctx, "failed to delete recipe", "error", err, "id", stored.ID)
		return false, nil
	}

	return true, nil
}

// FindAll returns the detail view of every recipe. An empty catalog is
// an empty slice, never an error.
func (s *Service) FindAll(ctx context.Context) ([]RecipeDetail, error) {
	collection, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]RecipeDetail, 0, len(collection))
	for _, recipe := range collection {
		details = append(details, detailFromModel(recipe))
	}
	return details, nil
}

// FindByName looks a recipe up by its exact normalized name and returns
// nil without error when there is no match.
func (s *Service) FindByName(ctx context.Context, name string) (*RecipeDetail, error) {
	corrected := names.TitleCase(name)
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.IngredientType").
		Where("name = ?", corrected).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recipe by name %q: %w", corrected, err)
	}
	detail := detailFromModel(recipe)
	return &detail, nil
}

// Search scans the whole catalog against the criteria and returns the
// header projection of every match.
func (s *Service) Search(ctx context.Context, criteria Criteria) ([]RecipeHeader, error) {
	collection, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := Filter(collection, criteria)
	headers := make([]RecipeHeader, 0, len(matched))
	for _, recipe := range matched {
		headers = append(headers, headerFromModel(recipe))
	}
	return headers, nil
}

func (s *Service) loadRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	if id < 1 {
		return nil, fmt.Errorf("%w: bad recipe id", ErrNotFound)
	}
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.IngredientType").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bad recipe id", ErrNotFound)
		}
		return nil, fmt.Errorf("load recipe %d: %w", id, err)
	}
	return &recipe, nil
}

func (s *Service) loadAll(ctx context.Context) ([]models.Recipe, error) {
	var collection []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients.IngredientType").
		Order("id asc").
		Find(&collection).Error
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	return collection, nil
}

func validateInput(input RecipeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: recipe name must not be blank", ErrInvalidArgument)
	}
	if input.Servings < 1 {
		return fmt.Errorf("%w: servings must be positive", ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Instructions) == "" {
		return fmt.Errorf("%w: instructions must not be blank", ErrInvalidArgument)
	}
	for _, ingredient := range input.Ingredients {
		if strings.TrimSpace(ingredient.Name) == "" {
			return fmt.Errorf("%w: ingredient name must not be blank", ErrInvalidArgument)
		}
		if strings.TrimSpace(ingredient.Volume) == "" {
			return fmt.Errorf("%w: ingredient volume must not be blank", ErrInvalidArgument)
		}
	}
	return nil
}

func detailFromModel(recipe models.Recipe) RecipeDetail {
	ingredients := make([]IngredientDetail, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		ingredients = append(ingredients, IngredientDetail{
			ID:     recipe.Ingredients[i].ID,
			Name:   storedTypeName(recipe.Ingredients[i]),
			Volume: recipe.Ingredients[i].Volume,
			Remark: recipe.Ingredients[i].Remark,
		})
	}
	return RecipeDetail{
		ID:           recipe.ID,
		Name:         recipe.Name,
		IsVegetarian: recipe.IsVegetarian,
		Servings:     recipe.Servings,
		Instructions: recipe.Instructions,
		Ingredients:  ingredients,
	}
}

func headerFromModel(recipe models.Recipe) RecipeHeader {
	return RecipeHeader{
		ID:           recipe.ID,
		Name:         recipe.Name,
		IsVegetarian: recipe.IsVegetarian,
		Servings:     recipe.Servings,
	}
}
