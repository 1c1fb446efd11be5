package recipes

import (
	"context"
	"fmt"
	"strings"

	applog "cookery/internal/log"
	"cookery/internal/names"
	"cookery/models"
)

// mergeIngredients reconciles a recipe's stored ingredient rows against
// the desired set of an update. Matching is by normalized type name:
// a stored ingredient whose name is still desired keeps its row and
// adopts the desired volume and remark; one that is no longer desired
// becomes obsolete; desired names with no stored counterpart become
// brand-new rows backed by a resolved ingredient type.
//
// The caller persists merged and deletes obsolete. Desired sets where
// two entries normalize to the same name are rejected outright.
func (s *Service) mergeIngredients(ctx context.Context, stored []models.Ingredient, desired []IngredientInput) (merged, obsolete []models.Ingredient, err error) {
	desiredNames, err := normalizedDesiredNames(desired)
	if err != nil {
		return nil, nil, err
	}

	mergedNames := make(map[string]bool, len(desired))
	for i := range stored {
		ingredient := stored[i]
		typeName := storedTypeName(ingredient)
		if !desiredNames[typeName] {
			obsolete = append(obsolete, ingredient)
			continue
		}
		match, found := findDesiredByName(desired, typeName)
		if !found {
			// Should be unreachable: the name was just range-checked
			// against the desired set, so a miss means the inputs
			// mutated underneath us.
			applog.Error(ctx, "failed to match desired ingredient during merge", "name", typeName)
			return nil, nil, fmt.Errorf("%w: internal update issue for ingredient %q", ErrInvalidArgument, typeName)
		}
		ingredient.Volume = match.Volume
		ingredient.Remark = match.Remark
		merged = append(merged, ingredient)
		mergedNames[typeName] = true
	}

	for _, input := range desired {
		corrected := names.TitleCase(input.Name)
		if mergedNames[corrected] {
			continue
		}
		ingredientType, err := s.types.ResolveOrCreate(ctx, input.Name)
		if err != nil {
			return nil, nil, err
		}
		merged = append(merged, models.Ingredient{
			IngredientTypeID: ingredientType.ID,
			IngredientType:   ingredientType,
			Volume:           input.Volume,
			Remark:           input.Remark,
		})
		mergedNames[corrected] = true
	}

	return merged, obsolete, nil
}

// normalizedDesiredNames collects the normalized desired names as a
// lookup set, rejecting duplicates such as "egg" next to "Egg".
func normalizedDesiredNames(desired []IngredientInput) (map[string]bool, error) {
	set := make(map[string]bool, len(desired))
	for _, input := range desired {
		corrected := names.TitleCase(input.Name)
		if set[corrected] {
			return nil, fmt.Errorf("%w: duplicate ingredient name %q", ErrInvalidArgument, corrected)
		}
		set[corrected] = true
	}
	return set, nil
}

func findDesiredByName(desired []IngredientInput, typeName string) (IngredientInput, bool) {
	for _, input := range desired {
		if strings.EqualFold(names.TitleCase(input.Name), typeName) {
			return input, true
		}
	}
	return IngredientInput{}, false
}

func storedTypeName(ingredient models.Ingredient) string {
	if ingredient.IngredientType == nil {
		return ""
	}
	return ingredient.IngredientType.Name
}
