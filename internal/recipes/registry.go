package recipes

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	applog "cookery/internal/log"
	"cookery/internal/names"
	"cookery/models"
)

// TypeRegistry resolves ingredient names to their shared IngredientType
// record, creating types lazily the first time a name appears. The
// dedup guarantee rests on the unique index on the name column: when a
// concurrent writer creates the same type first, the conflict is
// retried as a lookup instead of being surfaced.
type TypeRegistry struct {
	db *gorm.DB
}

// NewTypeRegistry builds a registry over the given database handle.
func NewTypeRegistry(db *gorm.DB) *TypeRegistry {
	return &TypeRegistry{db: db}
}

// ResolveOrCreate returns the IngredientType for a name, normalizing it
// first. The same normalized name always resolves to the same record.
func (r *TypeRegistry) ResolveOrCreate(ctx context.Context, name string) (*models.IngredientType, error) {
	corrected := names.TitleCase(name)
	if corrected == "" {
		return nil, fmt.Errorf("%w: ingredient name must not be blank", ErrInvalidArgument)
	}

	existing, err := r.findByName(ctx, corrected)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find ingredient type %q: %w", corrected, err)
	}

	created := models.IngredientType{Name: corrected}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against another creator; the winner's row
			// is the shared identity now.
			applog.Debug(ctx, "ingredient type created concurrently, resolving existing", "name", corrected)
			return r.findByName(ctx, corrected)
		}
		return nil, fmt.Errorf("create ingredient type %q: %w", corrected, err)
	}

	return &created, nil
}

func (r *TypeRegistry) findByName(ctx context.Context, name string) (*models.IngredientType, error) {
	var ingredientType models.IngredientType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&ingredientType).Error; err != nil {
		return nil, err
	}
	return &ingredientType, nil
}
