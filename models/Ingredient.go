package models

import (
	"gorm.io/gorm"
)

// Ingredient is one usage of an ingredient type inside a recipe. The row
// belongs to exactly one recipe; deleting the recipe deletes its rows.
// The name always lives on the linked IngredientType, never here.
type Ingredient struct {
	gorm.Model
	RecipeID uint `gorm:"index;not null" json:"recipe_id"`

	IngredientTypeID uint            `gorm:"not null" json:"ingredient_type_id"`
	IngredientType   *IngredientType `gorm:"foreignKey:IngredientTypeID" json:"ingredient_type,omitempty"`

	// Free-text quantity plus unit, like "300 grams" or "2 cups".
	Volume string `gorm:"column:quantity_and_unit;not null" json:"volume"`
	Remark string `json:"remark"`
}
