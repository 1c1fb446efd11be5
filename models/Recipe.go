package models

import (
	"gorm.io/gorm"
)

// Recipe is a named dish with its instructions and ingredient set.
// Names are stored title-cased and are unique across the catalog.
type Recipe struct {
	gorm.Model
	Name         string       `gorm:"uniqueIndex;not null" json:"name"`
	IsVegetarian bool         `gorm:"not null" json:"is_vegetarian"`
	Servings     int          `gorm:"not null" json:"servings"`
	Instructions string       `gorm:"type:text;not null" json:"instructions"`
	Ingredients  []Ingredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}
