package models

import (
	"gorm.io/gorm"
)

// IngredientType is the deduplicated identity of an ingredient name,
// shared by reference across every recipe that uses it. Types are
// created lazily and never deleted, even when no ingredient points at
// them anymore.
type IngredientType struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
