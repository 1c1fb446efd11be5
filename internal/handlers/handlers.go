// Package handlers exposes the JSON HTTP surface of the recipe catalog.
package handlers

import (
	"gorm.io/gorm"

	"cookery/internal/recipes"
)

var service *recipes.Service

// Configure wires the shared dependencies used by the handler functions.
func Configure(db *gorm.DB) {
	if db == nil {
		service = nil
		return
	}
	service = recipes.NewService(db)
}
