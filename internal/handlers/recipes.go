package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	applog "cookery/internal/log"
	"cookery/internal/recipes"
)

// Field length cap shared by name, volume, and remark values.
const maxFieldLength = 100

type ingredientPayload struct {
	ID     uint   `json:"id,omitempty"`
	Name   string `json:"name"`
	Volume string `json:"volume"`
	Remark string `json:"remark,omitempty"`
}

type recipePayload struct {
	ID           uint                `json:"id,omitempty"`
	Name         string              `json:"name"`
	IsVegetarian bool                `json:"isVegetarian"`
	Servings     int                 `json:"servings"`
	Instructions string              `json:"instructions"`
	Ingredients  []ingredientPayload `json:"ingredients"`
}

type recipeHeaderResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	IsVegetarian bool   `json:"isVegetarian"`
	Servings     int    `json:"servings"`
}

// RecipeResource handles CRUD interactions for recipe records.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if service == nil {
		applog.Debug(r.Context(), "recipe request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/recipes")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			createRecipe(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil || idValue == 0 {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", path)
		writeJSONError(w, http.StatusBadRequest, "recipe id must be a positive integer")
		return
	}
	recipeID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, recipeID)
	case http.MethodPut:
		updateRecipe(w, r, recipeID)
	case http.MethodDelete:
		deleteRecipe(w, r, recipeID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	details, err := service.FindAll(ctx)
	if err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	// An empty catalog answers 404 on the collection endpoint; this is
	// the contract the API has always had.
	if len(details) == 0 {
		writeJSONError(w, http.StatusNotFound, "no recipes stored")
		return
	}

	headers := make([]recipeHeaderResponse, 0, len(details))
	for _, detail := range details {
		headers = append(headers, recipeHeaderResponse{
			ID:           detail.ID,
			Name:         detail.Name,
			IsVegetarian: detail.IsVegetarian,
			Servings:     detail.Servings,
		})
	}
	writeJSON(w, http.StatusOK, headers)
}

func showRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	ctx := r.Context()
	detail, err := service.GetByID(ctx, recipeID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*detail))
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload recipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid recipe create payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validateRecipePayload(payload); err != nil {
		applog.Debug(ctx, "recipe validation failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := service.Create(ctx, payloadToInput(payload))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectRecipe(*detail))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	ctx := r.Context()
	var payload recipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid recipe update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validateRecipePayload(payload); err != nil {
		applog.Debug(ctx, "recipe update validation failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := service.Update(ctx, recipeID, payloadToInput(payload))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*detail))
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	ctx := r.Context()
	deleted, err := service.Delete(ctx, recipeID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if !deleted {
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recipes.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, recipes.ErrInvalidArgument):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, recipes.ErrDuplicateName):
		writeJSONError(w, http.StatusConflict, err.Error())
	default:
		applog.Error(ctx, "recipe operation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func payloadToInput(payload recipePayload) recipes.RecipeInput {
	input := recipes.RecipeInput{
		ID:           payload.ID,
		Name:         payload.Name,
		IsVegetarian: payload.IsVegetarian,
		Servings:     payload.Servings,
		Instructions: payload.Instructions,
	}
	for _, ingredient := range payload.Ingredients {
		input.Ingredients = append(input.Ingredients, recipes.IngredientInput{
			ID:     ingredient.ID,
			Name:   ingredient.Name,
			Volume: ingredient.Volume,
			Remark: ingredient.Remark,
		})
	}
	return input
}

func projectRecipe(detail recipes.RecipeDetail) recipePayload {
	response := recipePayload{
		ID:           detail.ID,
		Name:         detail.Name,
		IsVegetarian: detail.IsVegetarian,
		Servings:     detail.Servings,
		Instructions: detail.Instructions,
		Ingredients:  make([]ingredientPayload, 0, len(detail.Ingredients)),
	}
	for _, ingredient := range detail.Ingredients {
		response.Ingredients = append(response.Ingredients, ingredientPayload{
			ID:     ingredient.ID,
			Name:   ingredient.Name,
			Volume: ingredient.Volume,
			Remark: ingredient.Remark,
		})
	}
	return response
}

func validateRecipePayload(payload recipePayload) error {
	if err := requireBoundedText("name", payload.Name); err != nil {
		return err
	}
	if payload.Servings < 1 {
		return errors.New("servings must be a positive number")
	}
	if strings.TrimSpace(payload.Instructions) == "" {
		return errors.New("instructions are required")
	}
	for _, ingredient := range payload.Ingredients {
		if err := requireBoundedText("ingredient name", ingredient.Name); err != nil {
			return err
		}
		if err := requireBoundedText("ingredient volume", ingredient.Volume); err != nil {
			return err
		}
		if utf8.RuneCountInString(ingredient.Remark) > maxFieldLength {
			return fmt.Errorf("ingredient remark must be at most %d characters", maxFieldLength)
		}
	}
	return nil
}

func requireBoundedText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(value) > maxFieldLength {
		return fmt.Errorf("%s must be at most %d characters", field, maxFieldLength)
	}
	return nil
}
