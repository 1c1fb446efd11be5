package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "cookery/internal/log"
	"cookery/internal/names"
	"cookery/internal/recipes"
)

// RecipeSearch answers multi-criteria catalog queries. All parameters
// are optional; absent ones impose no constraint, so a bare request
// lists every recipe header.
func RecipeSearch(w http.ResponseWriter, r *http.Request) {
	if service == nil {
		applog.Debug(r.Context(), "recipe search request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	query := r.URL.Query()
	criteria := recipes.Criteria{
		Includes:    names.SplitCSV(query.Get("includedIngredients")),
		Excludes:    names.SplitCSV(query.Get("excludedIngredients")),
		Instruction: strings.TrimSpace(query.Get("instruction")),
	}

	if raw := strings.TrimSpace(query.Get("isVegetarian")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			applog.Debug(ctx, "invalid isVegetarian parameter", "value", raw)
			writeJSONError(w, http.StatusBadRequest, "isVegetarian must be true or false")
			return
		}
		criteria.Vegetarian = &value
	}

	if minServings, ok, err := intParam(query.Get("minServings")); err != nil {
		writeJSONError(w, http.StatusBadRequest, "minServings must be a number")
		return
	} else if ok {
		criteria.MinServings = &minServings
	}

	if maxServings, ok, err := intParam(query.Get("maxServings")); err != nil {
		writeJSONError(w, http.StatusBadRequest, "maxServings must be a number")
		return
	} else if ok {
		criteria.MaxServings = &maxServings
	}

	headers, err := service.Search(ctx, criteria)
	if err != nil {
		applog.Error(ctx, "recipe search failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to search recipes")
		return
	}

	responses := make([]recipeHeaderResponse, 0, len(headers))
	for _, header := range headers {
		responses = append(responses, recipeHeaderResponse{
			ID:           header.ID,
			Name:         header.Name,
			IsVegetarian: header.IsVegetarian,
			Servings:     header.Servings,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}

func intParam(raw string) (value int, ok bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false, err
	}
	return parsed, true, nil
}
