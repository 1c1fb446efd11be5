package server

import (
	"context"
	"net/http"

	"cookery/internal/handlers"
	applog "cookery/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/recipes", handlers.RecipeResource)
	mux.HandleFunc("/recipes/", handlers.RecipeResource)
	applog.Debug(context.Background(), "route registered", "path", "/recipes")
	mux.HandleFunc("/recipesearch", handlers.RecipeSearch)
	applog.Debug(context.Background(), "route registered", "path", "/recipesearch")
	return mux
}
