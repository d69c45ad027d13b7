// Package server assembles the HTTP router: middleware, the category and
// product endpoints and the health check.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/ecomweb/catalog-api/app/api"
	"github.com/ecomweb/catalog-api/app/categories"
	"github.com/ecomweb/catalog-api/app/config"
	"github.com/ecomweb/catalog-api/app/products"
	"github.com/ecomweb/catalog-api/models"
)

const idPattern = "/{id:[0-9]+}"

// NewRouter wires repositories and handlers on top of db.
func NewRouter(db *gorm.DB, log *slog.Logger, rl config.RateLimitConfig) http.Handler {
	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)

	categoryHandler := categories.NewCategoryHandler(categoriesRepo, productsRepo)
	productHandler := products.NewProductHandler(productsRepo, categoriesRepo)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(accessLog)
	r.Use(recoverPanic)
	if rl.Enabled {
		r.Use(newRateLimiter(rl).middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.StatusResponse(w, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", healthHandler(db))

	r.Route(categories.BasePath, func(r chi.Router) {
		r.Get("/", categoryHandler.HandleGetAll)
		r.Post("/", categoryHandler.HandleCreate)
		r.Get(idPattern, categoryHandler.HandleGet)
		r.Put(idPattern, categoryHandler.HandleUpdate)
		r.Patch(idPattern, categoryHandler.HandlePatch)
		r.Delete(idPattern, categoryHandler.HandleDelete)
	})

	r.Route(products.BasePath, func(r chi.Router) {
		r.Get("/", productHandler.HandleGetAll)
		r.Post("/", productHandler.HandleCreate)
		r.Get(idPattern, productHandler.HandleGet)
		r.Put(idPattern, productHandler.HandleUpdate)
		r.Patch(idPattern, productHandler.HandlePatch)
		r.Delete(idPattern, productHandler.HandleDelete)
	})

	return r
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err != nil {
			api.ServerErrorResponse(w, r, err, "database unavailable")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			api.ServerErrorResponse(w, r, err, "database unavailable")
			return
		}
		api.OKResponse(w, map[string]string{"status": "ok"})
	}
}
