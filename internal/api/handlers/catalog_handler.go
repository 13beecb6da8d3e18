package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

// CatalogService defines the restaurant listing operations used by the handler
type CatalogService interface {
	Restaurants() []entities.RestaurantRef
	Suggest(ctx context.Context, query string, limit int) []entities.RestaurantRef
}

// CatalogHandler serves the map page's restaurant selection box
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListRestaurants handles GET /api/restaurants
func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	refs := h.service.Restaurants()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"restaurants": refs,
		"count":       len(refs),
	})
}

// SuggestRestaurants handles GET /api/restaurants/suggest?q=&limit=
func (h *CatalogHandler) SuggestRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, errInvalidParam("limit").Error())
			return
		}
		limit = n
	}

	refs := h.service.Suggest(r.Context(), query.Get("q"), limit)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": refs,
		"count":       len(refs),
	})
}
