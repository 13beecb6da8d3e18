package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

// MapService defines the map operations used by the handlers
type MapService interface {
	RenderAll(ctx context.Context) (entities.MapView, error)
	RenderOne(ctx context.Context, id string) (entities.MapView, error)
	RenderOneByName(ctx context.Context, name string) (entities.MapView, error)
	Locate(ctx context.Context, id string) (entities.Restaurant, error)
}

// MapHandler serves the GeoJSON map views
type MapHandler struct {
	service MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(service MapService) *MapHandler {
	return &MapHandler{service: service}
}

// GetMap handles GET /api/map. With ?name= it returns the view of the first
// restaurant with that exact name; otherwise the view of all restaurants.
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	var (
		view entities.MapView
		err  error
	)
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		view, err = h.service.RenderOneByName(r.Context(), name)
	} else {
		view, err = h.service.RenderAll(r.Context())
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// GetRestaurantMap handles GET /api/map/restaurants/{id}
func (h *MapHandler) GetRestaurantMap(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "restaurant id is required")
		return
	}

	view, err := h.service.RenderOne(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}
