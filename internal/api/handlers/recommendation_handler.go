package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

// RecommendationService defines the recommendation operations used by the handler
type RecommendationService interface {
	Recommend(ctx context.Context, criteria entities.FilterCriteria) (entities.RecommendationPage, error)
}

// CitiesProvider lists the cities offered by the city select box
type CitiesProvider interface {
	Cities() []string
}

// RecommendationHandler serves the recommendations page
type RecommendationHandler struct {
	service RecommendationService
	catalog CitiesProvider
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service RecommendationService, catalog CitiesProvider) *RecommendationHandler {
	return &RecommendationHandler{service: service, catalog: catalog}
}

// GetCities handles GET /api/cities
func (h *RecommendationHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities := h.catalog.Cities()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cities": cities,
		"count":  len(cities),
	})
}

// GetRecommendations handles GET /api/recommendations?city=&cuisines=&min_rating=&max_rating=
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseFilterCriteria(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.service.Recommend(r.Context(), criteria)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

func parseFilterCriteria(r *http.Request) (entities.FilterCriteria, error) {
	query := r.URL.Query()

	low, err := parseRating(query.Get("min_rating"), entities.MinRating)
	if err != nil {
		return entities.FilterCriteria{}, errInvalidParam("min_rating")
	}
	high, err := parseRating(query.Get("max_rating"), entities.MaxRating)
	if err != nil {
		return entities.FilterCriteria{}, errInvalidParam("max_rating")
	}

	return entities.FilterCriteria{
		City:         strings.TrimSpace(query.Get("city")),
		CuisineTerms: entities.ParseCuisineTerms(query.Get("cuisines")),
		Rating:       entities.RatingRange{Low: low, High: high},
	}, nil
}

func parseRating(value string, fallback float64) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}

func errInvalidParam(name string) error {
	return fmt.Errorf("invalid %s parameter", name)
}
