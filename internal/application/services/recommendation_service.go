package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
	"github.com/zatekoja/chefmate/backend/pkg/validation"
)

// NoRecommendationsMessage replaces the card list when nothing matches
const NoRecommendationsMessage = "No recommendations found. Please try different cuisines or check the input."

// RecommendationService filters the dataset and renders the matches as cards
type RecommendationService struct {
	dataset *entities.Dataset
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(dataset *entities.Dataset) *RecommendationService {
	return &RecommendationService{dataset: dataset}
}

// Filter returns the records in criteria.City whose rating lies in
// criteria.Rating and whose cuisines contain at least one of the terms,
// case-insensitively. No terms means no cuisine restriction. Results keep
// dataset order.
func (s *RecommendationService) Filter(ctx context.Context, criteria entities.FilterCriteria) ([]entities.Restaurant, error) {
	if missing := s.dataset.MissingColumns(entities.DisplayColumns...); len(missing) > 0 {
		return nil, apperrors.NewSchemaError(missing)
	}
	if err := validation.Struct(&criteria); err != nil {
		return nil, err
	}
	if !s.dataset.HasCity(criteria.City) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown city %q", criteria.City))
	}

	terms := make([]string, len(criteria.CuisineTerms))
	for i, t := range criteria.CuisineTerms {
		terms[i] = strings.ToLower(t)
	}

	matches := []entities.Restaurant{}
	for _, r := range s.dataset.Restaurants() {
		if r.City != criteria.City || !criteria.Rating.Contains(r.AggregateRating) {
			continue
		}
		if !matchesAnyCuisine(r.Cuisines, terms) {
			continue
		}
		matches = append(matches, r)
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("city", criteria.City).
		Strs("cuisine_terms", criteria.CuisineTerms).
		Float64("min_rating", criteria.Rating.Low).
		Float64("max_rating", criteria.Rating.High).
		Int("matches", len(matches)).
		Msg("Filtered restaurants")

	return matches, nil
}

// matchesAnyCuisine expects lower-cased terms
func matchesAnyCuisine(cuisines string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lower := strings.ToLower(cuisines)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Render turns matches into the recommendations page: the count, then one
// card per record, or the no-recommendations message when there are none.
func (s *RecommendationService) Render(matches []entities.Restaurant) entities.RecommendationPage {
	page := entities.RecommendationPage{
		Count: len(matches),
		Cards: make([]entities.RecommendationCard, 0, len(matches)),
	}
	if len(matches) == 0 {
		page.Message = NoRecommendationsMessage
		return page
	}
	for _, r := range matches {
		page.Cards = append(page.Cards, NewRecommendationCard(r))
	}
	return page
}

// Recommend filters then renders
func (s *RecommendationService) Recommend(ctx context.Context, criteria entities.FilterCriteria) (entities.RecommendationPage, error) {
	matches, err := s.Filter(ctx, criteria)
	if err != nil {
		return entities.RecommendationPage{}, err
	}
	return s.Render(matches), nil
}

// NewRecommendationCard builds the display card for one record
func NewRecommendationCard(r entities.Restaurant) entities.RecommendationCard {
	return entities.RecommendationCard{
		ID:         r.ID,
		Name:       r.Name,
		Cuisines:   r.Cuisines,
		Rating:     r.AggregateRating,
		Location:   r.City,
		CostForTwo: FormatCost(r.AverageCostForTwo, r.Currency),
	}
}

// FormatCost renders "<cost> <currency>" without trailing zeros
func FormatCost(cost float64, currency string) string {
	return strings.TrimSpace(strconv.FormatFloat(cost, 'f', -1, 64) + " " + currency)
}
