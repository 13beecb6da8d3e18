package services

import (
	"context"
	"strings"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/repositories"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/observability"
)

const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 50
)

// CatalogService lists the selectable cities and restaurants
type CatalogService struct {
	dataset *entities.Dataset
	search  repositories.RestaurantSearchRepository
}

// NewCatalogService creates a new catalog service. search is optional; without
// it suggestions come from the in-memory dataset.
func NewCatalogService(dataset *entities.Dataset, search repositories.RestaurantSearchRepository) *CatalogService {
	return &CatalogService{dataset: dataset, search: search}
}

// Cities returns the distinct cities in dataset order
func (s *CatalogService) Cities() []string {
	return s.dataset.Cities()
}

// Restaurants returns every restaurant's id and name in dataset order
func (s *CatalogService) Restaurants() []entities.RestaurantRef {
	return s.dataset.Refs()
}

// Suggest returns up to limit restaurants whose name matches query, one entry
// per distinct name. The search index matches a prefix of any word in the
// name; without it, or when it fails, the dataset is scanned for names that
// start with query.
func (s *CatalogService) Suggest(ctx context.Context, query string, limit int) []entities.RestaurantRef {
	query = strings.TrimSpace(query)
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	if limit > maxSuggestLimit {
		limit = maxSuggestLimit
	}
	if query == "" {
		return []entities.RestaurantRef{}
	}

	if s.search != nil {
		refs, err := s.search.Suggest(ctx, query, limit)
		if err == nil {
			return uniqueByName(refs, limit)
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Search index unavailable, suggesting from dataset")
	}

	lower := strings.ToLower(query)
	var matches []entities.RestaurantRef
	for _, r := range s.dataset.Restaurants() {
		if strings.HasPrefix(strings.ToLower(r.Name), lower) {
			matches = append(matches, entities.RestaurantRef{ID: r.ID, Name: r.Name, City: r.City})
		}
	}
	return uniqueByName(matches, limit)
}

// uniqueByName keeps the first ref for each name, up to limit
func uniqueByName(refs []entities.RestaurantRef, limit int) []entities.RestaurantRef {
	out := []entities.RestaurantRef{}
	seen := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}
