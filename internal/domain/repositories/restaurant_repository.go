package repositories

import (
	"context"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

// DatasetSource loads the full restaurant table. It is called once at startup.
type DatasetSource interface {
	Load(ctx context.Context) (*entities.Dataset, error)
}

// RestaurantSearchRepository defines the interface for the restaurant name index (e.g. Typesense)
type RestaurantSearchRepository interface {
	// InitSchema ensures the collection exists
	InitSchema(ctx context.Context) error

	// Index upserts a batch of restaurants
	Index(ctx context.Context, restaurants []entities.Restaurant) error

	// Suggest returns restaurants whose name matches the typed prefix
	Suggest(ctx context.Context, query string, limit int) ([]entities.RestaurantRef, error)
}
