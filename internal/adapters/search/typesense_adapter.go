package search

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/repositories"
	tsclient "github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "restaurants"

// TypesenseAdapter implements restaurant name search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements RestaurantSearchRepository
var _ repositories.RestaurantSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "city", Type: "string", Facet: pointer.True()},
			{Name: "cuisines", Type: "string"},
			{Name: "rating", Type: "float"},
		},
		DefaultSortingField: pointer.String("rating"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	log.Info().Str("collection", collectionName).Msg("Created Typesense collection")
	return nil
}

// DropSchema deletes the collection with every indexed document
func (a *TypesenseAdapter) DropSchema(ctx context.Context) error {
	if _, err := a.client.Client().Collection(collectionName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete typesense collection: %w", err)
	}
	log.Info().Str("collection", collectionName).Msg("Deleted Typesense collection")
	return nil
}

// Index upserts every restaurant. It stops at the first failure.
func (a *TypesenseAdapter) Index(ctx context.Context, restaurants []entities.Restaurant) error {
	docs := a.client.Client().Collection(collectionName).Documents()
	for i, r := range restaurants {
		if err := ctx.Err(); err != nil {
			return err
		}
		document := map[string]interface{}{
			"id":       r.ID,
			"name":     r.Name,
			"city":     r.City,
			"cuisines": r.Cuisines,
			"rating":   r.AggregateRating,
		}
		if _, err := docs.Upsert(ctx, document); err != nil {
			return fmt.Errorf("failed to index restaurant %q (row %d): %w", r.Name, i, err)
		}
	}
	return nil
}

// Suggest returns up to limit restaurants whose name matches query
func (a *TypesenseAdapter) Suggest(ctx context.Context, query string, limit int) ([]entities.RestaurantRef, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search restaurants: %w", err)
	}

	refs := []entities.RestaurantRef{}
	if result.Hits == nil {
		return refs, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		ref := entities.RestaurantRef{}
		ref.ID, _ = doc["id"].(string)
		ref.Name, _ = doc["name"].(string)
		ref.City, _ = doc["city"].(string)
		if ref.ID == "" {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
