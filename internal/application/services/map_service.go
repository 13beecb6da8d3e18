package services

import (
	"context"
	"fmt"

	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
)

// LocationUnavailableMessage is shown instead of any map when coordinates are missing
const LocationUnavailableMessage = "Latitude and Longitude data is not available in the dataset."

// Map headings
const (
	AllRestaurantsTitle     = "All Restaurants"
	SelectedRestaurantTitle = "Selected Restaurant Location"
)

// MapService builds GeoJSON map views from the dataset
type MapService struct {
	dataset *entities.Dataset
}

// NewMapService creates a new map service
func NewMapService(dataset *entities.Dataset) *MapService {
	return &MapService{dataset: dataset}
}

// RenderAll returns one unlabelled point per record that has coordinates.
// Without both location columns no map is produced at all.
func (s *MapService) RenderAll(ctx context.Context) (entities.MapView, error) {
	if err := s.requireLocationColumns(); err != nil {
		return entities.MapView{}, err
	}

	features := []entities.Feature{}
	for _, r := range s.dataset.Restaurants() {
		if !r.HasLocation() {
			continue
		}
		features = append(features, entities.NewPointFeature(*r.Latitude, *r.Longitude, nil))
	}

	return entities.MapView{
		Title:  AllRestaurantsTitle,
		Points: featureCollection(features),
	}, nil
}

// RenderOne returns a single point for the restaurant with the given id,
// carrying its card as feature properties.
func (s *MapService) RenderOne(ctx context.Context, id string) (entities.MapView, error) {
	if err := s.requireLocationColumns(); err != nil {
		return entities.MapView{}, err
	}
	r, ok := s.dataset.FindByID(id)
	if !ok {
		return entities.MapView{}, apperrors.NewNotFoundError(fmt.Sprintf("restaurant %s not found", id))
	}
	return s.single(r)
}

// RenderOneByName is RenderOne for the first record whose name equals name
func (s *MapService) RenderOneByName(ctx context.Context, name string) (entities.MapView, error) {
	if err := s.requireLocationColumns(); err != nil {
		return entities.MapView{}, err
	}
	r, ok := s.dataset.FindFirstByName(name)
	if !ok {
		return entities.MapView{}, apperrors.NewNotFoundError(fmt.Sprintf("restaurant %q not found", name))
	}
	return s.single(r)
}

// Locate returns the restaurant with the given id, failing the same way
// RenderOne does when it cannot be placed on a map
func (s *MapService) Locate(ctx context.Context, id string) (entities.Restaurant, error) {
	if err := s.requireLocationColumns(); err != nil {
		return entities.Restaurant{}, err
	}
	r, ok := s.dataset.FindByID(id)
	if !ok {
		return entities.Restaurant{}, apperrors.NewNotFoundError(fmt.Sprintf("restaurant %s not found", id))
	}
	if !r.HasLocation() {
		return entities.Restaurant{}, apperrors.NewLocationUnavailableError(LocationUnavailableMessage)
	}
	return r, nil
}

func (s *MapService) single(r entities.Restaurant) (entities.MapView, error) {
	if !r.HasLocation() {
		return entities.MapView{}, apperrors.NewLocationUnavailableError(LocationUnavailableMessage)
	}

	card := NewRecommendationCard(r)
	feature := entities.NewPointFeature(*r.Latitude, *r.Longitude, map[string]interface{}{
		"id":           card.ID,
		"name":         card.Name,
		"cuisines":     card.Cuisines,
		"rating":       card.Rating,
		"location":     card.Location,
		"cost_for_two": card.CostForTwo,
	})

	return entities.MapView{
		Title:    SelectedRestaurantTitle,
		Selected: &card,
		Points:   featureCollection([]entities.Feature{feature}),
	}, nil
}

func (s *MapService) requireLocationColumns() error {
	if !s.dataset.HasColumns(entities.LocationColumns...) {
		return apperrors.NewLocationUnavailableError(LocationUnavailableMessage)
	}
	return nil
}

func featureCollection(features []entities.Feature) entities.FeatureCollection {
	return entities.FeatureCollection{
		Type:     entities.GeoJSONFeatureCollection,
		Features: features,
	}
}
