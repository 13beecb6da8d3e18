package services_test

import (
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

func coord(v float64) *float64 { return &v }

var allColumns = append(append([]string{}, entities.RequiredColumns...), entities.LocationColumns...)

func sampleDataset() *entities.Dataset {
	return entities.NewDataset(allColumns, []entities.Restaurant{
		{Name: "Karim's", City: "Delhi", Cuisines: "North Indian, Mughlai", AggregateRating: 4.2, AverageCostForTwo: 800, Currency: "Indian Rupees(Rs.)", Latitude: coord(28.6507), Longitude: coord(77.2334)},
		{Name: "Golden Dragon", City: "Delhi", Cuisines: "Chinese", AggregateRating: 3.5, AverageCostForTwo: 1200, Currency: "Indian Rupees(Rs.)", Latitude: coord(28.5355), Longitude: coord(77.391)},
		{Name: "Trishna", City: "Mumbai", Cuisines: "Seafood, Coastal", AggregateRating: 4.6, AverageCostForTwo: 2500, Currency: "Indian Rupees(Rs.)"},
		{Name: "Cafe Mondegar", City: "Mumbai", Cuisines: "Continental, Italian, Pizza", AggregateRating: 3.9, AverageCostForTwo: 1100.5, Currency: "Indian Rupees(Rs.)", Latitude: coord(18.9256), Longitude: coord(72.832)},
		{Name: "Karim's", City: "Mumbai", Cuisines: "Mughlai", AggregateRating: 3.1, AverageCostForTwo: 700, Currency: "Indian Rupees(Rs.)", Latitude: coord(19.0), Longitude: coord(72.8)},
		{Name: "Chinese Wok", City: "Pune", Cuisines: "Chinese, Thai", AggregateRating: 5.0, AverageCostForTwo: 600, Currency: "Indian Rupees(Rs.)", Latitude: coord(18.52), Longitude: coord(73.85)},
	})
}

func fullRange() entities.RatingRange {
	return entities.RatingRange{Low: entities.MinRating, High: entities.MaxRating}
}
