package entities

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Dataset column names, as they appear in the source file header.
const (
	ColumnName       = "Restaurant_name"
	ColumnCity       = "City"
	ColumnCuisines   = "Cuisines"
	ColumnRating     = "Aggregate_rating"
	ColumnCostForTwo = "Average_Cost_for_two"
	ColumnCurrency   = "Currency"
	ColumnLatitude   = "Latitude"
	ColumnLongitude  = "Longitude"
)

// RequiredColumns must be present for a dataset to load at all.
var RequiredColumns = []string{
	ColumnName, ColumnCity, ColumnCuisines, ColumnRating, ColumnCostForTwo, ColumnCurrency,
}

// DisplayColumns are read by the recommendation cards.
var DisplayColumns = []string{
	ColumnName, ColumnCuisines, ColumnRating, ColumnCity, ColumnCostForTwo, ColumnCurrency,
}

// LocationColumns are needed by every map view.
var LocationColumns = []string{ColumnLatitude, ColumnLongitude}

// restaurantNamespace seeds the synthetic restaurant identifiers.
var restaurantNamespace = uuid.MustParse("6f1c1d2e-4b7a-4c57-9e0b-3f0d8a1c5e21")

// Restaurant is one row of the restaurant dataset
type Restaurant struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	City              string   `json:"city"`
	Cuisines          string   `json:"cuisines"`
	AggregateRating   float64  `json:"aggregate_rating"`
	AverageCostForTwo float64  `json:"average_cost_for_two"`
	Currency          string   `json:"currency"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// HasLocation reports whether both coordinates are set
func (r Restaurant) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// RestaurantRef is the id/name pair offered by the map selection box
type RestaurantRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// NewRestaurantID derives a stable identifier from the row position, name and
// city, so duplicate names still resolve to distinct records.
func NewRestaurantID(row int, name, city string) string {
	return uuid.NewSHA1(restaurantNamespace, []byte(fmt.Sprintf("%d|%s|%s", row, name, city))).String()
}

// Dataset is the read-only, in-memory restaurant table. It is built once at
// startup and shared by every request.
type Dataset struct {
	restaurants []Restaurant
	columns     map[string]struct{}
	cities      []string
	cityIndex   map[string]struct{}
	byID        map[string]int
}

// NewDataset builds a dataset from the source's column names and rows. Rows
// without an ID get one from NewRestaurantID.
func NewDataset(columns []string, restaurants []Restaurant) *Dataset {
	d := &Dataset{
		restaurants: make([]Restaurant, len(restaurants)),
		columns:     make(map[string]struct{}, len(columns)),
		cityIndex:   make(map[string]struct{}),
		byID:        make(map[string]int, len(restaurants)),
	}
	for _, c := range columns {
		d.columns[c] = struct{}{}
	}

	copy(d.restaurants, restaurants)
	for i := range d.restaurants {
		r := &d.restaurants[i]
		if r.ID == "" {
			r.ID = NewRestaurantID(i, r.Name, r.City)
		}
		d.byID[r.ID] = i
		if _, seen := d.cityIndex[r.City]; !seen {
			d.cityIndex[r.City] = struct{}{}
			d.cities = append(d.cities, r.City)
		}
	}
	return d
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.restaurants)
}

// Restaurants returns the records in source order. The slice must not be modified.
func (d *Dataset) Restaurants() []Restaurant {
	return d.restaurants[:len(d.restaurants):len(d.restaurants)]
}

// Columns returns the column names present in the source, sorted
func (d *Dataset) Columns() []string {
	cols := make([]string, 0, len(d.columns))
	for c := range d.columns {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// MissingColumns returns the subset of cols not present in the source, in argument order
func (d *Dataset) MissingColumns(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if _, ok := d.columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// HasColumns reports whether every named column is present
func (d *Dataset) HasColumns(cols ...string) bool {
	return len(d.MissingColumns(cols...)) == 0
}

// Cities returns the distinct city values in first-seen order
func (d *Dataset) Cities() []string {
	return d.cities[:len(d.cities):len(d.cities)]
}

// HasCity reports whether city is one of the dataset's cities
func (d *Dataset) HasCity(city string) bool {
	_, ok := d.cityIndex[city]
	return ok
}

// FindByID looks a record up by its synthetic identifier
func (d *Dataset) FindByID(id string) (Restaurant, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Restaurant{}, false
	}
	return d.restaurants[i], true
}

// FindFirstByName returns the first record whose name equals name exactly
func (d *Dataset) FindFirstByName(name string) (Restaurant, bool) {
	for _, r := range d.restaurants {
		if r.Name == name {
			return r, true
		}
	}
	return Restaurant{}, false
}

// Refs returns the id/name pair of every record in source order
func (d *Dataset) Refs() []RestaurantRef {
	refs := make([]RestaurantRef, len(d.restaurants))
	for i, r := range d.restaurants {
		refs[i] = RestaurantRef{ID: r.ID, Name: r.Name, City: r.City}
	}
	return refs
}
