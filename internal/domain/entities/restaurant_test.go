package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
)

func TestNewDataset_AssignsStableDistinctIDs(t *testing.T) {
	rows := []entities.Restaurant{
		{Name: "Spice Hut", City: "Delhi"},
		{Name: "Spice Hut", City: "Delhi"},
	}

	first := entities.NewDataset(entities.RequiredColumns, rows)
	second := entities.NewDataset(entities.RequiredColumns, rows)

	a, b := first.Restaurants()[0].ID, first.Restaurants()[1].ID
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, second.Restaurants()[0].ID)
	assert.Empty(t, rows[0].ID, "input rows must not be modified")
}

func TestDataset_CitiesInFirstSeenOrder(t *testing.T) {
	d := entities.NewDataset(entities.RequiredColumns, []entities.Restaurant{
		{Name: "A", City: "Mumbai"},
		{Name: "B", City: "Delhi"},
		{Name: "C", City: "Mumbai"},
	})

	assert.Equal(t, []string{"Mumbai", "Delhi"}, d.Cities())
	assert.True(t, d.HasCity("Delhi"))
	assert.False(t, d.HasCity("delhi"))
}

func TestDataset_MissingColumns(t *testing.T) {
	d := entities.NewDataset(append(entities.RequiredColumns, entities.ColumnLatitude), nil)

	assert.Equal(t, []string{entities.ColumnLongitude}, d.MissingColumns(entities.LocationColumns...))
	assert.True(t, d.HasColumns(entities.DisplayColumns...))
	assert.False(t, d.HasColumns(entities.LocationColumns...))
}

func TestDataset_FindFirstByNameReturnsFirstDuplicate(t *testing.T) {
	d := entities.NewDataset(entities.RequiredColumns, []entities.Restaurant{
		{Name: "Cafe", City: "Pune", Cuisines: "Cafe"},
		{Name: "Cafe", City: "Goa", Cuisines: "Seafood"},
	})

	r, ok := d.FindFirstByName("Cafe")
	require.True(t, ok)
	assert.Equal(t, "Pune", r.City)

	byID, ok := d.FindByID(d.Restaurants()[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Goa", byID.City)

	_, ok = d.FindByID("missing")
	assert.False(t, ok)
}

func TestParseCuisineTerms(t *testing.T) {
	assert.Equal(t, []string{"Italian", "pizza"}, entities.ParseCuisineTerms(" Italian, ,pizza ,"))
	assert.Nil(t, entities.ParseCuisineTerms("   "))
}

func TestRatingRange_ContainsIsInclusive(t *testing.T) {
	r := entities.RatingRange{Low: 3.5, High: 4.2}

	assert.True(t, r.Contains(3.5))
	assert.True(t, r.Contains(4.2))
	assert.False(t, r.Contains(4.21))
}
