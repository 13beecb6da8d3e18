package dataset

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewFromDB(db), mock
}

func columnRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, n := range names {
		rows.AddRow(n)
	}
	return rows
}

func TestPostgresSource_LoadWithLocation(t *testing.T) {
	client, mock := setupMockDB(t)

	mock.ExpectQuery(`information_schema`).
		WillReturnRows(columnRows("id", "restaurant_name", "city", "cuisines", "aggregate_rating",
			"average_cost_for_two", "currency", "latitude", "longitude"))

	mock.ExpectQuery(`SELECT "id", "restaurant_name", .*"latitude", "longitude" FROM "restaurants" ORDER BY "id" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_name", "city", "cuisines", "aggregate_rating",
			"average_cost_for_two", "currency", "latitude", "longitude"}).
			AddRow(1, "Karim's", "Delhi", "North Indian, Mughlai", 4.2, 800.0, "INR", 28.6507, 77.2334).
			AddRow(2, "Golden Dragon", "Delhi", "Chinese", 3.5, 1200.0, "INR", nil, nil))

	ds, err := NewPostgresSource(client).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.True(t, ds.HasColumns(entities.LocationColumns...))
	assert.True(t, ds.Restaurants()[0].HasLocation())
	assert.False(t, ds.Restaurants()[1].HasLocation())
	assert.Equal(t, "Golden Dragon", ds.Restaurants()[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_LoadWithoutLocationColumns(t *testing.T) {
	client, mock := setupMockDB(t)

	mock.ExpectQuery(`information_schema`).
		WillReturnRows(columnRows("id", "restaurant_name", "city", "cuisines", "aggregate_rating",
			"average_cost_for_two", "currency"))

	mock.ExpectQuery(`SELECT "id", "restaurant_name", "city", "cuisines", "aggregate_rating", "average_cost_for_two", "currency" FROM "restaurants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_name", "city", "cuisines", "aggregate_rating",
			"average_cost_for_two", "currency"}).
			AddRow(1, "Karim's", "Delhi", "Mughlai", 4.2, 800.0, "INR"))

	ds, err := NewPostgresSource(client).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ds.Len())
	assert.False(t, ds.HasColumns(entities.LocationColumns...))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_MissingRequiredColumn(t *testing.T) {
	client, mock := setupMockDB(t)

	mock.ExpectQuery(`information_schema`).
		WillReturnRows(columnRows("id", "restaurant_name", "city", "cuisines", "aggregate_rating"))

	_, err := NewPostgresSource(client).Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeSchema, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_MissingTable(t *testing.T) {
	client, mock := setupMockDB(t)

	mock.ExpectQuery(`information_schema`).WillReturnRows(columnRows())

	_, err := NewPostgresSource(client).Load(context.Background())

	assert.ErrorContains(t, err, `table "restaurants" not found`)
}

func TestPostgresSource_MissingIDColumnIsSchemaError(t *testing.T) {
	client, mock := setupMockDB(t)

	mock.ExpectQuery(`information_schema`).
		WillReturnRows(columnRows("restaurant_name", "city", "cuisines", "aggregate_rating",
			"average_cost_for_two", "currency"))

	_, err := NewPostgresSource(client).Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeSchema, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "missing required columns: id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_IDsFollowTableID(t *testing.T) {
	client, mock := setupMockDB(t)

	mock.ExpectQuery(`information_schema`).
		WillReturnRows(columnRows("id", "restaurant_name", "city", "cuisines", "aggregate_rating",
			"average_cost_for_two", "currency"))
	mock.ExpectQuery(`SELECT "id", .* FROM "restaurants" ORDER BY "id" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_name", "city", "cuisines", "aggregate_rating",
			"average_cost_for_two", "currency"}).
			AddRow(42, "Karim's", "Delhi", "Mughlai", 4.2, 800.0, "INR"))

	ds, err := NewPostgresSource(client).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entities.NewRestaurantID(42, "Karim's", "Delhi"), ds.Restaurants()[0].ID)
}
