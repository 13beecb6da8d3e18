package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/repositories"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
)

const (
	restaurantsTable = "restaurants"
	idColumn         = "id"
)

// sqlColumns maps dataset column names to their snake_case table columns
var sqlColumns = map[string]string{
	entities.ColumnName:       "restaurant_name",
	entities.ColumnCity:       "city",
	entities.ColumnCuisines:   "cuisines",
	entities.ColumnRating:     "aggregate_rating",
	entities.ColumnCostForTwo: "average_cost_for_two",
	entities.ColumnCurrency:   "currency",
	entities.ColumnLatitude:   "latitude",
	entities.ColumnLongitude:  "longitude",
}

// PostgresSource loads restaurants from the restaurants table, ordered by id.
// Record identifiers are derived from the id column, so they survive row
// reordering in the table.
type PostgresSource struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.DatasetSource = (*PostgresSource)(nil)

// NewPostgresSource creates a PostgreSQL dataset source
func NewPostgresSource(client *postgres.Client) *PostgresSource {
	return &PostgresSource{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Load reads the table once. The latitude/longitude columns are optional and
// detected from information_schema.
func (s *PostgresSource) Load(ctx context.Context) (*entities.Dataset, error) {
	present, err := s.tableColumns(ctx)
	if err != nil {
		return nil, err
	}

	var columns, missing []string
	if !present[idColumn] {
		missing = append(missing, idColumn)
	}
	for _, c := range entities.RequiredColumns {
		if present[sqlColumns[c]] {
			columns = append(columns, c)
		} else {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(missing)
	}
	for _, c := range entities.LocationColumns {
		if present[sqlColumns[c]] {
			columns = append(columns, c)
		}
	}

	selected := []interface{}{idColumn}
	for _, c := range columns {
		selected = append(selected, sqlColumns[c])
	}

	query, args, err := s.db.From(restaurantsTable).
		Select(selected...).
		Order(goqu.I(idColumn).Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build dataset query", err)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query restaurants", err)
	}
	defer rows.Close()

	hasLat := present[sqlColumns[entities.ColumnLatitude]]
	hasLon := present[sqlColumns[entities.ColumnLongitude]]

	var restaurants []entities.Restaurant
	for rows.Next() {
		var (
			id       int64
			r        entities.Restaurant
			currency sql.NullString
			cuisines sql.NullString
			lat, lon sql.NullFloat64
		)
		dest := []interface{}{&id, &r.Name, &r.City, &cuisines, &r.AggregateRating, &r.AverageCostForTwo, &currency}
		if hasLat {
			dest = append(dest, &lat)
		}
		if hasLon {
			dest = append(dest, &lon)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, apperrors.NewInternalError("failed to scan restaurant", err)
		}

		r.ID = entities.NewRestaurantID(int(id), r.Name, r.City)
		r.Cuisines = cuisines.String
		r.Currency = currency.String
		if lat.Valid {
			v := lat.Float64
			r.Latitude = &v
		}
		if lon.Valid {
			v := lon.Float64
			r.Longitude = &v
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate restaurants", err)
	}

	ds := entities.NewDataset(columns, restaurants)
	log.Info().
		Str("table", restaurantsTable).
		Int("restaurants", ds.Len()).
		Bool("has_location", hasLat && hasLon).
		Msg("Dataset loaded")
	return ds, nil
}

func (s *PostgresSource) tableColumns(ctx context.Context) (map[string]bool, error) {
	query, args, err := s.db.From(goqu.S("information_schema").Table("columns")).
		Select("column_name").
		Where(goqu.Ex{"table_name": restaurantsTable}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build column query", err)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read table columns", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan column name", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate table columns", err)
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("table %q not found", restaurantsTable)
	}
	return present, nil
}
