package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	"github.com/zatekoja/chefmate/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
)

// CSVSource loads restaurants from a CSV file with a header row
type CSVSource struct {
	path string
}

var _ repositories.DatasetSource = (*CSVSource)(nil)

// NewCSVSource creates a CSV dataset source
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads and parses the whole file
func (s *CSVSource) Load(ctx context.Context) (*entities.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}

	log.Info().
		Str("path", s.path).
		Int("restaurants", ds.Len()).
		Int("cities", len(ds.Cities())).
		Bool("has_location", ds.HasColumns(entities.LocationColumns...)).
		Msg("Dataset loaded")
	return ds, nil
}

// ReadCSV parses restaurant rows. Columns are matched by header name; unknown
// columns are ignored and Latitude/Longitude are optional.
func ReadCSV(ctx context.Context, r io.Reader) (*entities.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewSchemaError(entities.RequiredColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			continue
		}
		index[name] = i
		columns = append(columns, name)
	}

	var missing []string
	for _, c := range entities.RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(missing)
	}

	latIdx, hasLat := index[entities.ColumnLatitude]
	lonIdx, hasLon := index[entities.ColumnLongitude]

	var restaurants []entities.Restaurant
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rating, err := parseFloat(field(entities.ColumnRating))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, entities.ColumnRating, err)
		}
		cost, err := parseFloat(field(entities.ColumnCostForTwo))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, entities.ColumnCostForTwo, err)
		}

		restaurant := entities.Restaurant{
			Name:              field(entities.ColumnName),
			City:              field(entities.ColumnCity),
			Cuisines:          field(entities.ColumnCuisines),
			AggregateRating:   rating,
			AverageCostForTwo: cost,
			Currency:          field(entities.ColumnCurrency),
		}
		if hasLat {
			if restaurant.Latitude, err = parseOptionalFloat(record, latIdx); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, entities.ColumnLatitude, err)
			}
		}
		if hasLon {
			if restaurant.Longitude, err = parseOptionalFloat(record, lonIdx); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, entities.ColumnLongitude, err)
			}
		}

		restaurants = append(restaurants, restaurant)
	}

	return entities.NewDataset(columns, restaurants), nil
}

// parseFloat treats a blank cell as zero, matching a missing rating or cost
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseOptionalFloat(record []string, i int) (*float64, error) {
	if i >= len(record) {
		return nil, nil
	}
	s := strings.TrimSpace(record[i])
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
