package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/chefmate/backend/internal/application/services"
	"github.com/zatekoja/chefmate/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/chefmate/backend/pkg/errors"
)

func names(rs []entities.Restaurant) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestRecommendationService_Filter_DelhiMughlai(t *testing.T) {
	ds := entities.NewDataset(entities.RequiredColumns, []entities.Restaurant{
		{Name: "Karim's", City: "Delhi", Cuisines: "North Indian, Mughlai", AggregateRating: 4.2},
		{Name: "Golden Dragon", City: "Delhi", Cuisines: "Chinese", AggregateRating: 3.5},
	})
	service := services.NewRecommendationService(ds)

	matches, err := service.Filter(context.Background(), entities.FilterCriteria{
		City:         "Delhi",
		CuisineTerms: []string{"mughlai"},
		Rating:       entities.RatingRange{Low: 4.0, High: 5.0},
	})

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Karim's", matches[0].Name)
}

func TestRecommendationService_Filter_PredicatesHold(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())
	ranges := []entities.RatingRange{
		{Low: 1, High: 5},
		{Low: 3.5, High: 4.2},
		{Low: 4.6, High: 4.6},
		{Low: 3.2, High: 3.8},
	}

	for _, city := range []string{"Delhi", "Mumbai", "Pune"} {
		for _, rr := range ranges {
			matches, err := service.Filter(context.Background(), entities.FilterCriteria{City: city, Rating: rr})
			require.NoError(t, err)
			for _, m := range matches {
				assert.Equal(t, city, m.City)
				assert.GreaterOrEqual(t, m.AggregateRating, rr.Low)
				assert.LessOrEqual(t, m.AggregateRating, rr.High)
			}
		}
	}
}

func TestRecommendationService_Filter_InclusiveBounds(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())

	matches, err := service.Filter(context.Background(), entities.FilterCriteria{
		City:   "Delhi",
		Rating: entities.RatingRange{Low: 3.5, High: 4.2},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Karim's", "Golden Dragon"}, names(matches))
}

func TestRecommendationService_Filter_AnyTermCaseInsensitive(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())

	matches, err := service.Filter(context.Background(), entities.FilterCriteria{
		City:         "Mumbai",
		CuisineTerms: []string{"SEAFOOD", "pizz"},
		Rating:       fullRange(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Trishna", "Cafe Mondegar"}, names(matches))
	for _, m := range matches {
		lower := strings.ToLower(m.Cuisines)
		assert.True(t, strings.Contains(lower, "seafood") || strings.Contains(lower, "pizz"))
	}
}

func TestRecommendationService_Filter_EmptyTermsMatchesNoCuisinePredicate(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())
	ctx := context.Background()

	withNil, err := service.Filter(ctx, entities.FilterCriteria{City: "Mumbai", Rating: fullRange()})
	require.NoError(t, err)
	withEmpty, err := service.Filter(ctx, entities.FilterCriteria{City: "Mumbai", CuisineTerms: entities.ParseCuisineTerms(" , ,"), Rating: fullRange()})
	require.NoError(t, err)

	assert.Equal(t, withNil, withEmpty)
	assert.Equal(t, []string{"Trishna", "Cafe Mondegar", "Karim's"}, names(withNil))
}

func TestRecommendationService_Filter_Idempotent(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())
	criteria := entities.FilterCriteria{City: "Delhi", CuisineTerms: []string{"indian"}, Rating: fullRange()}

	first, err := service.Filter(context.Background(), criteria)
	require.NoError(t, err)
	second, err := service.Filter(context.Background(), criteria)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommendationService_Filter_Validation(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())

	tests := []struct {
		name     string
		criteria entities.FilterCriteria
		want     string
	}{
		{"missing city", entities.FilterCriteria{Rating: fullRange()}, "city is required"},
		{"unknown city", entities.FilterCriteria{City: "Atlantis", Rating: fullRange()}, `unknown city "Atlantis"`},
		{"inverted range", entities.FilterCriteria{City: "Delhi", Rating: entities.RatingRange{Low: 4, High: 3}}, "rating.high"},
		{"out of bounds", entities.FilterCriteria{City: "Delhi", Rating: entities.RatingRange{Low: 0.5, High: 5}}, "rating.low must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Filter(context.Background(), tt.criteria)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRecommendationService_Filter_SchemaErrorIsNotEmptyResult(t *testing.T) {
	ds := entities.NewDataset([]string{entities.ColumnName, entities.ColumnCity, entities.ColumnRating}, []entities.Restaurant{
		{Name: "Karim's", City: "Delhi", AggregateRating: 4.2},
	})
	service := services.NewRecommendationService(ds)

	matches, err := service.Filter(context.Background(), entities.FilterCriteria{City: "Delhi", Rating: fullRange()})

	require.Error(t, err)
	assert.Nil(t, matches)
	assert.Equal(t, apperrors.ErrorTypeSchema, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), entities.ColumnCuisines)
}

func TestRecommendationService_Render(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())
	matches, err := service.Filter(context.Background(), entities.FilterCriteria{City: "Mumbai", CuisineTerms: []string{"italian"}, Rating: fullRange()})
	require.NoError(t, err)

	page := service.Render(matches)

	assert.Equal(t, 1, page.Count)
	assert.Empty(t, page.Message)
	require.Len(t, page.Cards, 1)
	assert.Equal(t, entities.RecommendationCard{
		ID:         matches[0].ID,
		Name:       "Cafe Mondegar",
		Cuisines:   "Continental, Italian, Pizza",
		Rating:     3.9,
		Location:   "Mumbai",
		CostForTwo: "1100.5 Indian Rupees(Rs.)",
	}, page.Cards[0])
}

func TestRecommendationService_Recommend_NoMatches(t *testing.T) {
	service := services.NewRecommendationService(sampleDataset())

	page, err := service.Recommend(context.Background(), entities.FilterCriteria{
		City:         "Pune",
		CuisineTerms: []string{"french"},
		Rating:       fullRange(),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.Empty(t, page.Cards)
	assert.NotNil(t, page.Cards)
	assert.Equal(t, services.NoRecommendationsMessage, page.Message)
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "800 Indian Rupees(Rs.)", services.FormatCost(800, "Indian Rupees(Rs.)"))
	assert.Equal(t, "12.5 USD", services.FormatCost(12.5, "USD"))
	assert.Equal(t, "0", services.FormatCost(0, ""))
}
