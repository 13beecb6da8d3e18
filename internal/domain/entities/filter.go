package entities

import "strings"

// Rating bounds offered by the rating slider
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// RatingRange is an inclusive aggregate rating interval
type RatingRange struct {
	Low  float64 `json:"low" validate:"gte=1,lte=5"`
	High float64 `json:"high" validate:"gte=1,lte=5,gtefield=Low"`
}

// Contains reports whether rating lies within the range, bounds included
func (r RatingRange) Contains(rating float64) bool {
	return rating >= r.Low && rating <= r.High
}

// FilterCriteria is built fresh for every recommendation request
type FilterCriteria struct {
	City         string      `json:"city" validate:"required"`
	CuisineTerms []string    `json:"cuisine_terms" validate:"dive,required"`
	Rating       RatingRange `json:"rating"`
}

// ParseCuisineTerms splits comma-separated user input into trimmed, non-empty terms
func ParseCuisineTerms(input string) []string {
	var terms []string
	for _, part := range strings.Split(input, ",") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
