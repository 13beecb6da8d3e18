package entities

// RecommendationCard is the display form of one matching restaurant
type RecommendationCard struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Cuisines   string  `json:"cuisines"`
	Rating     float64 `json:"rating"`
	Location   string  `json:"location"`
	CostForTwo string  `json:"cost_for_two"`
}

// RecommendationPage is what the recommendations view shows: the match count
// first, then either the cards or an explanatory message.
type RecommendationPage struct {
	Count   int                  `json:"count"`
	Cards   []RecommendationCard `json:"cards"`
	Message string               `json:"message,omitempty"`
}
