package dto

type RecommendationResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	PotentialSavings float64 `json:"potential_savings"`
	// Some backend builds emit camelCase.
	PotentialSavingsCamel float64 `json:"potentialSavings,omitempty"`
	Source                string  `json:"source"`
	CreatedAt             string  `json:"created_at"`
}

// Savings returns the estimated savings, preferring potential_savings.
func (r RecommendationResponse) Savings() float64 {
	if r.PotentialSavings != 0 {
		return r.PotentialSavings
	}
	return r.PotentialSavingsCamel
}
