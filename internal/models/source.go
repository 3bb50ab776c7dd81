package models

// RecommendationSource names the knowledge base section a recommendation was
// built from. Recommendations without knowledge base context come from the LLM.
type RecommendationSource string

const (
	SourceBankTariff RecommendationSource = "bank_tariff"
	SourceGovTariff  RecommendationSource = "gov_tariff"
	SourceEducation  RecommendationSource = "education"
	SourceLLM        RecommendationSource = "llm"
)
