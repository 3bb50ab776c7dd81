package models

import (
	"time"

	"rag-iishka-client/internal/dto"
)

// ProcessedResult is what the client remembers about the latest processing
// call for a document.
type ProcessedResult struct {
	Transactions    []dto.TransactionResponse
	Recommendations []dto.RecommendationResponse
	ProcessedAt     time.Time
}

// NewProcessedResult copies a process response, defaulting missing lists to
// empty ones.
func NewProcessedResult(resp *dto.ProcessDocumentResponse, at time.Time) *ProcessedResult {
	result := &ProcessedResult{
		Transactions:    []dto.TransactionResponse{},
		Recommendations: []dto.RecommendationResponse{},
		ProcessedAt:     at,
	}
	if resp == nil {
		return result
	}
	if resp.Transactions != nil {
		result.Transactions = resp.Transactions
	}
	if resp.Recommendations != nil {
		result.Recommendations = resp.Recommendations
	}
	return result
}

// HasData reports whether processing produced anything to show.
func (r *ProcessedResult) HasData() bool {
	return r != nil && (len(r.Transactions) > 0 || len(r.Recommendations) > 0)
}
