package models

import "rag-iishka-client/internal/dto"

// DocumentView is one row of the document list: the server record joined with
// whatever the client remembers about processing it.
type DocumentView struct {
	Document            dto.DocumentResponse
	Status              DocumentStatus
	Processed           bool
	TransactionCount    int
	RecommendationCount int
	CanProcess          bool
	HasDetails          bool
	HasRecommendations  bool
	TextPreview         string
	TextTruncated       bool
}
