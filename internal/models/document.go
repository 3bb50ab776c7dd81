package models

import "fmt"

type DocumentType string

const (
	DocumentTypeReceipt    DocumentType = "receipt"
	DocumentTypeStatement  DocumentType = "statement"
	DocumentTypeScreenshot DocumentType = "screenshot"
)

// ParseDocumentType accepts the three upload types the backend knows.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentTypeReceipt, DocumentTypeStatement, DocumentTypeScreenshot:
		return DocumentType(s), nil
	default:
		return "", fmt.Errorf("invalid document type %q", s)
	}
}

type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
)
