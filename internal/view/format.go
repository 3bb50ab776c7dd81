package view

import (
	"fmt"
	"strconv"
	"time"

	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/models"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with a binary unit and at most two
// decimals: 0 Bytes, 512 Bytes, 1.5 KB, 2 MB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	i := 0
	scale := 1.0
	for i < len(sizeUnits)-1 && float64(bytes) >= scale*1024 {
		scale *= 1024
		i++
	}

	value := float64(int64(float64(bytes)/scale*100+0.5)) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatAmount prints a transaction amount in its shortest decimal form.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatMoney prints a savings value with exactly two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// TotalSavings sums the estimated savings of all recommendations.
func TotalSavings(recs []dto.RecommendationResponse) float64 {
	var total float64
	for _, rec := range recs {
		total += rec.Savings()
	}
	return total
}

// FormatDate renders an RFC3339 timestamp in the catalog's locale and time
// zone. Anything unparseable is returned as is.
func (c *Catalog) FormatDate(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	t = t.In(c.location())
	if c.IsEnglish() {
		return t.Format("1/2/2006, 3:04:05 PM")
	}
	return t.Format("02.01.2006, 15:04:05")
}

func (c *Catalog) StatusName(status models.DocumentStatus) string {
	switch status {
	case models.DocumentStatusUploaded:
		return c.T(MsgStatusUploaded)
	case models.DocumentStatusProcessing:
		return c.T(MsgStatusProcessing)
	case models.DocumentStatusProcessed:
		return c.T(MsgStatusProcessed)
	default:
		return c.T(MsgStatusUnknown)
	}
}

// DocTypeName returns the localized document type, or the raw value when the
// type is unknown.
func (c *Catalog) DocTypeName(docType string) string {
	switch models.DocumentType(docType) {
	case models.DocumentTypeReceipt:
		return c.T(MsgTypeReceipt)
	case models.DocumentTypeStatement:
		return c.T(MsgTypeStatement)
	case models.DocumentTypeScreenshot:
		return c.T(MsgTypeScreenshot)
	default:
		return docType
	}
}

func (c *Catalog) SourceName(source string) string {
	switch models.RecommendationSource(source) {
	case models.SourceBankTariff:
		return c.T(MsgSourceBankTariff)
	case models.SourceGovTariff:
		return c.T(MsgSourceGovTariff)
	case models.SourceEducation:
		return c.T(MsgSourceEducation)
	case models.SourceLLM:
		return c.T(MsgSourceLLM)
	default:
		return source
	}
}

func (c *Catalog) CategoryName(category string) string {
	keys := map[models.TransactionCategory]Key{
		models.CategoryFood:          MsgCategoryFood,
		models.CategoryTransport:     MsgCategoryTransport,
		models.CategoryUtilities:     MsgCategoryUtilities,
		models.CategoryShopping:      MsgCategoryShopping,
		models.CategoryEntertainment: MsgCategoryEntertain,
		models.CategoryHealthcare:    MsgCategoryHealthcare,
		models.CategoryEducation:     MsgCategoryEducation,
		models.CategoryOther:         MsgCategoryOther,
	}
	if key, ok := keys[models.TransactionCategory(category)]; ok {
		return c.T(key)
	}
	return category
}

// RecommendationItem is a recommendation prepared for display.
type RecommendationItem struct {
	Number      int
	Title       string
	Description string
	Source      string
	SourceName  string
	Savings     float64
	HasSavings  bool
	SavingsText string
}

// Recommendations applies display fallbacks: a numbered title when the title
// is empty and the llm source when none is given.
func (c *Catalog) Recommendations(recs []dto.RecommendationResponse) []RecommendationItem {
	items := make([]RecommendationItem, 0, len(recs))
	for i, rec := range recs {
		item := RecommendationItem{
			Number:      i + 1,
			Title:       rec.Title,
			Description: rec.Description,
			Source:      rec.Source,
			Savings:     rec.Savings(),
		}
		if item.Title == "" {
			item.Title = c.T(MsgRecommendationN, i+1)
		}
		if item.Source == "" {
			item.Source = string(models.SourceLLM)
		}
		item.SourceName = c.SourceName(item.Source)
		item.HasSavings = item.Savings > 0
		item.SavingsText = FormatMoney(item.Savings)
		items = append(items, item)
	}
	return items
}

type TransactionItem struct {
	Amount         string
	Currency       string
	Category       string
	Description    string
	LLMDescription string
	Date           string
}

func (c *Catalog) Transactions(txs []dto.TransactionResponse) []TransactionItem {
	items := make([]TransactionItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, TransactionItem{
			Amount:         FormatAmount(tx.Amount),
			Currency:       tx.Currency,
			Category:       c.CategoryName(tx.Category),
			Description:    tx.Description,
			LLMDescription: tx.LLMDescription,
			Date:           c.FormatDate(tx.Date),
		})
	}
	return items
}
