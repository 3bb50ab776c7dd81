package view

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"rag-iishka-client/internal/models"
)

// TextWriter renders the same views as the HTML pages as plain text for the
// terminal.
type TextWriter struct {
	cat *Catalog
	w   io.Writer
}

func (c *Catalog) Text(w io.Writer) *TextWriter {
	return &TextWriter{cat: c, w: w}
}

func (t *TextWriter) Line(format string, args ...any) {
	fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *TextWriter) Documents(views []models.DocumentView) error {
	c := t.cat
	if len(views) == 0 {
		t.Line("%s. %s", c.T(MsgEmptyTitle), c.T(MsgEmptyHint))
		return nil
	}

	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\t%s\t%s\t%s\t%s\n",
		c.T(MsgFile), c.T(MsgDocType), c.T(MsgSize), c.T(MsgDate), c.T(MsgStatus))
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.Document.ID,
			v.Document.FileName,
			c.DocTypeName(v.Document.Type),
			FormatFileSize(v.Document.FileSize),
			c.FormatDate(v.Document.CreatedAt),
			t.statusCell(v),
		)
	}
	return tw.Flush()
}

func (t *TextWriter) statusCell(v models.DocumentView) string {
	c := t.cat
	cell := c.StatusName(v.Status)
	if v.TransactionCount > 0 {
		cell += fmt.Sprintf(", %s: %d", c.T(MsgTransactionCount), v.TransactionCount)
	}
	if v.RecommendationCount > 0 {
		cell += fmt.Sprintf(", %s: %d", c.T(MsgRecommendationCount), v.RecommendationCount)
	}
	return cell
}

func (t *TextWriter) Details(result *models.ProcessedResult) {
	c := t.cat
	if !result.HasData() {
		t.Line("%s", c.T(MsgNoData))
		return
	}

	if len(result.Transactions) > 0 {
		t.Line("%s", c.T(MsgTransactionsHeader, len(result.Transactions)))
		for _, tx := range c.Transactions(result.Transactions) {
			t.Line("  %s  %s %s  [%s]  %s", tx.Date, tx.Amount, tx.Currency, tx.Category, tx.Description)
			if tx.LLMDescription != "" {
				t.Line("      %s", tx.LLMDescription)
			}
		}
	}

	if len(result.Transactions) > 0 {
		t.Line("")
	}
	if len(result.Recommendations) == 0 {
		t.Line("%s", c.T(MsgNoRecommendations))
		return
	}
	t.Line("%s", c.T(MsgRecommendationsHdr, len(result.Recommendations)))
	t.recommendations(c.Recommendations(result.Recommendations))
}

func (t *TextWriter) Recommendations(page RecommendationsPage) {
	c := t.cat
	if len(page.Items) == 0 {
		t.Line("%s", c.T(MsgNoRecommendations))
		return
	}
	t.Line("%s", c.T(MsgRecsTitle))
	if page.ShowTotal {
		t.Line("%s", c.T(MsgPotentialSavings, page.TotalText))
	}
	t.Line("")
	t.recommendations(page.Items)
}

func (t *TextWriter) recommendations(items []RecommendationItem) {
	c := t.cat
	for _, item := range items {
		t.Line("%d. %s", item.Number, item.Title)
		if item.Description != "" {
			t.Line("   %s", item.Description)
		}
		if item.HasSavings {
			t.Line("   %s", c.T(MsgSavings, item.SavingsText))
		}
		t.Line("   %s", c.T(MsgSource, item.SourceName))
	}
}

// Whoami prints the signed in user and, when known, the access token expiry.
func (t *TextWriter) Whoami(email string, expiry time.Time) {
	c := t.cat
	if email == "" {
		t.Line("%s", c.T(MsgNotSignedIn))
		return
	}
	t.Line("%s", c.T(MsgSignedInAs, email))
	if !expiry.IsZero() {
		t.Line("%s", c.T(MsgTokenExpires, c.FormatDate(expiry.Format(time.RFC3339))))
	}
}
