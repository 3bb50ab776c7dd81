package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageLogin           = "login"
	PageRegister        = "register"
	PageDocuments       = "documents"
	PageDetails         = "details"
	PageRecommendations = "recommendations"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

type Flash struct {
	Kind FlashKind
	Text string
}

// Page is the data every template receives. Data holds the page specific
// part.
type Page struct {
	Title   string
	Cat     *Catalog
	Email   string
	Flashes []Flash
	Data    any
}

type AuthForm struct {
	Email    string
	Username string
	Password string
	Error    string
}

type DocumentsPage struct {
	Documents []models.DocumentView
	Types     []models.DocumentType
	Error     string
}

type DetailsPage struct {
	DocumentID      string
	Transactions    []TransactionItem
	Recommendations []RecommendationItem
	Error           string
}

type RecommendationsPage struct {
	DocumentID string
	Items      []RecommendationItem
	Total      float64
	TotalText  string
	ShowTotal  bool
	Error      string
}

// NewDetailsPage prepares processed results for the details template.
func (c *Catalog) NewDetailsPage(documentID string, result *models.ProcessedResult) DetailsPage {
	page := DetailsPage{DocumentID: documentID}
	if result != nil {
		page.Transactions = c.Transactions(result.Transactions)
		page.Recommendations = c.Recommendations(result.Recommendations)
	}
	return page
}

// NewRecommendationsPage prepares the recommendation list and its savings
// banner, which is shown only for a positive total.
func (c *Catalog) NewRecommendationsPage(documentID string, recs []dto.RecommendationResponse) RecommendationsPage {
	total := TotalSavings(recs)
	return RecommendationsPage{
		DocumentID: documentID,
		Items:      c.Recommendations(recs),
		Total:      total,
		TotalText:  FormatMoney(total),
		ShowTotal:  total > 0,
	}
}

var templateFuncs = template.FuncMap{
	"fileSize": FormatFileSize,
}

// Renderer executes the embedded HTML pages. Output is escaped by
// html/template, so backend strings are never interpreted as markup.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	names := []string{PageLogin, PageRegister, PageDocuments, PageDetails, PageRecommendations}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
