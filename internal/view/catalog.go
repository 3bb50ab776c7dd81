// Package view turns client data into what users see: localized strings,
// formatted numbers and dates, HTML pages for the web front end and plain
// text for the CLI.
package view

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

type Key string

const (
	MsgLoginTitle          Key = "login.title"
	MsgRegisterTitle       Key = "register.title"
	MsgEmail               Key = "field.email"
	MsgPassword            Key = "field.password"
	MsgUsername            Key = "field.username"
	MsgLoginButton         Key = "login.button"
	MsgRegisterButton      Key = "register.button"
	MsgToRegister          Key = "login.to_register"
	MsgToLogin             Key = "register.to_login"
	MsgLogout              Key = "logout"
	MsgLoginFailed         Key = "error.login"
	MsgRegisterFailed      Key = "error.register"
	MsgConnectionFailed    Key = "error.connection"
	MsgInvalidInput        Key = "error.invalid_input"
	MsgSessionExpired      Key = "error.session_expired"
	MsgUploadTitle         Key = "upload.title"
	MsgDocType             Key = "upload.type"
	MsgUploadButton        Key = "upload.button"
	MsgSelectFile          Key = "upload.select_file"
	MsgUploadFailed        Key = "error.upload"
	MsgUploadSuccess       Key = "upload.success"
	MsgUploadProcessing    Key = "upload.success_processing"
	MsgProcessSuccess      Key = "process.success"
	MsgProcessFailed       Key = "error.process"
	MsgDocumentsTitle      Key = "documents.title"
	MsgDocumentsFailed     Key = "error.documents"
	MsgEmptyTitle          Key = "documents.empty"
	MsgEmptyHint           Key = "documents.empty_hint"
	MsgFile                Key = "document.file"
	MsgSize                Key = "document.size"
	MsgDate                Key = "document.date"
	MsgTransactionCount    Key = "document.transactions"
	MsgRecommendationCount Key = "document.recommendations"
	MsgProcess             Key = "document.process"
	MsgDetails             Key = "document.details"
	MsgRecommendationsBtn  Key = "document.recommendations_button"
	MsgShowText            Key = "document.show_text"
	MsgStatus              Key = "status"
	MsgStatusUploaded      Key = "status.uploaded"
	MsgStatusProcessing    Key = "status.processing"
	MsgStatusProcessed     Key = "status.processed"
	MsgStatusUnknown       Key = "status.unknown"
	MsgTypeReceipt         Key = "type.receipt"
	MsgTypeStatement       Key = "type.statement"
	MsgTypeScreenshot      Key = "type.screenshot"
	MsgDetailsTitle        Key = "details.title"
	MsgTransactionsHeader  Key = "details.transactions"
	MsgRecommendationsHdr  Key = "details.recommendations"
	MsgNoRecommendations   Key = "details.no_recommendations"
	MsgNoData              Key = "details.no_data"
	MsgDetailsNotFound     Key = "details.not_found"
	MsgRecsNotFound        Key = "recommendations.not_found"
	MsgRecommendationN     Key = "recommendation.default_title"
	MsgPotentialSavings    Key = "recommendation.potential_savings"
	MsgSavings             Key = "recommendation.savings"
	MsgSource              Key = "recommendation.source"
	MsgRecsTitle           Key = "recommendations.title"
	MsgBack                Key = "back"
	MsgSourceBankTariff    Key = "source.bank_tariff"
	MsgSourceGovTariff     Key = "source.gov_tariff"
	MsgSourceEducation     Key = "source.education"
	MsgSourceLLM           Key = "source.llm"
	MsgCategoryFood        Key = "category.food"
	MsgCategoryTransport   Key = "category.transport"
	MsgCategoryUtilities   Key = "category.utilities"
	MsgCategoryShopping    Key = "category.shopping"
	MsgCategoryEntertain   Key = "category.entertainment"
	MsgCategoryHealthcare  Key = "category.healthcare"
	MsgCategoryEducation   Key = "category.education"
	MsgCategoryOther       Key = "category.other"
	MsgSignedInAs          Key = "whoami.signed_in"
	MsgNotSignedIn         Key = "whoami.not_signed_in"
	MsgTokenExpires        Key = "whoami.expires"
)

var supported = []language.Tag{language.Russian, language.English}

var matcher = language.NewMatcher(supported)

// Catalog holds the messages of one locale.
type Catalog struct {
	tag      language.Tag
	messages map[Key]string
	loc      *time.Location
}

func NewCatalog(tags ...language.Tag) *Catalog {
	_, idx, _ := matcher.Match(tags...)
	if supported[idx] == language.English {
		return &Catalog{tag: language.English, messages: english}
	}
	return &Catalog{tag: language.Russian, messages: russian}
}

// FromAcceptLanguage picks a catalog for an Accept-Language header value.
// Russian is used when nothing matches.
func FromAcceptLanguage(header string) *Catalog {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return NewCatalog(language.Russian)
	}
	return NewCatalog(tags...)
}

// FromLocale picks a catalog for a POSIX style locale such as "en_US.UTF-8".
func FromLocale(locale string) *Catalog {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return NewCatalog(language.Russian)
	}
	return NewCatalog(tag)
}

// In returns a copy of the catalog that renders dates in loc.
func (c *Catalog) In(loc *time.Location) *Catalog {
	cp := *c
	cp.loc = loc
	return &cp
}

func (c *Catalog) location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

func (c *Catalog) Lang() string {
	return c.tag.String()
}

func (c *Catalog) IsEnglish() bool {
	return c.tag == language.English
}

// T returns the message for key, formatted with args when given.
func (c *Catalog) T(key Key, args ...any) string {
	msg, ok := c.messages[key]
	if !ok {
		msg = string(key)
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
