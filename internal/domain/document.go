// Package domain holds the document records exchanged between the
// extractors, the catalog and the outer layers.
package domain

import (
	"encoding/json"
	"time"
)

// DocumentType is the kind of regulatory document a link points to.
type DocumentType string

// Document types in classifier priority order.
const (
	TypeStandard   DocumentType = "ГОСТ"
	TypeFederalLaw DocumentType = "Федеральный закон"
	TypeOrder      DocumentType = "Приказ"
	TypeResolution DocumentType = "Постановление"
	TypeBuildNorm  DocumentType = "СНиП"
	TypePractice   DocumentType = "СП"
	TypeGeneric    DocumentType = "Документ"
)

// DocumentSummary is one document discovered on a listing page.
type DocumentSummary struct {
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Type        DocumentType `json:"type"`
	Number      *string      `json:"number"`
	RelativeURL string       `json:"relative_url"`
}

// RankedSummary is a summary that matched a search query.
type RankedSummary struct {
	DocumentSummary
	Relevance int `json:"relevance"`
}

// Section is a titled run of document text.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// LegalStatus is the inferred legal force of a document.
type LegalStatus string

const (
	StatusActive       LegalStatus = "active"
	StatusInactive     LegalStatus = "inactive"
	StatusUndetermined LegalStatus = "undetermined"
)

// Label returns the status as shown to readers of the source.
func (s LegalStatus) Label() string {
	switch s {
	case StatusActive:
		return "Действует"
	case StatusInactive:
		return "Не действует"
	default:
		return "Не определен"
	}
}

// Metadata is inferred from document text. Date and Number are nil when no
// pattern matched.
type Metadata struct {
	Date   *string     `json:"date"`
	Number *string     `json:"number"`
	Status LegalStatus `json:"status"`
}

// MarshalJSON adds the human-readable status label.
func (m Metadata) MarshalJSON() ([]byte, error) {
	status := m.Status
	if status == "" {
		status = StatusUndetermined
	}
	return json.Marshal(struct {
		Date        *string     `json:"date"`
		Number      *string     `json:"number"`
		Status      LegalStatus `json:"status"`
		StatusLabel string      `json:"status_label"`
	}{m.Date, m.Number, status, status.Label()})
}

// DetailStatus tells whether a detail extraction succeeded.
type DetailStatus string

const (
	DetailSuccess DetailStatus = "success"
	DetailError   DetailStatus = "error"
)

// DocumentDetail is the full extraction of one document page. When Status is
// DetailError only Error, URL and ParsedAt are meaningful.
type DocumentDetail struct {
	Title    string
	Sections []Section
	Metadata Metadata
	URL      string
	ParsedAt time.Time
	Status   DetailStatus
	Error    string
}

// NewFailedDetail builds the error-shaped detail for url.
func NewFailedDetail(url string, err error, at time.Time) *DocumentDetail {
	return &DocumentDetail{
		URL:      url,
		ParsedAt: at,
		Status:   DetailError,
		Error:    err.Error(),
	}
}

// Failed reports whether the detail carries an error instead of content.
func (d *DocumentDetail) Failed() bool {
	return d.Status == DetailError
}

// MarshalJSON emits one of two shapes depending on Status.
func (d *DocumentDetail) MarshalJSON() ([]byte, error) {
	parsedAt := d.ParsedAt.Format(time.RFC3339)

	if d.Failed() {
		return json.Marshal(struct {
			Error    string       `json:"error"`
			URL      string       `json:"url"`
			Status   DetailStatus `json:"status"`
			ParsedAt string       `json:"parsed_at"`
		}{d.Error, d.URL, d.Status, parsedAt})
	}

	sections := d.Sections
	if sections == nil {
		sections = []Section{}
	}

	return json.Marshal(struct {
		Title    string       `json:"title"`
		Sections []Section    `json:"sections"`
		Metadata Metadata     `json:"metadata"`
		URL      string       `json:"url"`
		ParsedAt string       `json:"parsed_at"`
		Status   DetailStatus `json:"status"`
	}{d.Title, sections, d.Metadata, d.URL, parsedAt, DetailSuccess})
}

// Category is a fixed listing source on the origin site.
type Category struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	ListingURL string `json:"listing_url"`
}

// CategoryAll selects every category in a search.
const CategoryAll = "all"

// SearchResult is the outcome of a ranked search across listing sources.
type SearchResult struct {
	Query     string          `json:"query"`
	Documents []RankedSummary `json:"documents"`
	Total     int             `json:"total"`
	Showing   int             `json:"showing"`
}
