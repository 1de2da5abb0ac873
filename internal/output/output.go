// Package output renders catalog results for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/verge88/api-npa3/internal/domain"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

const (
	titleWidth   = 70
	contentWidth = 100
	// previewRunes caps section content in table output.
	previewRunes = 400
)

// Renderer writes results in one format.
type Renderer struct {
	w      io.Writer
	format string
}

// NewRenderer creates a Renderer for format ("table" or "json").
func NewRenderer(w io.Writer, format string) (*Renderer, error) {
	switch format {
	case FormatTable, FormatJSON:
		return &Renderer{w: w, format: format}, nil
	case "":
		return &Renderer{w: w, format: FormatTable}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatTable, FormatJSON)
	}
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	return t
}

// Categories renders the supported categories.
func (r *Renderer) Categories(categories []domain.Category) error {
	if r.format == FormatJSON {
		return r.json(categories)
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Key", "Label", "Listing"})
	for _, c := range categories {
		t.AppendRow(table.Row{c.Key, c.Label, c.ListingURL})
	}
	t.Render()
	return nil
}

// Page is one page of a listing.
type Page struct {
	Documents []domain.DocumentSummary `json:"documents"`
	Total     int                      `json:"total"`
	Page      int                      `json:"page"`
	PerPage   int                      `json:"per_page"`
	Pages     int                      `json:"pages"`
}

// Documents renders a listing page.
func (r *Renderer) Documents(p Page) error {
	if r.format == FormatJSON {
		return r.json(p)
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"#", "Type", "Number", "Title", "URL"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: titleWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	offset := (p.Page - 1) * p.PerPage
	for i, d := range p.Documents {
		t.AppendRow(table.Row{offset + i + 1, d.Type, deref(d.Number), d.Title, d.URL})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("page %d of %d, %d documents", p.Page, p.Pages, p.Total), ""})
	t.Render()
	return nil
}

// Search renders a ranked search result.
func (r *Renderer) Search(res *domain.SearchResult) error {
	if r.format == FormatJSON {
		return r.json(res)
	}

	t := r.newTable()
	t.SetTitle(fmt.Sprintf("%q: showing %d of %d", res.Query, res.Showing, res.Total))
	t.AppendHeader(table.Row{"Relevance", "Type", "Title", "URL"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: titleWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	for _, d := range res.Documents {
		t.AppendRow(table.Row{d.Relevance, d.Type, d.Title, d.URL})
	}
	t.Render()
	return nil
}

// Detail renders a document detail. Failed details render their error.
func (r *Renderer) Detail(d *domain.DocumentDetail) error {
	if r.format == FormatJSON {
		return r.json(d)
	}

	info := r.newTable()
	info.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: contentWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	info.AppendRow(table.Row{"URL", d.URL})
	info.AppendRow(table.Row{"Parsed at", d.ParsedAt.Format("2006-01-02 15:04:05")})
	info.AppendRow(table.Row{"Status", d.Status})
	if d.Failed() {
		info.AppendRow(table.Row{"Error", d.Error})
		info.Render()
		return nil
	}
	info.AppendRow(table.Row{"Title", d.Title})
	info.AppendRow(table.Row{"Date", deref(d.Metadata.Date)})
	info.AppendRow(table.Row{"Number", deref(d.Metadata.Number)})
	info.AppendRow(table.Row{"Legal status", d.Metadata.Status.Label()})
	info.Render()

	if len(d.Sections) == 0 {
		return nil
	}

	secs := r.newTable()
	secs.AppendHeader(table.Row{"#", "Section", "Content"})
	secs.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Number: 3, WidthMax: contentWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	for i, s := range d.Sections {
		secs.AppendRow(table.Row{i + 1, s.Title, preview(s.Content)})
	}
	secs.Render()
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes]) + "…"
}
