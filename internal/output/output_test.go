package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verge88/api-npa3/internal/catalog"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/output"
)

var fixedTime = time.Date(2024, time.May, 14, 10, 30, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func newRenderer(t *testing.T, format string) (*output.Renderer, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	r, err := output.NewRenderer(&buf, format)
	require.NoError(t, err)
	return r, &buf
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := output.NewRenderer(&bytes.Buffer{}, "xml")
	require.Error(t, err)
}

func TestCategories_Table(t *testing.T) {
	t.Parallel()

	r, buf := newRenderer(t, output.FormatTable)
	require.NoError(t, r.Categories(catalog.DefaultCategories()))

	out := buf.String()
	assert.Contains(t, out, "federal-laws")
	assert.Contains(t, out, "Постановления")
}

func TestDocuments_TableAndJSON(t *testing.T) {
	t.Parallel()

	page := output.Page{
		Documents: []domain.DocumentSummary{
			{Title: "ГОСТ Р 12345-67 Техника", URL: "https://meganorm.ru/a.html", Type: domain.TypeStandard, Number: ptr("12345-67")},
			{Title: "Письмо", URL: "https://meganorm.ru/b.html", Type: domain.TypeGeneric},
		},
		Total: 22, Page: 2, PerPage: 20, Pages: 2,
	}

	r, buf := newRenderer(t, output.FormatTable)
	require.NoError(t, r.Documents(page))
	out := buf.String()
	assert.Contains(t, out, "12345-67")
	assert.Contains(t, out, "21")
	assert.Contains(t, strings.ToLower(out), "page 2 of 2, 22 documents")

	r, buf = newRenderer(t, output.FormatJSON)
	require.NoError(t, r.Documents(page))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 22, decoded["total"], 0)
	docs, _ := decoded["documents"].([]any)
	require.Len(t, docs, 2)
	second, _ := docs[1].(map[string]any)
	assert.Nil(t, second["number"])
}

func TestDetail_Table(t *testing.T) {
	t.Parallel()

	d := &domain.DocumentDetail{
		Title:    "Приказ № 123/45",
		URL:      "https://meganorm.ru/doc.html",
		ParsedAt: fixedTime,
		Status:   domain.DetailSuccess,
		Metadata: domain.Metadata{Date: ptr("05.03.2021"), Status: domain.StatusActive},
		Sections: []domain.Section{
			{Title: "Введение", Content: strings.Repeat("текст ", 200)},
		},
	}

	r, buf := newRenderer(t, output.FormatTable)
	require.NoError(t, r.Detail(d))
	out := buf.String()
	assert.Contains(t, out, "05.03.2021")
	assert.Contains(t, out, "Действует")
	assert.Contains(t, out, "Введение")
	assert.Contains(t, out, "…")
}

func TestDetail_Failed(t *testing.T) {
	t.Parallel()

	d := domain.NewFailedDetail("https://meganorm.ru/doc.html", errors.New("upstream unavailable"), fixedTime)

	r, buf := newRenderer(t, output.FormatTable)
	require.NoError(t, r.Detail(d))
	assert.Contains(t, buf.String(), "upstream unavailable")

	r, buf = newRenderer(t, output.FormatJSON)
	require.NoError(t, r.Detail(d))
	assert.Contains(t, buf.String(), `"status": "error"`)
	assert.Contains(t, buf.String(), `"parsed_at": "2024-05-14T10:30:00Z"`)
}

func TestSearch_Table(t *testing.T) {
	t.Parallel()

	res := &domain.SearchResult{
		Query: "пожар",
		Documents: []domain.RankedSummary{
			{DocumentSummary: domain.DocumentSummary{Title: "Пожарная безопасность", URL: "https://meganorm.ru/x.html", Type: domain.TypeOrder}, Relevance: 1},
		},
		Total:   1,
		Showing: 1,
	}

	r, buf := newRenderer(t, output.FormatTable)
	require.NoError(t, r.Search(res))
	assert.Contains(t, buf.String(), "Пожарная безопасность")
	assert.Contains(t, strings.ToLower(buf.String()), "showing 1 of 1")
}
