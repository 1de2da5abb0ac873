// Package metadata infers a document's title, date, number and legal status.
package metadata

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/verge88/api-npa3/internal/classify"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/textnorm"
)

// UntitledDocument is used when no title candidate is long enough.
const UntitledDocument = "Документ без названия"

// minTitleLength is exclusive: a title must be longer than this many runes.
const minTitleLength = 5

var titleSelectors = []string{"h1", ".document-title", ".doc-title", ".main-title", "title"}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`от\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
}

var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`№\s*([№\d\-/]+)`),
	regexp.MustCompile(`ГОСТ\s+Р?\s*(\d+(?:\.\d+)*[-/]\d+)`),
	regexp.MustCompile(`(\d{4,5}[-/]\d{4})`),
}

// Status markers, checked in this order. "действует" also occurs inside
// "не действует", which therefore reads as active.
const (
	markerActive    = "действует"
	markerCancelled = "отменен"
	markerRepealed  = "утратил силу"
)

// Title returns the first sufficiently long candidate among the title
// selectors, looking only at the first match of each.
func Title(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if title := textnorm.Normalize(el.Text()); utf8.RuneCountInString(title) > minTitleLength {
			return title
		}
	}
	return UntitledDocument
}

// Extract infers metadata from the document title and its full text.
func Extract(title, fullText string) domain.Metadata {
	text := textnorm.Normalize(fullText)

	return domain.Metadata{
		Date:   classify.FirstMatch(datePatterns, text),
		Number: classify.FirstMatch(numberPatterns, title+" "+text),
		Status: Status(text),
	}
}

// Status infers legal status by case-insensitive marker lookup.
func Status(text string) domain.LegalStatus {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, markerActive):
		return domain.StatusActive
	case strings.Contains(lower, markerCancelled), strings.Contains(lower, markerRepealed):
		return domain.StatusInactive
	default:
		return domain.StatusUndetermined
	}
}
