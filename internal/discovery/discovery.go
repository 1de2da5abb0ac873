// Package discovery finds document links on a listing page.
package discovery

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/internal/classify"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/textnorm"
)

const (
	// MaxCandidates bounds how many unique links one page contributes.
	MaxCandidates = 100
	// MinTitleLength is the shortest anchor text, in runes, kept as a title.
	MinTitleLength = 3

	// paginatorSuffix marks links back to the first listing page.
	paginatorSuffix = "_0.html"
)

// Skip reasons reported to the SkipRecorder.
const (
	SkipShortTitle = "short_title"
	SkipBadHref    = "bad_href"
)

// linkSelectors are tried in order; earlier selectors decide the order of
// the emitted summaries.
var linkSelectors = []string{
	`a[href*="/mega_doc/"]`,
	".doc-link",
	".document-link",
	`a[href*="gost"]`,
	`a[href*="federalnyj-zakon"]`,
	`a[href*="prikaz"]`,
	`a[href*="postanovlenie"]`,
}

var errShortTitle = errors.New("title too short")

// SkipRecorder counts candidates dropped during extraction.
type SkipRecorder interface {
	CandidateSkipped(reason string)
}

type nopRecorder struct{}

func (nopRecorder) CandidateSkipped(string) {}

// Discoverer turns listing markup into document summaries.
type Discoverer struct {
	base     *url.URL
	log      logger.Logger
	recorder SkipRecorder
}

// New creates a Discoverer resolving links against base.
func New(base *url.URL, log logger.Logger, recorder SkipRecorder) *Discoverer {
	if log == nil {
		log = logger.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Discoverer{base: base, log: log, recorder: recorder}
}

// Discover parses r and returns the summaries found on it.
func (d *Discoverer) Discover(r io.Reader) ([]domain.DocumentSummary, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &domain.ParseError{Err: fmt.Errorf("parse listing markup: %w", err)}
	}
	return d.DiscoverDocument(doc), nil
}

// DiscoverDocument extracts summaries from an already parsed page. A
// candidate that cannot be turned into a summary is logged and skipped.
func (d *Discoverer) DiscoverDocument(doc *goquery.Document) []domain.DocumentSummary {
	candidates := collectCandidates(doc)

	summaries := make([]domain.DocumentSummary, 0, len(candidates))
	for _, link := range candidates {
		summary, err := d.summarize(link)
		if err != nil {
			reason := SkipBadHref
			if errors.Is(err, errShortTitle) {
				reason = SkipShortTitle
				d.log.Debug("Skipping link", logger.String("href", link.AttrOr("href", "")), logger.Error(err))
			} else {
				d.log.Warn("Skipping link", logger.String("href", link.AttrOr("href", "")), logger.Error(err))
			}
			d.recorder.CandidateSkipped(reason)
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries
}

// collectCandidates gathers unique links in selector order, dropping
// paginator links, and keeps at most MaxCandidates of them.
func collectCandidates(doc *goquery.Document) []*goquery.Selection {
	seen := make(map[string]struct{})
	candidates := make([]*goquery.Selection, 0, MaxCandidates)

	for _, selector := range linkSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, ok := s.Attr("href")
			if !ok || href == "" || strings.HasSuffix(href, paginatorSuffix) {
				return true
			}
			if _, dup := seen[href]; dup {
				return true
			}
			seen[href] = struct{}{}
			candidates = append(candidates, s)
			return len(candidates) < MaxCandidates
		})
		if len(candidates) >= MaxCandidates {
			break
		}
	}

	return candidates
}

func (d *Discoverer) summarize(link *goquery.Selection) (domain.DocumentSummary, error) {
	href := link.AttrOr("href", "")

	ref, err := url.Parse(href)
	if err != nil {
		return domain.DocumentSummary{}, &domain.ParseError{URL: href, Err: err}
	}

	title := textnorm.Normalize(link.Text())
	if utf8.RuneCountInString(title) < MinTitleLength {
		return domain.DocumentSummary{}, &domain.ParseError{URL: href, Err: errShortTitle}
	}

	return domain.DocumentSummary{
		Title:       title,
		URL:         d.base.ResolveReference(ref).String(),
		Type:        classify.DocumentType(href),
		Number:      classify.DocumentNumber(title, href),
		RelativeURL: href,
	}, nil
}
