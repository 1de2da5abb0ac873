// Package detail extracts the full structure of a single document page.
package detail

import (
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	infraerrors "github.com/verge88/api-npa3/infrastructure/errors"
	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/metadata"
	"github.com/verge88/api-npa3/internal/sections"
	"github.com/verge88/api-npa3/internal/telemetry"
)

// Extractor builds a DocumentDetail from page markup.
type Extractor struct {
	log     logger.Logger
	metrics *telemetry.Metrics
	now     func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the clock used to stamp ParsedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(log logger.Logger, metrics *telemetry.Metrics, opts ...Option) *Extractor {
	if log == nil {
		log = logger.NewNop()
	}
	e := &Extractor{log: log, metrics: metrics, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the extractor's current time.
func (e *Extractor) Now() time.Time {
	return e.now()
}

// Extract parses r, fetched from pageURL, into a successful detail.
func (e *Extractor) Extract(pageURL string, r io.Reader) (*domain.DocumentDetail, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &domain.ParseError{URL: pageURL, Err: infraerrors.WrapWithContext(err, "parse document markup")}
	}

	// The title is read before Split strips header regions.
	title := metadata.Title(doc)
	secs := sections.Split(doc)
	meta := metadata.Extract(title, doc.Text())

	e.metrics.Sections(len(secs))
	e.log.Debug("Extracted document",
		logger.String("url", pageURL),
		logger.Int("sections", len(secs)),
		logger.String("status", string(meta.Status)),
	)

	return &domain.DocumentDetail{
		Title:    title,
		Sections: secs,
		Metadata: meta,
		URL:      pageURL,
		ParsedAt: e.now(),
		Status:   domain.DetailSuccess,
	}, nil
}
