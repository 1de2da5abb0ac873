// Package catalog exposes the document source as listing, detail and search
// operations.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	infraerrors "github.com/verge88/api-npa3/infrastructure/errors"
	"github.com/verge88/api-npa3/infrastructure/logger"
	"github.com/verge88/api-npa3/internal/detail"
	"github.com/verge88/api-npa3/internal/discovery"
	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/fetcher"
	"github.com/verge88/api-npa3/internal/ranking"
	"github.com/verge88/api-npa3/internal/telemetry"
)

// Service answers catalog queries against the document source. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	origin     *url.URL
	categories []domain.Category
	byKey      map[string]domain.Category
	fetcher    fetcher.Fetcher
	discoverer *discovery.Discoverer
	extractor  *detail.Extractor
	log        logger.Logger
	metrics    *telemetry.Metrics
}

// Config describes the source served by the catalog.
type Config struct {
	BaseURL    string
	Categories []domain.Category
}

// New creates a Service. Links found on listings are resolved against
// cfg.BaseURL, which also defines the accepted origin for detail requests.
func New(
	cfg Config,
	f fetcher.Fetcher,
	extractor *detail.Extractor,
	log logger.Logger,
	metrics *telemetry.Metrics,
) (*Service, error) {
	if f == nil {
		return nil, errors.New("catalog: fetcher is required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	if extractor == nil {
		extractor = detail.NewExtractor(log, metrics)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	origin, err := url.Parse(baseURL)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("catalog: invalid base url %q", baseURL)
	}

	categories := cfg.Categories
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	byKey := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		if _, dup := byKey[c.Key]; dup {
			return nil, fmt.Errorf("catalog: duplicate category %q", c.Key)
		}
		byKey[c.Key] = c
	}

	return &Service{
		origin:     origin,
		categories: append([]domain.Category(nil), categories...),
		byKey:      byKey,
		fetcher:    f,
		discoverer: discovery.New(origin, log, metrics),
		extractor:  extractor,
		log:        log,
		metrics:    metrics,
	}, nil
}

// ListCategories returns the supported categories in presentation order.
func (s *Service) ListCategories() []domain.Category {
	return append([]domain.Category(nil), s.categories...)
}

// CategoryKeys returns the category keys in presentation order.
func (s *Service) CategoryKeys() []string {
	keys := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		keys = append(keys, c.Key)
	}
	return keys
}

// ListDocuments fetches the listing of category and returns its documents.
func (s *Service) ListDocuments(ctx context.Context, category string) ([]domain.DocumentSummary, error) {
	c, ok := s.byKey[category]
	if !ok {
		return nil, domain.NewValidationError("type", "unsupported document type", domain.ErrUnsupportedCategory)
	}
	return s.listSource(ctx, c)
}

func (s *Service) listSource(ctx context.Context, c domain.Category) ([]domain.DocumentSummary, error) {
	page, err := s.fetcher.Fetch(ctx, c.ListingURL)
	if err != nil {
		return nil, infraerrors.WrapWithContextf(err, "list %s", c.Key)
	}

	docs, err := s.discoverer.Discover(bytes.NewReader(page.Body))
	if err != nil {
		return nil, infraerrors.WrapWithContextf(err, "list %s", c.Key)
	}

	s.metrics.Discovered(c.Key, len(docs))
	s.log.Info("Listed documents",
		logger.String("category", c.Key),
		logger.Int("documents", len(docs)),
	)
	return docs, nil
}

// GetDocumentDetail fetches and extracts one document page. Only URLs on the
// source origin are accepted. Fetch and parse failures do not return an
// error; they produce a detail whose Status is domain.DetailError.
func (s *Service) GetDocumentDetail(ctx context.Context, rawURL string) (*domain.DocumentDetail, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, domain.NewValidationError("url", "url is required", domain.ErrInvalidOrigin)
	}
	if !s.sameOrigin(rawURL) {
		return nil, domain.NewValidationError("url", "url must belong to "+s.origin.Host, domain.ErrInvalidOrigin)
	}

	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return s.failedDetail(rawURL, err), nil
	}

	d, err := s.extractor.Extract(rawURL, bytes.NewReader(page.Body))
	if err != nil {
		return s.failedDetail(rawURL, err), nil
	}
	return d, nil
}

func (s *Service) failedDetail(rawURL string, err error) *domain.DocumentDetail {
	s.metrics.DetailFailed()
	s.log.Error("Document extraction failed", logger.String("url", rawURL), logger.Error(err))
	return domain.NewFailedDetail(rawURL, err, s.extractor.Now())
}

func (s *Service) sameOrigin(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, s.origin.Scheme) && strings.EqualFold(u.Host, s.origin.Host)
}

// SearchDocuments ranks the documents of category ("all" or empty for every
// category) by how often query occurs in their titles. Sources that cannot be
// fetched or parsed are logged and contribute nothing.
func (s *Service) SearchDocuments(ctx context.Context, query, category string) (*domain.SearchResult, error) {
	query, err := ranking.ValidateQuery(query)
	if err != nil {
		return nil, err
	}

	sources, err := s.searchSources(category)
	if err != nil {
		return nil, err
	}

	var all []domain.DocumentSummary
	for _, c := range sources {
		docs, listErr := s.listSource(ctx, c)
		if listErr != nil {
			s.metrics.SourceFailed(c.Key)
			s.log.Warn("Skipping search source",
				logger.String("category", c.Key),
				logger.String("url", c.ListingURL),
				logger.Error(listErr),
			)
			continue
		}
		all = append(all, docs...)
	}

	ranked, total := ranking.Rank(all, query)
	s.log.Info("Search completed",
		logger.String("query", query),
		logger.String("category", category),
		logger.Int("total", total),
	)

	return &domain.SearchResult{
		Query:     query,
		Documents: ranked,
		Total:     total,
		Showing:   len(ranked),
	}, nil
}

func (s *Service) searchSources(category string) ([]domain.Category, error) {
	if category == "" || category == domain.CategoryAll {
		return s.categories, nil
	}
	c, ok := s.byKey[category]
	if !ok {
		return nil, domain.NewValidationError("type", "unsupported document type", domain.ErrUnsupportedCategory)
	}
	return []domain.Category{c}, nil
}
