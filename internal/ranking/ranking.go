// Package ranking filters document summaries by a free-text query.
package ranking

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/textnorm"
)

const (
	// MinQueryLength is the shortest accepted query, in runes.
	MinQueryLength = 2
	// MaxResults caps the ranked list.
	MaxResults = 100
)

// ValidateQuery trims q and rejects it when shorter than MinQueryLength.
func ValidateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	switch {
	case q == "":
		return "", domain.NewValidationError("q", "query is required", domain.ErrInvalidQuery)
	case utf8.RuneCountInString(q) < MinQueryLength:
		return "", domain.NewValidationError("q", "query must be at least 2 characters", domain.ErrInvalidQuery)
	}
	return q, nil
}

// Rank keeps summaries whose title contains query (case-insensitive),
// scores each by the number of non-overlapping occurrences and orders by
// score, highest first. Ties keep input order. total counts every match
// before the list is cut to MaxResults.
func Rank(summaries []domain.DocumentSummary, query string) (ranked []domain.RankedSummary, total int) {
	needle := strings.ToLower(textnorm.Normalize(query))
	ranked = []domain.RankedSummary{}
	if needle == "" {
		return ranked, 0
	}

	for _, s := range summaries {
		title := strings.ToLower(textnorm.Normalize(s.Title))
		if n := strings.Count(title, needle); n > 0 {
			ranked = append(ranked, domain.RankedSummary{DocumentSummary: s, Relevance: n})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	total = len(ranked)
	if total > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked, total
}
