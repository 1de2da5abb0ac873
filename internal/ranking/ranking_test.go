package ranking_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/ranking"
)

func summaries(titles ...string) []domain.DocumentSummary {
	out := make([]domain.DocumentSummary, len(titles))
	for i, title := range titles {
		out[i] = domain.DocumentSummary{Title: title, RelativeURL: fmt.Sprintf("/doc_%d.html", i)}
	}
	return out
}

func TestRank_OrdersByOccurrences(t *testing.T) {
	t.Parallel()

	ranked, total := ranking.Rank(summaries("Fire safety", "Fire-fire drill", "Water"), "fire")

	require.Equal(t, 2, total)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Fire-fire drill", ranked[0].Title)
	assert.Equal(t, 2, ranked[0].Relevance)
	assert.Equal(t, "Fire safety", ranked[1].Title)
	assert.Equal(t, 1, ranked[1].Relevance)
}

func TestRank_StableTies(t *testing.T) {
	t.Parallel()

	ranked, _ := ranking.Rank(summaries("Пожарная A", "Пожарная B", "ПОЖАРНАЯ пожарная", "Пожарная C"), "пожарная")

	require.Len(t, ranked, 4)
	assert.Equal(t, "ПОЖАРНАЯ пожарная", ranked[0].Title)
	assert.Equal(t, []string{"Пожарная A", "Пожарная B", "Пожарная C"},
		[]string{ranked[1].Title, ranked[2].Title, ranked[3].Title})
}

func TestRank_NonOverlappingCount(t *testing.T) {
	t.Parallel()

	ranked, _ := ranking.Rank(summaries("aaaa"), "aa")
	require.Len(t, ranked, 1)
	assert.Equal(t, 2, ranked[0].Relevance)
}

func TestRank_CapsResultsButReportsTotal(t *testing.T) {
	t.Parallel()

	titles := make([]string, 150)
	for i := range titles {
		titles[i] = fmt.Sprintf("Приказ %d", i)
	}

	ranked, total := ranking.Rank(summaries(titles...), "приказ")
	assert.Equal(t, 150, total)
	assert.Len(t, ranked, ranking.MaxResults)
}

func TestRank_NoMatches(t *testing.T) {
	t.Parallel()

	ranked, total := ranking.Rank(summaries("Water"), "fire")
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
	assert.Zero(t, total)
}

func TestValidateQuery(t *testing.T) {
	t.Parallel()

	q, err := ranking.ValidateQuery("  ГОСТ  ")
	require.NoError(t, err)
	assert.Equal(t, "ГОСТ", q)

	q, err = ranking.ValidateQuery("Пж")
	require.NoError(t, err)
	assert.Equal(t, "Пж", q)

	for _, bad := range []string{"", "   ", "x", " Я "} {
		_, err = ranking.ValidateQuery(bad)
		require.ErrorIs(t, err, domain.ErrInvalidQuery, "query %q", bad)
		assert.True(t, domain.IsValidation(err))
	}
}
