package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verge88/api-npa3/internal/api"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}

	got, pages := api.Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, 3, pages)

	got, pages = api.Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, got)
	assert.Equal(t, 3, pages)

	got, _ = api.Paginate(items, 4, 2)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, pages = api.Paginate([]int{}, 1, 20)
	assert.Empty(t, got)
	assert.Zero(t, pages)
}
