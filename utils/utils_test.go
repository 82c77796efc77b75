package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(42), ParseID("42"))
	assert.Equal(t, int64(0), ParseID("not-a-number"))
	assert.Equal(t, int64(0), ParseID(""))
}

func TestPaginatedResponseReportsPageCount(t *testing.T) {
	page := []string{"a", "b"}
	data, err := json.Marshal(PaginatedResponse{Data: page, Count: len(page), Page: 1, Limit: 50})
	require.NoError(t, err)

	// The field is the size of this page; there is no table-wide
	// total in the payload.
	assert.Contains(t, string(data), `"count":2`)
	assert.NotContains(t, string(data), `"total"`)
}
