package solr

import (
	"testing"

	"activity-finder/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePager(t *testing.T) {
	empty := ComputePager(0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Pages)

	one := ComputePager(25)
	assert.Equal(t, 1, one.TotalPages)
	assert.Equal(t, []int{1}, one.Pages)

	two := ComputePager(26)
	assert.Equal(t, 2, two.TotalPages)
	assert.Equal(t, []int{1, 2}, two.Pages)
}

func TestParseSort(t *testing.T) {
	field, dir, err := ParseSort("title__ASC")
	require.NoError(t, err)
	assert.Equal(t, "title", field)
	assert.Equal(t, "asc", dir)

	field, dir, err = ParseSort("field_session_location__DESC")
	require.NoError(t, err)
	assert.Equal(t, "field_session_location", field)
	assert.Equal(t, "desc", dir)
}

func TestParseSort_Malformed(t *testing.T) {
	for _, token := range []string{"title", "title__sideways", "__ASC", "title__ASC__extra"} {
		_, _, err := ParseSort(token)
		require.Error(t, err, token)
		assert.Equal(t, errors.ErrCodeMalformedSort, errors.CodeOf(err))
	}
}
