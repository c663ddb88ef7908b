package solr

import (
	"testing"

	"activity-finder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRawFacets() models.Facets {
	return models.Facets{
		"locations": {
			{Filter: `"Downtown YMCA"`, Count: 7},
			{Filter: `"Camp Widjiwagan"`, Count: 2},
		},
		"field_activity_category": {
			{Filter: `"Swim Lessons"`, Count: 5},
			{Filter: `"Unknown Category"`, Count: 1},
		},
		"af_ages_min_max": {
			{Filter: `"24"`, Count: 4},
			{Filter: `"36"`, Count: 1},
		},
	}
}

func testAgeBuckets() []models.FacetEntry {
	return []models.FacetEntry{
		{Value: "3", Label: "0-3 months"},
		{Value: "24", Label: "2 years"},
	}
}

func TestMapFacets(t *testing.T) {
	got := MapFacets(testRawFacets(), testLocationInfo(), testCategoryInfo(), testAgeBuckets())

	locations := got["locations"]
	require.Len(t, locations, 2)
	assert.Equal(t, "Downtown YMCA", locations[0].Filter)
	assert.Equal(t, int64(201), locations[0].ID)
	assert.Equal(t, int64(202), locations[1].ID)

	categories := got["field_activity_category"]
	require.Len(t, categories, 2)
	assert.Equal(t, "Swim Lessons", categories[0].Filter)
	assert.Equal(t, int64(101), categories[0].ID)
	assert.Zero(t, categories[1].ID)

	static := got["static_age_filter"]
	require.Len(t, static, 2)
	assert.Equal(t, 0, static[0].Count)
	assert.Equal(t, "2 years", static[1].Label)
	assert.Equal(t, 4, static[1].Count)
}

func TestMapFacets_Idempotent(t *testing.T) {
	raw := testRawFacets()

	first := MapFacets(raw, testLocationInfo(), testCategoryInfo(), testAgeBuckets())
	second := MapFacets(raw, testLocationInfo(), testCategoryInfo(), testAgeBuckets())

	assert.Equal(t, first, second)

	// The raw input is untouched.
	assert.Equal(t, `"Downtown YMCA"`, raw["locations"][0].Filter)
}

func TestGroupLocationCounts(t *testing.T) {
	groups := []models.OptionGroup{
		{Label: "Branch", Value: []models.OptionItem{{Value: "201", Label: "Downtown YMCA"}}},
		{Label: "Camp", Value: []models.OptionItem{{Value: "202", Label: "Camp Widjiwagan"}}},
		{Label: "Facility", Value: []models.OptionItem{{Value: "203", Label: "Annex"}}},
	}
	facets := MapFacets(testRawFacets(), testLocationInfo(), testCategoryInfo(), testAgeBuckets())

	got := GroupLocationCounts(groups, facets)
	require.Len(t, got, 3)
	assert.Equal(t, 7, got[0].Count)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, 0, got[2].Count)
}
