package solr

import (
	"context"
	"testing"
	"time"

	"activity-finder/internal/common/cache"
	"activity-finder/internal/common/config"
	"activity-finder/internal/common/database"
	"activity-finder/internal/common/logger"
	"activity-finder/internal/finder/backend"
	"activity-finder/internal/finder/refdata"
	"activity-finder/internal/models"
	"activity-finder/pkg/settings"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	result    *backend.EngineResult
	err       error
	facets    bool
	calls     int
	lastIndex string
	lastQuery map[string]interface{}
}

func (f *fakeEngine) Search(ctx context.Context, index string, query map[string]interface{}) (*backend.EngineResult, error) {
	f.calls++
	f.lastIndex = index
	f.lastQuery = query
	return f.result, f.err
}

func (f *fakeEngine) SupportsFacets() bool { return f.facets }

func newTestBackend(t *testing.T, engine *fakeEngine) *Backend {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	log := logger.NewNoOpLogger()
	c := cache.New(rdb, log)

	// Pre-seed the reference data cache so the loader never reaches for a
	// database in these tests.
	ctx := context.Background()
	c.Set(ctx, "activity_finder:locations_info", testLocationInfo(), time.Hour)
	c.Set(ctx, "activity_finder:activity_program_info", testCategoryInfo(), time.Hour)

	b, err := NewBackend(backend.Deps{
		Search:  engine,
		RefData: refdata.NewLoader(nil, c, log),
		Cache:   c,
		Settings: &settings.FinderSettings{
			Index:   "sessions",
			Ages:    "3,0-3 months\n24,2 years",
			Exclude: "103",
		},
		Logger:   log,
		Timezone: "UTC",
	})
	require.NoError(t, err)
	return b.(*Backend)
}

func TestRunProgramSearch(t *testing.T) {
	engine := &fakeEngine{
		facets: true,
		result: &backend.EngineResult{
			Count:  30,
			Hits:   []models.SessionDocument{testSessionDocument()},
			Facets: testRawFacets(),
		},
	}
	b := newTestBackend(t, engine)

	resp, err := b.RunProgramSearch(context.Background(), models.SearchParameters{Page: 2}, 5)
	require.NoError(t, err)

	assert.Equal(t, 30, resp.Count)
	assert.Equal(t, 2, resp.Pager)
	assert.Equal(t, 2, resp.PagerInfo.TotalPages)
	assert.Equal(t, "title__ASC", resp.Sort)
	assert.Equal(t, "sessions", engine.lastIndex)
	assert.Contains(t, engine.lastQuery, "aggs")

	require.Len(t, resp.Table, 1)
	assert.Equal(t, int64(301), resp.Table[0].NID)
	assert.Equal(t, int64(5), resp.Table[0].LogID)

	assert.Contains(t, resp.Facets, "static_age_filter")

	// Location groups keep the title-sorted order of the lookup table.
	require.Len(t, resp.GroupedLocations, 2)
	assert.Equal(t, "Camp", resp.GroupedLocations[0].Label)
	assert.Equal(t, 2, resp.GroupedLocations[0].Count)
	assert.Equal(t, "Branch", resp.GroupedLocations[1].Label)
	assert.Equal(t, 7, resp.GroupedLocations[1].Count)
}

func TestRunProgramSearch_SkipsBrokenRows(t *testing.T) {
	broken := testSessionDocument()
	broken.Location = "Nowhere"

	engine := &fakeEngine{
		facets: true,
		result: &backend.EngineResult{
			Count:  2,
			Hits:   []models.SessionDocument{broken, testSessionDocument()},
			Facets: testRawFacets(),
		},
	}
	b := newTestBackend(t, engine)

	resp, err := b.RunProgramSearch(context.Background(), models.SearchParameters{}, 1)
	require.NoError(t, err)

	// The count still reflects the engine total, only the row is dropped.
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Table, 1)
	assert.Equal(t, int64(301), resp.Table[0].NID)
	assert.Equal(t, 0, resp.Pager)
}

func TestRunProgramSearch_NoFacetSupport(t *testing.T) {
	engine := &fakeEngine{
		facets: false,
		result: &backend.EngineResult{Count: 0, Facets: models.Facets{}},
	}
	b := newTestBackend(t, engine)

	resp, err := b.RunProgramSearch(context.Background(), models.SearchParameters{}, 1)
	require.NoError(t, err)

	assert.NotContains(t, engine.lastQuery, "aggs")
	assert.Contains(t, resp.Facets, "static_age_filter")
}

func TestRunProgramSearch_RowAlterHook(t *testing.T) {
	engine := &fakeEngine{
		facets: true,
		result: &backend.EngineResult{
			Count:  1,
			Hits:   []models.SessionDocument{testSessionDocument()},
			Facets: models.Facets{},
		},
	}
	b := newTestBackend(t, engine)

	RegisterRowAlter(func(row *models.ResultRow, doc models.SessionDocument) {
		if doc.NID == 301 {
			row.MoreResults = "/programs/301"
		}
	})

	resp, err := b.RunProgramSearch(context.Background(), models.SearchParameters{}, 1)
	require.NoError(t, err)
	require.Len(t, resp.Table, 1)
	assert.Equal(t, "/programs/301", resp.Table[0].MoreResults)
}

func TestGetLocations(t *testing.T) {
	b := newTestBackend(t, &fakeEngine{})

	groups, err := b.GetLocations(context.Background())
	require.NoError(t, err)

	require.Len(t, groups, 2)
	// Title-sorted: Camp Widjiwagan precedes Downtown YMCA.
	assert.Equal(t, "Camp", groups[0].Label)
	assert.Equal(t, "202", groups[0].Value[0].Value)
	assert.Equal(t, "Branch", groups[1].Label)
	assert.Equal(t, "Downtown YMCA", groups[1].Value[0].Label)
}

func TestGetCategories_AppliesExclusions(t *testing.T) {
	b := newTestBackend(t, &fakeEngine{})

	groups, err := b.GetCategories(context.Background())
	require.NoError(t, err)

	// Category 103 is excluded by configuration, leaving two programs.
	require.Len(t, groups, 2)
	assert.Equal(t, "Aquatics", groups[0].Label)
	assert.Equal(t, "101", groups[0].Value[0].Value)
	assert.Equal(t, "Sports", groups[1].Label)

	top, err := b.GetCategoriesTopLevel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Aquatics", "Sports"}, top)
}

func TestStaticTables(t *testing.T) {
	b := newTestBackend(t, &fakeEngine{})

	days := b.GetDaysOfWeek()
	require.Len(t, days, 7)
	assert.Equal(t, "monday", days[0].SearchValue)
	assert.Equal(t, "7", days[6].Value)

	sorts := b.GetSortOptions()
	require.Len(t, sorts, 6)
	assert.Equal(t, "title__ASC", sorts[0].Value)

	ages := b.GetAges()
	require.Len(t, ages, 2)
	assert.Equal(t, "24", ages[1].Value)

	assert.Equal(t, "multiple", b.GetCategoriesType())

	more, err := b.GetProgramsMoreInfo(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, more)
}
