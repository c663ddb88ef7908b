package refdata

import (
	"context"
	"testing"

	"activity-finder/internal/common/cache"
	"activity-finder/internal/common/config"
	"activity-finder/internal/common/database"
	"activity-finder/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T) (*Loader, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	log := logger.NewNoOpLogger()
	return NewLoader(db, cache.New(rdb, log), log), mock, mr
}

func TestLocationsInfo(t *testing.T) {
	loader, mock, _ := newTestLoader(t)

	mock.ExpectQuery("SELECT nid FROM location_nodes").
		WillReturnRows(sqlmock.NewRows([]string{"nid"}).AddRow(201).AddRow(202))

	mock.ExpectQuery("SELECT nid, type, title").
		WillReturnRows(sqlmock.NewRows([]string{
			"nid", "type", "title", "address_line1", "locality",
			"administrative_area", "postal_code", "hours_mon", "hours_sat",
			"email", "phone",
		}).
			AddRow(201, "branch", "Downtown YMCA", "1 Main St", "Springfield", "IL", "62701",
				"6am - 9pm", "8am - 5pm", "downtown@example.org", "555-0100").
			AddRow(202, "camp", "Camp Widjiwagan", "", "", "", "", "", "", "", ""))

	info, err := loader.LocationsInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, info, 2)

	downtown := info["Downtown YMCA"]
	assert.Equal(t, int64(201), downtown.NID)
	assert.Equal(t, "branch", downtown.Type)
	assert.Equal(t, "1 Main St, Springfield, IL, 62701", downtown.Address)
	require.Len(t, downtown.Days, 2)
	assert.Equal(t, [2]string{"Mon - Fri:", "6am - 9pm"}, downtown.Days[0])
	assert.Equal(t, [2]string{"Sat - Sun:", "8am - 5pm"}, downtown.Days[1])

	camp := info["Camp Widjiwagan"]
	assert.Equal(t, "camp", camp.Type)
	assert.Empty(t, camp.Address)
	assert.Empty(t, camp.Days)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationsInfo_CacheHitSkipsDatabase(t *testing.T) {
	loader, mock, _ := newTestLoader(t)

	mock.ExpectQuery("SELECT nid FROM location_nodes").
		WillReturnRows(sqlmock.NewRows([]string{"nid"}).AddRow(201))
	mock.ExpectQuery("SELECT nid, type, title").
		WillReturnRows(sqlmock.NewRows([]string{
			"nid", "type", "title", "address_line1", "locality",
			"administrative_area", "postal_code", "hours_mon", "hours_sat",
			"email", "phone",
		}).AddRow(201, "branch", "Downtown YMCA", "", "", "", "", "", "", "", ""))

	ctx := context.Background()
	_, err := loader.LocationsInfo(ctx)
	require.NoError(t, err)

	// No further query expectations: the second call must be served from cache.
	info, err := loader.LocationsInfo(ctx)
	require.NoError(t, err)
	assert.Contains(t, info, "Downtown YMCA")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryProgramInfo_OmitsOrphans(t *testing.T) {
	loader, mock, _ := newTestLoader(t)

	mock.ExpectQuery("SELECT nid FROM program_subcategory_nodes").
		WillReturnRows(sqlmock.NewRows([]string{"nid"}).AddRow(101).AddRow(102))

	mock.ExpectQuery("SELECT nid, title, program_nid, program_title").
		WillReturnRows(sqlmock.NewRows([]string{"nid", "title", "program_nid", "program_title"}).
			AddRow(101, "Swim Lessons", 11, "Aquatics").
			AddRow(102, "Orphan Category", nil, nil))

	info, err := loader.CategoryProgramInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info, 1)
	assert.Equal(t, "Swim Lessons", info[101].Title)
	assert.Equal(t, int64(11), info[101].Program.NID)
	assert.Equal(t, "Aquatics", info[101].Program.Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryProgramInfo_ChunksLoadsOf20(t *testing.T) {
	loader, mock, _ := newTestLoader(t)

	nidRows := sqlmock.NewRows([]string{"nid"})
	for i := int64(1); i <= 25; i++ {
		nidRows.AddRow(i)
	}
	mock.ExpectQuery("SELECT nid FROM program_subcategory_nodes").WillReturnRows(nidRows)

	first := sqlmock.NewRows([]string{"nid", "title", "program_nid", "program_title"})
	for i := int64(1); i <= 20; i++ {
		first.AddRow(i, "Category", 11, "Program")
	}
	second := sqlmock.NewRows([]string{"nid", "title", "program_nid", "program_title"})
	for i := int64(21); i <= 25; i++ {
		second.AddRow(i, "Category", 11, "Program")
	}
	mock.ExpectQuery("SELECT nid, title, program_nid, program_title").WillReturnRows(first)
	mock.ExpectQuery("SELECT nid, title, program_nid, program_title").WillReturnRows(second)

	info, err := loader.CategoryProgramInfo(context.Background())
	require.NoError(t, err)
	assert.Len(t, info, 25)

	assert.NoError(t, mock.ExpectationsWereMet())
}
