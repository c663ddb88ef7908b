// internal/finder/refdata/loader.go
package refdata

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"activity-finder/internal/common/cache"
	"activity-finder/internal/common/errors"
	"activity-finder/internal/common/logger"
	"activity-finder/internal/models"

	"github.com/lib/pq"
)

const (
	// CacheTag groups every finder cache entry for shared invalidation.
	CacheTag = "activity_finder:default"

	locationsCacheKey  = "activity_finder:locations_info"
	categoriesCacheKey = "activity_finder:activity_program_info"

	refDataTTL = 24 * time.Hour
	chunkSize  = 20
)

// Loader builds the location and category lookup tables from the content
// database and memoizes them for a day.
type Loader struct {
	db     *sql.DB
	cache  *cache.Cache
	logger logger.Logger
}

func NewLoader(db *sql.DB, c *cache.Cache, log logger.Logger) *Loader {
	return &Loader{
		db:     db,
		cache:  c,
		logger: log.WithFields(map[string]interface{}{"component": "refdata"}),
	}
}

// LocationsInfo returns published locations keyed by display title, ordered
// by title at load time. Two locations sharing a title collapse into the
// later one, matching the keying scheme downstream formatters rely on.
func (l *Loader) LocationsInfo(ctx context.Context) (map[string]models.LocationInfo, error) {
	data := map[string]models.LocationInfo{}
	if l.cache.Get(ctx, locationsCacheKey, &data) {
		return data, nil
	}

	nids, err := l.collectNIDs(ctx, `
		SELECT nid FROM location_nodes
		WHERE type = ANY($1) AND status = 1
		ORDER BY title ASC`, pq.Array([]string{"branch", "camp", "facility"}))
	if err != nil {
		return nil, errors.NewRefDataLoadFailedError("locations", err)
	}

	for _, chunk := range chunkNIDs(nids, chunkSize) {
		rows, err := l.db.QueryContext(ctx, `
			SELECT nid, type, title,
			       COALESCE(address_line1, ''), COALESCE(locality, ''),
			       COALESCE(administrative_area, ''), COALESCE(postal_code, ''),
			       COALESCE(hours_mon, ''), COALESCE(hours_sat, ''),
			       COALESCE(email, ''), COALESCE(phone, '')
			FROM location_nodes
			WHERE nid = ANY($1)
			ORDER BY title ASC`, pq.Array(chunk))
		if err != nil {
			return nil, errors.NewRefDataLoadFailedError("locations", err)
		}

		for rows.Next() {
			var info models.LocationInfo
			var line1, locality, area, postalCode string
			var hoursMon, hoursSat string
			if err := rows.Scan(&info.NID, &info.Type, &info.Title,
				&line1, &locality, &area, &postalCode,
				&hoursMon, &hoursSat, &info.Email, &info.Phone); err != nil {
				rows.Close()
				return nil, errors.NewRefDataLoadFailedError("locations", err)
			}

			info.Address = joinAddress(line1, locality, area, postalCode)
			if hoursMon != "" || hoursSat != "" {
				info.Days = [][2]string{
					{"Mon - Fri:", hoursMon},
					{"Sat - Sun:", hoursSat},
				}
			}

			data[info.Title] = info
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, errors.NewRefDataLoadFailedError("locations", err)
		}
		rows.Close()
	}

	l.cache.Set(ctx, locationsCacheKey, data, refDataTTL, CacheTag)
	return data, nil
}

// CategoryProgramInfo returns program subcategories keyed by node ID. A
// subcategory with no parent program is omitted.
func (l *Loader) CategoryProgramInfo(ctx context.Context) (map[int64]models.CategoryInfo, error) {
	data := map[int64]models.CategoryInfo{}
	if l.cache.Get(ctx, categoriesCacheKey, &data) {
		return data, nil
	}

	nids, err := l.collectNIDs(ctx, `
		SELECT nid FROM program_subcategory_nodes
		ORDER BY nid ASC`)
	if err != nil {
		return nil, errors.NewRefDataLoadFailedError("categories", err)
	}

	for _, chunk := range chunkNIDs(nids, chunkSize) {
		rows, err := l.db.QueryContext(ctx, `
			SELECT nid, title, program_nid, program_title
			FROM program_subcategory_nodes
			WHERE nid = ANY($1)`, pq.Array(chunk))
		if err != nil {
			return nil, errors.NewRefDataLoadFailedError("categories", err)
		}

		for rows.Next() {
			var (
				nid          int64
				title        string
				programNID   sql.NullInt64
				programTitle sql.NullString
			)
			if err := rows.Scan(&nid, &title, &programNID, &programTitle); err != nil {
				rows.Close()
				return nil, errors.NewRefDataLoadFailedError("categories", err)
			}
			if !programNID.Valid {
				continue
			}

			data[nid] = models.CategoryInfo{
				Title: title,
				Program: models.ProgramRef{
					NID:   programNID.Int64,
					Title: programTitle.String,
				},
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, errors.NewRefDataLoadFailedError("categories", err)
		}
		rows.Close()
	}

	l.cache.Set(ctx, categoriesCacheKey, data, refDataTTL, CacheTag)
	return data, nil
}

func (l *Loader) collectNIDs(ctx context.Context, query string, args ...interface{}) ([]int64, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nids []int64
	for rows.Next() {
		var nid int64
		if err := rows.Scan(&nid); err != nil {
			return nil, err
		}
		nids = append(nids, nid)
	}
	return nids, rows.Err()
}

func chunkNIDs(nids []int64, size int) [][]int64 {
	var chunks [][]int64
	for len(nids) > 0 {
		n := size
		if len(nids) < n {
			n = len(nids)
		}
		chunks = append(chunks, nids[:n])
		nids = nids[n:]
	}
	return chunks
}

func joinAddress(parts ...string) string {
	var filled []string
	for _, p := range parts {
		if p != "" {
			filled = append(filled, p)
		}
	}
	return strings.Join(filled, ", ")
}
