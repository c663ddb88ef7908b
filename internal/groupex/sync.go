// internal/groupex/sync.go
package groupex

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"activity-finder/internal/common/cache"
	"activity-finder/internal/common/errors"
	"activity-finder/internal/common/logger"
	"activity-finder/internal/finder/refdata"
)

const (
	dateFullFormat = "Monday, January 2, 2006"
	timeFormat     = "3:04pm"
)

var timeRangePattern = regexp.MustCompile(`(.*)-(.*)`)

// ScheduleSource abstracts the Groupex API for the syncer.
type ScheduleSource interface {
	FetchSchedule(ctx context.Context) ([]ScheduleEntry, error)
}

// Syncer imports Groupex schedule entries into the mapping table. Entries
// whose class ID is already mapped are left untouched, the sync never
// updates or deletes.
type Syncer struct {
	source ScheduleSource
	db     *sql.DB
	cache  *cache.Cache
	logger logger.Logger
}

func NewSyncer(source ScheduleSource, db *sql.DB, c *cache.Cache, log logger.Logger) *Syncer {
	return &Syncer{
		source: source,
		db:     db,
		cache:  c,
		logger: log.WithFields(map[string]interface{}{"component": "groupex-sync"}),
	}
}

// Sync fetches the schedule and creates a mapping row per unseen class ID.
// Returns the number of rows created. Finder caches are invalidated
// afterwards so new classes become searchable.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	entries, err := s.source.FetchSchedule(ctx)
	if err != nil {
		return 0, errors.NewSyncFailedError(err)
	}

	created := 0
	for _, entry := range entries {
		start, end, err := entryTimestamps(entry)
		if err != nil {
			s.logger.Error("skipping schedule entry", map[string]interface{}{
				"class_id": entry.ID,
				"error":    err.Error(),
			})
			continue
		}

		exists, err := s.classIDExists(ctx, entry.ID)
		if err != nil {
			return created, errors.NewSyncFailedError(err)
		}
		if exists {
			continue
		}

		name := fmt.Sprintf("%s [%s]", entry.Location, entry.ID)
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO groupex_mappings
				(name, class_id, category, date, description, instructor,
				 orig_instructor, sub_instructor, studio, location, time_range,
				 title, timestamp_start, timestamp_end, created)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			name, entry.ID, entry.Category, entry.Date, entry.Description,
			entry.Instructor, entry.OriginalInstructor, entry.SubInstructor,
			entry.Studio, entry.Location, entry.Time, entry.Title,
			start, end, time.Now().UTC(),
		)
		if err != nil {
			return created, errors.NewSyncFailedError(err)
		}
		created++
	}

	if created > 0 {
		if err := s.cache.InvalidateTag(ctx, refdata.CacheTag); err != nil {
			s.logger.Warn("finder cache invalidation failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.logger.Info("schedule sync finished", map[string]interface{}{
		"fetched": len(entries),
		"created": created,
	})
	return created, nil
}

func (s *Syncer) classIDExists(ctx context.Context, classID string) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM groupex_mappings WHERE class_id = $1`, classID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// entryTimestamps derives start and end instants from the entry's date and
// its "5:05am-6:00am" time range.
func entryTimestamps(entry ScheduleEntry) (int64, int64, error) {
	match := timeRangePattern.FindStringSubmatch(entry.Time)
	if match == nil {
		return 0, 0, fmt.Errorf("malformed time range %q", entry.Time)
	}

	start, err := extractTimestamp(entry.Date, match[1])
	if err != nil {
		return 0, 0, err
	}
	end, err := extractTimestamp(entry.Date, match[2])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func extractTimestamp(date, clock string) (int64, error) {
	day, err := time.ParseInLocation(dateFullFormat, date, time.UTC)
	if err != nil {
		return 0, err
	}
	t, err := time.Parse(timeFormat, clock)
	if err != nil {
		return 0, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC).Unix(), nil
}
