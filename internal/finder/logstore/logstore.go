// internal/finder/logstore/logstore.go
package logstore

import (
	"context"
	"database/sql"
	"time"

	"activity-finder/internal/common/errors"
	"activity-finder/internal/common/logger"
)

// CheckLogTypeRegister marks a register-click event in the check log.
const CheckLogTypeRegister = "register"

// SearchLogRecord is one appended search event. Hash identifies the full
// request including client identity, the filter columns mirror what was
// searched for reporting.
type SearchLogRecord struct {
	HashIPAgent string
	Location    string
	Keyword     string
	Category    string
	Page        string
	Day         string
	Age         string
	Sort        string
	Hash        string
}

// Store appends search and click events. Both logs are append only, nothing
// in the finder ever updates or deletes a row.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "logstore"}),
	}
}

// CreateSearchLog appends one search event and returns its correlation ID.
func (s *Store) CreateSearchLog(ctx context.Context, rec SearchLogRecord) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO program_search_log
			(hash_ip_agent, location, keyword, category, page, day, age, sort, hash, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		rec.HashIPAgent, rec.Location, rec.Keyword, rec.Category,
		rec.Page, rec.Day, rec.Age, rec.Sort, rec.Hash, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, errors.NewLogInsertFailedError(err)
	}

	return id, nil
}

// CreateCheckLog appends one click event referencing a search log row.
func (s *Store) CreateCheckLog(ctx context.Context, logID int64, details, eventType string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO program_search_check_log (log_id, details, type, created)
		VALUES ($1, $2, $3, $4)`,
		logID, details, eventType, time.Now().UTC(),
	)
	if err != nil {
		return errors.NewLogInsertFailedError(err)
	}

	return nil
}
