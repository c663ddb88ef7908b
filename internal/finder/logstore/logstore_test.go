package logstore

import (
	"context"
	"testing"

	"activity-finder/internal/common/errors"
	"activity-finder/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSearchLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO program_search_log").
		WithArgs("curl   127.0.0.1", "201", "swim", "101", "2", "1,6", "24",
			"title__ASC", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	store := New(db, logger.NewNoOpLogger())
	id, err := store.CreateSearchLog(context.Background(), SearchLogRecord{
		HashIPAgent: "curl   127.0.0.1",
		Location:    "201",
		Keyword:     "swim",
		Category:    "101",
		Page:        "2",
		Day:         "1,6",
		Age:         "24",
		Sort:        "title__ASC",
		Hash:        "abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSearchLog_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO program_search_log").
		WillReturnError(assert.AnError)

	store := New(db, logger.NewNoOpLogger())
	_, err = store.CreateSearchLog(context.Background(), SearchLogRecord{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLogInsertFailed, errors.CodeOf(err))
}

func TestCreateCheckLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO program_search_check_log").
		WithArgs(int64(5), "abc", CheckLogTypeRegister, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := New(db, logger.NewNoOpLogger())
	err = store.CreateCheckLog(context.Background(), 5, "abc", CheckLogTypeRegister)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
