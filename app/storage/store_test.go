package storage

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/filebot/app/model"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(sqlx.NewDb(db, "sqlmock")), mock
}

func batch(ids ...string) []model.FileEntry {
	out := make([]model.FileEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.FileEntry{FileID: id, FileName: id + ".pdf", FileType: model.TypeDocument})
	}
	return out
}

func TestAddFilesCountsDuplicatesAsSkipped(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := store.AddFiles(context.Background(), "ab12cd34", batch("f1", "dup", "f3"))
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFilesKeepsEarlierRowsOnFailure(t *testing.T) {
	store, mock := newMockStore(t)

	// each statement runs directly on the pool: no BEGIN, no ROLLBACK
	mock.ExpectExec("INSERT INTO files").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO files").WillReturnError(errors.New("connection reset"))

	inserted, err := store.AddFiles(context.Background(), "ab12cd34", batch("f1", "f2", "f3"))
	require.Error(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFilesEmptyBatch(t *testing.T) {
	store, mock := newMockStore(t)

	inserted, err := store.AddFiles(context.Background(), "ab12cd34", nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
