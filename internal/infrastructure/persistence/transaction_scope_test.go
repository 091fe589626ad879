package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/application/ledger"
	"github.com/retailpos/backoffice/internal/infrastructure/persistence"
)

func newMockScope(t *testing.T) (*persistence.GormTransactionScope, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return persistence.NewGormTransactionScope(db), mock
}

func TestExecuteCommitsOnSuccess(t *testing.T) {
	scope, mock := newMockScope(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := scope.Execute(context.Background(), func(repos ledger.Repositories) error {
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteRollsBackOnError(t *testing.T) {
	scope, mock := newMockScope(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := scope.Execute(context.Background(), func(repos ledger.Repositories) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed commit must surface to the caller so the operation is
// reported as failed rather than silently half-applied.
func TestExecuteSurfacesCommitFailure(t *testing.T) {
	scope, mock := newMockScope(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := scope.Execute(context.Background(), func(repos ledger.Repositories) error {
		return nil
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
