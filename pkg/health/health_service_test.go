package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestCheckUp(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()

	res, err := NewHealthService(db).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "up", res.Status)
	assert.Equal(t, "up", res.Database)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckDown(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	res, err := NewHealthService(db).Check(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "down", res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
