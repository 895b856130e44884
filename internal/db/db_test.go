package db

import (
	"errors"
	"testing"

	"oli3d-catalog/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) *config.Config {
	return &config.Config{
		DBHost:     "localhost",
		DBUser:     "catalog",
		DBPassword: "secret",
		DBName:     name,
		DBPort:     "5432",
	}
}

func TestBuildDSN(t *testing.T) {
	assert.Equal(t,
		"host=localhost user=catalog password=secret dbname=catalog port=5432 sslmode=disable",
		buildDSN(testConfig("catalog")),
	)
}

func TestNewDatabase(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cfg := testConfig("ok")
		_, mock, err := sqlmock.NewWithDSN(buildDSN(cfg), sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		mock.ExpectPing()

		db, err := newDatabaseWithDriver(cfg, "sqlmock")
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.Equal(t, maxOpenConns, db.Stats().MaxOpenConnections)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ping failure", func(t *testing.T) {
		cfg := testConfig("unreachable")
		_, mock, err := sqlmock.NewWithDSN(buildDSN(cfg), sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		mock.ExpectClose()

		db, err := newDatabaseWithDriver(cfg, "sqlmock")
		assert.Nil(t, db)
		assert.ErrorContains(t, err, "failed to ping DB")
	})

	t.Run("Unknown driver", func(t *testing.T) {
		db, err := newDatabaseWithDriver(testConfig("x"), "invalid_driver_name")
		assert.Nil(t, db)
		assert.ErrorContains(t, err, "failed to connect to DB")
	})
}
