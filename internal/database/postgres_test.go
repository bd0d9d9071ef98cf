package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func restoreMigrateGlobals(t *testing.T) {
	t.Helper()
	origPgxpoolNew := pgxpoolNew
	origSQLOpen := sqlOpenDB
	origWithInstance := postgresWithInstanceFn
	origIofsNew := iofsNewFn
	origNewWithInstance := migrateNewWithInstance
	t.Cleanup(func() {
		pgxpoolNew = origPgxpoolNew
		sqlOpenDB = origSQLOpen
		postgresWithInstanceFn = origWithInstance
		iofsNewFn = origIofsNew
		migrateNewWithInstance = origNewWithInstance
	})
}

type fakeMigrator struct {
	upErr   error
	downErr error
}

func (m *fakeMigrator) Up() error   { return m.upErr }
func (m *fakeMigrator) Down() error { return m.downErr }

func stubMigrateHappyPath(m migrateInstance) {
	sqlOpenDB = func(driverName, dataSourceName string) (*sql.DB, error) {
		return sql.OpenDB(nil), nil
	}
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) {
		return nil, nil
	}
	iofsNewFn = func(fs.FS, string) (src.Driver, error) {
		return nil, nil
	}
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
		return m, nil
	}
}

func TestNewPgxPool(t *testing.T) {
	restoreMigrateGlobals(t)
	boom := errors.New("boom")

	t.Run("pool error", func(t *testing.T) {
		pgxpoolNew = func(context.Context, string) (*pgxpool.Pool, error) { return nil, boom }

		db, err := NewPgxPool(context.Background(), "postgres://localhost/app")
		require.ErrorIs(t, err, boom)
		require.Nil(t, db)
	})

	t.Run("success", func(t *testing.T) {
		pool := &pgxpool.Pool{}
		pgxpoolNew = func(_ context.Context, url string) (*pgxpool.Pool, error) {
			require.Equal(t, "postgres://localhost/app", url)
			return pool, nil
		}

		db, err := NewPgxPool(context.Background(), "postgres://localhost/app")
		require.NoError(t, err)
		require.Equal(t, pool, db)
	})
}

func TestRunMigrations(t *testing.T) {
	boom := errors.New("boom")

	t.Run("success", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{})
		require.NoError(t, RunMigrations("postgres://localhost/app"))
	})

	t.Run("no change is not an error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{upErr: migrate.ErrNoChange})
		require.NoError(t, RunMigrations("postgres://localhost/app"))
	})

	t.Run("up error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{upErr: boom})
		require.ErrorIs(t, RunMigrations("postgres://localhost/app"), boom)
	})

	t.Run("open error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{})
		sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, boom }
		require.ErrorIs(t, RunMigrations("postgres://localhost/app"), boom)
	})

	t.Run("driver error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{})
		postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, boom }
		require.ErrorIs(t, RunMigrations("postgres://localhost/app"), boom)
	})

	t.Run("source error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{})
		iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, boom }
		require.ErrorIs(t, RunMigrations("postgres://localhost/app"), boom)
	})

	t.Run("instance error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{})
		migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
			return nil, boom
		}
		require.ErrorIs(t, RunMigrations("postgres://localhost/app"), boom)
	})
}

func TestRollbackAll(t *testing.T) {
	boom := errors.New("boom")

	t.Run("success", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{})
		require.NoError(t, RollbackAll("postgres://localhost/app"))
	})

	t.Run("no change is not an error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{downErr: migrate.ErrNoChange})
		require.NoError(t, RollbackAll("postgres://localhost/app"))
	})

	t.Run("down error", func(t *testing.T) {
		restoreMigrateGlobals(t)
		stubMigrateHappyPath(&fakeMigrator{downErr: boom})
		require.ErrorIs(t, RollbackAll("postgres://localhost/app"), boom)
	})
}
