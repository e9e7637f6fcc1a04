package database

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	body, err := fs.ReadFile(migrations, "migrations/00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "UNIQUE INDEX")
}

func TestMigrate_Success(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.Equal(t, "migrations", gotDir)
}

func TestMigrate_Error(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return assert.AnError
	}

	err = Migrate(context.Background(), db)
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to apply migrations")
}
