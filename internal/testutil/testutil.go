// Package testutil opens throwaway databases loaded with the standard fixture.
package testutil

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ZeroSibe/nc-news/internal/config"
	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/seed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TestdataPath returns the absolute path to a file in the repository testdata directory.
func TestdataPath(filename string) string {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot determine testutil file path")
	}
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(currentFile)))
	return filepath.Join(projectRoot, "testdata", filename)
}

// LoadFixture reads testdata/seed.yaml
func LoadFixture(t testing.TB) *seed.Fixture {
	t.Helper()
	f, err := seed.Load(TestdataPath("seed.yaml"))
	require.NoError(t, err)
	return f
}

// NewSQLiteDB opens a migrated but empty sqlite database in a temp dir
func NewSQLiteDB(t testing.TB) *database.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "nc_news_test.db"),
	}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())
	return db
}

// NewSeededDB opens a sqlite database loaded with the standard fixture
func NewSeededDB(t testing.TB) *database.DB {
	t.Helper()
	db := NewSQLiteDB(t)
	Seed(t, db)
	return db
}

// Seed resets db to the standard fixture
func Seed(t testing.TB, db *database.DB) {
	t.Helper()
	_, err := seed.New(db, zerolog.Nop()).Run(context.Background(), LoadFixture(t))
	require.NoError(t, err)
}
