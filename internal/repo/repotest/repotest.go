// Package repotest opens migrated in-memory databases for tests.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/repo"
	pkgdb "github.com/Skotchmaster/roadmap/pkg/db"
)

func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))

	t.Cleanup(func() { _ = pkgdb.Close(db) })
	return db
}
