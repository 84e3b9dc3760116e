package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/labelmkr/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates the profile and result tables", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		ctx := context.Background()
		for _, table := range []string{"profiles", "results"} {
			var count int
			err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
			require.NoError(t, err, table)
			assert.Zero(t, count, table)
		}
	})

	t.Run("records the schema version and reopens without migrating twice", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "labelmkr.db")

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		var first int
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&first))
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()
		var second int
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&second))

		assert.Positive(t, first)
		assert.Equal(t, first, second)
	})

	t.Run("uses WAL for file databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "labelmkr.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var mode string
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		_, err := db.ExecContext(context.Background(),
			`INSERT INTO results (id, profile_id, source_url, created_at) VALUES ('r', 'missing', 'https://x.test', '')`)

		assert.Error(t, err)
	})

	t.Run("fails for an unreachable path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/dir/labelmkr.db")

		assert.Error(t, db.Open())
	})

	t.Run("closes an unopened database", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, sqlite.NewDB(":memory:").Close())
	})
}
