package mig_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/root-talis/mig"
	"github.com/root-talis/mig/driver/sqlite"
	"github.com/root-talis/mig/migration"
	"github.com/root-talis/mig/source/files"
)

func TestFilesAndSqlite(t *testing.T) {
	t.Parallel()
	t.Logf("Should migrate a real database up and down from a directory of scripts.")

	ctx := context.Background()

	fsys := fstest.MapFS{
		"migrations/20220118115519_users.up.sql":      {Data: []byte("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);")},
		"migrations/20220118115519_users.down.sql":    {Data: []byte("DROP TABLE users;")},
		"migrations/20220118120101_sessions.up.sql":   {Data: []byte("CREATE TABLE sessions (id INTEGER PRIMARY KEY, user_id INTEGER REFERENCES users(id));")},
		"migrations/20220118120101_sessions.down.sql": {Data: []byte("DROP TABLE sessions;")},
		"migrations/README.md":                        {Data: []byte("not a migration")},
	}

	src, err := files.NewFilesSource(fsys, "migrations")
	require.NoError(t, err)

	conn, err := sqlite.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	migrator := mig.New(src, sqlite.NewDriver(conn, sqlite.DriverConfig{}))

	require.NoError(t, migrator.Apply(ctx))

	_, err = conn.Exec(`INSERT INTO users (id, name) VALUES (1, 'alice'); INSERT INTO sessions (id, user_id) VALUES (1, 1);`)
	require.NoError(t, err)

	result, err := migrator.Validate(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(2), result.AppliedCount)
	assert.Equal(t, uint(0), result.PendingCount)
	assert.Equal(t, "sessions", result.Migrations[1].Name)
	assert.False(t, result.Migrations[1].AppliedAt.IsZero())

	require.NoError(t, migrator.RollBack(ctx))

	var tables int
	err = conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'sessions')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 0, tables)

	result, err = migrator.Validate(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(2), result.PendingCount)
	for _, state := range result.Migrations {
		assert.Equal(t, migration.Pending, state.Status)
	}
}
