package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/root-talis/mig/cli"
)

var timeNow = time.Date(2022, 1, 18, 11, 55, 19, 0, time.UTC) // nolint:gochecknoglobals

func newTestContext(fs vfs.FileSystem) (*cli.AppContext, *bytes.Buffer) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	stdout := &bytes.Buffer{}

	return &cli.AppContext{
		Ctx:     context.Background(),
		FS:      fs,
		Logger:  logger,
		TimeNow: func() time.Time { return timeNow },
		Stdout:  stdout,
		Stderr:  io.Discard,
	}, stdout
}

func runCLI(t *testing.T, appCtx *cli.AppContext, configFile string, args ...string) error {
	t.Helper()

	c, err := cli.New(configFile, "mig test")
	require.NoError(t, err)

	if err = c.Parse(args); err != nil {
		return err
	}

	return c.Execute(appCtx)
}

func writeMigrations(t *testing.T, dir string) {
	t.Helper()

	scripts := map[string]string{
		"20220118115519_users.up.sql":      "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"20220118115519_users.down.sql":    "DROP TABLE users;",
		"20220118120101_sessions.up.sql":   "CREATE TABLE sessions (id INTEGER PRIMARY KEY);",
		"20220118120101_sessions.down.sql": "DROP TABLE sessions;",
	}

	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, script := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o644))
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	fs := memoryfs.New()
	appCtx, stdout := newTestContext(fs)

	err := runCLI(t, appCtx, "/config.yaml", "create", "--dir", "/db", "create_users")
	require.NoError(t, err)

	for _, name := range []string{
		"/db/20220118115519_create_users.up.sql",
		"/db/20220118115519_create_users.down.sql",
	} {
		info, err := fs.Stat(name)
		require.NoError(t, err, name)
		assert.Zero(t, info.Size())
		assert.Contains(t, stdout.String(), name)
	}

	err = runCLI(t, appCtx, "/config.yaml", "create", "--dir", "/db", "another")
	assert.ErrorIs(t, err, cli.ErrMigrationExists, "a second migration within the same second must be refused")
}

func TestCreateRejectsInvalidNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"with space", "../escape", "semi;colon"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			appCtx, _ := newTestContext(memoryfs.New())
			err := runCLI(t, appCtx, "/config.yaml", "create", "--dir", "/db", name)
			assert.ErrorIs(t, err, cli.ErrInvalidName)
		})
	}
}

func TestUpStatusDown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	migrationsDir := filepath.Join(dir, "migrations")
	writeMigrations(t, migrationsDir)

	metricsFile := filepath.Join(dir, "mig.prom")
	flags := []string{
		"--driver", "sqlite",
		"--dsn", filepath.Join(dir, "app.db"),
		"--dir", migrationsDir,
		"--metrics-textfile", metricsFile,
	}
	configFile := filepath.Join(dir, "missing.yaml")

	appCtx, _ := newTestContext(osfs.New())
	require.NoError(t, runCLI(t, appCtx, configFile, append(flags, "up")...))

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `mig_migrations_total{direction="up",result="success"} 2`)

	appCtx, stdout := newTestContext(osfs.New())
	require.NoError(t, runCLI(t, appCtx, configFile, append(flags, "status")...))
	assert.Contains(t, stdout.String(), "20220118115519")
	assert.Contains(t, stdout.String(), "sessions")
	assert.Contains(t, stdout.String(), "2 applied, 0 pending, 0 missing")

	appCtx, _ = newTestContext(osfs.New())
	require.NoError(t, runCLI(t, appCtx, configFile, append(flags, "down")...))

	appCtx, stdout = newTestContext(osfs.New())
	require.NoError(t, runCLI(t, appCtx, configFile, append(flags, "status")...))
	assert.Contains(t, stdout.String(), "0 applied, 2 pending, 0 missing")
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	migrationsDir := filepath.Join(dir, "migrations")
	writeMigrations(t, migrationsDir)

	configFile := filepath.Join(dir, "mig.yaml")
	configYAML := "driver: mysql\n" +
		"dsn: " + filepath.Join(dir, "app.db") + "\n" +
		"dir: " + migrationsDir + "\n" +
		"table: applied\n"
	require.NoError(t, os.WriteFile(configFile, []byte(configYAML), 0o644))

	// the flag must take precedence over the file
	appCtx, _ := newTestContext(osfs.New())
	require.NoError(t, runCLI(t, appCtx, configFile, "--driver", "sqlite", "up"))

	appCtx, stdout := newTestContext(osfs.New())
	require.NoError(t, runCLI(t, appCtx, configFile, "--driver", "sqlite", "status"))
	assert.Contains(t, stdout.String(), "2 applied, 0 pending, 0 missing")
}

var errorTestsTable = []struct { // nolint:gochecknoglobals
	name     string
	args     []string
	expected error
}{
	/* e0 */ {
		name:     "test e0: should refuse an unknown driver",
		args:     []string{"--driver", "oracle", "--dsn", "x", "up"},
		expected: cli.ErrUnknownDriver,
	},
	/* e1 */ {
		name:     "test e1: should refuse an empty DSN",
		args:     []string{"--driver", "sqlite", "down"},
		expected: cli.ErrMissingDSN,
	},
}

func TestErrors(t *testing.T) {
	t.Parallel()

	for _, test := range errorTestsTable {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			fs := memoryfs.New()
			require.NoError(t, fs.MkdirAll("/migrations", 0o755))

			appCtx, _ := newTestContext(fs)
			err := runCLI(t, appCtx, "/config.yaml", append([]string{"--dir", "/migrations"}, test.args...)...)
			assert.ErrorIs(t, err, test.expected)
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	t.Parallel()

	appCtx, _ := newTestContext(memoryfs.New())
	err := runCLI(t, appCtx, "/config.yaml", "--log-level", "loud", "status")
	assert.Error(t, err)
}

func TestMissingMigrationsDirectory(t *testing.T) {
	t.Parallel()

	appCtx, _ := newTestContext(memoryfs.New())
	err := runCLI(t, appCtx, "/config.yaml", "--driver", "sqlite", "--dsn", "x", "--dir", "/nowhere", "up")
	assert.Error(t, err)
}
