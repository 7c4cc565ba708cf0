package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/root-talis/mig/driver"
	"github.com/root-talis/mig/driver/internal/sqlbase"
)

const DefaultMigrationsTableName = "schema_migrations"

// TEXT compares with the BINARY collation, i.e. byte-wise like migration.ID.
const createTable = `CREATE TABLE IF NOT EXISTS %s (
	id         TEXT NOT NULL PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

type DriverConfig struct {
	MigrationsTableName string
	// Now is used for applied_at. Defaults to time.Now.
	Now func() time.Time
}

// Open opens a SQLite database file. Foreign keys are enforced.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed opening SQLite database: %w", err)
	}

	if _, err = conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed enabling foreign key enforcement: %w", err)
	}

	return conn, nil
}

func NewDriver(conn *sql.DB, config DriverConfig) driver.Driver {
	tableName := config.MigrationsTableName
	if tableName == "" {
		tableName = DefaultMigrationsTableName
	}

	return sqlbase.New(conn, sqlbase.Dialect{
		Table:       quoteIdentifier(tableName),
		CreateTable: createTable,
		EncodeTime: func(t time.Time) any {
			return t.UTC().Format(time.RFC3339)
		},
	}, config.Now)
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
