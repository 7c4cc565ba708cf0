package duckdb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2" // registers the "duckdb" database/sql driver

	"github.com/root-talis/mig/driver"
	"github.com/root-talis/mig/driver/internal/sqlbase"
)

const DefaultMigrationsTableName = "schema_migrations"

const createTable = `CREATE TABLE IF NOT EXISTS %s (
	id         VARCHAR PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL
)`

type DriverConfig struct {
	MigrationsTableName string
	// Now is used for applied_at. Defaults to time.Now.
	Now func() time.Time
}

// Open opens a DuckDB database file. An empty path opens an in-memory database.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed opening DuckDB database: %w", err)
	}

	return conn, nil
}

func NewDriver(conn *sql.DB, config DriverConfig) driver.Driver {
	tableName := config.MigrationsTableName
	if tableName == "" {
		tableName = DefaultMigrationsTableName
	}

	return sqlbase.New(conn, sqlbase.Dialect{
		Table:       `"` + strings.ReplaceAll(tableName, `"`, `""`) + `"`,
		CreateTable: createTable,
		EncodeTime: func(t time.Time) any {
			return t.UTC().Truncate(time.Microsecond)
		},
	}, config.Now)
}
