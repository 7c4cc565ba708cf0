package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/root-talis/mig/driver"
	"github.com/root-talis/mig/driver/duckdb"
	"github.com/root-talis/mig/driver/mysql"
	"github.com/root-talis/mig/driver/sqlite"
)

var (
	ErrUnknownDriver = errors.New("unknown driver")
	ErrMissingDSN    = errors.New("data source name is not set")
)

// openDriver connects to the configured database. The returned closer releases
// the connection.
func openDriver(g *Globals) (driver.Driver, io.Closer, error) {
	if g.DSN == "" {
		return nil, nil, ErrMissingDSN
	}

	switch g.Driver {
	case "mysql":
		cfg, err := gomysql.ParseDSN(g.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed parsing MySQL DSN: %w", err)
		}
		// migration scripts usually hold more than one statement
		cfg.MultiStatements = true

		connector, err := gomysql.NewConnector(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed creating MySQL connector: %w", err)
		}
		conn := sql.OpenDB(connector)

		return mysql.NewDriver(conn, mysql.DriverConfig{
			DatabaseName:        cfg.DBName,
			MigrationsTableName: g.Table,
		}), conn, nil

	case "sqlite":
		conn, err := sqlite.Open(g.DSN)
		if err != nil {
			return nil, nil, err //nolint:wrapcheck // Already wrapped.
		}

		return sqlite.NewDriver(conn, sqlite.DriverConfig{MigrationsTableName: g.Table}), conn, nil

	case "duckdb":
		conn, err := duckdb.Open(g.DSN)
		if err != nil {
			return nil, nil, err //nolint:wrapcheck // Already wrapped.
		}

		return duckdb.NewDriver(conn, duckdb.DriverConfig{MigrationsTableName: g.Table}), conn, nil
	}

	return nil, nil, fmt.Errorf("%w: \"%s\", expected mysql, sqlite or duckdb", ErrUnknownDriver, g.Driver)
}
