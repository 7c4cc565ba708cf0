package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/root-talis/mig/driver"
	"github.com/root-talis/mig/driver/internal/sqlbase"
)

const DefaultMigrationsTableName = "schema_migrations"

const createTable = "CREATE TABLE IF NOT EXISTS %s (" +
	"id         varbinary(14) not null, " + // byte-wise ordering, same as migration.ID
	"applied_at datetime default CURRENT_TIMESTAMP not null, " +
	"primary key (id)" +
	") default charset utf8"

const timeLayout = "2006-01-02 15:04:05"

type DriverConfig struct {
	// DatabaseName may be empty, then the table is looked up in the database of the connection.
	DatabaseName        string
	MigrationsTableName string
	// Now is used for applied_at. Defaults to time.Now.
	Now func() time.Time
}

// NewDriver returns a driver for MySQL and MariaDB. Scripts with more than one statement
// need multiStatements=true in the DSN. MySQL commits DDL implicitly, so a failing
// script may leave part of its statements applied, but it is never recorded.
func NewDriver(conn *sql.DB, config DriverConfig) driver.Driver {
	return sqlbase.New(conn, sqlbase.Dialect{
		Table:       makeEscapedMigrationsTableName(config),
		CreateTable: createTable,
		EncodeTime: func(t time.Time) any {
			return t.UTC().Format(timeLayout)
		},
	}, config.Now)
}

func makeEscapedMigrationsTableName(config DriverConfig) string {
	tableName := config.MigrationsTableName
	if tableName == "" {
		tableName = DefaultMigrationsTableName
	}

	if config.DatabaseName == "" {
		return fmt.Sprintf("`%s`", escapeMysqlString(tableName))
	}

	return fmt.Sprintf(
		"`%s`.`%s`",
		escapeMysqlString(config.DatabaseName),
		escapeMysqlString(tableName),
	)
}

// originally from https://gist.github.com/siddontang/8875771
func escapeMysqlString(sql string) string { //nolint:cyclop
	const prealloc = 2
	dest := make([]rune, 0, prealloc*len(sql))

	for _, character := range sql {
		var escape rune

		switch character {
		case 0:
			escape = '0'
		case '\n':
			escape = 'n'
		case '\r':
			escape = 'r'
		case '\\':
			escape = '\\'
		case '\'':
			escape = '\''
		case '"':
			escape = '"'
		case '`':
			escape = '`'
		case '\032':
			escape = 'Z'
		}

		if escape != 0 {
			dest = append(dest, '\\', escape)
		} else {
			dest = append(dest, character)
		}
	}

	return string(dest)
}
