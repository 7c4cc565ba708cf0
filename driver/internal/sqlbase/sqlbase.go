// Package sqlbase implements driver.Driver on top of database/sql. Concrete drivers only
// describe their dialect.
package sqlbase

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/root-talis/mig/driver"
	"github.com/root-talis/mig/migration"
)

// Dialect holds everything that differs between databases.
type Dialect struct {
	// Table is the escaped and quoted name of the bookkeeping table.
	Table string
	// CreateTable is a format string with a single %s for Table.
	CreateTable string
	// EncodeTime converts the moment a migration was applied into a query argument.
	EncodeTime func(time.Time) any
}

type Driver struct {
	conn    *sql.DB
	dialect Dialect
	now     func() time.Time

	selectHighest string
	selectAll     string
	insert        string
	remove        string
}

var (
	_ driver.Driver = (*Driver)(nil)
	_ driver.Lister = (*Driver)(nil)
)

// timeLayouts are tried in order when reading applied_at back.
var timeLayouts = []string{ // nolint:gochecknoglobals
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// New builds a driver. A nil now falls back to time.Now.
func New(conn *sql.DB, dialect Dialect, now func() time.Time) *Driver {
	if now == nil {
		now = time.Now
	}
	if dialect.EncodeTime == nil {
		dialect.EncodeTime = func(t time.Time) any { return t.UTC() }
	}

	return &Driver{
		conn:    conn,
		dialect: dialect,
		now:     now,

		selectHighest: fmt.Sprintf("SELECT MAX(id) FROM %s", dialect.Table),
		selectAll:     fmt.Sprintf("SELECT id, applied_at FROM %s ORDER BY id", dialect.Table),
		insert:        fmt.Sprintf("INSERT INTO %s (id, applied_at) VALUES (?, ?)", dialect.Table),
		remove:        fmt.Sprintf("DELETE FROM %s WHERE id = ?", dialect.Table),
	}
}

func (drv *Driver) EnsureMigrationsTable(ctx context.Context) error {
	_, err := drv.conn.ExecContext(ctx, fmt.Sprintf(drv.dialect.CreateTable, drv.dialect.Table))
	if err != nil {
		return fmt.Errorf("failed to create migrations table %s: %w", drv.dialect.Table, err)
	}

	return nil
}

func (drv *Driver) HighestApplied(ctx context.Context) (migration.ID, bool, error) {
	var highest sql.NullString

	if err := drv.conn.QueryRowContext(ctx, drv.selectHighest).Scan(&highest); err != nil {
		return migration.ID{}, false, fmt.Errorf("failed to query highest applied migration: %w", err)
	}

	if !highest.Valid {
		return migration.ID{}, false, nil
	}

	id, err := migration.ParseID(highest.String)
	if err != nil {
		return migration.ID{}, false, fmt.Errorf("%w: %v", driver.ErrInvalidLogTable, err)
	}

	return id, true, nil
}

func (drv *Driver) ListApplied(ctx context.Context) ([]migration.Log, error) {
	rows, err := drv.conn.QueryContext(ctx, drv.selectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	defer rows.Close()

	result := make([]migration.Log, 0)
	for rows.Next() {
		var rawID string
		var appliedAt sql.NullString

		if err := rows.Scan(&rawID, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to query migrations log table: %w", err)
		}

		id, err := migration.ParseID(rawID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", driver.ErrInvalidLogTable, err)
		}

		result = append(result, migration.Log{
			ID:        id,
			AppliedAt: parseTime(appliedAt.String),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query migrations log table: %w", err)
	}

	return result, nil
}

func (drv *Driver) Apply(ctx context.Context, id migration.ID, script string) error {
	return drv.inTx(ctx, func(tx *sql.Tx) error {
		if err := execScript(ctx, tx, script); err != nil {
			return fmt.Errorf("failed to execute up script of migration %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, drv.insert, id.String(), drv.dialect.EncodeTime(drv.now())); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", id, err)
		}

		return nil
	})
}

func (drv *Driver) RollBack(ctx context.Context, id migration.ID, script string) error {
	return drv.inTx(ctx, func(tx *sql.Tx) error {
		if err := execScript(ctx, tx, script); err != nil {
			return fmt.Errorf("failed to execute down script of migration %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, drv.remove, id.String()); err != nil {
			return fmt.Errorf("failed to remove migration %s from log: %w", id, err)
		}

		return nil
	})
}

func (drv *Driver) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := drv.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func execScript(ctx context.Context, tx *sql.Tx, script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}

	_, err := tx.ExecContext(ctx, script)

	return err
}

func parseTime(value string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}
