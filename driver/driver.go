package driver

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination ../internal/mocks/driver.go github.com/root-talis/mig/driver Driver,Lister

import (
	"context"
	"errors"

	"github.com/root-talis/mig/migration"
)

// Driver is the datastore side of a migration run. Apply and RollBack must never record
// a migration whose script failed.
type Driver interface {
	// EnsureMigrationsTable creates the bookkeeping storage unless it already exists.
	EnsureMigrationsTable(ctx context.Context) error
	// HighestApplied returns the greatest applied id, or ok == false when nothing is applied.
	HighestApplied(ctx context.Context) (id migration.ID, ok bool, err error)
	Apply(ctx context.Context, id migration.ID, script string) error
	RollBack(ctx context.Context, id migration.ID, script string) error
}

// Lister is implemented by drivers that can report every applied migration, not only the highest.
type Lister interface {
	ListApplied(ctx context.Context) ([]migration.Log, error)
}

var ErrInvalidLogTable = errors.New("an error has occurred when reading log table")
