package source

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination ../internal/mocks/source.go github.com/root-talis/mig/source Source

import (
	"context"
	"errors"

	"github.com/root-talis/mig/migration"
)

// Source supplies every known migration. The result may be unsorted.
type Source interface {
	Migrations(ctx context.Context) ([]migration.Migration, error)
}

var (
	ErrMigrationDuplicated = errors.New("migration id is used by more than one migration")
)
