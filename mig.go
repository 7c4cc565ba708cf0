package mig

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/root-talis/mig/driver"
	"github.com/root-talis/mig/migration"
	"github.com/root-talis/mig/source"
)

// ---

type ValidationResult struct {
	Migrations   []migration.State
	AppliedCount uint
	PendingCount uint
	MissingCount uint
}

// ---

// Migrator applies and reverts the migrations of a source against a driver.
// Calls must not overlap: a Migrator may be reused, but only sequentially.
type Migrator struct {
	source  source.Source
	driver  driver.Driver
	logger  logrus.FieldLogger
	metrics *Metrics
}

type Option func(*Migrator)

// WithLogger sets the logger for progress messages. Errors are returned, never logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Migrator) {
		m.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Migrator) {
		m.metrics = metrics
	}
}

// ---

func New(source source.Source, driver driver.Driver, opts ...Option) *Migrator {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	m := &Migrator{
		source: source,
		driver: driver,
		logger: silent,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ---

// Apply runs, in ascending order, every migration whose id is greater than the highest
// applied one. It stops at the first failure; migrations applied before it stay applied.
func (m *Migrator) Apply(ctx context.Context) error {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	migrations, err := m.loadSortedMigrations(ctx)
	if err != nil {
		return err
	}

	if len(migrations) == 0 {
		m.logger.Info("no migrations found")
		return nil
	}

	highest, ok, err := m.driver.HighestApplied(ctx)
	if err != nil {
		return fmt.Errorf("failed to get the highest applied migration: %w", err)
	}

	pending := make([]migration.Migration, 0, len(migrations))
	for _, mig := range migrations {
		if !ok || highest.Less(mig.ID) {
			pending = append(pending, mig)
		}
	}

	m.logger.WithFields(logrus.Fields{
		"direction": migration.Up,
		"pending":   len(pending),
	}).Info("applying migrations")

	for _, mig := range pending {
		if err := m.run(ctx, migration.Up, mig); err != nil {
			return err
		}
	}

	return nil
}

// RollBack reverts, in descending order, every migration whose id is not greater than the
// highest applied one: the whole known history goes in a single pass.
func (m *Migrator) RollBack(ctx context.Context) error {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	highest, ok, err := m.driver.HighestApplied(ctx)
	if err != nil {
		return fmt.Errorf("failed to get the highest applied migration: %w", err)
	}

	if !ok {
		m.logger.Info("no applied migrations to roll back")
		return nil
	}

	migrations, err := m.loadSortedMigrations(ctx)
	if err != nil {
		return err
	}

	candidates := make([]migration.Migration, 0, len(migrations))
	for i := len(migrations) - 1; i >= 0; i-- {
		if !highest.Less(migrations[i].ID) {
			candidates = append(candidates, migrations[i])
		}
	}

	m.logger.WithFields(logrus.Fields{
		"direction":  migration.Down,
		"candidates": len(candidates),
		"highest":    highest,
	}).Info("rolling back migrations")

	for _, mig := range candidates {
		if err := m.run(ctx, migration.Down, mig); err != nil {
			return err
		}
	}

	return nil
}

// Validate reports the state of every migration known to the source or to the driver.
func (m *Migrator) Validate(ctx context.Context) (*ValidationResult, error) {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	availableMigrations, err := m.loadSortedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	appliedMigrations, err := m.loadAppliedMigrations(ctx, availableMigrations)
	if err != nil {
		return nil, fmt.Errorf("failed to get the list of applied migrations: %w", err)
	}

	result := ValidationResult{
		Migrations: make([]migration.State, 0, len(availableMigrations)),
	}

	known := make(map[migration.ID]bool, len(availableMigrations))
	for _, availableMigration := range availableMigrations {
		known[availableMigration.ID] = true

		state := migration.State{
			Migration: availableMigration,
			Status:    migration.Pending,
		}

		if entry, ok := appliedMigrations[availableMigration.ID]; ok {
			state.Status = migration.Applied
			state.AppliedAt = entry.AppliedAt
			result.AppliedCount++
		} else {
			result.PendingCount++
		}

		result.Migrations = append(result.Migrations, state)
	}

	for _, applied := range appliedMigrations {
		if known[applied.ID] {
			continue
		}

		result.Migrations = append(result.Migrations, migration.State{
			Migration: migration.Migration{ID: applied.ID},
			Status:    migration.Missing,
			AppliedAt: applied.AppliedAt,
		})
		result.MissingCount++
	}

	sort.Slice(result.Migrations, func(i, j int) bool {
		return result.Migrations[i].ID.Less(result.Migrations[j].ID)
	})

	return &result, nil
}

// ---

func (m *Migrator) ensureMigrationsTable(ctx context.Context) error {
	if err := m.driver.EnsureMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to prepare migrations table: %w", err)
	}

	return nil
}

// loadSortedMigrations returns a sorted copy of the source's migrations and rejects
// duplicate ids before anything gets executed.
func (m *Migrator) loadSortedMigrations(ctx context.Context) ([]migration.Migration, error) {
	available, err := m.source.Migrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get the list of available migrations: %w", err)
	}

	migrations := make([]migration.Migration, len(available))
	copy(migrations, available)

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID.Less(migrations[j].ID)
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i-1].ID == migrations[i].ID {
			return nil, fmt.Errorf("%w: %s", source.ErrMigrationDuplicated, migrations[i].ID)
		}
	}

	return migrations, nil
}

// loadAppliedMigrations uses the driver's full log when it has one. Otherwise everything
// up to the highest applied id is considered applied.
func (m *Migrator) loadAppliedMigrations(
	ctx context.Context,
	available []migration.Migration,
) (map[migration.ID]migration.Log, error) {
	if lister, ok := m.driver.(driver.Lister); ok {
		logs, err := lister.ListApplied(ctx)
		if err != nil {
			return nil, err
		}

		result := make(map[migration.ID]migration.Log, len(logs))
		for _, log := range logs {
			result[log.ID] = log
		}

		return result, nil
	}

	highest, ok, err := m.driver.HighestApplied(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[migration.ID]migration.Log)
	if !ok {
		return result, nil
	}

	result[highest] = migration.Log{ID: highest}
	for _, mig := range available {
		if !highest.Less(mig.ID) {
			result[mig.ID] = migration.Log{ID: mig.ID}
		}
	}

	return result, nil
}

func (m *Migrator) run(ctx context.Context, direction migration.Direction, mig migration.Migration) error {
	log := m.logger.WithFields(logrus.Fields{
		"direction": direction,
		"id":        mig.ID,
		"name":      mig.Name,
	})

	started := time.Now()

	var err error
	switch direction {
	case migration.Up:
		err = m.driver.Apply(ctx, mig.ID, mig.Up)
	case migration.Down:
		err = m.driver.RollBack(ctx, mig.ID, mig.Down)
	}

	took := time.Since(started)
	m.metrics.observe(direction, took, err)

	if err != nil {
		if direction == migration.Up {
			return fmt.Errorf("failed to apply migration %s: %w", mig.ID, err)
		}
		return fmt.Errorf("failed to roll back migration %s: %w", mig.ID, err)
	}

	log.WithField("duration", took).Debug("migration done")

	return nil
}
