package cli

import (
	"fmt"
	"time"

	"github.com/root-talis/mig"
)

// Status shows the state of every migration.
type Status struct{}

// Run the status command.
func (c *Status) Run(appCtx *AppContext, g *Globals, metrics *mig.Metrics) error {
	var result *mig.ValidationResult
	err := withMigrator(appCtx, g, metrics, func(migrator *mig.Migrator) error {
		var err error
		result, err = migrator.Validate(appCtx.Ctx)
		return err
	})
	if err != nil {
		return err
	}

	data := make([][]string, 0, len(result.Migrations))
	for _, state := range result.Migrations {
		appliedAt := "-"
		if !state.AppliedAt.IsZero() {
			appliedAt = state.AppliedAt.Local().Format(time.DateTime)
		}
		data = append(data, []string{state.ID.String(), state.Name, state.Status.String(), appliedAt})
	}

	if err = renderTable([]string{"ID", "Name", "Status", "Applied At"}, data, appCtx.Stdout); err != nil {
		return fmt.Errorf("failed rendering table: %w", err)
	}

	_, err = fmt.Fprintf(appCtx.Stdout, "\n%d applied, %d pending, %d missing\n",
		result.AppliedCount, result.PendingCount, result.MissingCount)

	return err //nolint:wrapcheck // Nothing to add.
}
