package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/root-talis/mig"
	"github.com/root-talis/mig/source/files"
)

// Up applies pending migrations.
type Up struct{}

// Run the up command.
func (c *Up) Run(appCtx *AppContext, g *Globals, metrics *mig.Metrics) error {
	return withMigrator(appCtx, g, metrics, func(migrator *mig.Migrator) error {
		return migrator.Apply(appCtx.Ctx)
	})
}

// Down rolls back applied migrations.
type Down struct{}

// Run the down command.
func (c *Down) Run(appCtx *AppContext, g *Globals, metrics *mig.Metrics) error {
	return withMigrator(appCtx, g, metrics, func(migrator *mig.Migrator) error {
		return migrator.RollBack(appCtx.Ctx)
	})
}

func withMigrator(appCtx *AppContext, g *Globals, metrics *mig.Metrics, fn func(*mig.Migrator) error) error {
	src, err := files.NewFilesSource(newDirFS(appCtx.FS, g.Dir), ".")
	if err != nil {
		return fmt.Errorf("failed opening migrations directory %s: %w", g.Dir, err)
	}

	drv, conn, err := openDriver(g)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger := appCtx.Logger.WithFields(logrus.Fields{
		"driver": g.Driver,
		"dir":    g.Dir,
	})

	return fn(mig.New(src, drv, mig.WithLogger(logger), mig.WithMetrics(metrics)))
}
