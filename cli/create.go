package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/root-talis/mig/migration"
)

var (
	ErrInvalidName     = errors.New("invalid migration name")
	ErrMigrationExists = errors.New("migration already exists")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`) // nolint:gochecknoglobals

// Create writes an empty pair of scripts named after the current time.
type Create struct {
	Name string `arg:"" help:"Short description of the migration, e.g. create_users."`
}

// Run the create command.
func (c *Create) Run(appCtx *AppContext, g *Globals) error {
	if !namePattern.MatchString(c.Name) {
		return fmt.Errorf("%w: \"%s\" may only contain letters, digits, '_' and '-'", ErrInvalidName, c.Name)
	}

	if err := appCtx.FS.MkdirAll(g.Dir, 0o755); err != nil {
		return fmt.Errorf("failed creating migrations directory: %w", err)
	}

	id := migration.NewID(appCtx.TimeNow())

	infos, err := vfs.ReadDir(appCtx.FS, g.Dir)
	if err != nil {
		return fmt.Errorf("failed reading migrations directory: %w", err)
	}
	for _, info := range infos {
		if strings.HasPrefix(info.Name(), id.String()+"_") {
			return fmt.Errorf("%w: %s", ErrMigrationExists, filepath.Join(g.Dir, info.Name()))
		}
	}

	for _, direction := range []migration.Direction{migration.Up, migration.Down} {
		path := filepath.Join(g.Dir, fmt.Sprintf("%s_%s.%s.sql", id, c.Name, direction))
		if err = vfs.WriteFile(appCtx.FS, path, nil, 0o644); err != nil {
			return fmt.Errorf("failed writing %s: %w", path, err)
		}

		if _, err = fmt.Fprintln(appCtx.Stdout, path); err != nil {
			return err //nolint:wrapcheck // Nothing to add.
		}
	}

	appCtx.Logger.WithField("id", id).Debug("created migration")

	return nil
}
