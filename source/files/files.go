package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/root-talis/mig/migration"
	"github.com/root-talis/mig/source"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

var (
	ErrNotADirectory     = errors.New("migrations directory is not a directory")
	ErrMissingUpScript   = errors.New("up script is missing")
	ErrMissingDownScript = errors.New("down script is missing")
)

// DiscoveryError reports a migration that could not be assembled from the directory.
// ID holds the raw identifier segment of the offending file names.
type DiscoveryError struct {
	ID  string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("migration \"%s\": %s", e.ID, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ---

type filesSource struct {
	fsys fs.FS
	dir  string
}

// NewFilesSource reads migrations from a directory of fsys. Every migration is a pair of
// files named <id>_<name>.up.sql and <id>_<name>.down.sql.
func NewFilesSource(fsys fs.FS, directory string) (source.Source, error) {
	stat, err := fs.Stat(fsys, directory)
	if err != nil {
		return nil, fmt.Errorf("failed to stat migrations directory: %w", err)
	}

	if !stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, directory)
	}

	return &filesSource{
		fsys: fsys,
		dir:  directory,
	}, nil
}

func (src *filesSource) Migrations(ctx context.Context) ([]migration.Migration, error) {
	dirEntries, err := fs.ReadDir(src.fsys, src.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read contents of migrations directory: %w", err)
	}

	found := make(fileMap)
	for _, entry := range dirEntries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}

		fileName := entry.Name()

		var direction migration.Direction
		var baseName string
		switch {
		case strings.HasSuffix(fileName, upSuffix):
			direction, baseName = migration.Up, strings.TrimSuffix(fileName, upSuffix)
		case strings.HasSuffix(fileName, downSuffix):
			direction, baseName = migration.Down, strings.TrimSuffix(fileName, downSuffix)
		default:
			continue
		}

		rawID, name, _ := strings.Cut(baseName, "_")
		if err := found.add(rawID, name, direction, path.Join(src.dir, fileName)); err != nil {
			return nil, err
		}
	}

	result := make([]migration.Migration, 0, len(found))
	for _, rawID := range found.sortedIDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mig, err := src.load(rawID, found[rawID])
		if err != nil {
			return nil, err
		}

		result = append(result, mig)
	}

	return result, nil
}

func (src *filesSource) load(rawID string, files *migrationFiles) (migration.Migration, error) {
	id, err := migration.ParseID(rawID)
	if err != nil {
		return migration.Migration{}, &DiscoveryError{ID: rawID, Err: err}
	}

	if files.up == "" {
		return migration.Migration{}, &DiscoveryError{ID: rawID, Err: ErrMissingUpScript}
	}
	if files.down == "" {
		return migration.Migration{}, &DiscoveryError{ID: rawID, Err: ErrMissingDownScript}
	}

	up, err := fs.ReadFile(src.fsys, files.up)
	if err != nil {
		return migration.Migration{}, fmt.Errorf("failed to read %s: %w", files.up, err)
	}

	down, err := fs.ReadFile(src.fsys, files.down)
	if err != nil {
		return migration.Migration{}, fmt.Errorf("failed to read %s: %w", files.down, err)
	}

	return migration.Migration{
		ID:   id,
		Name: files.name,
		Up:   string(up),
		Down: string(down),
	}, nil
}

// ---

type migrationFiles struct {
	name string
	up   string
	down string
}

type fileMap map[string]*migrationFiles

func (m fileMap) add(rawID, name string, direction migration.Direction, filePath string) error {
	files, exists := m[rawID]
	if !exists {
		files = &migrationFiles{name: name}
		m[rawID] = files
	}

	if files.name != name {
		return &DiscoveryError{
			ID: rawID,
			Err: fmt.Errorf(
				"%w: name \"%s\" conflicts with \"%s\"",
				source.ErrMigrationDuplicated,
				name,
				files.name,
			),
		}
	}

	slot := &files.up
	if direction == migration.Down {
		slot = &files.down
	}

	if *slot != "" {
		return &DiscoveryError{
			ID:  rawID,
			Err: fmt.Errorf("%w: %s and %s", source.ErrMigrationDuplicated, *slot, filePath),
		}
	}

	*slot = filePath

	return nil
}

func (m fileMap) sortedIDs() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
