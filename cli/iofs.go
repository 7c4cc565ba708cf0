package cli

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// dirFS exposes a directory of a vfs.FileSystem as an fs.FS, the way os.DirFS does
// for the host filesystem.
type dirFS struct {
	fs   vfs.FileSystem
	root string
}

var (
	_ fs.StatFS    = dirFS{}
	_ fs.ReadDirFS = dirFS{}
)

func newDirFS(fsys vfs.FileSystem, root string) dirFS {
	return dirFS{fs: fsys, root: root}
}

func (d dirFS) Open(name string) (fs.File, error) {
	path, err := d.join("open", name)
	if err != nil {
		return nil, err
	}

	//nolint:wrapcheck // vfs already returns *fs.PathError.
	return d.fs.Open(path)
}

func (d dirFS) Stat(name string) (fs.FileInfo, error) {
	path, err := d.join("stat", name)
	if err != nil {
		return nil, err
	}

	//nolint:wrapcheck // vfs already returns *fs.PathError.
	return d.fs.Stat(path)
}

func (d dirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	path, err := d.join("readdir", name)
	if err != nil {
		return nil, err
	}

	infos, err := vfs.ReadDir(d.fs, path)
	if err != nil {
		return nil, err //nolint:wrapcheck // vfs already returns *fs.PathError.
	}

	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

func (d dirFS) join(op, name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}

	return filepath.Join(d.root, filepath.FromSlash(name)), nil
}
