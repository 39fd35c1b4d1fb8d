package retention

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

// Deleter removes a single file or empty directory.
type Deleter interface {
	Remove(path string) error
}

// NewDeleter returns a Deleter acting on fsys, or one that leaves everything in
// place when dryRun is set.
func NewDeleter(fsys afero.Fs, dryRun bool) Deleter {
	if dryRun {
		return dryRunDeleter{}
	}
	return &fsDeleter{fs: fsys}
}

type fsDeleter struct {
	fs afero.Fs
}

// fsDeleter implements Deleter
var _ Deleter = (*fsDeleter)(nil)

// Remove treats an already vanished path as removed.
func (d *fsDeleter) Remove(path string) error {
	if err := d.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type dryRunDeleter struct{}

// dryRunDeleter implements Deleter
var _ Deleter = dryRunDeleter{}

func (dryRunDeleter) Remove(string) error {
	return nil
}
