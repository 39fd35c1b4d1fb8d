package retention

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// ErrInvalidCutoff is returned when a comparison instant is the zero time.
var ErrInvalidCutoff = errors.New("cutoff must be a non-zero instant")

// IsPathOld reports whether path is absolute, exists, and was last modified at or
// before cutoff. Nothing is cached: every call reads fresh metadata.
func IsPathOld(fsys afero.Fs, path string, cutoff time.Time) (bool, error) {
	if !filepath.IsAbs(path) {
		return false, nil
	}
	if exists, err := afero.Exists(fsys, path); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	} else if !exists {
		return false, nil
	}
	if cutoff.IsZero() {
		return false, ErrInvalidCutoff
	}

	info, err := fsys.Stat(path)
	if err != nil {
		// Removed between the existence check and the stat
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return !info.ModTime().After(cutoff), nil
}

// AllOld reports whether every path is old. An empty slice is trivially old.
func AllOld(fsys afero.Fs, paths []string, cutoff time.Time) (bool, error) {
	for _, path := range paths {
		if old, err := IsPathOld(fsys, path, cutoff); err != nil || !old {
			return false, err
		}
	}
	return true, nil
}
