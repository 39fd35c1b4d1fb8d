package retention

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ErrInvalidInput is returned when the operator supplied root cannot be cleaned up.
var ErrInvalidInput = errors.New("invalid input")

type Config struct {
	Root    string    `yaml:"root"`
	Cutoff  time.Time `yaml:"cutoff"`
	Force   bool      `yaml:"force"`
	DryRun  bool      `yaml:"dry-run"`
	Archive string    `yaml:"archive,omitempty"`
}

// CutoffFromDays returns the instant `days` whole days before now.
func CutoffFromDays(now time.Time, days int) (time.Time, error) {
	if days < 0 {
		return time.Time{}, fmt.Errorf("days must not be negative (got %d): %w", days, ErrInvalidInput)
	}
	return now.Add(-time.Duration(days) * 24 * time.Hour), nil
}

// ValidateRoot checks that root is an absolute path to an existing location.
func ValidateRoot(fsys afero.Fs, root string) error {
	if !filepath.IsAbs(root) {
		return fmt.Errorf("the file path %s does not exist: %w", root, ErrInvalidInput)
	}
	if exists, err := afero.Exists(fsys, root); err != nil || !exists {
		return fmt.Errorf("the file path %s does not exist: %w", root, ErrInvalidInput)
	}
	return nil
}

func Validate(fsys afero.Fs, config Config) error {
	if err := ValidateRoot(fsys, config.Root); err != nil {
		return err
	}
	if config.Cutoff.IsZero() {
		return ErrInvalidCutoff
	}
	if config.Archive != "" {
		if !filepath.IsAbs(config.Archive) {
			return fmt.Errorf("archive path %s must be absolute: %w", config.Archive, ErrInvalidInput)
		}
		root := filepath.Clean(config.Root)
		if archive := filepath.Clean(config.Archive); archive == root || strings.HasPrefix(archive, root+string(filepath.Separator)) {
			return fmt.Errorf("archive %s must not be inside %s: %w", config.Archive, config.Root, ErrInvalidInput)
		}
	}
	return nil
}
