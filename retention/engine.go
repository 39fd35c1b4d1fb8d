package retention

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// Directory is a visited directory with the absolute paths of its direct files.
type Directory struct {
	Path  string
	Files []string
}

type Option func(*Engine)

func WithFs(fsys afero.Fs) Option {
	return func(e *Engine) { e.fs = fsys }
}

func WithPrompter(prompt Prompter) Option {
	return func(e *Engine) { e.prompt = prompt }
}

// WithListener registers the function receiving every Event of the run, in order.
func WithListener(listener func(Event)) Option {
	return func(e *Engine) { e.listener = listener }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithDeleter replaces the deleter derived from the configuration. The dry-run
// setting is still honored: a dry run never calls the given deleter.
func WithDeleter(deleter Deleter) Option {
	return func(e *Engine) { e.deleter = deleter }
}

// Engine walks a tree bottom-up and removes old files and the directories they leave empty.
type Engine struct {
	config   Config
	fs       afero.Fs
	prompt   Prompter
	listener func(Event)
	logger   *slog.Logger
	deleter  Deleter
	gate     *Gate

	// paths removed during the run, simulated ones included
	removed map[string]struct{}
	// directories that lost an entry during the run, with the time of the removal
	touched map[string]time.Time
}

func New(config Config, opts ...Option) (*Engine, error) {
	if config.Cutoff.IsZero() {
		return nil, ErrInvalidCutoff
	}

	e := &Engine{
		config:  config,
		fs:      afero.NewOsFs(),
		logger:  slog.Default(),
		removed: make(map[string]struct{}),
		touched: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.deleter == nil || config.DryRun {
		e.deleter = NewDeleter(e.fs, config.DryRun)
	}
	e.gate = &Gate{Force: config.Force, Prompt: e.prompt, Emit: e.emit}
	e.logger = e.logger.With("root", config.Root, "dry-run", config.DryRun)

	return e, nil
}

// CleanUp scans the configured root and applies the retention policy to it.
func (e *Engine) CleanUp() (Report, error) {
	dirs, err := e.Scan()
	if err != nil {
		return Report{}, err
	}
	return e.Apply(dirs), nil
}

// Scan lists the tree under the configured root, deepest directories first and the
// root last. A root that does not exist yields no directory.
func (e *Engine) Scan() ([]Directory, error) {
	root := filepath.Clean(e.config.Root)

	info, err := e.fs.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, ErrInvalidInput)
	}

	var dirs []Directory
	if err := e.scan(root, &dirs); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	e.logger.Debug("Scanned tree", "directories", len(dirs))
	return dirs, nil
}

func (e *Engine) scan(dir string, dirs *[]Directory) error {
	entries, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return err
	}

	files := []string{}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Mode()&fs.ModeSymlink != 0 {
			// Links to directories are neither walked nor removed
			if target, err := e.fs.Stat(path); err == nil && target.IsDir() {
				continue
			}
		}
		if !entry.IsDir() {
			files = append(files, path)
			continue
		}
		if err := e.scan(path, dirs); err != nil {
			e.logger.Warn("Failed to read directory", "path", path, "error", err)
			e.emit(EventScanError{Path: path, Err: err})
		}
	}

	*dirs = append(*dirs, Directory{Path: dir, Files: files})
	return nil
}

// Apply processes dirs in order. Each directory is handled all-or-nothing: a single
// file that is too recent leaves the whole directory untouched.
func (e *Engine) Apply(dirs []Directory) Report {
	var report Report
	for _, dir := range dirs {
		report.Directories++
		e.apply(dir, &report)
	}

	e.logger.Info("Retention run completed",
		"directories", report.Directories,
		"files_removed", report.FilesRemoved,
		"directories_removed", report.DirectoriesRemoved,
		"failures", len(report.Failures),
	)
	return report
}

func (e *Engine) apply(dir Directory, report *Report) {
	old, err := AllOld(e.fs, dir.Files, e.config.Cutoff)
	if err != nil {
		e.fail(report, dir.Path, err)
		return
	}
	if !old {
		e.logger.Debug("Directory holds recent files", "path", dir.Path)
		e.emit(EventDirectorySkipped{Path: dir.Path})
		report.Skipped++
		return
	}

	for _, file := range dir.Files {
		if !e.gate.ShouldDelete(file) {
			report.Declined++
			continue
		}
		size := e.size(file)
		if err := e.remove(file, false); err != nil {
			e.fail(report, file, err)
			return
		}
		report.FilesRemoved++
		report.BytesReclaimed += size
	}

	empty, err := e.isEmpty(dir.Path)
	if err != nil {
		e.fail(report, dir.Path, err)
		return
	}
	if empty {
		if old, err = e.isOld(dir.Path); err != nil {
			e.fail(report, dir.Path, err)
			return
		}
	}
	if !empty || !old {
		e.emit(EventDirectoryKept{Path: dir.Path})
		report.Kept++
		return
	}

	if !e.gate.ShouldDelete(dir.Path) {
		report.Declined++
		return
	}
	if err := e.remove(dir.Path, true); err != nil {
		e.fail(report, dir.Path, err)
		return
	}
	report.DirectoriesRemoved++
}

func (e *Engine) remove(path string, directory bool) error {
	e.emit(EventDeleting{Path: path, Directory: directory})
	if err := e.deleter.Remove(path); err != nil {
		return err
	}
	e.removed[path] = struct{}{}
	e.touched[filepath.Dir(path)] = time.Now()
	return nil
}

func (e *Engine) fail(report *Report, path string, err error) {
	e.logger.Error("Failed to process path", "path", path, "error", err)
	e.emit(EventFailed{Path: path, Err: err})
	report.Failures = append(report.Failures, Failure{Path: path, Err: err})
}

func (e *Engine) isOld(path string) (bool, error) {
	if _, gone := e.removed[path]; gone {
		return false, nil
	}
	old, err := IsPathOld(e.fs, path, e.config.Cutoff)
	if err != nil || !old {
		return false, err
	}
	// Removing an entry updates the directory mtime, simulated removals included
	if at, ok := e.touched[path]; ok && at.After(e.config.Cutoff) {
		return false, nil
	}
	return true, nil
}

func (e *Engine) isEmpty(dir string) (bool, error) {
	if _, gone := e.removed[dir]; gone {
		return false, nil
	}

	entries, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	return lo.EveryBy(entries, func(entry fs.FileInfo) bool {
		_, gone := e.removed[filepath.Join(dir, entry.Name())]
		return gone
	}), nil
}

func (e *Engine) size(path string) int64 {
	if info, err := e.fs.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Size()
	}
	return 0
}

func (e *Engine) emit(event Event) {
	if e.listener != nil {
		e.listener(event)
	}
}
