package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gammadia/reaper/cli/ui"
	"github.com/gammadia/reaper/flags"
	"github.com/gammadia/reaper/log"
	"github.com/gammadia/reaper/namegen"
	"github.com/gammadia/reaper/retention"
	"github.com/gammadia/reaper/schedule"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func runCleanup(cmd *cobra.Command, args []string) error {
	fsys := afero.NewOsFs()

	config, err := resolveConfig(fsys, time.Now())
	if err != nil {
		return err
	}

	log.Debug("Resolved run configuration",
		"root", config.Root,
		"cutoff", config.Cutoff,
		"force", config.Force,
		"dry-run", config.DryRun,
	)

	spec := viper.GetString(flags.Schedule)
	if spec != "" && !config.Force {
		return fmt.Errorf("--%s requires --%s", flags.Schedule, flags.Force)
	}

	if viper.GetBool(flags.Verbose) {
		cmd.Println(ui.SectionHeaderColor.Sprint("  Run configuration  "))
		if err := yaml.NewEncoder(cmd.OutOrStdout()).Encode(config); err != nil {
			return err
		}
	}

	if spec == "" {
		run := namegen.NewRunID()
		return cleanUp(cmd, fsys, config, run, log.With("run", run))
	}

	days := viper.GetInt(flags.Days)
	log.Info("Scheduling cleanup", "schedule", spec, "days", days)
	s, err := schedule.New(spec, func(ctx context.Context, run namegen.RunID, logger *slog.Logger) error {
		cutoff, err := retention.CutoffFromDays(time.Now(), days)
		if err != nil {
			return err
		}
		runConfig := config
		runConfig.Cutoff = cutoff
		return cleanUp(cmd, fsys, runConfig, run, logger)
	}, log.With())
	if err != nil {
		return err
	}
	return s.Run(cmd.Context())
}

// resolveConfig builds the run configuration from flags and REAPER_* variables.
func resolveConfig(fsys afero.Fs, now time.Time) (retention.Config, error) {
	for _, required := range []string{flags.Path, flags.Days} {
		if !viper.IsSet(required) {
			return retention.Config{}, fmt.Errorf("required flag \"%s\" not set", required)
		}
	}

	cutoff, err := retention.CutoffFromDays(now, viper.GetInt(flags.Days))
	if err != nil {
		return retention.Config{}, err
	}

	config := retention.Config{
		Root:    viper.GetString(flags.Path),
		Cutoff:  cutoff,
		Force:   viper.GetBool(flags.Force),
		DryRun:  viper.GetBool(flags.DryRun),
		Archive: viper.GetString(flags.Archive),
	}
	if err := retention.Validate(fsys, config); err != nil {
		return retention.Config{}, err
	}

	config.Root = filepath.Clean(config.Root)
	return config, nil
}

func cleanUp(cmd *cobra.Command, fsys afero.Fs, config retention.Config, run namegen.RunID, logger *slog.Logger) (err error) {
	r := &renderer{out: cmd.OutOrStdout(), dryRun: config.DryRun}
	r.banner()

	options := []retention.Option{
		retention.WithFs(fsys),
		retention.WithLogger(logger),
		retention.WithListener(r.render),
		retention.WithPrompter(retention.ConsolePrompter(cmd.InOrStdin(), cmd.OutOrStdout())),
	}

	if config.Archive != "" && !config.DryRun {
		path := config.Archive
		if viper.GetString(flags.Schedule) != "" {
			path = archivePath(path, run)
		}

		archive, openErr := retention.OpenArchive(fsys, path)
		if openErr != nil {
			return openErr
		}
		defer func() {
			err = errors.Join(err, archive.Close())
		}()
		options = append(options, retention.WithDeleter(archive.Wrap(retention.NewDeleter(fsys, false))))
	}

	engine, err := retention.New(config, options...)
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(fmt.Sprintf("Scanning %s", config.Root))
	dirs, err := engine.Scan()
	if err != nil {
		spinner.Fail()
		return fmt.Errorf("failed to scan '%s': %w", config.Root, err)
	}
	spinner.Success(fmt.Sprintf("Scanned %d directories under %s", len(dirs), config.Root))

	report := engine.Apply(dirs)
	r.summary(report)

	if report.Failed() {
		return fmt.Errorf("cleanup completed with %d failures", len(report.Failures))
	}
	return nil
}

// archivePath suffixes the archive file name with the run id, so that scheduled runs
// do not overwrite each other's archive.
func archivePath(path string, run namegen.RunID) string {
	dir, base := filepath.Split(path)
	name, ext, found := strings.Cut(base, ".")
	if !found {
		return filepath.Join(dir, fmt.Sprintf("%s-%s", base, run))
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", name, run, ext))
}
