package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gammadia/reaper/flags"
	"github.com/gammadia/reaper/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Versioning information set at build time
var version, commit = "dev", "n/a"

var reaperCmd = &cobra.Command{
	Use:   "reaper",
	Short: "Reaper cleans up files older than a number of days.",
	Long: `Reaper walks a directory tree bottom-up, removes files older than --days and
prunes the directories they leave empty. A directory holding a single recent file
is left untouched, along with all of its files.`,
	Args: cobra.NoArgs,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Init(cmd.ErrOrStderr())
	},

	RunE: runCleanup,
}

func init() {
	reaperCmd.AddCommand(versionCmd)

	lo.Must0(flags.Init(reaperCmd.Flags()))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reaperCmd.SetOut(os.Stdout)
	if err := reaperCmd.ExecuteContext(ctx); err != nil {
		lo.Must(fmt.Fprintln(os.Stderr, color.HiRedString(fmt.Sprint(err))))
		os.Exit(1)
	}
}
