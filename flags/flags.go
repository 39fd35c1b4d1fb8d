package flags

import (
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	Archive   = "archive"
	Days      = "days"
	DryRun    = "dry-run"
	Force     = "force"
	LogFormat = "log-format"
	LogLevel  = "log-level"
	LogSource = "log-source"
	Path      = "path"
	Schedule  = "schedule"
	Verbose   = "verbose"
)

// Init registers the reaper flags on flags and binds them to viper, so that every
// flag can also be set through a REAPER_* environment variable.
func Init(flags *flag.FlagSet) error {
	// Run
	flags.StringP(Path, "p", "", "the absolute path to be cleaned up")
	flags.IntP(Days, "d", -1, "the age of the files in days")
	flags.BoolP(Force, "f", false, "delete without asking for confirmation")
	flags.BoolP(DryRun, "n", false, "report what would be deleted without deleting anything")
	flags.String(Archive, "", "save removed files into this .tar.zst archive first")
	flags.String(Schedule, "", "repeat the cleanup on this cron schedule (requires --force)")

	// Output
	flags.BoolP(Verbose, "v", false, "print the resolved run configuration")
	flags.String(LogFormat, "text", "log format (json, text)")
	flags.String(LogLevel, "WARN", "minimum log level")
	flags.Bool(LogSource, false, "add source code location to logs")

	viper.SetEnvPrefix("reaper")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return viper.BindPFlags(flags)
}
