package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
}

// RunFlags holds the relocation flags of the root command
type RunFlags struct {
	Preview   bool
	Debug     bool
	Output    string
	Progress  bool
	Timezone  string
	Exclude   []string
	Hash      string
	Bandwidth string

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var (
	globalFlags GlobalFlags
	runFlags    RunFlags
)

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file, YAML or TOML (default is $HOME/.config/sortnorris/config.yaml)",
	)
}

// addRunFlags adds the relocation flags to the root command
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runFlags.Preview, "preview", false, "report every decision without moving, deleting or logging anything")
	cmd.Flags().BoolVar(&runFlags.Debug, "debug", false, "show skipped files and scanned directories")
	cmd.Flags().StringVarP(&runFlags.Output, "output", "o", "", "summary format: human, json")
	cmd.Flags().BoolVar(&runFlags.Progress, "progress", false, "show a progress bar (terminals only)")
	cmd.Flags().StringVar(&runFlags.Timezone, "timezone", "", "time zone for date directories, e.g. UTC or Europe/Brussels (default: local)")
	cmd.Flags().StringSliceVar(&runFlags.Exclude, "exclude", nil, "glob patterns to exclude (directories end with /)")
	cmd.Flags().StringVar(&runFlags.Hash, "hash", "", "duplicate detection hash: sha256, md5")
	cmd.Flags().StringVarP(&runFlags.Bandwidth, "bandwidth", "b", "", "hashing read limit (e.g. \"50M\", \"1G\")")

	cmd.Flags().StringVar(&runFlags.LogFile, "log-file", "", "also write logs to this file")
	cmd.Flags().StringVar(&runFlags.LogFormat, "log-format", "", "log file format: text, json")
	cmd.Flags().StringVar(&runFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}
