package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds flags shared by every command. Empty values leave the
// configuration file setting in place.
type GlobalFlags struct {
	ConfigFile string
	LogFile    string
	LogFormat  string
	LogLevel   string
}

// SyncFlags holds sync_to / sync_from flags
type SyncFlags struct {
	DryRun    bool
	Exclude   []string
	Bandwidth string
}

// DiffFlags holds sync_diff flags
type DiffFlags struct {
	Verbose bool
	Format  string
	Exclude []string
}

// AddGlobalFlags adds global flags to the root command
func (a *App) AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&a.global.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/synctools/config.yaml)",
	)
	cmd.PersistentFlags().StringVar(&a.global.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.PersistentFlags().StringVar(&a.global.LogFormat, "log-format", "", "log format: text, json")
	cmd.PersistentFlags().StringVar(&a.global.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
