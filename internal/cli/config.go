package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/synctools/pkg/config"
)

// NewConfigCommand creates the config command
func (a *App) NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the synctools configuration file.`,
	}

	cmd.AddCommand(a.newConfigShowCommand())
	cmd.AddCommand(a.newConfigInitCommand())

	return cmd
}

func (a *App) newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			bandwidth := cfg.Transfer.Bandwidth
			if bandwidth == "" {
				bandwidth = "unlimited"
			}

			fmt.Fprintf(a.Stdout, "rsync:          %s\n", cfg.Transfer.RsyncPath)
			fmt.Fprintf(a.Stdout, "ssh:            %s\n", cfg.Transfer.SSHPath)
			fmt.Fprintf(a.Stdout, "Extra args:     %s\n", strings.Join(cfg.Transfer.ExtraArgs, " "))
			fmt.Fprintf(a.Stdout, "Bandwidth:      %s\n", bandwidth)
			fmt.Fprintf(a.Stdout, "Exclude:        %s\n", strings.Join(cfg.Exclude, ", "))
			fmt.Fprintf(a.Stdout, "Output Format:  %s\n", cfg.Output.Format)
			fmt.Fprintf(a.Stdout, "Progress:       %t\n", cfg.Output.Progress)
			fmt.Fprintf(a.Stdout, "Log Format:     %s\n", cfg.Logging.Format)
			fmt.Fprintf(a.Stdout, "Log Level:      %s\n", cfg.Logging.Level)
			fmt.Fprintf(a.Stdout, "Log File:       %s\n", cfg.Logging.File)

			return nil
		},
	}
}

func (a *App) newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.global.ConfigFile
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
			}

			if err := config.SaveToFile(config.Default(), path); err != nil {
				return err
			}

			fmt.Fprintf(a.Stdout, "Configuration file created at: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
