package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// VersionString is the one-line form used by --version
func VersionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewVersionCommand creates the version command
func (a *App) NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(a.Stdout, Version)
				return
			}

			fmt.Fprintf(a.Stdout, "synctools %s\n", Version)
			fmt.Fprintf(a.Stdout, "  Commit:     %s\n", Commit)
			fmt.Fprintf(a.Stdout, "  Built:      %s\n", BuildDate)
			fmt.Fprintf(a.Stdout, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(a.Stdout, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	return cmd
}
