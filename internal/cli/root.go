package cli

import (
	"github.com/spf13/cobra"
)

// NewStandaloneCommand turns a single command into the root of its own
// binary (sync_to, sync_from, sync_diff)
func (a *App) NewStandaloneCommand(cmd *cobra.Command) *cobra.Command {
	cmd.Version = VersionString()
	a.AddGlobalFlags(cmd)
	return cmd
}

// NewRootCommand creates the synctools umbrella command
func (a *App) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "synctools",
		Short: "Mirror and compare a project directory with a local or SSH backup",
		Long: `synctools wraps rsync to keep the current directory in step with a
directory of the same name under a parent that is local or reachable over
SSH, and compares both sides by size and modification time.`,
		Version: VersionString(),
	}

	a.AddGlobalFlags(root)

	root.AddCommand(a.NewToCommand("to"))
	root.AddCommand(a.NewFromCommand("from"))
	root.AddCommand(a.NewDiffCommand("diff"))
	root.AddCommand(a.NewConfigCommand())
	root.AddCommand(a.NewVersionCommand())

	return root
}
