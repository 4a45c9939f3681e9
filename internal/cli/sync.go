package cli

import (
	"github.com/spf13/cobra"

	"github.com/sdejongh/synctools/pkg/mirror"
	"github.com/sdejongh/synctools/pkg/models"
	"github.com/sdejongh/synctools/pkg/storage"
	"github.com/sdejongh/synctools/pkg/sync"
)

// NewToCommand creates the sync_to command. name is the command word,
// "sync_to" for the standalone binary or "to" under synctools.
func (a *App) NewToCommand(name string) *cobra.Command {
	var flags SyncFlags

	cmd := &cobra.Command{
		Use:   name + " <remote_parent_dir>",
		Short: "Push the current directory to <remote_parent_dir>/<name>",
		Long: `Synchronizes current directory TO <remote_parent_dir>/$(basename $PWD).

<remote_parent_dir> is a local path or an SSH path ([user@]host:path).
Files in the destination that do not exist locally are deleted.`,
		Example: `  cd /home/user/myproject
  ` + name + ` /backup
  # Syncs FROM current directory TO /backup/myproject

  cd /home/user/myproject
  ` + name + ` user@server:/backup
  # Syncs FROM current directory TO user@server:/backup/myproject`,
		Args: exactlyOneParent,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, models.DirectionTo, args[0], flags)
		},
	}

	addSyncFlags(cmd, &flags)
	return cmd
}

// NewFromCommand creates the sync_from command
func (a *App) NewFromCommand(name string) *cobra.Command {
	var flags SyncFlags

	cmd := &cobra.Command{
		Use:   name + " <remote_parent_dir>",
		Short: "Pull <remote_parent_dir>/<name> into the current directory",
		Long: `Synchronizes current directory FROM <remote_parent_dir>/$(basename $PWD).

<remote_parent_dir> is a local path or an SSH path ([user@]host:path).
Local files that do not exist in the source are deleted.`,
		Example: `  cd /home/user/myproject
  ` + name + ` /backup
  # Syncs FROM /backup/myproject TO current directory

  cd /home/user/myproject
  ` + name + ` user@server:/backup
  # Syncs FROM user@server:/backup/myproject TO current directory`,
		Args: exactlyOneParent,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, models.DirectionFrom, args[0], flags)
		},
	}

	addSyncFlags(cmd, &flags)
	return cmd
}

func addSyncFlags(cmd *cobra.Command, flags *SyncFlags) {
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "show what would be transferred without changing anything")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", []string{}, "glob patterns to exclude (overrides config)")
	cmd.Flags().StringVarP(&flags.Bandwidth, "bandwidth", "b", "", "bandwidth limit passed to rsync --bwlimit (e.g. \"10M\")")
}

func (a *App) runSync(cmd *cobra.Command, direction models.Direction, rawParent string, flags SyncFlags) error {
	ctx := cmd.Context()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg.Logging, cmd.Name())
	if err != nil {
		return err
	}
	defer logger.Close()

	engine := sync.NewEngine(mirror.New(a.Runner, cfg.Transfer.RsyncPath, logger), logger, a.Stdout, a.Stderr)
	if err := engine.CheckTools(ctx); err != nil {
		return err
	}

	cwd, err := a.workingDir(logger)
	if err != nil {
		return err
	}

	resolver := storage.NewResolver(a.Runner, cfg.Transfer.SSHPath, logger)
	parent, err := resolver.Parse(rawParent)
	if err != nil {
		return err
	}

	opts := mirror.Options{
		DryRun:    flags.DryRun,
		Exclude:   pickExclude(flags.Exclude, cfg.Exclude),
		Bandwidth: cfg.Transfer.Bandwidth,
		ExtraArgs: cfg.Transfer.ExtraArgs,
	}
	if flags.Bandwidth != "" {
		opts.Bandwidth = flags.Bandwidth
	}

	var plan *sync.Plan
	if direction == models.DirectionTo {
		plan, err = engine.PlanTo(ctx, cwd, parent, opts)
	} else {
		plan, err = engine.PlanFrom(ctx, cwd, parent, opts)
	}
	if err != nil {
		return err
	}

	return engine.Run(ctx, plan)
}
