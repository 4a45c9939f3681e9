package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdejongh/synctools/pkg/compare"
	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/models"
	"github.com/sdejongh/synctools/pkg/output"
	"github.com/sdejongh/synctools/pkg/storage"
)

// NewDiffCommand creates the sync_diff command
func (a *App) NewDiffCommand(name string) *cobra.Command {
	var flags DiffFlags

	cmd := &cobra.Command{
		Use:   name + " [--verbose] <remote_parent_dir>",
		Short: "Compare the current directory with <remote_parent_dir>/<name>",
		Long: `Compares current directory with <remote_parent_dir>/$(basename $PWD).

Files are classified by size and modification time; nothing is modified on
either side. The report is written to stderr, or to stdout with --format json.`,
		Example: `  cd /home/user/myproject
  ` + name + ` /backup
  # Compares current directory with /backup/myproject

  ` + name + ` user@server:/backup
  # Compares current directory with user@server:/backup/myproject`,
		Args: exactlyOneParent,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDiff(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "show detailed file information")
	cmd.Flags().StringVarP(&flags.Format, "format", "o", "", "report format: human, json (default from config)")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", []string{}, "glob patterns to exclude (overrides config)")

	return cmd
}

func (a *App) runDiff(cmd *cobra.Command, rawParent string, flags DiffFlags) error {
	ctx := cmd.Context()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if flags.Format != "" {
		format = flags.Format
	}
	formatter, err := output.NewFormatter(format, flags.Verbose)
	if err != nil {
		return &usageError{cmd: cmd, msg: err.Error()}
	}

	logger, err := createLogger(cfg.Logging, cmd.Name())
	if err != nil {
		return err
	}
	defer logger.Close()

	cwd, err := a.workingDir(logger)
	if err != nil {
		return err
	}

	resolver := storage.NewResolver(a.Runner, cfg.Transfer.SSHPath, logger)
	parent, err := resolver.Parse(rawParent)
	if err != nil {
		return err
	}
	if err := storage.Validate(ctx, parent, "Remote parent directory"); err != nil {
		return err
	}

	counterpart := parent.Join(cwd.Name())
	exists, err := counterpart.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return &models.ValidationError{
			Role:   "Remote directory",
			Path:   counterpart.Display(),
			Reason: "does not exist",
			Hint:   fmt.Sprintf("Expected to find a directory named '%s' in %s", cwd.Name(), parent.Display()),
		}
	}

	fmt.Fprintf(a.Stderr, "Comparing LOCAL: %s\n", cwd.Display())
	fmt.Fprintf(a.Stderr, "     with REMOTE: %s\n", counterpart.Display())
	fmt.Fprintln(a.Stderr)

	opts := []compare.Option{
		compare.WithExclude(pickExclude(flags.Exclude, cfg.Exclude)),
		compare.WithLogger(logger),
	}
	if cfg.Output.Progress && formatter.Name() == "human" && output.IsTerminal(a.Stderr) {
		opts = append(opts, compare.WithObserver(output.NewProgressBar(a.Stderr)))
	}

	start := time.Now()
	entries, err := compare.NewComparator(opts...).Compare(ctx, cwd, counterpart)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	report := models.NewDiffReport(cwd.Display(), counterpart.Display(), entries)
	report.StartTime = start
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(start)

	counts := report.Counts()
	fields := logging.Fields{"duration_ms": report.Duration.Milliseconds(), "in_sync": report.InSync()}
	for status, n := range counts {
		fields[string(status)] = n
	}
	logger.Info(ctx, "comparison finished", fields)

	w := a.Stderr
	if formatter.Name() == "json" {
		w = a.Stdout
	}
	return formatter.Render(w, report)
}
