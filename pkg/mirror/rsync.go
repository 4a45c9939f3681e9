// Package mirror drives the external mirroring tool (rsync) that performs the
// actual bulk transfer for sync_to and sync_from.
package mirror

import (
	"context"
	"io"
	"strings"

	"github.com/sdejongh/synctools/internal/shell"
	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/models"
)

// DefaultProgram is the mirroring tool looked up on PATH
const DefaultProgram = "rsync"

// baseFlags: recursive archive, verbose, human-readable sizes, per-file
// progress, delete extraneous destination files, print statistics
var baseFlags = []string{"-avh", "--progress", "--delete", "--stats"}

// exitSignal is rsync's RERR_SIGNAL: it caught SIGINT, SIGTERM or SIGHUP
const exitSignal = 20

// Options tune a single transfer
type Options struct {
	DryRun    bool
	Exclude   []string
	Bandwidth string
	ExtraArgs []string
}

// Mirror runs rsync through a shell.Runner
type Mirror struct {
	runner  shell.Runner
	program string
	logger  logging.Logger
}

// New creates a mirror. An empty program means DefaultProgram.
func New(runner shell.Runner, program string, logger logging.Logger) *Mirror {
	if program == "" {
		program = DefaultProgram
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Mirror{runner: runner, program: program, logger: logger}
}

// Program returns the tool name or path
func (m *Mirror) Program() string {
	return m.program
}

// Available checks that the tool can be executed by running `--version`
func (m *Mirror) Available(ctx context.Context) error {
	result, err := m.runner.Run(ctx, m.program, []string{"--version"})
	if err != nil {
		return err
	}
	if !result.Success() {
		return &models.TransportError{Tool: m.program}
	}
	return nil
}

// BuildArgs returns the rsync arguments mirroring source into dest. Both
// paths get a trailing slash so the contents of source land in dest rather
// than a nested copy of the directory.
func BuildArgs(source, dest string, opts Options) []string {
	args := append([]string(nil), baseFlags...)
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	for _, pattern := range opts.Exclude {
		args = append(args, "--exclude="+pattern)
	}
	if opts.Bandwidth != "" {
		args = append(args, "--bwlimit="+opts.Bandwidth)
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, withTrailingSlash(source), withTrailingSlash(dest))
}

func withTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// CommandLine renders the invocation for display
func (m *Mirror) CommandLine(source, dest string, opts Options) string {
	return m.program + " " + strings.Join(BuildArgs(source, dest, opts), " ")
}

// Transfer runs rsync with its output streamed to stdout and stderr. It
// returns nil on success, *models.TransferError on a non-zero exit and
// models.ErrInterrupted when ctx is cancelled, rsync dies from a signal or
// rsync exits after catching one.
func (m *Mirror) Transfer(ctx context.Context, source, dest string, opts Options, stdout, stderr io.Writer) error {
	args := BuildArgs(source, dest, opts)
	m.logger.Info(ctx, "starting transfer", logging.Fields{
		"program": m.program,
		"args":    strings.Join(args, " "),
	})

	result, err := m.runner.Run(ctx, m.program, args, shell.WithConsoleRedirect(stdout, stderr))
	if ctx.Err() != nil {
		m.logger.Warn(ctx, "transfer interrupted", nil)
		return models.ErrInterrupted
	}
	if err != nil {
		return err
	}
	if result.Signaled || result.ExitCode == exitSignal {
		m.logger.Warn(ctx, "transfer interrupted", logging.Fields{"exit_code": result.ExitCode})
		return models.ErrInterrupted
	}

	m.logger.Info(ctx, "transfer finished", logging.Fields{"exit_code": result.ExitCode})
	if result.ExitCode != 0 {
		return &models.TransferError{Tool: m.program, ExitCode: result.ExitCode}
	}
	return nil
}
