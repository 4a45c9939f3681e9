// Package cli implements the sync_to, sync_from and sync_diff commands and
// maps their outcome to a process exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sdejongh/synctools/internal/shell"
	"github.com/sdejongh/synctools/pkg/models"
)

// ExitInterrupted is the conventional exit code for termination by SIGINT
const ExitInterrupted = 130

// App is the environment the commands run in. Tests replace the writers,
// the working directory and the runner.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Getwd  func() (string, error)
	Runner shell.Runner

	global GlobalFlags
}

// NewApp returns an App wired to the real process environment
func NewApp() *App {
	return &App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getwd:  os.Getwd,
		Runner: shell.NewCommandRunner(),
	}
}

// usageError is a malformed command line
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// exactlyOneParent is the positional argument check shared by all commands
func exactlyOneParent(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &usageError{cmd: cmd, msg: fmt.Sprintf("expected exactly one <remote_parent_dir> argument, got %d", len(args))}
	}
	return nil
}

func flagUsageError(cmd *cobra.Command, err error) error {
	return &usageError{cmd: cmd, msg: err.Error()}
}

// Execute runs cmd with args, prints any failure to Stderr and returns the
// process exit code. SIGINT and SIGTERM cancel the command context.
func (a *App) Execute(cmd *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SetArgs(args)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(flagUsageError)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		a.printError(err)
	}
	return ExitCode(err)
}

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var transferErr *models.TransferError
	switch {
	case errors.As(err, &transferErr):
		return transferErr.ExitCode
	case errors.Is(err, models.ErrInterrupted), errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return 1
	}
}

func (a *App) printError(err error) {
	var (
		usageErr     *usageError
		validation   *models.ValidationError
		transport    *models.TransportError
		transferErr  *models.TransferError
		construction *models.ConstructionError
	)

	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(a.Stderr, "Error: %s\n\n", usageErr.msg)
		fmt.Fprint(a.Stderr, usageErr.cmd.UsageString())
	case errors.As(err, &validation):
		fmt.Fprintf(a.Stderr, "Error: %s\n", validation.Error())
		if validation.Hint != "" {
			fmt.Fprintln(a.Stderr, validation.Hint)
		}
	case errors.As(err, &transport):
		fmt.Fprintf(a.Stderr, "Error: %s is not available on this system.\n", transport.Tool)
		printInstallGuidance(a.Stderr, transport.Tool)
	case errors.As(err, &transferErr):
		fmt.Fprintf(a.Stderr, "\n✗ %s\n", transferErr.Error())
	case errors.Is(err, models.ErrInterrupted), errors.Is(err, context.Canceled):
		fmt.Fprintln(a.Stderr, "\n\nSynchronization interrupted by user.")
	case errors.As(err, &construction):
		fmt.Fprintf(a.Stderr, "Error: %s\n", construction.Error())
	default:
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
	}
}

func printInstallGuidance(w io.Writer, tool string) {
	switch filepath.Base(tool) {
	case "rsync":
		fmt.Fprintln(w, "Please install rsync:")
		fmt.Fprintln(w, "  Ubuntu/Debian: sudo apt-get install rsync")
		fmt.Fprintln(w, "  macOS: brew install rsync (or use built-in version)")
		fmt.Fprintln(w, "  Windows: Install via WSL, Cygwin, or msys2")
	case "ssh":
		fmt.Fprintln(w, "Please install an OpenSSH client:")
		fmt.Fprintln(w, "  Ubuntu/Debian: sudo apt-get install openssh-client")
		fmt.Fprintln(w, "  macOS: included with the system")
	}
}
