// Package shell runs external programs (ssh, rsync) and reports their
// output and exit status.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/sdejongh/synctools/pkg/models"
)

// Result holds the output and exit status of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Signaled is true when the process was terminated by a signal
	Signaled bool
}

// Success reports whether the command exited with status zero
func (r *Result) Success() bool {
	return r.ExitCode == 0 && !r.Signaled
}

// Runner executes one external program per call.
//
// A non-zero exit is not an error: it is reported through Result.ExitCode.
// Run fails only when the program could not be started; a missing
// executable yields a *models.TransportError.
type Runner interface {
	Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error)
}

// Options configures command execution behavior
type Options struct {
	// RedirectToConsole streams output to the configured writers instead
	// of capturing it
	RedirectToConsole bool

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	WorkingDir string
}

// Option is a function that modifies Options
type Option func(*Options)

// WithConsoleRedirect streams stdout and stderr to the given writers
func WithConsoleRedirect(stdout, stderr io.Writer) Option {
	return func(o *Options) {
		o.RedirectToConsole = true
		o.Stdout = stdout
		o.Stderr = stderr
	}
}

// WithStdin connects the command's standard input
func WithStdin(r io.Reader) Option {
	return func(o *Options) {
		o.Stdin = r
	}
}

// WithWorkingDir sets the working directory
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// CommandRunner implements Runner with os/exec
type CommandRunner struct{}

// NewCommandRunner creates a runner backed by os/exec
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

// Run implements the Runner interface
func (r *CommandRunner) Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	if _, err := exec.LookPath(program); err != nil {
		return nil, &models.TransportError{Tool: program, Err: err}
	}

	cmd := exec.CommandContext(ctx, program, args...)
	if options.WorkingDir != "" {
		cmd.Dir = options.WorkingDir
	}
	if options.Stdin != nil {
		cmd.Stdin = options.Stdin
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if options.RedirectToConsole {
		cmd.Stdout = writerOr(options.Stdout, os.Stdout)
		cmd.Stderr = writerOr(options.Stderr, os.Stderr)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	result := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			result.Signaled = true
		}
		return result, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return nil, &models.TransportError{Tool: program, Err: err}
	}

	return nil, fmt.Errorf("failed to run %s: %w", program, err)
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
