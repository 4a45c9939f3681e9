// Package sync implements sync_to and sync_from: resolve the endpoints by
// naming convention, check them, then hand the transfer to the mirror.
package sync

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/mirror"
	"github.com/sdejongh/synctools/pkg/models"
	"github.com/sdejongh/synctools/pkg/storage"
)

// Plan is a validated sync operation ready to run
type Plan struct {
	Operation *models.SyncOperation
	Source    storage.Endpoint
	Dest      storage.Endpoint
}

// Engine orchestrates the sync operation
type Engine struct {
	mirror *mirror.Mirror
	logger logging.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewEngine creates a new sync engine. rsync output goes to stdout and
// stderr; headers and status messages go to stderr.
func NewEngine(m *mirror.Mirror, logger logging.Logger, stdout, stderr io.Writer) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		mirror: m,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
}

// CheckTools verifies the mirroring tool is installed
func (e *Engine) CheckTools(ctx context.Context) error {
	return e.mirror.Available(ctx)
}

// PlanTo prepares a push of cwd into parent/<name of cwd>
func (e *Engine) PlanTo(ctx context.Context, cwd *storage.Local, parent storage.Endpoint, opts mirror.Options) (*Plan, error) {
	if err := storage.Validate(ctx, parent, "Remote parent directory"); err != nil {
		return nil, err
	}

	dest := parent.Join(cwd.Name())
	return e.newPlan(models.DirectionTo, cwd, dest, opts)
}

// PlanFrom prepares a pull of parent/<name of cwd> into cwd. A local source
// subdirectory is checked here; a remote one is left for rsync to report.
func (e *Engine) PlanFrom(ctx context.Context, cwd *storage.Local, parent storage.Endpoint, opts mirror.Options) (*Plan, error) {
	if err := storage.Validate(ctx, parent, "Remote parent directory"); err != nil {
		return nil, err
	}

	source := parent.Join(cwd.Name())
	if local, ok := source.(*storage.Local); ok {
		if err := checkSourceSubdir(ctx, local, cwd.Name(), parent); err != nil {
			return nil, err
		}
	}

	return e.newPlan(models.DirectionFrom, source, cwd, opts)
}

func checkSourceSubdir(ctx context.Context, source *storage.Local, name string, parent storage.Endpoint) error {
	exists, err := source.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return &models.ValidationError{
			Role:   "Source subdirectory",
			Path:   source.Display(),
			Reason: "does not exist",
			Hint:   fmt.Sprintf("Expected to find a subdirectory named '%s' in %s", name, parent.Display()),
		}
	}

	isDir, err := source.IsDir(ctx)
	if err != nil {
		return err
	}
	if !isDir {
		return &models.ValidationError{
			Role:   "Source path",
			Path:   source.Display(),
			Reason: "is not a directory",
		}
	}
	return nil
}

func (e *Engine) newPlan(direction models.Direction, source, dest storage.Endpoint, opts mirror.Options) (*Plan, error) {
	op := &models.SyncOperation{
		ID:            uuid.New().String(),
		Direction:     direction,
		SourcePath:    source.TransferForm(),
		DestPath:      dest.TransferForm(),
		SourceDisplay: source.Display(),
		DestDisplay:   dest.Display(),
		DryRun:        opts.DryRun,
		Exclude:       opts.Exclude,
		Bandwidth:     opts.Bandwidth,
		ExtraArgs:     opts.ExtraArgs,
		CreatedAt:     time.Now(),
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}

	e.logger.Info(context.Background(), "planned sync", logging.Fields{
		"operation_id": op.ID,
		"direction":    string(op.Direction),
		"source":       op.SourcePath,
		"dest":         op.DestPath,
		"dry_run":      op.DryRun,
	})

	return &Plan{Operation: op, Source: source, Dest: dest}, nil
}

// Run creates the destination directory and mirrors source into it
func (e *Engine) Run(ctx context.Context, plan *Plan) error {
	op := plan.Operation
	logger := e.logger.WithFields(logging.Fields{"operation_id": op.ID})

	fmt.Fprintf(e.stderr, "Synchronizing FROM: %s\n", op.SourceDisplay)
	fmt.Fprintf(e.stderr, "              TO: %s\n", op.DestDisplay)
	fmt.Fprintln(e.stderr)

	if !op.DryRun {
		if err := plan.Dest.MkdirAll(ctx); err != nil {
			logger.Error(ctx, "failed to create destination", err, nil)
			return fmt.Errorf("failed to create destination %s: %w", op.DestDisplay, err)
		}
	}

	opts := mirror.Options{
		DryRun:    op.DryRun,
		Exclude:   op.Exclude,
		Bandwidth: op.Bandwidth,
		ExtraArgs: op.ExtraArgs,
	}
	fmt.Fprintf(e.stderr, "Executing: %s\n\n", e.mirror.CommandLine(op.SourcePath, op.DestPath, opts))

	started := time.Now()
	op.StartedAt = &started

	err := e.mirror.Transfer(ctx, op.SourcePath, op.DestPath, opts, e.stdout, e.stderr)

	completed := time.Now()
	op.CompletedAt = &completed
	if err != nil {
		logger.Error(ctx, "sync failed", err, logging.Fields{"duration_ms": completed.Sub(started).Milliseconds()})
		return err
	}

	logger.Info(ctx, "sync completed", logging.Fields{"duration_ms": completed.Sub(started).Milliseconds()})
	fmt.Fprintln(e.stderr, "\n✓ Synchronization completed successfully!")
	return nil
}
