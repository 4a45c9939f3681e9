package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/models"
)

// Local is a directory on the local filesystem
type Local struct {
	path   string
	logger logging.Logger
}

// NewLocal wraps path without touching the filesystem. The path may be
// relative; it is kept as given for transfers and resolved for display.
func NewLocal(path string) *Local {
	return &Local{path: path, logger: logging.NewNullLogger()}
}

// WithLogger returns a copy of l that reports skipped subdirectories to
// logger
func (l *Local) WithLogger(logger logging.Logger) *Local {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Local{path: l.path, logger: logger}
}

func (l *Local) endpoint() {}

// Path returns the path as given at construction
func (l *Local) Path() string {
	return l.path
}

// Exists checks if the path exists
func (l *Local) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(l.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// IsDir checks if the path is a directory
func (l *Local) IsDir(ctx context.Context) (bool, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return info.IsDir(), nil
}

// MkdirAll creates the directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context) error {
	if err := os.MkdirAll(l.path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Name returns the last component of the absolute path
func (l *Local) Name() string {
	abs, err := filepath.Abs(l.path)
	if err != nil {
		return filepath.Base(filepath.Clean(l.path))
	}
	return filepath.Base(abs)
}

// Join returns a new Local endpoint below this one
func (l *Local) Join(name string) Endpoint {
	return &Local{path: filepath.Join(l.path, filepath.FromSlash(name)), logger: l.logger}
}

// Parent returns the containing directory
func (l *Local) Parent() *Local {
	return &Local{path: filepath.Dir(filepath.Clean(l.path)), logger: l.logger}
}

// Display returns the absolute path with symlinks resolved
func (l *Local) Display() string {
	abs, err := filepath.Abs(l.path)
	if err != nil {
		return l.path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// TransferForm returns the unresolved path
func (l *Local) TransferForm() string {
	return filepath.Clean(l.path)
}

// String implements fmt.Stringer
func (l *Local) String() string {
	return l.TransferForm()
}

// ListFiles walks the directory and returns every regular file. Symlinks
// to regular files are included; directories, symlinks to directories and
// special files are not. The root itself may be a symlink. Unreadable
// subdirectories are skipped with a warning; an unreadable root is an error.
func (l *Local) ListFiles(ctx context.Context) ([]string, error) {
	root, err := filepath.EvalSymlinks(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root || d == nil || !d.IsDir() {
				return err
			}
			l.logger.Warn(ctx, "skipping unreadable directory", logging.Fields{
				"endpoint": l.path,
				"path":     p,
				"error":    err.Error(),
			})
			return fs.SkipDir
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}

		if !isRegularFile(p, d) {
			return nil
		}

		relPath, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(relPath))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// isRegularFile follows a symlink one level to decide whether the entry
// reaches a regular file
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Stat returns file metadata, or nil if relPath is not a regular file
func (l *Local) Stat(ctx context.Context, relPath string) (*models.FileRecord, error) {
	fullPath := filepath.Join(l.path, filepath.FromSlash(relPath))

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, nil
	}

	return models.NewFileRecord(relPath, info.Size(), info.ModTime()), nil
}
