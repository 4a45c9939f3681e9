package storage

import (
	"context"
	"fmt"

	"github.com/sdejongh/synctools/pkg/models"
)

// Validate checks that e exists and is a directory. Failures are returned
// as *models.ValidationError naming role, e.g.
// "Remote parent directory does not exist: /backup".
func Validate(ctx context.Context, e Endpoint, role string) error {
	exists, err := e.Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", e.Display(), err)
	}
	if !exists {
		return &models.ValidationError{
			Role:   role,
			Path:   e.Display(),
			Reason: "does not exist",
		}
	}

	isDir, err := e.IsDir(ctx)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", e.Display(), err)
	}
	if !isDir {
		return &models.ValidationError{
			Role:   role,
			Path:   e.Display(),
			Reason: "is not a directory",
		}
	}

	return nil
}
