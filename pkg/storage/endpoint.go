package storage

import (
	"context"
	"regexp"

	"github.com/sdejongh/synctools/internal/shell"
	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/models"
)

// Endpoint is a directory location, either on the local filesystem or on a
// host reachable over ssh. The variant is fixed at construction; Join
// always returns a new Endpoint of the same variant.
type Endpoint interface {
	// Exists reports whether the path exists. A missing path is (false, nil);
	// an error means the probe itself could not run.
	Exists(ctx context.Context) (bool, error)

	// IsDir reports whether the path is a directory
	IsDir(ctx context.Context) (bool, error)

	// MkdirAll creates the directory and any missing parents. It succeeds if
	// the directory already exists.
	MkdirAll(ctx context.Context) error

	// Name returns the last path component
	Name() string

	// Join returns a new Endpoint extended by one or more slash-separated
	// components
	Join(name string) Endpoint

	// Display returns the form shown to users
	Display() string

	// TransferForm returns the form handed to the mirroring tool
	TransferForm() string

	// ListFiles returns the slash-separated relative paths of every regular
	// file below the endpoint, in no particular order
	ListFiles(ctx context.Context) ([]string, error)

	// Stat returns metadata for the regular file at relPath. It returns
	// (nil, nil) when the file is absent or is not a regular file.
	Stat(ctx context.Context, relPath string) (*models.FileRecord, error)

	endpoint()
}

// remotePattern matches [user@]host:path
var remotePattern = regexp.MustCompile(`^([a-zA-Z0-9_-]+@)?[a-zA-Z0-9._-]+:.+`)

// IsRemoteSpec reports whether raw uses the [user@]host:path syntax
func IsRemoteSpec(raw string) bool {
	return remotePattern.MatchString(raw)
}

// Resolver turns user-supplied strings into Endpoints
type Resolver struct {
	runner  shell.Runner
	sshPath string
	logger  logging.Logger
}

// NewResolver creates a resolver whose remote endpoints run sshPath through
// runner
func NewResolver(runner shell.Runner, sshPath string, logger logging.Logger) *Resolver {
	if sshPath == "" {
		sshPath = DefaultSSHPath
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Resolver{
		runner:  runner,
		sshPath: sshPath,
		logger:  logger,
	}
}

// Parse returns a Remote endpoint for [user@]host:path strings and a Local
// endpoint for anything else
func (r *Resolver) Parse(raw string) (Endpoint, error) {
	if IsRemoteSpec(raw) {
		remote, err := NewRemote(raw, r.runner, r.sshPath, r.logger)
		if err != nil {
			return nil, err
		}
		r.logger.Debug(context.Background(), "resolved remote endpoint", logging.Fields{
			"host": remote.Host(),
			"path": remote.Root(),
		})
		return remote, nil
	}

	local := NewLocal(raw).WithLogger(r.logger)
	r.logger.Debug(context.Background(), "resolved local endpoint", logging.Fields{
		"path": local.Display(),
	})
	return local, nil
}
