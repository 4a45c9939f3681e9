package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/sdejongh/synctools/internal/shell"
	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/models"
)

// DefaultSSHPath is the ssh executable used when none is configured
const DefaultSSHPath = "ssh"

// Remote is a directory on a host reachable over ssh, written as
// [user@]host:path. Every query is one ssh invocation; no connection is
// kept between calls.
type Remote struct {
	raw     string
	host    string
	root    string
	runner  shell.Runner
	sshPath string
	logger  logging.Logger
}

// NewRemote parses raw as host:path, splitting at the first colon
func NewRemote(raw string, runner shell.Runner, sshPath string, logger logging.Logger) (*Remote, error) {
	host, root, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, &models.ConstructionError{Input: raw, Reason: "missing ':' between host and path"}
	}
	if host == "" {
		return nil, &models.ConstructionError{Input: raw, Reason: "missing host"}
	}
	if sshPath == "" {
		sshPath = DefaultSSHPath
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	return &Remote{
		raw:     raw,
		host:    host,
		root:    root,
		runner:  runner,
		sshPath: sshPath,
		logger:  logger,
	}, nil
}

func (r *Remote) endpoint() {}

// Host returns the [user@]host part
func (r *Remote) Host() string {
	return r.host
}

// Root returns the path on the remote host
func (r *Remote) Root() string {
	return r.root
}

// Exists runs `test -e` on the remote host
func (r *Remote) Exists(ctx context.Context) (bool, error) {
	return r.test(ctx, "-e", r.root)
}

// IsDir runs `test -d` on the remote host
func (r *Remote) IsDir(ctx context.Context) (bool, error) {
	return r.test(ctx, "-d", r.root)
}

// MkdirAll runs `mkdir -p` on the remote host
func (r *Remote) MkdirAll(ctx context.Context) error {
	result, err := r.run(ctx, "mkdir -p "+quotePath(r.root))
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("failed to create remote directory %s: %s", r.raw, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Name returns the last component of the remote path
func (r *Remote) Name() string {
	return path.Base(strings.TrimRight(r.root, "/"))
}

// Join returns a new Remote endpoint below this one
func (r *Remote) Join(name string) Endpoint {
	joined := joinRemotePath(r.root, name)
	return &Remote{
		raw:     r.host + ":" + joined,
		host:    r.host,
		root:    joined,
		runner:  r.runner,
		sshPath: r.sshPath,
		logger:  r.logger,
	}
}

// joinRemotePath appends name to root, collapsing duplicate separators
// introduced by trailing or leading slashes
func joinRemotePath(root, name string) string {
	name = collapseSlashes(strings.Trim(name, "/"))
	if name == "" {
		return root
	}
	base := strings.TrimRight(root, "/")
	if base == "" {
		if strings.HasPrefix(root, "/") {
			return "/" + name
		}
		return name
	}
	return base + "/" + name
}

// quotePath quotes p for the remote shell, leaving a leading "~" unquoted
// so it still expands to the remote home directory
func quotePath(p string) string {
	if p == "~" {
		return p
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if rest == "" {
			return "~/"
		}
		return "~/" + shellquote.Join(rest)
	}
	return shellquote.Join(p)
}

func collapseSlashes(s string) string {
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	return s
}

// Display returns host:path verbatim
func (r *Remote) Display() string {
	return r.raw
}

// TransferForm returns host:path verbatim
func (r *Remote) TransferForm() string {
	return r.raw
}

// String implements fmt.Stringer
func (r *Remote) String() string {
	return r.raw
}

// ListFiles runs `find . -type f` below the remote root and strips the
// leading "./" from each line
func (r *Remote) ListFiles(ctx context.Context) ([]string, error) {
	command := "cd " + quotePath(r.root) + " && find . -type f"
	result, err := r.run(ctx, command)
	if err != nil {
		return nil, err
	}

	files := parseFindOutput(result.Stdout)

	if !result.Success() {
		// find exits non-zero on unreadable subdirectories but still lists
		// everything it could reach
		if len(files) == 0 {
			return nil, fmt.Errorf("failed to list %s: %s", r.raw, strings.TrimSpace(result.Stderr))
		}
		r.logger.Warn(ctx, "remote listing incomplete", logging.Fields{
			"endpoint":  r.raw,
			"exit_code": result.ExitCode,
			"stderr":    strings.TrimSpace(result.Stderr),
		})
	}

	return files, nil
}

func parseFindOutput(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "./")
		if line == "" || line == "." {
			continue
		}
		files = append(files, line)
	}
	return files
}

// Stat queries size and modification time of one remote file. The GNU
// stat dialect is tried first, then BSD. A file that yields no parseable
// output under either dialect is reported as absent.
func (r *Remote) Stat(ctx context.Context, relPath string) (*models.FileRecord, error) {
	target := quotePath(joinRemotePath(r.root, relPath))

	for _, dialect := range statDialects {
		command := "test -f " + target + " && stat " + dialect.flags + " " + target + " 2>/dev/null"
		result, err := r.run(ctx, command)
		if err != nil {
			return nil, err
		}
		if !result.Success() {
			continue
		}
		size, modTime, ok := parseStatOutput(result.Stdout)
		if !ok {
			continue
		}
		r.logger.Debug(ctx, "remote stat", logging.Fields{
			"path":    relPath,
			"dialect": dialect.name,
		})
		return models.NewFileRecord(relPath, size, modTime), nil
	}

	r.logger.Debug(ctx, "remote file has no parseable stat output", logging.Fields{
		"endpoint": r.raw,
		"path":     relPath,
	})
	return nil, nil
}

// test runs `test <flag> <path>`; exit status zero means true
func (r *Remote) test(ctx context.Context, flag, target string) (bool, error) {
	result, err := r.run(ctx, "test "+flag+" "+quotePath(target))
	if err != nil {
		return false, err
	}
	return result.Success(), nil
}

// run issues one `ssh <host> <command>` invocation
func (r *Remote) run(ctx context.Context, command string) (*shell.Result, error) {
	r.logger.Debug(ctx, "remote probe", logging.Fields{
		"host":    r.host,
		"command": command,
	})

	result, err := r.runner.Run(ctx, r.sshPath, []string{r.host, command})
	if err != nil {
		return nil, fmt.Errorf("ssh to %s failed: %w", r.host, err)
	}
	return result, nil
}
