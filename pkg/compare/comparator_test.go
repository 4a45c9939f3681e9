package compare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/synctools/internal/shell"
	"github.com/sdejongh/synctools/pkg/models"
	"github.com/sdejongh/synctools/pkg/storage"
)

// TestHelper provides utilities for comparator tests
type TestHelper struct {
	t         *testing.T
	sourceDir string
	destDir   string
	source    *storage.Local
	dest      *storage.Local
}

// NewTestHelper creates a new test helper with temporary directories
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "source")
	destDir := filepath.Join(tempDir, "dest")

	if err := os.MkdirAll(sourceDir, 0755); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		t.Fatalf("failed to create dest dir: %v", err)
	}

	return &TestHelper{
		t:         t,
		sourceDir: sourceDir,
		destDir:   destDir,
		source:    storage.NewLocal(sourceDir),
		dest:      storage.NewLocal(destDir),
	}
}

// CreateSourceFile creates a file in the source directory
func (h *TestHelper) CreateSourceFile(name, content string, modTime time.Time) {
	h.t.Helper()
	h.createFile(h.sourceDir, name, content, modTime)
}

// CreateDestFile creates a file in the destination directory
func (h *TestHelper) CreateDestFile(name, content string, modTime time.Time) {
	h.t.Helper()
	h.createFile(h.destDir, name, content, modTime)
}

func (h *TestHelper) createFile(root, name, content string, modTime time.Time) {
	h.t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		h.t.Fatalf("failed to set mod time: %v", err)
	}
}

// Compare runs the comparator source -> dest
func (h *TestHelper) Compare(opts ...Option) []models.ComparisonEntry {
	h.t.Helper()
	entries, err := NewComparator(opts...).Compare(context.Background(), h.source, h.dest)
	if err != nil {
		h.t.Fatalf("Compare() error = %v", err)
	}
	return entries
}

func statuses(entries []models.ComparisonEntry) map[string]models.Status {
	out := make(map[string]models.Status, len(entries))
	for _, e := range entries {
		out[e.RelativePath] = e.Status
	}
	return out
}

var baseTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// TestClassify tests the classification rules and their precedence
func TestClassify(t *testing.T) {
	rec := func(size int64, offset time.Duration) *models.FileRecord {
		return models.NewFileRecord("f", size, baseTime.Add(offset))
	}

	tests := []struct {
		name        string
		source      *models.FileRecord
		counterpart *models.FileRecord
		want        models.Status
	}{
		{"SourceOnly", rec(1, 0), nil, models.StatusLocalOnly},
		{"CounterpartOnly", nil, rec(1, 0), models.StatusRemoteOnly},
		{"Identical", rec(10, 0), rec(10, 0), models.StatusSame},
		{"WithinToleranceAhead", rec(10, 999*time.Millisecond), rec(10, 0), models.StatusSame},
		{"WithinToleranceBehind", rec(10, 0), rec(10, 999*time.Millisecond), models.StatusSame},
		{"ExactlyOneSecondAhead", rec(10, time.Second), rec(10, 0), models.StatusNewer},
		{"ExactlyOneSecondBehind", rec(10, 0), rec(10, time.Second), models.StatusOlder},
		{"SameTimeDifferentSize", rec(1, 0), rec(2, 0), models.StatusConflict},
		{"WithinToleranceDifferentSize", rec(1, 500*time.Millisecond), rec(2, 0), models.StatusConflict},
		{"NewerDifferentSize", rec(1, time.Hour), rec(2, 0), models.StatusNewer},
		{"OlderDifferentSize", rec(1, -time.Hour), rec(2, 0), models.StatusOlder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.source, tt.counterpart)
			if !ok {
				t.Fatal("Classify() ok = false")
			}
			if got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}

			// Swapping direction inverts the verdict
			swapped, _ := Classify(tt.counterpart, tt.source)
			if swapped != tt.want.Invert() {
				t.Errorf("swapped Classify() = %s, want %s", swapped, tt.want.Invert())
			}
		})
	}

	t.Run("NeitherSide", func(t *testing.T) {
		if _, ok := Classify(nil, nil); ok {
			t.Error("Classify(nil, nil) should report ok = false")
		}
	})
}

// TestCompareLocal tests end-to-end comparisons between local directories
func TestCompareLocal(t *testing.T) {
	t.Run("Conflict", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateSourceFile("x.txt", "A", baseTime)
		h.CreateDestFile("x.txt", "AB", baseTime)

		entries := h.Compare()
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].RelativePath != "x.txt" || entries[0].Status != models.StatusConflict {
			t.Errorf("entry = %+v", entries[0])
		}
	})

	t.Run("LocalOnly", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateSourceFile("a.txt", "content", baseTime)

		entries := h.Compare()
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		e := entries[0]
		if e.RelativePath != "a.txt" || e.Status != models.StatusLocalOnly {
			t.Errorf("entry = %+v", e)
		}
		if e.Source == nil || e.Counterpart != nil {
			t.Errorf("records = %v / %v", e.Source, e.Counterpart)
		}
	})

	t.Run("EmptyDirectories", func(t *testing.T) {
		h := NewTestHelper(t)
		if entries := h.Compare(); len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})

	t.Run("MixedAndOrdered", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateSourceFile("same.txt", "content", baseTime)
		h.CreateDestFile("same.txt", "content", baseTime)
		h.CreateSourceFile("newer.txt", "v2", baseTime.Add(time.Hour))
		h.CreateDestFile("newer.txt", "v1", baseTime)
		h.CreateSourceFile("older.txt", "v1", baseTime)
		h.CreateDestFile("older.txt", "v2", baseTime.Add(time.Hour))
		h.CreateSourceFile("dir/local.txt", "x", baseTime)
		h.CreateDestFile("remote.txt", "x", baseTime)

		entries := h.Compare()

		var paths []string
		for _, e := range entries {
			paths = append(paths, e.RelativePath)
		}
		if !sort.StringsAreSorted(paths) {
			t.Errorf("entries not sorted: %v", paths)
		}

		want := map[string]models.Status{
			"same.txt":      models.StatusSame,
			"newer.txt":     models.StatusNewer,
			"older.txt":     models.StatusOlder,
			"dir/local.txt": models.StatusLocalOnly,
			"remote.txt":    models.StatusRemoteOnly,
		}
		got := statuses(entries)
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for path, status := range want {
			if got[path] != status {
				t.Errorf("%s = %s, want %s", path, got[path], status)
			}
		}
	})

	t.Run("SwapInvertsStatuses", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateSourceFile("a.txt", "x", baseTime.Add(10*time.Second))
		h.CreateDestFile("a.txt", "x", baseTime)
		h.CreateSourceFile("only.txt", "x", baseTime)
		h.CreateSourceFile("c.txt", "1", baseTime)
		h.CreateDestFile("c.txt", "22", baseTime)

		forward := statuses(h.Compare())
		backward, err := NewComparator().Compare(context.Background(), h.dest, h.source)
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		for path, status := range statuses(backward) {
			if forward[path].Invert() != status {
				t.Errorf("%s: forward %s, backward %s", path, forward[path], status)
			}
		}
	})

	t.Run("Exclude", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateSourceFile("keep.txt", "x", baseTime)
		h.CreateSourceFile("skip.tmp", "x", baseTime)
		h.CreateDestFile(".git/HEAD", "ref", baseTime)

		entries := h.Compare(WithExclude([]string{"*.tmp", ".git/"}))
		if len(entries) != 1 || entries[0].RelativePath != "keep.txt" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("Observer", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateSourceFile("a", "x", baseTime)
		h.CreateDestFile("b", "x", baseTime)

		obs := &recordingObserver{}
		h.Compare(WithObserver(obs))
		if obs.total != 2 || len(obs.advanced) != 2 || !obs.finished {
			t.Errorf("observer = %+v", obs)
		}
	})

	t.Run("SymlinkedSourceRoot", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateSourceFile("a.txt", "same", baseTime)
		h.CreateDestFile("a.txt", "same", baseTime)

		link := filepath.Join(filepath.Dir(h.sourceDir), "project")
		if err := os.Symlink(h.sourceDir, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		entries, err := NewComparator().Compare(context.Background(), storage.NewLocal(link), h.dest)
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if len(entries) != 1 || entries[0].Status != models.StatusSame {
			t.Errorf("entries = %+v, want a.txt SAME", entries)
		}
	})
}

type recordingObserver struct {
	total    int
	advanced []string
	finished bool
}

func (o *recordingObserver) Start(total int)     { o.total = total }
func (o *recordingObserver) Advance(path string) { o.advanced = append(o.advanced, path) }
func (o *recordingObserver) Finish()             { o.finished = true }

// remoteFS answers the ssh probes issued by storage.Remote from an
// in-memory file table
type remoteFS struct {
	root  string
	files map[string]struct {
		size  int64
		mtime int64
	}
}

func (fs *remoteFS) respond(call shell.Call) (*shell.Result, error) {
	command := call.Args[1]
	switch {
	case strings.HasPrefix(command, "cd "):
		var out strings.Builder
		for p := range fs.files {
			fmt.Fprintf(&out, "./%s\n", p)
		}
		return &shell.Result{Stdout: out.String()}, nil
	case strings.Contains(command, "stat -c"):
		target := strings.Fields(command)[2]
		rel := strings.TrimPrefix(target, fs.root+"/")
		f, ok := fs.files[rel]
		if !ok {
			return &shell.Result{ExitCode: 1}, nil
		}
		return &shell.Result{Stdout: fmt.Sprintf("%d %d\n", f.size, f.mtime)}, nil
	default:
		return &shell.Result{ExitCode: 1}, nil
	}
}

// TestCompareRemote tests comparing a local directory against a remote one
func TestCompareRemote(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateSourceFile("a/b.txt", "hello", baseTime)
	h.CreateSourceFile("local.txt", "x", baseTime)

	fs := &remoteFS{root: "/srv/project", files: map[string]struct {
		size  int64
		mtime int64
	}{
		"a/b.txt":    {size: 5, mtime: baseTime.Unix()},
		"remote.txt": {size: 1, mtime: baseTime.Unix()},
	}}
	runner := shell.NewFakeRunner(fs.respond)
	remote, err := storage.NewRemote("user@host:/srv/project", runner, "ssh", nil)
	if err != nil {
		t.Fatalf("NewRemote() error = %v", err)
	}

	entries, err := NewComparator().Compare(context.Background(), h.source, remote)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	got := statuses(entries)
	want := map[string]models.Status{
		"a/b.txt":    models.StatusSame,
		"local.txt":  models.StatusLocalOnly,
		"remote.txt": models.StatusRemoteOnly,
	}
	for path, status := range want {
		if got[path] != status {
			t.Errorf("%s = %s, want %s", path, got[path], status)
		}
	}

	// one listing plus one stat per remote-listed path
	if n := len(runner.Calls()); n != 3 {
		t.Errorf("issued %d ssh calls, want 3", n)
	}
}

// TestListFiles tests sorting and filtering on top of the endpoint listing
func TestListFiles(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateSourceFile("b.txt", "x", baseTime)
	h.CreateSourceFile("a/b.txt", "x", baseTime)
	h.CreateSourceFile("a.txt", "x", baseTime)

	files, err := ListFiles(context.Background(), h.source, nil)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	want := []string{"a.txt", "a/b.txt", "b.txt"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("ListFiles() = %v, want %v", files, want)
	}
}
