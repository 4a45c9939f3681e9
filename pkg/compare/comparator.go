// Package compare classifies every file of two directory trees by
// reconciling sizes and modification times.
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/sdejongh/synctools/pkg/logging"
	"github.com/sdejongh/synctools/pkg/models"
	"github.com/sdejongh/synctools/pkg/storage"
)

// Tolerance is the window within which two modification times are treated
// as equal. The band is half-open: a difference of exactly one second is
// already ordered.
const Tolerance = time.Second

// Observer is notified while per-file metadata is fetched
type Observer interface {
	Start(total int)
	Advance(path string)
	Finish()
}

// Comparator compares a source endpoint against its counterpart
type Comparator struct {
	exclude  []string
	logger   logging.Logger
	observer Observer
}

// Option configures a Comparator
type Option func(*Comparator)

// WithExclude skips paths matching any of the glob patterns
func WithExclude(patterns []string) Option {
	return func(c *Comparator) {
		c.exclude = patterns
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Comparator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver reports metadata-fetch progress to o
func WithObserver(o Observer) Option {
	return func(c *Comparator) {
		c.observer = o
	}
}

// NewComparator creates a new comparator
func NewComparator(opts ...Option) *Comparator {
	c := &Comparator{
		logger: logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare lists both endpoints, then fetches and classifies every path of
// the union in lexicographic order. Metadata is only fetched from a side
// whose listing contains the path.
func (c *Comparator) Compare(ctx context.Context, source, counterpart storage.Endpoint) ([]models.ComparisonEntry, error) {
	sourceFiles, err := ListFiles(ctx, source, c.exclude)
	if err != nil {
		return nil, err
	}
	counterpartFiles, err := ListFiles(ctx, counterpart, c.exclude)
	if err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "listed endpoints", logging.Fields{
		"source":            source.Display(),
		"source_files":      len(sourceFiles),
		"counterpart":       counterpart.Display(),
		"counterpart_files": len(counterpartFiles),
	})

	inSource := toSet(sourceFiles)
	inCounterpart := toSet(counterpartFiles)
	universe := union(sourceFiles, counterpartFiles)

	if c.observer != nil {
		c.observer.Start(len(universe))
		defer c.observer.Finish()
	}

	entries := make([]models.ComparisonEntry, 0, len(universe))
	for _, relPath := range universe {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var sourceRecord, counterpartRecord *models.FileRecord
		if _, ok := inSource[relPath]; ok {
			if sourceRecord, err = source.Stat(ctx, relPath); err != nil {
				return nil, fmt.Errorf("failed to stat %s in %s: %w", relPath, source.Display(), err)
			}
		}
		if _, ok := inCounterpart[relPath]; ok {
			if counterpartRecord, err = counterpart.Stat(ctx, relPath); err != nil {
				return nil, fmt.Errorf("failed to stat %s in %s: %w", relPath, counterpart.Display(), err)
			}
		}

		if c.observer != nil {
			c.observer.Advance(relPath)
		}

		status, ok := Classify(sourceRecord, counterpartRecord)
		if !ok {
			// Listed but gone by the time it was stat'ed on both sides
			c.logger.Debug(ctx, "path vanished during comparison", logging.Fields{"path": relPath})
			continue
		}

		entries = append(entries, models.ComparisonEntry{
			RelativePath: relPath,
			Status:       status,
			Source:       sourceRecord,
			Counterpart:  counterpartRecord,
		})
	}

	return entries, nil
}

// Classify returns the status of a path given its record on each side.
// Existence mismatches are decided first, then the tolerance band, then
// ordering. ok is false when both records are nil.
func Classify(source, counterpart *models.FileRecord) (status models.Status, ok bool) {
	switch {
	case source == nil && counterpart == nil:
		return "", false
	case counterpart == nil:
		return models.StatusLocalOnly, true
	case source == nil:
		return models.StatusRemoteOnly, true
	}

	diff := source.ModTime.Sub(counterpart.ModTime)
	if diff < 0 {
		diff = -diff
	}

	if diff < Tolerance {
		if source.Size == counterpart.Size {
			return models.StatusSame, true
		}
		return models.StatusConflict, true
	}

	if source.ModTime.After(counterpart.ModTime) {
		return models.StatusNewer, true
	}
	return models.StatusOlder, true
}

func toSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// union merges two sorted, de-duplicated slices
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
