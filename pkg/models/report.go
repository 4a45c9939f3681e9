package models

import (
	"time"
)

// DiffReport holds the outcome of a directory comparison
type DiffReport struct {
	// SourcePath is the display form of the source endpoint
	SourcePath string

	// CounterpartPath is the display form of the counterpart endpoint
	CounterpartPath string

	// Entries are ordered by relative path
	Entries []ComparisonEntry

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// NewDiffReport creates a report for the given endpoints
func NewDiffReport(sourcePath, counterpartPath string, entries []ComparisonEntry) *DiffReport {
	return &DiffReport{
		SourcePath:      sourcePath,
		CounterpartPath: counterpartPath,
		Entries:         entries,
	}
}

// Counts returns the number of entries per status. Every status is present
// in the returned map, zero when unused.
func (r *DiffReport) Counts() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, e := range r.Entries {
		counts[e.Status]++
	}
	return counts
}

// InSync reports whether every entry is SAME
func (r *DiffReport) InSync() bool {
	for _, e := range r.Entries {
		if e.Status != StatusSame {
			return false
		}
	}
	return true
}
