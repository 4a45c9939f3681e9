package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sdejongh/synctools/pkg/models"
)

const reportWidth = 80

// summaryLabels describe each status in the summary block
var summaryLabels = map[models.Status]string{
	models.StatusNewer:      "files are NEWER locally (consider sync_to)",
	models.StatusOlder:      "files are OLDER locally (consider sync_from)",
	models.StatusSame:       "files are the SAME",
	models.StatusLocalOnly:  "files exist only LOCALLY",
	models.StatusRemoteOnly: "files exist only REMOTELY",
	models.StatusConflict:   "files have CONFLICTS (same mtime, different size)",
}

// HumanFormatter renders the text report
type HumanFormatter struct {
	verbose bool
}

// NewHumanFormatter creates a text formatter. In verbose mode every entry is
// listed with its size and timestamp on both sides; otherwise only entries
// that are not SAME are listed.
func NewHumanFormatter(verbose bool) *HumanFormatter {
	return &HumanFormatter{verbose: verbose}
}

// Render writes the report to w
func (f *HumanFormatter) Render(w io.Writer, report *models.DiffReport) error {
	rule := strings.Repeat("=", reportWidth)
	thin := strings.Repeat("-", reportWidth)
	counts := report.Counts()

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Directory Comparison Results")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Summary:")
	for _, status := range models.Statuses {
		if status == models.StatusConflict && counts[status] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %4d %s\n", counts[status], summaryLabels[status])
	}
	fmt.Fprintln(w)

	if f.verbose {
		fmt.Fprintln(w, "Detailed Comparison:")
		fmt.Fprintln(w, thin)
		for _, entry := range report.Entries {
			fmt.Fprintf(w, "\n%-12s %s\n", entry.Status, entry.RelativePath)
			fmt.Fprintf(w, "  Local:  %s\n", describeRecord(entry.Source))
			fmt.Fprintf(w, "  Remote: %s\n", describeRecord(entry.Counterpart))
		}
	} else {
		fmt.Fprintln(w, "Files requiring attention:")
		fmt.Fprintln(w, thin)
		for _, entry := range report.Entries {
			if entry.Status != models.StatusSame {
				fmt.Fprintf(w, "%-12s %s\n", entry.Status, entry.RelativePath)
			}
		}
	}

	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, rule)
	return err
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func describeRecord(r *models.FileRecord) string {
	if r == nil {
		return "(not present)"
	}
	return fmt.Sprintf("%10s  %s", FormatSize(r.Size), FormatTimestamp(r.ModTime))
}

// FormatSize scales size by 1024 into B, KB, MB, GB or TB with one decimal
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%6.1f%s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%6.1fTB", value)
}

// FormatTimestamp renders t in local time as "2006-01-02 15:04:05"
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
