package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

// ProgressBar shows metadata-fetch progress while a comparison runs. It
// satisfies compare.Observer.
type ProgressBar struct {
	writer io.Writer
	bar    *pb.ProgressBar
}

// NewProgressBar creates a progress bar drawing on w
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{writer: w}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Start begins a bar for total paths
func (p *ProgressBar) Start(total int) {
	p.bar = pb.New(total)
	p.bar.SetTemplate(pb.Simple)
	p.bar.SetWriter(p.writer)
	p.bar.Start()
}

// Advance records one processed path
func (p *ProgressBar) Advance(path string) {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish stops drawing the bar
func (p *ProgressBar) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
