package shell

import (
	"context"
	"strings"
	"sync"

	"github.com/sdejongh/synctools/pkg/models"
)

// Call records one invocation seen by a FakeRunner
type Call struct {
	Program string
	Args    []string
}

// Responder produces the result for one invocation of a FakeRunner
type Responder func(call Call) (*Result, error)

// FakeRunner is a scripted Runner used by tests of packages that shell out
type FakeRunner struct {
	mu      sync.Mutex
	calls   []Call
	respond Responder
	missing map[string]bool
}

// NewFakeRunner creates a fake whose results come from respond. A nil
// responder makes every command succeed with empty output.
func NewFakeRunner(respond Responder) *FakeRunner {
	return &FakeRunner{
		respond: respond,
		missing: make(map[string]bool),
	}
}

// SetMissing marks a program as not installed
func (f *FakeRunner) SetMissing(program string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[program] = true
}

// Run implements the Runner interface
func (f *FakeRunner) Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error) {
	call := Call{Program: program, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	missing := f.missing[program]
	f.mu.Unlock()

	if missing {
		return nil, &models.TransportError{Tool: program}
	}
	if f.respond == nil {
		return &Result{}, nil
	}
	return f.respond(call)
}

// Calls returns every recorded invocation
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// String renders the call as a single command line
func (c Call) String() string {
	return c.Program + " " + strings.Join(c.Args, " ")
}
