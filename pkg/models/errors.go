package models

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned when the user interrupts a transfer
var ErrInterrupted = errors.New("synchronization interrupted by user")

// ValidationError reports invalid user input: a missing or wrong endpoint
type ValidationError struct {
	// Role names the argument, e.g. "Remote parent directory"
	Role string
	// Path is the display form of the offending endpoint
	Path string
	// Reason is "does not exist", "is not a directory", ...
	Reason string
	// Hint is an optional second line shown to the user
	Hint string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Role + " " + e.Reason
	}
	return e.Role + " " + e.Reason + ": " + e.Path
}

// TransportError reports that a required external tool is unavailable
type TransportError struct {
	Tool string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Tool + " is not available on this system"
	}
	return fmt.Sprintf("%s is not available on this system: %v", e.Tool, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConstructionError reports a malformed endpoint string
type ConstructionError struct {
	Input  string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("invalid remote path %q: %s", e.Input, e.Reason)
}

// TransferError reports a non-zero exit from the mirroring tool
type TransferError struct {
	Tool     string
	ExitCode int
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
}
