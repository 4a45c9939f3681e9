package models

import (
	"time"
)

// Direction defines which way a sync transfers data
type Direction string

const (
	// DirectionTo pushes the working directory to <parent>/<name>
	DirectionTo Direction = "to"
	// DirectionFrom pulls <parent>/<name> into the working directory
	DirectionFrom Direction = "from"
)

// SyncOperation represents one mirroring run
type SyncOperation struct {
	ID        string
	Direction Direction

	// SourcePath and DestPath are the transfer forms handed to the mirror
	SourcePath string
	DestPath   string

	// SourceDisplay and DestDisplay are shown to the user
	SourceDisplay string
	DestDisplay   string

	DryRun    bool
	Exclude   []string
	Bandwidth string
	ExtraArgs []string

	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// Validate checks if the operation is complete enough to run
func (op *SyncOperation) Validate() error {
	if op.SourcePath == "" {
		return &ValidationError{Role: "Source", Reason: "is required"}
	}
	if op.DestPath == "" {
		return &ValidationError{Role: "Destination", Reason: "is required"}
	}
	if op.Direction != DirectionTo && op.Direction != DirectionFrom {
		return &ValidationError{Role: "Direction", Path: string(op.Direction), Reason: "is invalid"}
	}
	return nil
}
