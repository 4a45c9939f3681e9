package models

import (
	"time"
)

// FileRecord represents one regular file's metadata at one endpoint
type FileRecord struct {
	// RelativePath is the slash-separated path relative to the endpoint root
	RelativePath string `json:"path"`

	// Size in bytes
	Size int64 `json:"size"`

	// ModTime is the last modification time. Remote probes only report
	// whole seconds.
	ModTime time.Time `json:"mod_time"`

	// Present is always true for records built by NewFileRecord. A file
	// absent from an endpoint is represented by a nil *FileRecord.
	Present bool `json:"present"`
}

// NewFileRecord creates a present record
func NewFileRecord(relativePath string, size int64, modTime time.Time) *FileRecord {
	return &FileRecord{
		RelativePath: relativePath,
		Size:         size,
		ModTime:      modTime,
		Present:      true,
	}
}
