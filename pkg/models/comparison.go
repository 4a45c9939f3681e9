package models

// Status is the verdict for one relative path
type Status string

const (
	// StatusNewer indicates the source copy is ahead of the counterpart
	StatusNewer Status = "NEWER"
	// StatusOlder indicates the source copy is behind the counterpart
	StatusOlder Status = "OLDER"
	// StatusSame indicates matching size and modification time
	StatusSame Status = "SAME"
	// StatusLocalOnly indicates the file exists only in the source
	StatusLocalOnly Status = "LOCAL_ONLY"
	// StatusRemoteOnly indicates the file exists only in the counterpart
	StatusRemoteOnly Status = "REMOTE_ONLY"
	// StatusConflict indicates equal modification times but different sizes
	StatusConflict Status = "CONFLICT"
)

// Statuses lists every status in report order
var Statuses = []Status{
	StatusNewer,
	StatusOlder,
	StatusSame,
	StatusLocalOnly,
	StatusRemoteOnly,
	StatusConflict,
}

// Invert returns the status the same path gets when source and counterpart
// are swapped
func (s Status) Invert() Status {
	switch s {
	case StatusNewer:
		return StatusOlder
	case StatusOlder:
		return StatusNewer
	case StatusLocalOnly:
		return StatusRemoteOnly
	case StatusRemoteOnly:
		return StatusLocalOnly
	default:
		return s
	}
}

// ComparisonEntry is the classification of one relative path.
// At least one of Source and Counterpart is non-nil.
type ComparisonEntry struct {
	RelativePath string      `json:"path"`
	Status       Status      `json:"status"`
	Source       *FileRecord `json:"local,omitempty"`
	Counterpart  *FileRecord `json:"remote,omitempty"`
}
