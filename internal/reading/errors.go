package reading

import (
	"errors"
	"fmt"
)

var (
	ErrNoDeck          = errors.New("no deck loaded")
	ErrUnknownSpread   = errors.New("unknown spread")
	ErrNoActiveSpread  = errors.New("no active spread")
	ErrPlacementIndex  = errors.New("no card at placement")
	ErrExportCancelled = errors.New("export cancelled")
)

// ExportError reports a reading that could not be saved. The session is
// unchanged and the export may be retried.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("export reading: %v", e.Err)
	}
	return fmt.Sprintf("export reading to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
