package deck

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed card row")
	ErrDuplicateCode = errors.New("duplicate card code")
	ErrEmptyDeck     = errors.New("card source has no cards")
	ErrReversalRange = errors.New("invalid reversal range")
	ErrCardNotFound  = errors.New("card not found")
)

// LoadError reports a card source that could not be turned into a Deck
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("loading deck: %v", e.Err)
	}
	return fmt.Sprintf("loading deck %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadErrorf(path string, kind error, format string, args ...any) error {
	return &LoadError{Path: path, Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))}
}
