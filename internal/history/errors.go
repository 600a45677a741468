package history

import (
	"errors"
	"fmt"
)

// ErrNoHistory is returned by Load when the directory is missing or no files match
// the pattern. Callers should treat it as an empty history rather than a failure.
var ErrNoHistory = errors.New("no streaming history files found")

// IOError reports a history file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FormatError reports malformed history content: invalid JSON, a document that is not
// an array of objects, or an unparseable timestamp.
type FormatError struct {
	Path string
	// Index of the offending record, or -1 when the whole document is bad.
	Index int
	Err   error
}

func (e *FormatError) Error() string {
	switch {
	case e.Path != "" && e.Index >= 0:
		return fmt.Sprintf("malformed record %d in %s: %v", e.Index, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("malformed history file %s: %v", e.Path, e.Err)
	case e.Index >= 0:
		return fmt.Sprintf("malformed record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("malformed history: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
