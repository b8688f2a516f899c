package dump

import (
	"errors"
	"fmt"
)

// Domain errors for dump parsing.
var (
	// ErrFormat indicates a dump file whose content does not follow the
	// expected layout: a short or non-numeric atom line, or a timestep
	// marker without a readable step value.
	ErrFormat = errors.New("dump: malformed dump file")

	// ErrUnknownComponent indicates a column name outside x..etot.
	ErrUnknownComponent = errors.New("dump: unknown component")
)

// FormatError wraps ErrFormat with the location of the offending line.
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: line %d: %s", ErrFormat, e.Line, e.Msg)
	}
	return fmt.Sprintf("%v: %s:%d: %s", ErrFormat, e.Path, e.Line, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
