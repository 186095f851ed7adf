package gridsheet

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConvertible indicates a cell value could not be converted to the requested type.
	ErrNotConvertible = errors.New("value not convertible")

	// ErrNoProperty indicates the cell's key names no readable or writable property of its data.
	ErrNoProperty = errors.New("no such property")

	// ErrMergeConflict indicates a merge would overlap an existing merged region.
	ErrMergeConflict = errors.New("merge overlaps existing merged region")

	// ErrEmptyRegion indicates a region lies entirely outside the sheet.
	ErrEmptyRegion = errors.New("region is outside the sheet")

	// ErrReadOnly indicates a write to a read-only cell.
	ErrReadOnly = errors.New("cell is read-only")

	// ErrUnknownCommand indicates a script named a command with no registered factory.
	ErrUnknownCommand = errors.New("unknown command")
)

// ScriptError reports a failure on a specific line of a command script.
type ScriptError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
