package parser

import "fmt"

// Error is the fatal parse error surfaced by the driver. It carries only
// the 1-based source line at which the failed unit started; the offending
// text is intentionally not retained, keeping diagnostics bounded and
// preventing large documents from leaking into logs.
type Error struct {
	Line int
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid syntax at line: %d", e.Line)
}

// errorAt builds the run's fatal error for the unit starting at line.
func errorAt(line int) *Error {
	return &Error{Line: line}
}
