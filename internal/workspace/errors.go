package workspace

import "fmt"

// SessionCreationError means the multiplexer was unreachable or
// rejected session creation. Fatal at startup.
type SessionCreationError struct {
	Session string
	Err     error
}

func (e *SessionCreationError) Error() string {
	return fmt.Sprintf("create session %q: %v", e.Session, e.Err)
}

func (e *SessionCreationError) Unwrap() error { return e.Err }

// GeometryError means no usable width/height could be resolved for a
// detached session. Fatal at startup.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("no usable session geometry: %s", e.Reason)
}

// SplitFallbackExhausted means both the percentage split and the
// absolute-cell fallback were rejected for one pane. Fatal for that
// pane; panes created before it are left in place.
type SplitFallbackExhausted struct {
	Role       Role
	PercentErr error
	CellsErr   error
}

func (e *SplitFallbackExhausted) Error() string {
	return fmt.Sprintf("split for %s pane failed: percent: %v; cells: %v", e.Role, e.PercentErr, e.CellsErr)
}

func (e *SplitFallbackExhausted) Unwrap() error { return e.CellsErr }
