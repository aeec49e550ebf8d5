// Package command forwards resolved panel actions into the command
// pane through tmux text injection. Dispatch never targets the main
// work pane; navigation must not interrupt whatever runs there.
package command

import (
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/Dicklesworthstone/devpanel/internal/editor"
)

// Action is a resolved click outcome, consumed immediately by the
// router and never persisted.
type Action interface {
	// ShellCommand is the line injected into the command pane.
	ShellCommand() string
}

// ChangeDirectory navigates the command pane's shell.
type ChangeDirectory struct {
	Path string
}

func (a ChangeDirectory) ShellCommand() string {
	return "cd " + shellquote.Join(a.Path)
}

// OpenFile opens a file in the resolved editor, inside the command
// pane.
type OpenFile struct {
	Path   string
	Editor string
}

func (a OpenFile) ShellCommand() string {
	return editor.Command(a.Editor, a.Path)
}

// DispatchError means injection into the command pane failed after
// the pane handle was re-resolved and retried once. Transient: shown
// as a panel notice, never fatal.
type DispatchError struct {
	Target string
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to pane %s: %v", e.Target, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Injector is the slice of the tmux client dispatch needs.
type Injector interface {
	SendKeys(target, keys string, enter bool) error
}

// Router injects actions into a fixed command pane. If the pane
// handle goes stale (pane killed and recreated), the resolver is
// consulted once per dispatch for a fresh handle.
type Router struct {
	inject  Injector
	pane    string
	resolve func() (string, error)
}

// NewRouter creates a router bound to the command pane. resolve may
// be nil when no re-resolution is possible.
func NewRouter(inject Injector, commandPane string, resolve func() (string, error)) *Router {
	return &Router{inject: inject, pane: commandPane, resolve: resolve}
}

// Pane returns the current command pane handle.
func (r *Router) Pane() string { return r.pane }

// Dispatch sends the action's shell command into the command pane.
func (r *Router) Dispatch(action Action) error {
	line := action.ShellCommand()

	err := r.inject.SendKeys(r.pane, line, true)
	if err == nil {
		return nil
	}

	if r.resolve != nil {
		if fresh, rerr := r.resolve(); rerr == nil && fresh != "" {
			r.pane = fresh
			retryErr := r.inject.SendKeys(fresh, line, true)
			if retryErr == nil {
				return nil
			}
			err = retryErr
		}
	}

	return &DispatchError{Target: r.pane, Err: err}
}
