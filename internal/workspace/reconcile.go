package workspace

import (
	"github.com/Dicklesworthstone/devpanel/internal/tmux"
)

// Splitter is the slice of the tmux client the plan applier needs.
// Tests substitute a fake to exercise the fallback chain without a
// live tmux server.
type Splitter interface {
	SplitPercent(target, directory string, horizontal bool, percent int) (string, error)
	SplitCells(target, directory string, horizontal bool, cells int) (string, error)
}

// Manager owns session lifecycle: detect or create the session, then
// reconcile it to the 3-pane topology.
type Manager struct {
	client *tmux.Client
}

// NewManager creates a session manager on the given client.
func NewManager(client *tmux.Client) *Manager {
	return &Manager{client: client}
}

// SessionInfo describes the session after Ensure.
type SessionInfo struct {
	Name    string
	Root    string
	State   State
	Created bool
}

// Ensure makes the named session exist. Idempotent: an existing
// session is classified by pane count, an absent one is created
// detached with explicit geometry.
func (m *Manager) Ensure(name, root string, geo Geometry) (SessionInfo, error) {
	if !tmux.IsInstalled() {
		return SessionInfo{}, &SessionCreationError{Session: name, Err: tmux.EnsureInstalled()}
	}

	info := SessionInfo{Name: name, Root: root}

	if m.client.SessionExists(name) {
		panes, err := m.client.ListPanes(name)
		if err != nil {
			return SessionInfo{}, &SessionCreationError{Session: name, Err: err}
		}
		info.State = BuildPlan(panes, LayoutOptions{}).State
		return info, nil
	}

	if err := m.client.NewSession(name, root, geo.Width, geo.Height); err != nil {
		return SessionInfo{}, &SessionCreationError{Session: name, Err: err}
	}
	info.State = StateFresh
	info.Created = true
	return info, nil
}

// Reconcile takes the session to the 3-pane topology: main on the
// left, status panel on the right, command pane below the status
// panel. Existing panes are kept; only missing ones are added.
func (m *Manager) Reconcile(info SessionInfo, opt LayoutOptions) (Topology, error) {
	panes, err := m.client.ListPanes(info.Name)
	if err != nil {
		return Topology{}, err
	}

	if opt.WindowWidth == 0 || opt.WindowHeight == 0 {
		w, h, err := m.client.WindowSize(info.Name)
		if err == nil {
			opt.WindowWidth, opt.WindowHeight = w, h
		}
	}

	plan := BuildPlan(panes, opt)
	return ApplyPlan(m.client, plan, info.Root)
}

// ApplyPlan executes the planned splits. Each step tries the
// percentage split first and falls back to absolute cells; this chain
// is mandatory because percentage splits silently fail below certain
// window widths. A step that exhausts both attempts aborts the plan
// but leaves panes created by earlier steps in place.
func ApplyPlan(s Splitter, plan Plan, root string) (Topology, error) {
	topo := plan.Existing

	for _, step := range plan.Steps {
		target := step.Target
		if target == "" {
			// Command split planned before the status pane
			// existed; resolve against the pane the previous
			// step created.
			target = topo.Status
		}

		id, percentErr := s.SplitPercent(target, root, step.Horizontal, step.Percent)
		if percentErr != nil {
			var cellsErr error
			id, cellsErr = s.SplitCells(target, root, step.Horizontal, step.Cells)
			if cellsErr != nil {
				return topo, &SplitFallbackExhausted{
					Role:       step.NewRole,
					PercentErr: percentErr,
					CellsErr:   cellsErr,
				}
			}
		}

		switch step.NewRole {
		case RoleStatus:
			topo.Status = id
		case RoleCommand:
			topo.Command = id
		}
	}

	return topo, nil
}

// Resizer is the slice of the tmux client the resize knobs need.
type Resizer interface {
	ResizePaneX(target string, width int) error
	ResizePaneY(target string, height int) error
}

// ResizeMain adjusts the main/status ratio by setting the main pane's
// absolute width. The command pane height is a separate knob and is
// deliberately untouched here.
func ResizeMain(r Resizer, topo Topology, windowWidth, mainWidth int) error {
	return r.ResizePaneX(topo.Main, clampCells(mainWidth, windowWidth))
}

// SetCommandHeight adjusts the command pane height independently of
// the main/status ratio.
func SetCommandHeight(r Resizer, topo Topology, parentHeight, cells int) error {
	return r.ResizePaneY(topo.Command, clampCells(cells, parentHeight))
}
