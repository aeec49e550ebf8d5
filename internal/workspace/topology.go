package workspace

import "github.com/Dicklesworthstone/devpanel/internal/tmux"

// Role names a pane's job in the workspace.
type Role string

const (
	RoleMain    Role = "main"
	RoleStatus  Role = "status"
	RoleCommand Role = "command"
)

// State classifies an observed session against the target topology.
type State int

const (
	StateAbsent State = iota
	StateFresh        // single pane, splits still needed
	StateTwoPane      // main/status exists, command pane missing
	StateThreePane
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateFresh:
		return "fresh"
	case StateTwoPane:
		return "two-pane"
	case StateThreePane:
		return "three-pane"
	}
	return "unknown"
}

// Topology maps roles to live pane ids once reconciliation finishes.
type Topology struct {
	Main    string
	Status  string
	Command string
}

// Pane returns the pane id for a role.
func (t Topology) Pane(role Role) string {
	switch role {
	case RoleMain:
		return t.Main
	case RoleStatus:
		return t.Status
	case RoleCommand:
		return t.Command
	}
	return ""
}

// SplitStep is one planned split: divide Target, assigning the new
// pane NewRole. Percent is tried first; Cells is the absolute
// fallback, precomputed from the parent size observed at plan time.
type SplitStep struct {
	NewRole    Role
	Target     string // pane id to split
	Horizontal bool   // true: side by side (-h); false: stacked (-v)
	Percent    int
	Cells      int
}

// Plan is the migration from an observed pane list to the 3-pane
// topology. It is pure: no tmux calls, fully unit-testable.
type Plan struct {
	State State
	Steps []SplitStep
	// Roles already satisfied by existing panes, in observed order.
	Existing Topology
}

// LayoutOptions carries the desired geometry knobs.
type LayoutOptions struct {
	PanelWidthPercent int // status panel width, percent of window
	CommandHeight     int // command pane height, cells
	WindowWidth       int // observed window width, cells
	WindowHeight      int // observed window height, cells
}

// minUsableCells is the smallest pane dimension worth creating. Below
// this a pane cannot render anything useful and tmux versions disagree
// about whether the split even succeeds.
const minUsableCells = 5

// BuildPlan decides what splits are needed to take the observed panes
// to the 3-pane topology. A fresh single-pane session needs the
// main/status split and then the status/command split. An existing
// 2-pane session only needs the command pane inserted below the status
// pane; the main/status ratio the user may have adjusted is preserved
// untouched. Three or more panes plan nothing.
func BuildPlan(panes []tmux.Pane, opt LayoutOptions) Plan {
	switch {
	case len(panes) == 0:
		return Plan{State: StateAbsent}

	case len(panes) == 1:
		main := panes[0]
		statusCells := clampCells(opt.WindowWidth*opt.PanelWidthPercent/100, opt.WindowWidth)
		// The status pane does not exist yet; the command split
		// targets it by role and is resolved after the first step.
		return Plan{
			State: StateFresh,
			Steps: []SplitStep{
				{
					NewRole:    RoleStatus,
					Target:     main.ID,
					Horizontal: true,
					Percent:    opt.PanelWidthPercent,
					Cells:      statusCells,
				},
				commandStep("", statusHeightAfterSplit(opt), opt.CommandHeight),
			},
			Existing: Topology{Main: main.ID},
		}

	case len(panes) == 2:
		main, status := panes[0], panes[1]
		return Plan{
			State: StateTwoPane,
			Steps: []SplitStep{
				commandStep(status.ID, status.Height, opt.CommandHeight),
			},
			Existing: Topology{Main: main.ID, Status: status.ID},
		}

	default:
		return Plan{
			State:    StateThreePane,
			Existing: Topology{Main: panes[0].ID, Status: panes[1].ID, Command: panes[2].ID},
		}
	}
}

// commandStep plans the vertical split that carves the command pane
// out of the bottom of the status pane. The height knob is cells, so
// the percentage attempt is derived from the parent height.
func commandStep(target string, parentHeight, commandHeight int) SplitStep {
	cells := clampCells(commandHeight, parentHeight)
	percent := 25
	if parentHeight > 0 {
		percent = clamp(cells*100/parentHeight, 1, 99)
	}
	return SplitStep{
		NewRole:    RoleCommand,
		Target:     target,
		Horizontal: false,
		Percent:    percent,
		Cells:      cells,
	}
}

// statusHeightAfterSplit is the status pane height once the horizontal
// main/status split lands: horizontal splits keep the window height.
func statusHeightAfterSplit(opt LayoutOptions) int {
	return opt.WindowHeight
}

// clampCells bounds a cell count to [minUsableCells, parent-1].
func clampCells(cells, parent int) int {
	if parent <= minUsableCells {
		return minUsableCells
	}
	return clamp(cells, minUsableCells, parent-1)
}
