package panel

// Pointer routing for the status panel. tmux delivers mouse events to
// the pane under the cursor (MouseDown1Pane is bound to select-pane +
// send-keys -M), so coordinates arriving here are panel-relative. The
// router classifies them by region and runs a small press/drag/release
// state machine so selection drags stay confined to the pane they
// started in.

// Phase is the pointer event phase.
type Phase int

const (
	PhasePress Phase = iota
	PhaseDrag
	PhaseRelease
)

// PointerEvent is one pointer sample, consumed in the cycle it
// arrives.
type PointerEvent struct {
	X, Y  int
	Phase Phase
	Pane  string // originating pane handle
}

// TargetKind classifies where a pointer event landed.
type TargetKind int

const (
	// TargetNone passes the event through to default behavior.
	TargetNone TargetKind = iota
	// TargetBorder is the band adjacent to the main/status split;
	// presses there belong to tmux's border-drag resize.
	TargetBorder
	// TargetTree is a row inside the tree area.
	TargetTree
	// TargetMetrics is the metrics block below the tree.
	TargetMetrics
)

// Target is the classification result. Row is the tree row index for
// TargetTree.
type Target struct {
	Kind TargetKind
	Row  int
}

// borderBand is the width in columns of the region treated as the
// split border. The panel's column 0 sits one cell right of the split
// line tmux draws.
const borderBand = 1

// MouseRouter classifies pointer events and enforces the
// active-pane-only drag rule. The pane handle is captured at press;
// samples reporting a different pane are dropped until release.
type MouseRouter struct {
	TreeTop    int // first screen row of the tree area
	TreeRows   int // visible tree rows
	TreeOffset int // scroll offset of the tree viewport

	pressed    bool
	originPane string
	origin     Target
}

// Classify runs one event through the state machine and returns the
// logical target, or a TargetNone the caller should pass through.
func (r *MouseRouter) Classify(ev PointerEvent) Target {
	switch ev.Phase {
	case PhasePress:
		r.pressed = true
		r.originPane = ev.Pane
		r.origin = r.classifyPoint(ev.X, ev.Y)
		return r.origin

	case PhaseDrag:
		if !r.pressed || ev.Pane != r.originPane {
			// Drag crossed into another pane, or we never saw
			// the press. Must not extend selection there.
			return Target{Kind: TargetNone}
		}
		// Drags report the origin region regardless of where the
		// pointer wanders inside the pane; a selection started in
		// the tree stays a tree interaction.
		return r.origin

	case PhaseRelease:
		if !r.pressed || ev.Pane != r.originPane {
			r.reset()
			return Target{Kind: TargetNone}
		}
		origin := r.origin
		r.reset()
		return origin
	}
	return Target{Kind: TargetNone}
}

func (r *MouseRouter) reset() {
	r.pressed = false
	r.originPane = ""
	r.origin = Target{}
}

// classifyPoint maps a panel-relative coordinate to a region.
func (r *MouseRouter) classifyPoint(x, y int) Target {
	if x < borderBand {
		return Target{Kind: TargetBorder}
	}
	if y >= r.TreeTop && y < r.TreeTop+r.TreeRows {
		return Target{Kind: TargetTree, Row: y - r.TreeTop + r.TreeOffset}
	}
	if y >= r.TreeTop+r.TreeRows {
		return Target{Kind: TargetMetrics}
	}
	return Target{Kind: TargetNone}
}
