package panel

import "testing"

func newRouter() *MouseRouter {
	return &MouseRouter{TreeTop: 1, TreeRows: 20, TreeOffset: 0}
}

func TestClassifyPressInTree(t *testing.T) {
	t.Parallel()

	r := newRouter()
	target := r.Classify(PointerEvent{X: 5, Y: 3, Phase: PhasePress, Pane: "%1"})
	if target.Kind != TargetTree {
		t.Fatalf("kind = %v, want tree", target.Kind)
	}
	if target.Row != 2 {
		t.Errorf("row = %d, want 2 (y minus tree top)", target.Row)
	}
}

func TestClassifyScrolledTreeRow(t *testing.T) {
	t.Parallel()

	r := newRouter()
	r.TreeOffset = 10
	target := r.Classify(PointerEvent{X: 5, Y: 1, Phase: PhasePress, Pane: "%1"})
	if target.Kind != TargetTree || target.Row != 10 {
		t.Errorf("target = %+v, want tree row 10", target)
	}
}

func TestClassifyBorderBand(t *testing.T) {
	t.Parallel()

	r := newRouter()
	target := r.Classify(PointerEvent{X: 0, Y: 5, Phase: PhasePress, Pane: "%1"})
	if target.Kind != TargetBorder {
		t.Errorf("kind = %v, want border (resize belongs to tmux)", target.Kind)
	}
}

func TestClassifyMetricsRegion(t *testing.T) {
	t.Parallel()

	r := newRouter()
	target := r.Classify(PointerEvent{X: 5, Y: 30, Phase: PhasePress, Pane: "%1"})
	if target.Kind != TargetMetrics {
		t.Errorf("kind = %v, want metrics", target.Kind)
	}
}

func TestDragConfinedToOriginPane(t *testing.T) {
	t.Parallel()

	r := newRouter()
	r.Classify(PointerEvent{X: 5, Y: 3, Phase: PhasePress, Pane: "%1"})

	// Drag samples reported from another pane must not produce a
	// target: selection never extends across the pane boundary.
	target := r.Classify(PointerEvent{X: 40, Y: 3, Phase: PhaseDrag, Pane: "%0"})
	if target.Kind != TargetNone {
		t.Fatalf("cross-pane drag classified as %v, want none", target.Kind)
	}

	// Samples back in the origin pane still track the press target.
	target = r.Classify(PointerEvent{X: 6, Y: 4, Phase: PhaseDrag, Pane: "%1"})
	if target.Kind != TargetTree {
		t.Errorf("in-pane drag = %v, want tree", target.Kind)
	}
}

func TestReleaseInOtherPaneResets(t *testing.T) {
	t.Parallel()

	r := newRouter()
	r.Classify(PointerEvent{X: 5, Y: 3, Phase: PhasePress, Pane: "%1"})
	target := r.Classify(PointerEvent{X: 5, Y: 3, Phase: PhaseRelease, Pane: "%0"})
	if target.Kind != TargetNone {
		t.Fatalf("cross-pane release = %v, want none", target.Kind)
	}

	// State machine is back to idle: a stray drag produces nothing.
	target = r.Classify(PointerEvent{X: 5, Y: 3, Phase: PhaseDrag, Pane: "%1"})
	if target.Kind != TargetNone {
		t.Errorf("drag without press = %v, want none", target.Kind)
	}
}

func TestPressDragReleaseCycle(t *testing.T) {
	t.Parallel()

	r := newRouter()
	press := r.Classify(PointerEvent{X: 5, Y: 4, Phase: PhasePress, Pane: "%1"})
	drag := r.Classify(PointerEvent{X: 9, Y: 8, Phase: PhaseDrag, Pane: "%1"})
	release := r.Classify(PointerEvent{X: 9, Y: 8, Phase: PhaseRelease, Pane: "%1"})

	if press.Kind != TargetTree || drag.Kind != TargetTree || release.Kind != TargetTree {
		t.Fatalf("cycle kinds = %v/%v/%v, want tree throughout", press.Kind, drag.Kind, release.Kind)
	}
	// Release commits the press target, not wherever the pointer
	// ended up.
	if release.Row != press.Row {
		t.Errorf("release row = %d, want press row %d", release.Row, press.Row)
	}

	// After release the machine is idle again.
	idle := r.Classify(PointerEvent{X: 5, Y: 4, Phase: PhaseDrag, Pane: "%1"})
	if idle.Kind != TargetNone {
		t.Errorf("post-release drag = %v, want none", idle.Kind)
	}
}

func TestDragWithoutPressIgnored(t *testing.T) {
	t.Parallel()

	r := newRouter()
	target := r.Classify(PointerEvent{X: 5, Y: 3, Phase: PhaseDrag, Pane: "%1"})
	if target.Kind != TargetNone {
		t.Errorf("drag without press = %v, want none", target.Kind)
	}
}
