package editor

import "testing"

func env(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func installed(names ...string) func(string) bool {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestResolveVisualWins(t *testing.T) {
	t.Parallel()

	got := resolveWith(env(map[string]string{"VISUAL": "code --wait", "EDITOR": "nvim"}), installed("nvim", "vim"))
	if got != "code --wait" {
		t.Errorf("resolved %q, want VISUAL value", got)
	}
}

func TestResolveEditorFallback(t *testing.T) {
	t.Parallel()

	got := resolveWith(env(map[string]string{"EDITOR": "nvim"}), installed())
	if got != "nvim" {
		t.Errorf("resolved %q, want EDITOR value", got)
	}
}

func TestResolveWhitespaceEnvIgnored(t *testing.T) {
	t.Parallel()

	got := resolveWith(env(map[string]string{"VISUAL": "   "}), installed("vim"))
	if got != "vim" {
		t.Errorf("resolved %q, want probed vim", got)
	}
}

func TestResolveProbeOrder(t *testing.T) {
	t.Parallel()

	// nano and vi both installed: nano comes first in probe order.
	got := resolveWith(env(nil), installed("nano", "vi"))
	if got != "nano" {
		t.Errorf("resolved %q, want nano", got)
	}
}

func TestResolveTerminatesAtPager(t *testing.T) {
	t.Parallel()

	// No env, no editors: the chain must land on the pager, not
	// fail.
	got := resolveWith(env(nil), installed("less"))
	if got != "less" {
		t.Errorf("resolved %q, want less", got)
	}

	// Nothing installed at all: still a usable answer.
	got = resolveWith(env(nil), installed())
	if got != "vi" {
		t.Errorf("resolved %q, want vi floor", got)
	}
}

func TestCommandQuotesPath(t *testing.T) {
	t.Parallel()

	got := Command("nvim", "/tmp/my project/note s.md")
	want := `nvim '/tmp/my project/note s.md'`
	if got != want {
		t.Errorf("Command = %q, want %q", got, want)
	}
}

func TestCommandMultiTokenEditor(t *testing.T) {
	t.Parallel()

	got := Command("code --wait", "/tmp/a.go")
	want := "code --wait /tmp/a.go"
	if got != want {
		t.Errorf("Command = %q, want %q", got, want)
	}
}

func TestCommandUnparseableEditorDegrades(t *testing.T) {
	t.Parallel()

	got := Command("bad 'quote", "/tmp/a.go")
	want := "vi /tmp/a.go"
	if got != want {
		t.Errorf("Command = %q, want %q", got, want)
	}
}
