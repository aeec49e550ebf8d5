package clipboard

import (
	"errors"
	"testing"
)

type stubDetector struct {
	os   string
	env  map[string]string
	bins map[string]bool
}

func newStubDetector(goos string, env map[string]string, bins map[string]bool) *stubDetector {
	return &stubDetector{os: goos, env: env, bins: bins}
}

func (d *stubDetector) goos() string               { return d.os }
func (d *stubDetector) getenv(key string) string   { return d.env[key] }
func (d *stubDetector) hasBinary(name string) bool { return d.bins[name] }

func TestChooseBackendDarwin(t *testing.T) {
	t.Parallel()

	det := newStubDetector("darwin", nil, map[string]bool{"pbcopy": true, "pbpaste": true})
	b, err := chooseBackend(det)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name() != "pbcopy" {
		t.Errorf("backend = %s, want pbcopy", b.Name())
	}
	if b.PasteCommand() != "pbpaste" {
		t.Errorf("paste command = %q, want pbpaste", b.PasteCommand())
	}
}

func TestChooseBackendDarwinNoPbcopy(t *testing.T) {
	t.Parallel()

	det := newStubDetector("darwin", nil, nil)
	_, err := chooseBackend(det)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestChooseBackendWayland(t *testing.T) {
	t.Parallel()

	det := newStubDetector("linux",
		map[string]string{"WAYLAND_DISPLAY": "wayland-0"},
		map[string]bool{"wl-copy": true, "xclip": true})
	b, err := chooseBackend(det)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name() != "wl-copy" {
		t.Errorf("backend = %s, want wl-copy preferred under Wayland", b.Name())
	}
	if b.PasteCommand() != "wl-paste -n" {
		t.Errorf("paste command = %q, want wl-paste -n", b.PasteCommand())
	}
}

func TestChooseBackendX11PrefersXclip(t *testing.T) {
	t.Parallel()

	det := newStubDetector("linux",
		map[string]string{"DISPLAY": ":0"},
		map[string]bool{"xclip": true, "xsel": true})
	b, err := chooseBackend(det)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name() != "xclip" {
		t.Errorf("backend = %s, want xclip", b.Name())
	}
	if b.CopyCommand() != "xclip -selection clipboard -in" {
		t.Errorf("copy command = %q", b.CopyCommand())
	}
}

func TestChooseBackendX11XselFallback(t *testing.T) {
	t.Parallel()

	det := newStubDetector("linux",
		map[string]string{"DISPLAY": ":0"},
		map[string]bool{"xsel": true})
	b, err := chooseBackend(det)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name() != "xsel" {
		t.Errorf("backend = %s, want xsel", b.Name())
	}
}

func TestChooseBackendLinuxWlCopyLastResort(t *testing.T) {
	t.Parallel()

	// No Wayland env, no DISPLAY, no WSL, but wl-copy available.
	det := newStubDetector("linux", nil, map[string]bool{"wl-copy": true})
	b, err := chooseBackend(det)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name() != "wl-copy" {
		t.Errorf("backend = %s, want wl-copy last resort", b.Name())
	}
}

func TestChooseBackendLinuxClipExeFallback(t *testing.T) {
	t.Parallel()

	det := newStubDetector("linux", nil, map[string]bool{"clip.exe": true})
	b, err := chooseBackend(det)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name() != "wsl-clipboard" {
		t.Errorf("backend = %s, want wsl-clipboard", b.Name())
	}
}

func TestChooseBackendWSLNoPowershell(t *testing.T) {
	t.Parallel()

	det := newStubDetector("linux",
		map[string]string{"WSL_DISTRO_NAME": "Ubuntu"},
		map[string]bool{"clip.exe": true})
	b, err := chooseBackend(det)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wb, ok := b.(*wslBackend)
	if !ok {
		t.Fatalf("expected *wslBackend, got %T", b)
	}
	if wb.hasPaste {
		t.Error("expected hasPaste=false without powershell.exe")
	}
	if wb.PasteCommand() != "" {
		t.Error("paste command should be empty without powershell.exe")
	}
}

func TestChooseBackendNothingAvailable(t *testing.T) {
	t.Parallel()

	det := newStubDetector("linux", nil, nil)
	_, err := chooseBackend(det)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable (degrade to no-op, not crash)", err)
	}
}

func TestChooseBackendUnsupportedOS(t *testing.T) {
	t.Parallel()

	det := newStubDetector("plan9", nil, nil)
	_, err := chooseBackend(det)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
