// Package clipboard bridges copied text to the platform clipboard
// tool. Backend choice follows the detected OS and display server; a
// host with no clipboard tool degrades to a no-op, never an abort.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool exists on the
// host. Callers treat it as "skip mirroring", not as a failure.
var ErrUnavailable = errors.New("no clipboard tool available")

// Backend is a platform clipboard tool.
type Backend interface {
	Name() string
	// CopyCommand is the shell command tmux pipes copied text into
	// (copy-pipe-and-cancel target).
	CopyCommand() string
	// PasteCommand is the shell command that writes clipboard
	// contents to stdout, or "" when the tool cannot paste.
	PasteCommand() string
	// Copy mirrors text to the clipboard directly.
	Copy(text string) error
}

// detector abstracts host inspection so backend choice is testable on
// any machine.
type detector interface {
	goos() string
	getenv(key string) string
	hasBinary(name string) bool
}

type systemDetector struct{}

func (systemDetector) goos() string             { return runtime.GOOS }
func (systemDetector) getenv(key string) string { return os.Getenv(key) }
func (systemDetector) hasBinary(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// System picks the clipboard backend for this host.
func System() (Backend, error) {
	return chooseBackend(systemDetector{})
}

// chooseBackend picks a backend by OS and display server. Linux order:
// Wayland compositor -> wl-copy, X11 -> xclip then xsel, WSL ->
// clip.exe, then wl-copy as a last resort (some compositors do not
// export WAYLAND_DISPLAY to detached processes).
func chooseBackend(det detector) (Backend, error) {
	switch det.goos() {
	case "darwin":
		if det.hasBinary("pbcopy") && det.hasBinary("pbpaste") {
			return &execBackend{
				name:  "pbcopy",
				copy:  []string{"pbcopy"},
				paste: []string{"pbpaste"},
			}, nil
		}
		return nil, fmt.Errorf("%w: pbcopy not found", ErrUnavailable)

	case "linux":
		if det.getenv("WAYLAND_DISPLAY") != "" && det.hasBinary("wl-copy") {
			return wlBackend(), nil
		}
		if det.getenv("WSL_DISTRO_NAME") != "" && det.hasBinary("clip.exe") {
			return &wslBackend{hasPaste: det.hasBinary("powershell.exe")}, nil
		}
		if det.getenv("DISPLAY") != "" {
			if det.hasBinary("xclip") {
				return &execBackend{
					name:  "xclip",
					copy:  []string{"xclip", "-selection", "clipboard", "-in"},
					paste: []string{"xclip", "-selection", "clipboard", "-out"},
				}, nil
			}
			if det.hasBinary("xsel") {
				return &execBackend{
					name:  "xsel",
					copy:  []string{"xsel", "--clipboard", "--input"},
					paste: []string{"xsel", "--clipboard", "--output"},
				}, nil
			}
		}
		if det.hasBinary("clip.exe") {
			return &wslBackend{hasPaste: det.hasBinary("powershell.exe")}, nil
		}
		if det.hasBinary("wl-copy") {
			return wlBackend(), nil
		}
		return nil, fmt.Errorf("%w: install wl-clipboard, xclip or xsel", ErrUnavailable)

	default:
		return nil, fmt.Errorf("%w: unsupported OS %s", ErrUnavailable, det.goos())
	}
}

func wlBackend() Backend {
	return &execBackend{
		name:  "wl-copy",
		copy:  []string{"wl-copy"},
		paste: []string{"wl-paste", "-n"},
	}
}

// execBackend shells out to a copy/paste binary pair.
type execBackend struct {
	name  string
	copy  []string
	paste []string
}

func (b *execBackend) Name() string         { return b.name }
func (b *execBackend) CopyCommand() string  { return strings.Join(b.copy, " ") }
func (b *execBackend) PasteCommand() string { return strings.Join(b.paste, " ") }

func (b *execBackend) Copy(text string) error {
	cmd := exec.Command(b.copy[0], b.copy[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// wslBackend uses Windows clip.exe from inside WSL. Paste requires
// powershell.exe, which is not always on PATH.
type wslBackend struct {
	hasPaste bool
}

func (b *wslBackend) Name() string        { return "wsl-clipboard" }
func (b *wslBackend) CopyCommand() string { return "clip.exe" }

func (b *wslBackend) PasteCommand() string {
	if !b.hasPaste {
		return ""
	}
	return "powershell.exe -noprofile -command Get-Clipboard"
}

func (b *wslBackend) Copy(text string) error {
	cmd := exec.Command("clip.exe")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
