// Package editor resolves which editor opens a clicked file. The
// chain is an ordered attempt list: environment-declared visual
// editor, environment-declared fallback, probed terminal editors,
// then a pager as the floor. Resolution runs per click, not cached;
// environment variables can change under a live session.
package editor

import (
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

var probeOrder = []string{"nvim", "vim", "nano", "vi"}

// pagerFallback terminates the chain: less if present, else vi, which
// every POSIX host ships in some form.
var pagerFallback = []string{"less", "vi"}

// Resolve returns the editor command for the current environment. The
// result may contain arguments (e.g. EDITOR="code --wait").
func Resolve() string {
	return resolveWith(os.Getenv, hasBinary)
}

func resolveWith(getenv func(string) string, has func(string) bool) string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	for _, candidate := range probeOrder {
		if has(candidate) {
			return candidate
		}
	}
	for _, pager := range pagerFallback {
		if has(pager) {
			return pager
		}
	}
	return "vi"
}

func hasBinary(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Command builds the shell command that opens path with editorCmd,
// with every token quoted for the command pane's shell. An editorCmd
// that fails to parse degrades to vi rather than erroring the click.
func Command(editorCmd, path string) string {
	parts, err := shellquote.Split(editorCmd)
	if err != nil || len(parts) == 0 {
		parts = []string{"vi"}
	}
	return shellquote.Join(append(parts, path)...)
}
