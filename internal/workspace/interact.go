package workspace

import (
	"fmt"

	"github.com/Dicklesworthstone/devpanel/internal/clipboard"
	"github.com/Dicklesworthstone/devpanel/internal/tmux"
)

// ConfigureInteraction installs the mouse bindings the workspace
// relies on. Single click selects the pane and passes the event
// through to the application in it, so the panel's own tree receives
// clicks. Pane-body dragging is unbound: selection drags must not
// cross into an adjacent pane, so only in-pane applications handle
// them. Border drags resize the main/status split.
func ConfigureInteraction(client *tmux.Client, session string) {
	// Best effort throughout: older tmux versions reject some of
	// these and the workspace still functions without them.
	_ = client.SetSessionOption(session, "mouse", "on")

	_ = client.BindKey("root", "MouseDown1Pane", "select-pane", "-t=", "\\;", "send-keys", "-M")
	_ = client.UnbindKey("root", "MouseDrag1Pane")

	_ = client.BindKey("root", "MouseDown1Border", "select-pane", "-t=")
	_ = client.BindKey("root", "MouseDrag1Border", "resize-pane", "-M")
}

// ConfigureClipboard wires tmux copy mode to the platform clipboard
// tool. With no tool found the session still gets vi-style copy mode;
// mirroring is just skipped.
func ConfigureClipboard(client *tmux.Client, session string) {
	_ = client.SetServerOption("set-clipboard", "on")
	_ = client.SetWindowOption(session, "mode-keys", "vi")

	backend, err := clipboard.System()
	if err != nil {
		// No clipboard tool on this host; copy mode works, the
		// system clipboard just won't mirror.
		return
	}

	copyCmd := backend.CopyCommand()
	_ = client.SetServerOption("copy-command", copyCmd)
	for _, key := range []string{"Enter", "y", "MouseDragEnd1Pane"} {
		_ = client.BindKey("copy-mode-vi", key, "send-keys", "-X", "copy-pipe-and-cancel", copyCmd)
	}

	if pasteCmd := backend.PasteCommand(); pasteCmd != "" {
		pipe := fmt.Sprintf("%s | tmux load-buffer - ; tmux paste-buffer", pasteCmd)
		_ = client.BindKey("prefix", "v", "run-shell", pipe)
	}
}
