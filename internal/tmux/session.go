package tmux

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pane represents a tmux pane.
type Pane struct {
	ID      string
	Index   int
	Title   string
	Command string
	Width   int
	Height  int
	Active  bool
}

// Session represents a tmux session.
type Session struct {
	Name     string
	Windows  int
	Panes    []Pane
	Attached bool
}

// SessionExists checks if a session exists. A missing session is a
// legitimate negative result, so the "can't find session" diagnostic
// tmux prints is suppressed rather than surfaced as an error.
func (c *Client) SessionExists(name string) bool {
	return c.RunSilent("has-session", "-t", name) == nil
}

// NewSession creates a detached session with explicit geometry. The
// -x/-y flags matter: a detached session has no client to inherit a
// size from, and tmux otherwise falls back to 80x24 (or refuses
// percentage splits entirely on some versions).
func (c *Client) NewSession(name, directory string, width, height int) error {
	return c.RunSilent("new-session", "-d", "-s", name, "-c", directory,
		"-x", strconv.Itoa(width), "-y", strconv.Itoa(height))
}

// KillSession kills a tmux session.
func (c *Client) KillSession(name string) error {
	return c.RunSilent("kill-session", "-t", name)
}

// ListPanes returns all panes in a session, first window order.
func (c *Client) ListPanes(session string) ([]Pane, error) {
	sep := "|#|"
	format := fmt.Sprintf("#{pane_id}%[1]s#{pane_index}%[1]s#{pane_title}%[1]s#{pane_current_command}%[1]s#{pane_width}%[1]s#{pane_height}%[1]s#{pane_active}", sep)
	output, err := c.Run("list-panes", "-s", "-t", session, "-F", format)
	if err != nil {
		return nil, err
	}
	return parsePanes(output, sep), nil
}

func parsePanes(output, sep string) []Pane {
	var panes []Pane
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, sep)
		if len(parts) < 7 {
			continue
		}

		index, _ := strconv.Atoi(parts[1])
		width, _ := strconv.Atoi(parts[4])
		height, _ := strconv.Atoi(parts[5])

		panes = append(panes, Pane{
			ID:      parts[0],
			Index:   index,
			Title:   parts[2],
			Command: parts[3],
			Width:   width,
			Height:  height,
			Active:  parts[6] == "1",
		})
	}
	return panes
}

// PaneByIndex returns the pane id for session:0.index style addressing.
func (c *Client) PaneByIndex(session string, window, index int) (string, error) {
	target := fmt.Sprintf("%s:%d.%d", session, window, index)
	return c.Run("display-message", "-p", "-t", target, "#{pane_id}")
}

// SplitPercent splits the target pane, giving the new pane a
// percentage of the parent. horizontal=true splits side by side
// (tmux -h), false splits top/bottom (-v). Returns the new pane id.
func (c *Client) SplitPercent(target, directory string, horizontal bool, percent int) (string, error) {
	return c.split(target, directory, horizontal, "-p", strconv.Itoa(percent))
}

// SplitCells splits the target pane, giving the new pane an absolute
// number of cells. Fallback for tmux setups that reject percentage
// splits on narrow or headless windows.
func (c *Client) SplitCells(target, directory string, horizontal bool, cells int) (string, error) {
	return c.split(target, directory, horizontal, "-l", strconv.Itoa(cells))
}

func (c *Client) split(target, directory string, horizontal bool, sizeFlag, sizeVal string) (string, error) {
	direction := "-v"
	if horizontal {
		direction = "-h"
	}
	args := []string{"split-window", direction, "-t", target, sizeFlag, sizeVal, "-P", "-F", "#{pane_id}"}
	if directory != "" {
		args = append(args, "-c", directory)
	}
	return c.Run(args...)
}

// PaneSize queries the current width and height of a pane.
func (c *Client) PaneSize(target string) (width, height int, err error) {
	output, err := c.Run("display-message", "-p", "-t", target, "#{pane_width} #{pane_height}")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected pane size output %q", output)
	}
	width, _ = strconv.Atoi(fields[0])
	height, _ = strconv.Atoi(fields[1])
	if width <= 0 || height <= 0 {
		return 0, 0, errors.New("pane reports zero size")
	}
	return width, height, nil
}

// WindowSize queries the width and height of the window holding target.
func (c *Client) WindowSize(target string) (width, height int, err error) {
	output, err := c.Run("display-message", "-p", "-t", target, "#{window_width} #{window_height}")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected window size output %q", output)
	}
	width, _ = strconv.Atoi(fields[0])
	height, _ = strconv.Atoi(fields[1])
	return width, height, nil
}

// SendKeys sends literal text to a pane, optionally followed by Enter.
// The -l flag stops tmux from interpreting the text as key names, and
// the -- guard keeps text starting with a dash out of flag parsing.
func (c *Client) SendKeys(target, keys string, enter bool) error {
	if err := c.RunSilent("send-keys", "-t", target, "-l", "--", keys); err != nil {
		return err
	}
	if enter {
		return c.RunSilent("send-keys", "-t", target, "C-m")
	}
	return nil
}

// SelectPane moves focus to a pane.
func (c *Client) SelectPane(target string) error {
	return c.RunSilent("select-pane", "-t", target)
}

// ResizePaneX resizes a pane to an absolute width in cells.
func (c *Client) ResizePaneX(target string, width int) error {
	return c.RunSilent("resize-pane", "-t", target, "-x", strconv.Itoa(width))
}

// ResizePaneY resizes a pane to an absolute height in cells.
func (c *Client) ResizePaneY(target string, height int) error {
	return c.RunSilent("resize-pane", "-t", target, "-y", strconv.Itoa(height))
}

// RespawnPane kills whatever runs in the pane and starts command in
// its place.
func (c *Client) RespawnPane(target, command string) error {
	return c.RunSilent("respawn-pane", "-k", "-t", target, command)
}

// SetSessionOption sets a session-scoped option.
func (c *Client) SetSessionOption(session, option, value string) error {
	return c.RunSilent("set-option", "-t", session, option, value)
}

// SetServerOption sets a server-scoped option.
func (c *Client) SetServerOption(option, value string) error {
	return c.RunSilent("set-option", "-s", option, value)
}

// SetWindowOption sets a window-scoped option.
func (c *Client) SetWindowOption(session, option, value string) error {
	return c.RunSilent("set-window-option", "-t", session, option, value)
}

// BindKey installs a key binding in the given key table.
func (c *Client) BindKey(table, key string, command ...string) error {
	args := append([]string{"bind-key", "-T", table, key}, command...)
	return c.RunSilent(args...)
}

// UnbindKey removes a key binding from the given key table.
func (c *Client) UnbindKey(table, key string) error {
	return c.RunSilent("unbind-key", "-T", table, key)
}

// AttachOrSwitch attaches to a session, or switches the current client
// if already inside tmux.
func (c *Client) AttachOrSwitch(session string) error {
	if InTmux() {
		return c.RunSilent("switch-client", "-t", session)
	}
	return c.Interactive("attach", "-t", session)
}

// ValidateSessionName checks if a session name is valid.
func ValidateSessionName(name string) error {
	if name == "" {
		return errors.New("session name cannot be empty")
	}
	if strings.ContainsAny(name, ":.") {
		return errors.New("session name cannot contain ':' or '.'")
	}
	return nil
}
