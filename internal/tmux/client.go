// Package tmux wraps the tmux command-line interface. Every call shells
// out to the tmux binary; no tmux server state is cached here.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every tmux invocation. tmux answers in
// milliseconds when healthy; a hung server should degrade the caller,
// not freeze it.
const DefaultTimeout = 5 * time.Second

// Client handles tmux operations.
type Client struct {
	Timeout time.Duration
}

// NewClient creates a new tmux client with the default call timeout.
func NewClient() *Client {
	return &Client{Timeout: DefaultTimeout}
}

// IsInstalled checks if tmux is available.
func IsInstalled() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// EnsureInstalled returns an error if tmux is not installed.
func EnsureInstalled() error {
	if !IsInstalled() {
		return fmt.Errorf("tmux is not installed. Install it with: brew install tmux (macOS) or apt install tmux (Linux)")
	}
	return nil
}

// InTmux returns true if the current process runs inside a tmux session.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}

// Run executes a tmux command and returns trimmed stdout.
func (c *Client) Run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout())
	defer cancel()
	return c.RunContext(ctx, args...)
}

// RunContext executes a tmux command with caller-supplied cancellation.
func (c *Client) RunContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunSilent executes a tmux command ignoring output. Errors (including
// stderr chatter from legitimate negative results such as has-session
// on a missing session) are collapsed into the returned error.
func (c *Client) RunSilent(args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout())
	defer cancel()
	return c.RunSilentContext(ctx, args...)
}

// RunSilentContext executes a tmux command ignoring output, with
// caller-supplied cancellation.
func (c *Client) RunSilentContext(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	return cmd.Run()
}

// Interactive executes a tmux command wired to the invoking terminal.
// Used for attach, which takes over the tty until the user detaches.
func (c *Client) Interactive(args ...string) error {
	cmd := exec.Command("tmux", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
