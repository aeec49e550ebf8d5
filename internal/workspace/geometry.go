package workspace

import (
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Geometry is the explicit size passed to new-session -x/-y. Detached
// sessions have no client to inherit a size from; on headless hosts
// $COLUMNS/$LINES are often unset too, which is a distinct case from
// "the terminal is small" and must still yield a workable size.
type Geometry struct {
	Width  int
	Height int
}

const (
	defaultWidth  = 200
	defaultHeight = 60

	minWidth  = 80
	maxWidth  = 500
	minHeight = 24
	maxHeight = 200
)

// ResolveGeometry resolves the detached session size. Priority order:
// explicit flag values, then $COLUMNS/$LINES, then the size of the
// invoking terminal when stdout is a tty, then the hardcoded default.
// Results are clamped to a sane range either way.
func ResolveGeometry(flagWidth, flagHeight int) (Geometry, error) {
	width, err := resolveDimension(flagWidth, "COLUMNS", termWidth, defaultWidth)
	if err != nil {
		return Geometry{}, err
	}
	height, err := resolveDimension(flagHeight, "LINES", termHeight, defaultHeight)
	if err != nil {
		return Geometry{}, err
	}

	return Geometry{
		Width:  clamp(width, minWidth, maxWidth),
		Height: clamp(height, minHeight, maxHeight),
	}, nil
}

func resolveDimension(flagValue int, envKey string, fromTerm func() int, fallback int) (int, error) {
	if flagValue != 0 {
		if flagValue < 0 {
			return 0, &GeometryError{Reason: "explicit size must be positive"}
		}
		return flagValue, nil
	}
	if v := envInt(envKey); v > 0 {
		return v, nil
	}
	if v := fromTerm(); v > 0 {
		return v, nil
	}
	return fallback, nil
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

func termWidth() int {
	w, _ := terminalSize()
	return w
}

func termHeight() int {
	_, h := terminalSize()
	return h
}

func terminalSize() (int, int) {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(int(fd))
	if err != nil {
		return 0, 0
	}
	return w, h
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
