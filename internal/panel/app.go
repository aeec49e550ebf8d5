// Package panel implements the status panel TUI that runs inside the
// workspace's status pane: a navigable directory tree above a live
// host metrics block. Clicks resolve to actions dispatched into the
// command pane; the main work pane is never touched.
package panel

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Dicklesworthstone/devpanel/internal/command"
	"github.com/Dicklesworthstone/devpanel/internal/editor"
	"github.com/Dicklesworthstone/devpanel/internal/metrics"
	"github.com/Dicklesworthstone/devpanel/internal/tree"
)

// dispatcher is the slice of command.Router the panel needs.
type dispatcher interface {
	Dispatch(command.Action) error
}

// Options configures the panel.
type Options struct {
	Root            string
	Dispatcher      dispatcher
	EditorOverride  string // from config; empty means resolve per click
	MetricsInterval time.Duration
	TreeInterval    time.Duration
}

type metricsTickMsg time.Time

type treeTickMsg time.Time

type metricsMsg struct {
	snap metrics.Snapshot
	gen  int
}

type fsChangeMsg struct{}

type clearNoticeMsg struct{}

// KeyMap defines panel keybindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var panelKeys = KeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "expand/collapse")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the panel's bubbletea model.
type Model struct {
	opts Options

	tree      *tree.Tree
	collector *metrics.Collector
	snap      metrics.Snapshot

	mouse    MouseRouter
	selfPane string

	cursor int
	offset int
	width  int
	height int

	lastDir  string
	lastFile string

	notice   string
	noticeAt time.Time

	watcher *fsnotify.Watcher
	gen     int

	quitting bool
}

// New creates the panel model rooted at opts.Root.
func New(opts Options) *Model {
	if opts.MetricsInterval <= 0 {
		opts.MetricsInterval = time.Second
	}
	if opts.TreeInterval <= 0 {
		opts.TreeInterval = 3 * time.Second
	}

	m := &Model{
		opts:      opts,
		tree:      tree.New(opts.Root),
		collector: metrics.NewCollector(),
		selfPane:  os.Getenv("TMUX_PANE"),
		lastDir:   opts.Root,
	}

	if w, err := fsnotify.NewWatcher(); err == nil {
		m.watcher = w
		m.watchExpanded()
	}
	return m
}

// Init starts the refresh timers.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchMetricsCmd(),
		tea.Tick(m.opts.MetricsInterval, func(t time.Time) tea.Msg { return metricsTickMsg(t) }),
		tea.Tick(m.opts.TreeInterval, func(t time.Time) tea.Msg { return treeTickMsg(t) }),
	}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForFSCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutRouter()
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case metricsTickMsg:
		return m, tea.Batch(
			m.fetchMetricsCmd(),
			tea.Tick(m.opts.MetricsInterval, func(t time.Time) tea.Msg { return metricsTickMsg(t) }),
		)

	case metricsMsg:
		// Drop snapshots from a superseded fetch generation.
		if msg.gen == m.gen {
			m.snap = msg.snap
		}
		return m, nil

	case treeTickMsg:
		m.refreshTree()
		return m, tea.Tick(m.opts.TreeInterval, func(t time.Time) tea.Msg { return treeTickMsg(t) })

	case fsChangeMsg:
		m.refreshTree()
		return m, m.waitForFSCmd()

	case clearNoticeMsg:
		if time.Since(m.noticeAt) >= noticeTTL {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

const noticeTTL = 4 * time.Second

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, panelKeys.Quit):
		m.quitting = true
		if m.watcher != nil {
			m.watcher.Close()
		}
		return m, tea.Quit

	case key.Matches(msg, panelKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampScroll()

	case key.Matches(msg, panelKeys.Down):
		if m.cursor < len(m.tree.Rows())-1 {
			m.cursor++
		}
		m.clampScroll()

	case key.Matches(msg, panelKeys.Toggle):
		m.tree.Toggle(m.tree.NodeAt(m.cursor))
		m.watchExpanded()
		m.clampScroll()

	case key.Matches(msg, panelKeys.Open):
		return m, m.activateNode(m.tree.NodeAt(m.cursor))

	case key.Matches(msg, panelKeys.Refresh):
		m.refreshTree()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonWheelUp {
		if m.offset > 0 {
			m.offset--
		}
		return m, nil
	}
	if msg.Button == tea.MouseButtonWheelDown {
		if m.offset < maxInt(0, len(m.tree.Rows())-m.mouse.TreeRows) {
			m.offset++
		}
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	ev := PointerEvent{X: msg.X, Y: msg.Y, Pane: m.selfPane}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Phase = PhasePress
	case tea.MouseActionMotion:
		ev.Phase = PhaseDrag
	case tea.MouseActionRelease:
		ev.Phase = PhaseRelease
	default:
		return m, nil
	}

	m.mouse.TreeOffset = m.offset
	target := m.mouse.Classify(ev)

	// Only a completed click (release on the press target) activates.
	if ev.Phase != PhaseRelease {
		return m, nil
	}

	switch target.Kind {
	case TargetTree:
		node := m.tree.NodeAt(target.Row)
		if node == nil {
			return m, nil
		}
		m.cursor = target.Row
		return m, m.activateNode(node)
	case TargetBorder, TargetMetrics, TargetNone:
		// Border drags are tmux's job; metrics block has no
		// interactions; everything else passes through.
	}
	return m, nil
}

// activateNode is the click resolution contract: directories resolve
// to ChangeDirectory, allow-listed files to OpenFile, anything else is
// a no-op beyond selection.
func (m *Model) activateNode(node *tree.Node) tea.Cmd {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case tree.KindDir:
		m.lastDir = node.Path
		m.tree.Toggle(node)
		m.watchExpanded()
		m.clampScroll()
		return m.dispatchCmd(command.ChangeDirectory{Path: node.Path})

	case tree.KindFile:
		m.lastFile = node.Path
		ed := m.opts.EditorOverride
		if ed == "" {
			ed = editor.Resolve()
		}
		return m.dispatchCmd(command.OpenFile{Path: node.Path, Editor: ed})

	default:
		// Unsupported format: never attempt to open.
		m.lastFile = node.Path
		return nil
	}
}

func (m *Model) dispatchCmd(action command.Action) tea.Cmd {
	if m.opts.Dispatcher == nil {
		return nil
	}
	if err := m.opts.Dispatcher.Dispatch(action); err != nil {
		m.notice = err.Error()
		m.noticeAt = time.Now()
		return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{} })
	}
	return nil
}

func (m *Model) fetchMetricsCmd() tea.Cmd {
	m.gen++
	gen := m.gen
	collector := m.collector
	return func() tea.Msg {
		return metricsMsg{snap: collector.Snapshot(), gen: gen}
	}
}

func (m *Model) waitForFSCmd() tea.Cmd {
	w := m.watcher
	return func() tea.Msg {
		for {
			select {
			case _, ok := <-w.Events:
				if !ok {
					return nil
				}
				return fsChangeMsg{}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
				// Watch errors are non-fatal; the interval
				// rescan covers anything missed.
			}
		}
	}
}

func (m *Model) refreshTree() {
	m.tree.Refresh()
	m.watchExpanded()
	m.clampScroll()
}

// watchExpanded re-points the filesystem watcher at the currently
// expanded directories.
func (m *Model) watchExpanded() {
	if m.watcher == nil {
		return
	}
	for _, dir := range m.watcher.WatchList() {
		_ = m.watcher.Remove(dir)
	}
	for _, dir := range m.tree.ExpandedDirs() {
		_ = m.watcher.Add(dir)
	}
}

func (m *Model) clampScroll() {
	rows := len(m.tree.Rows())
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.mouse.TreeRows
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if max := maxInt(0, rows-visible); m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
