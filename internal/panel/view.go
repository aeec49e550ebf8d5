package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/devpanel/internal/tree"
)

var (
	treeBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5a7d9a"))

	statsBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#6e8f72")).
				Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dirStyle      = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	timeStyle     = lipgloss.NewStyle().Bold(true)

	barGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	barYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	barRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// statsHeight is the metrics block's content height. Fixed so the
// tree area is stable while GPU lines come and go.
const statsHeight = 12

// layoutRouter recomputes the mouse router's screen regions from the
// current terminal size. Each box spends 2 rows on its border.
func (m *Model) layoutRouter() {
	treeRows := m.height - statsHeight - 4
	if treeRows < 1 {
		treeRows = 1
	}
	m.mouse.TreeTop = 1
	m.mouse.TreeRows = treeRows
	m.mouse.TreeOffset = m.offset
}

// View renders the panel.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	m.layoutRouter()

	var b strings.Builder
	b.WriteString(m.renderTree())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	return b.String()
}

func (m *Model) renderTree() string {
	innerWidth := maxInt(m.width-2, 10)
	rows := m.tree.Rows()

	var lines []string
	for i := m.offset; i < len(rows) && len(lines) < m.mouse.TreeRows; i++ {
		lines = append(lines, m.renderNode(rows[i], i == m.cursor, innerWidth))
	}
	for len(lines) < m.mouse.TreeRows {
		lines = append(lines, "")
	}

	return treeBorderStyle.Width(innerWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderNode(n *tree.Node, selected bool, width int) string {
	indent := strings.Repeat("  ", n.Depth)

	var marker string
	switch {
	case n.IsDir() && n.Expanded:
		marker = "▾ "
	case n.IsDir():
		marker = "▸ "
	default:
		marker = "  "
	}

	label := indent + marker + n.Name
	if n.IsDir() {
		label += "/"
	}
	label = truncate.StringWithTail(label, uint(width), "…")
	// Pad so row selection highlights the full width.
	if pad := width - runewidth.StringWidth(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}

	switch {
	case selected:
		return selectedStyle.Render(label)
	case n.IsDir():
		return dirStyle.Render(label)
	case n.Kind == tree.KindUnsupported:
		return dimStyle.Render(label)
	default:
		return label
	}
}

func (m *Model) renderStats() string {
	innerWidth := maxInt(m.width-4, 10)

	var lines []string
	lines = append(lines, timeStyle.Render(m.snap.Time.Format("2006-01-02 15:04:05")))
	lines = append(lines, fmt.Sprintf("CPU %s  Mem %s",
		m.renderGauge(m.snap.CPUPercent, m.snap.CPUAvailable),
		m.renderGauge(m.snap.MemPercent, m.snap.MemAvailable)))

	if len(m.snap.GPUs) > 0 {
		lines = append(lines, fmt.Sprintf("GPU via %s (%d)", m.snap.GPUSource, len(m.snap.GPUs)))
		for _, gpu := range m.snap.GPUs {
			lines = append(lines, fmt.Sprintf("GPU%-2d U %s  V %s %.0f/%.0f MiB",
				gpu.Index,
				m.renderGauge(gpu.UtilPercent, true),
				m.renderGauge(gpu.VRAMPercent(), true),
				gpu.VRAMUsedMiB, gpu.VRAMTotalMiB))
		}
	} else {
		lines = append(lines, dimStyle.Render("GPU metrics unavailable"))
	}

	lines = append(lines, "")
	lines = append(lines, truncate.StringWithTail("Dir:  "+m.lastDir, uint(innerWidth), "…"))
	if m.lastFile != "" {
		lines = append(lines, truncate.StringWithTail("File: "+m.lastFile, uint(innerWidth), "…"))
	}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(truncate.StringWithTail(m.notice, uint(innerWidth), "…")))
	}

	for len(lines) < statsHeight {
		lines = append(lines, "")
	}
	lines = lines[:statsHeight]

	return statsBorderStyle.Width(maxInt(m.width-2, 10)).Render(strings.Join(lines, "\n"))
}

// renderGauge draws a 10-cell utilization bar colored by threshold,
// or a dashed placeholder when the probe is degraded.
func (m *Model) renderGauge(percent float64, available bool) string {
	const width = 10
	if !available {
		return dimStyle.Render("[----------]  --.-%")
	}

	clamped := percent
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}
	filled := int(clamped/100*width + 0.5)
	if filled > width {
		filled = width
	}

	style := barGreen
	switch {
	case clamped >= 90:
		style = barRed
	case clamped >= 70:
		style = barYellow
	}

	bar := style.Render(strings.Repeat("#", filled)) + dimStyle.Render(strings.Repeat("-", width-filled))
	return fmt.Sprintf("[%s] %5.1f%%", bar, clamped)
}
