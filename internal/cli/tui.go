package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chanroute/pkg/channel"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NetListModel - Interactive net browser
// =============================================================================

// netRow is the summary of one routed net.
type netRow struct {
	wires  channel.NetWires
	top    []int // terminal columns
	bottom []int
	tracks []int // heights of horizontal wires
}

// NetListModel is the bubbletea model for browsing the nets of a plan.
type NetListModel struct {
	Plan     *channel.Plan
	Rows     []netRow
	Cursor   int
	Height   int
	Offset   int
	Expanded bool // show the wires of the selected net
}

// NewNetListModel creates a browser over every net of plan.
func NewNetListModel(ch *channel.Channel, plan *channel.Plan) NetListModel {
	cols := func(row []channel.Pin, n channel.Net) []int {
		var out []int
		for i, p := range row {
			if p.Present && p.Net == n {
				out = append(out, i)
			}
		}
		return out
	}

	all := plan.All()
	rows := make([]netRow, len(all))
	for i, nw := range all {
		r := netRow{wires: nw, top: cols(ch.Top, nw.Net), bottom: cols(ch.Bottom, nw.Net)}
		for _, h := range nw.Horizontal {
			r.tracks = append(r.tracks, h.Y)
		}
		rows[i] = r
	}
	return NetListModel{Plan: plan, Rows: rows, Height: 15}
}

func (m NetListModel) Init() tea.Cmd {
	return nil
}

func (m NetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m NetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Nets"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d columns · %d tracks · rail at %d",
		m.Plan.Columns(), m.Plan.TrackCount(), m.Plan.RailY())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ wires  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no nets"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(int(r.wires.Net)),
			intList(r.top),
			intList(r.bottom),
			intList(r.tracks),
			strconv.Itoa(r.wires.Len()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Net", "Top", "Bottom", "Tracks", "Wires").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(wireDetail(m.Rows[m.Cursor].wires))
	}
	return b.String()
}

// wireDetail lists the segments of one net in geometry file notation.
func wireDetail(nw channel.NetWires) string {
	var b strings.Builder
	for _, h := range nw.Horizontal {
		fmt.Fprintf(&b, "  %s %d %d %d\n", StyleHighlight.Render(".H"), h.LeftX, h.Y, h.RightX)
	}
	for _, v := range nw.Vertical {
		fmt.Fprintf(&b, "  %s %d %d %d\n", StyleHighlight.Render(".V"), v.X, v.BottomY, v.TopY)
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func intList(xs []int) string {
	if len(xs) == 0 {
		return "—"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
