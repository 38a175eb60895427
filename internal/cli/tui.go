package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle  = lipgloss.NewStyle().Foreground(colorGray)
	detailPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// maxNeighbors caps the neighbours listed in the detail pane.
const maxNeighbors = 12

// =============================================================================
// VertexListModel - Interactive vertex browser
// =============================================================================

// VertexListModel is the bubbletea model for browsing the vertices of a
// loaded graph. "/" filters by id; enter jumps to the first neighbour.
type VertexListModel struct {
	Title    string
	Vertices []pipeline.VertexInfo
	Cursor   int
	Height   int
	Offset   int

	filter    string
	filtering bool
	visible   []int
	index     map[string]int
}

// NewVertexListModel creates a new vertex browser.
func NewVertexListModel(title string, vertices []pipeline.VertexInfo) VertexListModel {
	m := VertexListModel{
		Title:    title,
		Vertices: vertices,
		Height:   15,
		index:    make(map[string]int, len(vertices)),
	}
	for i, v := range vertices {
		m.index[v.ID] = i
	}
	m.applyFilter()
	return m
}

func (m *VertexListModel) applyFilter() {
	m.visible = m.visible[:0]
	for i, v := range m.Vertices {
		if m.filter == "" || strings.Contains(strings.ToLower(v.ID), strings.ToLower(m.filter)) {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m VertexListModel) Init() tea.Cmd {
	return nil
}

func (m VertexListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.filtering = true
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "enter":
			m.follow()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m VertexListModel) updateFilter(msg tea.KeyMsg) VertexListModel {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
	case tea.KeyBackspace:
		if m.filter != "" {
			_, size := utf8.DecodeLastRuneInString(m.filter)
			m.filter = m.filter[:len(m.filter)-size]
			m.applyFilter()
		}
	case tea.KeyRunes:
		m.filter += string(msg.Runes)
		m.applyFilter()
	}
	return m
}

func (m *VertexListModel) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.visible)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// follow moves the cursor to the first neighbour of the current vertex,
// clearing the filter when the neighbour is hidden.
func (m *VertexListModel) follow() {
	cur, ok := m.current()
	if !ok || len(cur.Neighbors) == 0 {
		return
	}
	target, ok := m.index[cur.Neighbors[0]]
	if !ok {
		return
	}
	pos := -1
	for i, idx := range m.visible {
		if idx == target {
			pos = i
		}
	}
	if pos < 0 {
		m.filter = ""
		m.applyFilter()
		pos = target
	}
	m.move(pos - m.Cursor)
}

func (m VertexListModel) current() (pipeline.VertexInfo, bool) {
	if m.Cursor >= len(m.visible) {
		return pipeline.VertexInfo{}, false
	}
	return m.Vertices[m.visible[m.Cursor]], true
}

func (m VertexListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	if m.filtering {
		b.WriteString(StyleHighlight.Render("/" + m.filter + "▏"))
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  / filter  ⏎ follow edge  q quit"))
	}
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		v := m.Vertices[m.visible[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, v.ID, strconv.Itoa(v.In), strconv.Itoa(v.Out), strconv.Itoa(v.Degree)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Vertex", "In", "Out", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	list := t.Render()
	if cur, ok := m.current(); ok {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detailPaneStyle.Render(detail(cur)))
	}
	b.WriteString(list)
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))
	return b.String()
}

// detail renders the attributes and neighbours of v.
func detail(v pipeline.VertexInfo) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(v.ID))
	b.WriteString("\n")
	for _, k := range sortedKeys(v.Attrs) {
		b.WriteString(detailKeyStyle.Render(k+": ") + StyleValue.Render(v.Attrs[k]) + "\n")
	}
	if len(v.Neighbors) == 0 {
		b.WriteString(listDimStyle.Render("no neighbours"))
		return b.String()
	}
	b.WriteString(detailKeyStyle.Render("neighbours:") + "\n")
	for i, n := range v.Neighbors {
		if i == maxNeighbors {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(v.Neighbors)-maxNeighbors)))
			break
		}
		b.WriteString("  " + iconArrow + " " + n + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
