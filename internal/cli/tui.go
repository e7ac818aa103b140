package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"spellmap/pkg/drawio"
	"spellmap/pkg/imagemap"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// reviewModel - Interactive label review
// =============================================================================

// reviewEntry is one labeled cell in the review list.
type reviewEntry struct {
	label   string
	target  string
	pattern string // exclusion pattern, empty if the label passed the filter
	hasGeom bool
	x1, y1  int
	x2, y2  int
}

// kept reports whether the entry produces a clickable area.
func (e reviewEntry) kept() bool {
	return e.pattern == "" && e.hasGeom
}

// reason describes why the entry produces no area.
func (e reviewEntry) reason() string {
	if e.pattern != "" {
		return e.pattern
	}
	if !e.hasGeom {
		return "no geometry"
	}
	return ""
}

// reviewEntries builds the review list from the document.
// Extract visits cells in the same order, so surviving labels line up with
// the extracted areas.
func reviewEntries(doc *drawio.Document, filter *imagemap.Filter) []reviewEntry {
	areas := imagemap.Extract(doc, imagemap.Options{Filter: filter})
	next := 0

	var entries []reviewEntry
	for _, cell := range doc.Cells() {
		label := imagemap.CleanLabel(cell.Value)
		if label == "" {
			continue
		}

		e := reviewEntry{label: label}
		if pattern, ok := filter.Match(label); ok {
			e.pattern = pattern
		} else if cell.HasGeometry() {
			area := areas[next]
			next++
			e.target = area.Target
			e.hasGeom = true
			e.x1, e.y1 = area.X1, area.Y1
			e.x2, e.y2 = area.X2, area.Y2
		}
		entries = append(entries, e)
	}
	return entries
}

// reviewModel is the bubbletea model for the interactive label review.
type reviewModel struct {
	entries  []reviewEntry
	cursor   int
	selected *reviewEntry
	height   int
	offset   int
}

// newReviewModel creates a review model over the given entries.
func newReviewModel(entries []reviewEntry) reviewModel {
	return reviewModel{entries: entries, height: 15}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			entry := m.entries[m.cursor]
			if !entry.kept() {
				return m, nil
			}
			m.selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review Labels"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		e := m.entries[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		mark := iconSuccess
		coords := fmt.Sprintf("(%d,%d)-(%d,%d)", e.x1, e.y1, e.x2, e.y2)
		if !e.kept() {
			mark = iconError
			coords = "—"
		}

		rows = append(rows, []string{cursor, mark, e.label, coords, e.reason()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Label", "Coords", "Rule").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			idx := m.offset + row
			if idx >= len(m.entries) {
				return lipgloss.NewStyle()
			}
			e := m.entries[idx]
			current := idx == m.cursor

			base := lipgloss.NewStyle()
			if current {
				if e.kept() {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			}
			if e.kept() {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	return b.String()
}
