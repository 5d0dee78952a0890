package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// TableListModel lists the cataloged tables
type TableListModel struct {
	tables []*models.Table
	cursor int
	keys   hotkeys.KeyMap
	color  TagColorFunc
	width  int
	height int
}

func NewTableListModel(keys hotkeys.KeyMap, color TagColorFunc) *TableListModel {
	return &TableListModel{keys: keys, color: color}
}

// SetTables replaces the list, keeping the cursor in range
func (m *TableListModel) SetTables(tables []*models.Table) {
	m.tables = tables
	if m.cursor >= len(tables) {
		m.cursor = max(len(tables)-1, 0)
	}
}

func (m *TableListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the table under the cursor
func (m *TableListModel) Selected() *models.Table {
	if m.cursor < len(m.tables) {
		return m.tables[m.cursor]
	}
	return nil
}

func (m *TableListModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case hotkeys.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case hotkeys.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.tables)-1 {
			m.cursor++
		}
	case hotkeys.Matches(keyMsg, m.keys.Select):
		if table := m.Selected(); table != nil {
			id := table.ID
			return func() tea.Msg {
				return SwitchViewMsg{view: tableDetailView, tableID: id}
			}
		}
	case hotkeys.Matches(keyMsg, m.keys.Queries):
		return func() tea.Msg {
			return SwitchViewMsg{view: queryListView}
		}
	}
	return nil
}

func (m *TableListModel) View() string {
	var b strings.Builder
	b.WriteString(ContentPaddingStyle.Render(HeaderStyle.Render(fmt.Sprintf("TABLES (%d)", len(m.tables)))))
	b.WriteString("\n\n")

	if len(m.tables) == 0 {
		b.WriteString(ContentPaddingStyle.Render(DimStyle.Render("No tables cataloged yet. Add YAML files under .catalog/tables.")))
		b.WriteString("\n")
	}

	// Keep the cursor visible when the list is taller than the screen
	visible := max(m.height-6, 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.tables))

	nameStyle := lipgloss.NewStyle().Width(32)
	for i := start; i < end; i++ {
		table := m.tables[i]
		row := nameStyle.Render(fmt.Sprintf("%-6d %s", table.ID, table.FullName())) + " " +
			renderTagChips(table.Tags, m.color, 4)
		if i == m.cursor {
			b.WriteString(ContentPaddingStyle.Render(SelectedStyle.Render("▸ ") + row))
		} else {
			b.WriteString(ContentPaddingStyle.Render("  " + NormalStyle.Render(row)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := []string{
		m.keys.Up.Help().Key + "/" + m.keys.Down.Help().Key + " move",
		m.keys.Select.Help().Key + " open",
		m.keys.Queries.Help().Key + " queries",
		m.keys.Quit.Help().Key + " quit",
	}
	b.WriteString(ContentPaddingStyle.Render(HelpStyle.Render(strings.Join(help, " • "))))
	return b.String()
}
