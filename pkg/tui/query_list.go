package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
)

// QueryListModel lists the saved queries
type QueryListModel struct {
	names  []string
	cursor int
	keys   hotkeys.KeyMap
}

func NewQueryListModel(keys hotkeys.KeyMap) *QueryListModel {
	return &QueryListModel{keys: keys}
}

func (m *QueryListModel) SetQueries(names []string) {
	m.names = names
	if m.cursor >= len(names) {
		m.cursor = max(len(names)-1, 0)
	}
}

func (m *QueryListModel) Update(msg tea.Msg) tea.Cmd {
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
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case hotkeys.Matches(keyMsg, m.keys.Select):
		name := defaultQueryName()
		if m.cursor < len(m.names) {
			name = m.names[m.cursor]
		}
		return func() tea.Msg {
			return SwitchViewMsg{view: queryEditorView, query: name}
		}
	case hotkeys.Matches(keyMsg, m.keys.Back):
		return func() tea.Msg { return SwitchViewMsg{view: tableListView} }
	}
	return nil
}

func (m *QueryListModel) View() string {
	var b strings.Builder
	b.WriteString(ContentPaddingStyle.Render(HeaderStyle.Render(fmt.Sprintf("QUERIES (%d)", len(m.names)))))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(ContentPaddingStyle.Render(DimStyle.Render("No saved queries. Press enter to start " + defaultQueryName() + ".")))
		b.WriteString("\n")
	}
	for i, name := range m.names {
		if i == m.cursor {
			b.WriteString(ContentPaddingStyle.Render(SelectedStyle.Render("▸ " + name)))
		} else {
			b.WriteString(ContentPaddingStyle.Render("  " + NormalStyle.Render(name)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := []string{
		m.keys.Select.Help().Key + " edit",
		m.keys.Back.Help().Key + " tables",
	}
	b.WriteString(ContentPaddingStyle.Render(HelpStyle.Render(strings.Join(help, " • "))))
	return b.String()
}

func defaultQueryName() string {
	return strings.TrimSuffix(files.DefaultQueryFile, files.QueryExtension)
}
