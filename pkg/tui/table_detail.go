package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// TableDetailModel shows one table with its tags, description and
// columns. New tags are added through the embedded TagCreator.
type TableDetailModel struct {
	table      *models.Table
	creator    *TagCreator
	viewport   viewport.Model
	keys       hotkeys.KeyMap
	color      TagColorFunc
	wrapWidth  int
	showDetail bool
	width      int
	height     int
}

func NewTableDetailModel(create TagCreateFunc, keys hotkeys.KeyMap, color TagColorFunc, settings *models.Settings) *TableDetailModel {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	return &TableDetailModel{
		creator:    NewTagCreator(create, keys),
		viewport:   viewport.New(80, 20),
		keys:       keys,
		color:      color,
		wrapWidth:  settings.UI.DescriptionWidth,
		showDetail: settings.UI.ShowDescriptions,
	}
}

// SetTable shows table and points the tag creator at it
func (m *TableDetailModel) SetTable(table *models.Table, knownTags []string) {
	m.table = table
	m.creator.SetTable(table.ID, table.Tags)
	m.creator.SetKnownTags(knownTags)
	m.viewport.GotoTop()
	m.updateContent()
}

func (m *TableDetailModel) Table() *models.Table {
	return m.table
}

func (m *TableDetailModel) Creator() *TagCreator {
	return m.creator
}

func (m *TableDetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-10, 3)
	m.updateContent()
}

// SetTags refreshes the tag list, e.g. after a tag was created
func (m *TableDetailModel) SetTags(tags []string) {
	if m.table == nil {
		return
	}
	m.table.Tags = tags
	m.creator.SetTags(tags)
}

// Update handles keys for the view. Keys go to the tag creator first;
// while its input is open it consumes everything.
func (m *TableDetailModel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := m.creator.HandleKey(keyMsg); handled {
			return cmd
		}
		if hotkeys.Matches(keyMsg, m.keys.Back) {
			return func() tea.Msg { return SwitchViewMsg{view: tableListView} }
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return m.creator.Update(msg)
}

func (m *TableDetailModel) updateContent() {
	if m.table == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	if m.showDetail && m.table.Description != "" {
		width := m.wrapWidth
		if m.viewport.Width > 0 && m.viewport.Width < width {
			width = m.viewport.Width
		}
		b.WriteString(wordwrap.String(m.table.Description, width))
		b.WriteString("\n\n")
	}

	b.WriteString(HeaderStyle.Render("COLUMNS"))
	b.WriteString("\n")
	if len(m.table.Columns) == 0 {
		b.WriteString(DimStyle.Render("(no columns)"))
	}
	nameStyle := lipgloss.NewStyle().Width(24)
	typeStyle := lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color(ColorDim))
	for _, col := range m.table.Columns {
		b.WriteString(nameStyle.Render(col.Name))
		b.WriteString(typeStyle.Render(col.Type))
		b.WriteString(col.Description)
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func (m *TableDetailModel) View() string {
	if m.table == nil {
		return ContentPaddingStyle.Render(DimStyle.Render("No table selected"))
	}

	var b strings.Builder
	b.WriteString(ContentPaddingStyle.Render(HeaderStyle.Render(fmt.Sprintf("TABLE %d: %s", m.table.ID, strings.ToUpper(m.table.FullName())))))
	b.WriteString("\n\n")

	tags := renderTagChips(m.table.Tags, m.color, 0)
	if tags == "" {
		tags = DimStyle.Render("(no tags)")
	}
	b.WriteString(ContentPaddingStyle.Render("Tags: " + tags))
	b.WriteString("\n")
	b.WriteString(ContentPaddingStyle.Render(m.creator.View()))
	b.WriteString("\n\n")

	b.WriteString(ContentPaddingStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	help := []string{
		m.keys.AddTag.Help().Key + " add tag",
		"↑/↓ scroll",
		m.keys.Back.Help().Key + " back",
	}
	b.WriteString(ContentPaddingStyle.Render(HelpStyle.Render(strings.Join(help, " • "))))
	return b.String()
}
