package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
	"github.com/pluqqy/pluqqy-catalog/pkg/searchreplace"
)

type barField int

const (
	searchField barField = iota
	replaceField
)

// SearchReplaceBar renders the search and replace inputs together with
// the match counter and option toggles
type SearchReplaceBar struct {
	search  textinput.Model
	replace textinput.Model
	field   barField
	focused bool
	keys    hotkeys.KeyMap
	width   int
}

// NewSearchReplaceBar creates a new search bar component
func NewSearchReplaceBar(keys hotkeys.KeyMap) *SearchReplaceBar {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = ""
	search.CharLimit = 200
	search.Width = 40

	replace := textinput.New()
	replace.Placeholder = "Replace..."
	replace.Prompt = ""
	replace.CharLimit = 200
	replace.Width = 40

	return &SearchReplaceBar{
		search:  search,
		replace: replace,
		keys:    keys,
	}
}

// SetWidth sets the width for the search bar
func (b *SearchReplaceBar) SetWidth(width int) {
	b.width = width
	// Borders, padding, icon and the counter/toggle column
	inputWidth := width - 30
	if inputWidth < 10 {
		inputWidth = 10
	}
	b.search.Width = inputWidth
	b.replace.Width = inputWidth
}

func (b *SearchReplaceBar) SearchValue() string {
	return b.search.Value()
}

func (b *SearchReplaceBar) ReplaceValue() string {
	return b.replace.Value()
}

// FocusSearch moves focus to the search input
func (b *SearchReplaceBar) FocusSearch() tea.Cmd {
	b.field = searchField
	b.focused = true
	b.replace.Blur()
	return b.search.Focus()
}

// FocusReplace moves focus to the replace input
func (b *SearchReplaceBar) FocusReplace() tea.Cmd {
	b.field = replaceField
	b.focused = true
	b.search.Blur()
	return b.replace.Focus()
}

// SwitchField toggles focus between the two inputs
func (b *SearchReplaceBar) SwitchField() tea.Cmd {
	if b.field == searchField {
		return b.FocusReplace()
	}
	return b.FocusSearch()
}

// Blur removes focus from both inputs
func (b *SearchReplaceBar) Blur() {
	b.focused = false
	b.search.Blur()
	b.replace.Blur()
}

// Reset clears both inputs without changing focus
func (b *SearchReplaceBar) Reset() {
	b.search.SetValue("")
	b.replace.SetValue("")
}

// Update handles tea messages for the focused input
func (b *SearchReplaceBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if b.field == searchField {
		b.search, cmd = b.search.Update(msg)
	} else {
		b.replace, cmd = b.replace.Update(msg)
	}
	return cmd
}

// matchCounter renders "i/n" for the current match, or a hint when the
// query matched nothing
func matchCounter(state searchreplace.State) string {
	if state.SearchString == "" {
		return ""
	}
	if len(state.SearchResults) == 0 {
		return "No results"
	}
	return fmt.Sprintf("%d/%d", state.CurrentIndex+1, len(state.SearchResults))
}

func renderToggle(label string, on bool) string {
	if on {
		return ToggleOnStyle.Render(label)
	}
	return ToggleOffStyle.Render(label)
}

// View renders the bar for state
func (b *SearchReplaceBar) View(state searchreplace.State) string {
	borderColor := ColorInactive
	if b.focused {
		borderColor = ColorActive
	}

	iconStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal)).
		Bold(true)

	counterStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal)).
		Width(12).
		Align(lipgloss.Right)
	if state.SearchString != "" && len(state.SearchResults) == 0 {
		counterStyle = counterStyle.Foreground(lipgloss.Color(ColorWarning))
	}

	searchRow := lipgloss.JoinHorizontal(lipgloss.Center,
		iconStyle.Render(" ⌕ "),
		b.search.View(),
		counterStyle.Render(matchCounter(state)),
		" ",
		renderToggle("Aa", state.Options.MatchCase),
		renderToggle(".*", state.Options.UseRegex),
	)
	replaceRow := lipgloss.JoinHorizontal(lipgloss.Center,
		iconStyle.Render(" ⇄ "),
		b.replace.View(),
	)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1)
	if b.width > 4 {
		boxStyle = boxStyle.Width(b.width - 4)
	}

	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, searchRow, replaceRow))
	return ContentPaddingStyle.Render(lipgloss.JoinVertical(lipgloss.Left, box, b.helpLine()))
}

func (b *SearchReplaceBar) helpLine() string {
	bindings := []struct {
		keys string
		desc string
	}{
		{b.keys.SearchEnter.Help().Key, "find"},
		{b.keys.NextMatch.Help().Key + " " + b.keys.PrevMatch.Help().Key, "next/prev"},
		{b.keys.SwitchField.Help().Key, "switch"},
		{b.keys.ToggleCase.Help().Key, "case"},
		{b.keys.ToggleRegex.Help().Key, "regex"},
		{b.keys.Replace.Help().Key, "replace"},
		{b.keys.ReplaceAll.Help().Key, "all"},
		{b.keys.CloseSearch.Help().Key, "close"},
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		parts = append(parts, binding.keys+" "+binding.desc)
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}
