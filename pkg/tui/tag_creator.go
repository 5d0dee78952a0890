package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// maxTagSuggestions limits the suggestion list under the input
const maxTagSuggestions = 5

// TagCreateFunc attaches tag to a table. It is the shared tag action;
// the creator does not look at its error.
type TagCreateFunc func(ctx context.Context, tableID int64, tag string) error

// tagCreatedMsg reports that a create request settled
type tagCreatedMsg struct {
	tableID    int64
	tag        string
	generation uint64
	err        error
}

// TagCreator shows an "add tag" affordance that expands into a
// validated input with suggestions from the known tags
type TagCreator struct {
	tableID  int64
	create   TagCreateFunc
	keys     hotkeys.KeyMap
	existing []string
	known    []string

	showSelect bool
	pending    bool
	input      textinput.Model
	spinner    spinner.Model

	suggestions []string
	cursor      int
	navigated   bool

	// generation invalidates create requests that were in flight when
	// the creator moved to another table
	generation uint64
}

// NewTagCreator creates a collapsed tag creator
func NewTagCreator(create TagCreateFunc, keys hotkeys.KeyMap) *TagCreator {
	ti := textinput.New()
	ti.Placeholder = "new tag"
	ti.Prompt = "+ "
	ti.CharLimit = models.MaxTagNameLength
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	return &TagCreator{
		create:   create,
		keys:     keys,
		input:    ti,
		spinner:  sp,
		existing: []string{},
	}
}

// SetTable points the creator at a table and its current tags. Any
// request still in flight for the previous table is ignored.
func (c *TagCreator) SetTable(tableID int64, tags []string) {
	if tableID != c.tableID {
		c.generation++
		c.pending = false
		c.collapse()
	}
	c.tableID = tableID
	c.SetTags(tags)
}

// SetTags recomputes the existing tag names
func (c *TagCreator) SetTags(tags []string) {
	c.existing = append([]string{}, tags...)
	c.refreshSuggestions()
}

// SetKnownTags sets the names offered as suggestions
func (c *TagCreator) SetKnownTags(known []string) {
	c.known = append([]string{}, known...)
	c.refreshSuggestions()
}

// ShowSelect reports whether the input is expanded
func (c *TagCreator) ShowSelect() bool {
	return c.showSelect
}

// Pending reports whether a create request is in flight
func (c *TagCreator) Pending() bool {
	return c.pending
}

// Open expands the input
func (c *TagCreator) Open() tea.Cmd {
	if c.pending {
		return nil
	}
	c.showSelect = true
	c.input.SetValue("")
	c.refreshSuggestions()
	return c.input.Focus()
}

func (c *TagCreator) collapse() {
	c.showSelect = false
	c.input.Blur()
	c.input.SetValue("")
	c.suggestions = nil
	c.cursor = 0
	c.navigated = false
}

// Valid reports whether the current candidate would be accepted
func (c *TagCreator) Valid() bool {
	return models.IsValidNewTag(c.candidate(), c.existing)
}

// candidate is the highlighted suggestion once the user navigated the
// list, otherwise the typed text
func (c *TagCreator) candidate() string {
	if c.navigated && c.cursor < len(c.suggestions) {
		return c.suggestions[c.cursor]
	}
	return c.input.Value()
}

// HandleKey processes a key while the creator has focus. It reports
// whether the key was consumed.
func (c *TagCreator) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.pending {
		return true, nil
	}
	if !c.showSelect {
		if hotkeys.Matches(msg, c.keys.AddTag) {
			return true, c.Open()
		}
		return false, nil
	}

	switch msg.String() {
	case "esc":
		c.collapse()
		return true, nil

	case "enter":
		return true, c.submit()

	case "up":
		if len(c.suggestions) > 0 {
			c.navigated = true
			c.cursor = (c.cursor - 1 + len(c.suggestions)) % len(c.suggestions)
		}
		return true, nil

	case "down":
		if len(c.suggestions) > 0 {
			if c.navigated {
				c.cursor = (c.cursor + 1) % len(c.suggestions)
			}
			c.navigated = true
		}
		return true, nil

	case "tab":
		// Complete the input from the highlighted suggestion
		if len(c.suggestions) > 0 {
			c.input.SetValue(c.suggestions[c.cursor])
			c.input.CursorEnd()
			c.refreshSuggestions()
		}
		return true, nil
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() != before {
		c.refreshSuggestions()
	}
	return true, cmd
}

// submit sends the create request for a valid candidate. Invalid input
// is never submitted.
func (c *TagCreator) submit() tea.Cmd {
	tag := c.candidate()
	if !models.IsValidNewTag(tag, c.existing) {
		return nil
	}

	c.pending = true
	c.input.Blur()

	create := c.create
	tableID := c.tableID
	generation := c.generation
	request := func() tea.Msg {
		var err error
		if create != nil {
			err = create(context.Background(), tableID, tag)
		}
		return tagCreatedMsg{tableID: tableID, tag: tag, generation: generation, err: err}
	}
	return tea.Batch(request, c.spinner.Tick)
}

// Update consumes the create completion and spinner ticks. The input
// collapses once the request settles, whatever the outcome.
func (c *TagCreator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tagCreatedMsg:
		if msg.generation != c.generation {
			return nil
		}
		c.pending = false
		c.collapse()
		if msg.err == nil {
			c.SetTags(append(c.existing, msg.tag))
		}
		return nil

	case spinner.TickMsg:
		if !c.pending {
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (c *TagCreator) refreshSuggestions() {
	c.cursor = 0
	c.navigated = false
	if !c.showSelect {
		c.suggestions = nil
		return
	}

	taken := make(map[string]bool, len(c.existing))
	for _, tag := range c.existing {
		taken[tag] = true
	}
	available := make([]string, 0, len(c.known))
	for _, tag := range c.known {
		if !taken[tag] {
			available = append(available, tag)
		}
	}

	query := strings.TrimSpace(c.input.Value())
	if query == "" {
		c.suggestions = limitStrings(available, maxTagSuggestions)
		return
	}

	matches := fuzzy.Find(query, available)
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	c.suggestions = limitStrings(suggestions, maxTagSuggestions)
}

func limitStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Suggestions returns the names offered under the input
func (c *TagCreator) Suggestions() []string {
	return c.suggestions
}

// View renders either the add affordance or the input
func (c *TagCreator) View() string {
	if c.pending {
		return c.spinner.View() + " " + DimStyle.Render("adding "+c.candidateLabel())
	}
	if !c.showSelect {
		return DimStyle.Render("[" + c.keys.AddTag.Help().Key + "] add tag")
	}

	var b strings.Builder
	inputStyle := lipgloss.NewStyle()
	if c.input.Value() != "" && !c.Valid() {
		inputStyle = ErrorStyle
	}
	b.WriteString(inputStyle.Render(c.input.View()))

	for i, s := range c.suggestions {
		b.WriteString("\n")
		line := "  " + s
		if c.navigated && i == c.cursor {
			b.WriteString(SelectedStyle.Render("▸ " + s))
			continue
		}
		b.WriteString(NormalStyle.Render(line))
	}
	return b.String()
}

func (c *TagCreator) candidateLabel() string {
	if tag := c.candidate(); tag != "" {
		return tag
	}
	return "tag"
}
