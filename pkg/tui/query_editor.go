package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
	"github.com/pluqqy/pluqqy-catalog/pkg/search"
	"github.com/pluqqy/pluqqy-catalog/pkg/searchreplace"
)

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// editorJumpedMsg is the asynchronous half of a jump to a match
type editorJumpedMsg struct {
	Match search.Match
}

// QueryEditor edits one saved query and hosts the search and replace
// overlay over its text
type QueryEditor struct {
	query    *models.Query
	textarea textarea.Model
	overlay  *SearchReplaceOverlay
	finder   *search.Finder
	keys     hotkeys.KeyMap
	logger   *slog.Logger

	dirty    bool
	lastJump *search.Match
	width    int
	height   int
}

var _ searchreplace.Host = (*QueryEditor)(nil)

// NewQueryEditor creates an editor for query. The overlay is created
// but not mounted.
func NewQueryEditor(query *models.Query, router *hotkeys.Router, keys hotkeys.KeyMap, settings *models.Settings, logger *slog.Logger) *QueryEditor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if settings == nil {
		settings = models.DefaultSettings()
	}

	ta := textarea.New()
	ta.ShowLineNumbers = settings.Editor.ShowLineNumbers
	ta.CharLimit = settings.Editor.CharLimit
	ta.MaxHeight = 0
	ta.Placeholder = "-- write SQL here"
	ta.SetValue(query.Content)
	ta.Focus()

	e := &QueryEditor{
		query:    query,
		textarea: ta,
		finder:   search.NewFinder(),
		keys:     keys,
		logger:   logger.With("component", "editor", "query", query.Name),
	}
	e.overlay = NewSearchReplaceOverlay(e, router, keys, search.Options{
		MatchCase: settings.Search.MatchCase,
		UseRegex:  settings.Search.UseRegex,
	})
	return e
}

// Mount attaches the overlay to the key router
func (e *QueryEditor) Mount() {
	e.overlay.Mount()
}

// Dispose detaches the overlay
func (e *QueryEditor) Dispose() {
	e.overlay.Dispose()
}

func (e *QueryEditor) Query() *models.Query {
	return e.query
}

func (e *QueryEditor) Value() string {
	return e.textarea.Value()
}

func (e *QueryEditor) Dirty() bool {
	return e.dirty
}

func (e *QueryEditor) Overlay() *SearchReplaceOverlay {
	return e.overlay
}

// SetSize sets the editor dimensions
func (e *QueryEditor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.overlay.SetWidth(width)
	e.resize()
}

func (e *QueryEditor) resize() {
	// Header, status line and the overlay when it is shown
	reserved := 4
	if e.overlay.Visible() {
		reserved += lipgloss.Height(e.overlay.View())
	}
	e.textarea.SetWidth(max(e.width-2, 10))
	e.textarea.SetHeight(max(e.height-reserved, 3))
}

// SearchResults finds query in the editor text. Invalid patterns match
// nothing.
func (e *QueryEditor) SearchResults(query string, opts search.Options) []search.Match {
	matches, err := e.finder.Find(e.textarea.Value(), query, opts)
	if err != nil {
		e.logger.Debug("invalid search pattern", "pattern", query, "error", err)
	}
	return matches
}

// JumpToResult moves the cursor onto m
func (e *QueryEditor) JumpToResult(m search.Match) tea.Cmd {
	e.moveCursor(m.Line, m.Column)
	return func() tea.Msg {
		return editorJumpedMsg{Match: m}
	}
}

// Replace substitutes replacement for matches in the editor text
func (e *QueryEditor) Replace(matches []search.Match, replacement string) {
	text, n := search.Replace(e.textarea.Value(), matches, replacement)
	if n == 0 {
		return
	}

	e.textarea.SetValue(text)
	e.dirty = true
	if len(matches) > 0 {
		e.moveCursor(matches[0].Line, matches[0].Column)
	}
	e.logger.Info("replaced matches", "count", n)
}

// moveCursor places the cursor at a zero based row and rune column
func (e *QueryEditor) moveCursor(row, column int) {
	// Soft-wrapped lines take several steps per row
	limit := len(e.textarea.Value()) + 1
	for i := 0; e.textarea.Line() > row && i < limit; i++ {
		e.textarea.CursorUp()
	}
	for i := 0; e.textarea.Line() < row && i < limit; i++ {
		e.textarea.CursorDown()
	}
	e.textarea.SetCursor(column)
}

// Update handles editor keys and messages. Keys handled by the overlay
// never reach it.
func (e *QueryEditor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case editorJumpedMsg:
		m := msg.Match
		e.lastJump = &m
		return nil

	case tea.KeyMsg:
		switch {
		case hotkeys.Matches(msg, e.keys.Save):
			return e.save()
		case hotkeys.Matches(msg, e.keys.Copy):
			return e.copyToClipboard()
		}

		before := e.textarea.Value()
		var cmd tea.Cmd
		e.textarea, cmd = e.textarea.Update(msg)
		if e.textarea.Value() != before {
			e.dirty = true
			e.lastJump = nil
			// Content changed under the overlay; keep its matches current
			e.overlay.PerformSearch(searchreplace.TriggerPassive)
		}
		return cmd
	}

	cmds := []tea.Cmd{e.overlay.Update(msg)}
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (e *QueryEditor) save() tea.Cmd {
	name := e.query.Name
	content := e.textarea.Value()
	e.query.Content = content
	e.dirty = false
	logger := e.logger
	return func() tea.Msg {
		if err := files.WriteQuery(name, content); err != nil {
			logger.Error("failed to save query", "error", err)
			return StatusMsg(fmt.Sprintf("× Failed to save query: %v", err))
		}
		return StatusMsg(fmt.Sprintf("✓ Query saved: %s", name))
	}
}

func (e *QueryEditor) copyToClipboard() tea.Cmd {
	content := e.textarea.Value()
	if strings.TrimSpace(content) == "" {
		return func() tea.Msg { return StatusMsg("× Nothing to copy") }
	}
	if err := clipboardWrite(content); err != nil {
		e.logger.Warn("failed to copy query", "error", err)
		return nil
	}
	name := e.query.Name
	return func() tea.Msg {
		return StatusMsg(name + " → clipboard")
	}
}

// View renders the editor with the overlay above the text
func (e *QueryEditor) View() string {
	e.resize()

	var b strings.Builder
	title := "QUERY: " + strings.ToUpper(e.query.Name)
	if e.dirty {
		title += " *"
	}
	b.WriteString(ContentPaddingStyle.Render(HeaderStyle.Render(title)))
	b.WriteString("\n")

	if overlay := e.overlay.View(); overlay != "" {
		b.WriteString(overlay)
		b.WriteString("\n")
	}

	b.WriteString(ContentPaddingStyle.Render(e.textarea.View()))
	b.WriteString("\n")
	b.WriteString(ContentPaddingStyle.Render(e.statusLine()))
	return b.String()
}

func (e *QueryEditor) statusLine() string {
	info := e.textarea.LineInfo()
	parts := []string{
		fmt.Sprintf("Ln %d, Col %d", e.textarea.Line()+1, info.StartColumn+info.ColumnOffset+1),
	}
	if e.lastJump != nil {
		parts = append(parts, fmt.Sprintf("match %q", e.lastJump.Text))
	}
	parts = append(parts,
		e.keys.OpenSearch.Help().Key+" search",
		e.keys.Save.Help().Key+" save",
		e.keys.Copy.Help().Key+" copy",
		e.keys.Back.Help().Key+" back",
	)
	return HelpStyle.Render(strings.Join(parts, " • "))
}
