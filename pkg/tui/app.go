package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
	"github.com/pluqqy/pluqqy-catalog/pkg/tags"
)

type sessionState int

const (
	tableListView sessionState = iota
	tableDetailView
	queryListView
	queryEditorView
)

type App struct {
	state    sessionState
	router   *hotkeys.Router
	keys     hotkeys.KeyMap
	settings *models.Settings
	store    *tags.Store
	logger   *slog.Logger

	tableList *TableListModel
	detail    *TableDetailModel
	queryList *QueryListModel
	editor    *QueryEditor
	confirm   *ConfirmationModel

	width       int
	height      int
	statusMsg   string
	statusLevel slog.Level
	statusSeq   int
}

func NewApp(store *tags.Store, settings *models.Settings, logger *slog.Logger) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	keys := hotkeys.KeyMapFromSettings(settings.Search)

	return &App{
		state:     tableListView,
		router:    hotkeys.NewRouter(),
		keys:      keys,
		settings:  settings,
		store:     store,
		logger:    logger,
		tableList: NewTableListModel(keys, store.Color),
		detail:    NewTableDetailModel(store.CreateTableTag, keys, store.Color, settings),
		queryList: NewQueryListModel(keys),
		confirm:   NewConfirmation(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadTables
}

func (a *App) loadTables() tea.Msg {
	tables, err := files.LoadTables()
	return tablesLoadedMsg{tables: tables, err: err}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Leave a line for the status bar
		a.tableList.SetSize(msg.Width, msg.Height-1)
		a.detail.SetSize(msg.Width, msg.Height-1)
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height-1)
		}
		return a, nil

	case tea.KeyMsg:
		if hotkeys.Matches(msg, a.keys.Quit) {
			a.closeEditor()
			return a, tea.Quit
		}
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}
		// Global subscribers (the search overlay) see keys first
		if handled, cmd := a.router.Dispatch(msg); handled {
			return a, cmd
		}
		if a.state == queryEditorView && hotkeys.Matches(msg, a.keys.Back) {
			return a, a.leaveEditor()
		}

	case StatusMsg:
		return a, a.setStatus(string(msg), slog.LevelInfo)

	case logRecordMsg:
		return a, a.setStatus(msg.Summary, msg.Level)

	case statusFadeMsg:
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil

	case tablesLoadedMsg:
		if msg.err != nil {
			a.logger.Error("failed to load tables", "error", msg.err)
			return a, nil
		}
		a.tableList.SetTables(msg.tables)
		return a, nil

	case SwitchViewMsg:
		return a, a.switchView(msg)

	case tagCreatedMsg:
		cmd := a.detail.Update(msg)
		if msg.err != nil {
			// The tag store already logged the failure
			return a, cmd
		}
		if table := a.detail.Table(); table != nil && table.ID == msg.tableID {
			if current, err := a.store.TableTags(msg.tableID); err == nil {
				a.detail.SetTags(current)
			}
		}
		status := func() tea.Msg {
			return StatusMsg(fmt.Sprintf("✓ Tagged table %d with %s", msg.tableID, msg.tag))
		}
		return a, tea.Batch(cmd, a.loadTables, status)
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case tableListView:
		cmd = a.tableList.Update(msg)
	case tableDetailView:
		cmd = a.detail.Update(msg)
	case queryListView:
		cmd = a.queryList.Update(msg)
	case queryEditorView:
		if a.editor != nil {
			cmd = a.editor.Update(msg)
		}
	}
	return a, cmd
}

func (a *App) switchView(msg SwitchViewMsg) tea.Cmd {
	switch msg.view {
	case tableListView:
		a.closeEditor()
		a.state = tableListView
		return a.loadTables

	case tableDetailView:
		table, err := files.ReadTable(msg.tableID)
		if err != nil {
			a.logger.Error("failed to open table", "table", msg.tableID, "error", err)
			return nil
		}
		a.detail.SetTable(table, a.store.KnownTags())
		a.detail.SetSize(a.width, a.height-1)
		a.state = tableDetailView
		return nil

	case queryListView:
		a.closeEditor()
		names, err := files.ListQueries()
		if err != nil {
			a.logger.Error("failed to list queries", "error", err)
			return nil
		}
		a.queryList.SetQueries(names)
		a.state = queryListView
		return nil

	case queryEditorView:
		query, err := files.LoadQueryOrEmpty(msg.query)
		if err != nil {
			a.logger.Error("failed to open query", "query", msg.query, "error", err)
			return nil
		}
		a.closeEditor()
		a.editor = NewQueryEditor(query, a.router, a.keys, a.settings, a.logger)
		a.editor.SetSize(a.width, a.height-1)
		a.editor.Mount()
		a.state = queryEditorView
		return nil
	}
	return nil
}

// leaveEditor returns to the query list. Unsaved edits are only
// dropped after confirmation.
func (a *App) leaveEditor() tea.Cmd {
	if a.editor == nil || !a.editor.Dirty() {
		return a.switchView(SwitchViewMsg{view: queryListView})
	}

	name := a.editor.Query().Name
	a.confirm.Show(ConfirmationConfig{
		Message:     fmt.Sprintf("Discard unsaved changes to %s?", name),
		Destructive: true,
	}, func() tea.Cmd {
		status := func() tea.Msg {
			return StatusMsg(fmt.Sprintf("× Unsaved changes to %s discarded", name))
		}
		return tea.Batch(status, a.switchView(SwitchViewMsg{view: queryListView}))
	}, nil)
	return nil
}

// closeEditor tears down the editor and its key subscription
func (a *App) closeEditor() {
	if a.editor != nil {
		a.editor.Dispose()
		a.editor = nil
	}
}

func (a *App) setStatus(text string, level slog.Level) tea.Cmd {
	a.statusMsg = text
	a.statusLevel = level
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{seq: seq}
	})
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case tableListView:
		content = a.tableList.View()
	case tableDetailView:
		content = a.detail.View()
	case queryListView:
		content = a.queryList.View()
	case queryEditorView:
		if a.editor != nil {
			content = a.editor.View()
		}
	default:
		content = "Unknown view"
	}

	if prompt := a.confirm.View(); prompt != "" {
		content = lipgloss.JoinVertical(lipgloss.Top, content, ContentPaddingStyle.Render(prompt))
	}

	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBarStyle(a.statusLevel).Render(a.statusMsg))
	}

	return content
}

// Messages for communication between views
type StatusMsg string

type SwitchViewMsg struct {
	view    sessionState
	tableID int64  // table for the detail view
	query   string // query name for the editor
}

type tablesLoadedMsg struct {
	tables []*models.Table
	err    error
}
