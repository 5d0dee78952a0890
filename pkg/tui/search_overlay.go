package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/pluqqy-catalog/pkg/hotkeys"
	"github.com/pluqqy/pluqqy-catalog/pkg/search"
	"github.com/pluqqy/pluqqy-catalog/pkg/searchreplace"
)

// SearchReplaceOverlay is the search and replace bar mounted over a
// host view. It is either hidden or visible; hiding clears its data.
type SearchReplaceOverlay struct {
	controller  *searchreplace.Controller
	bar         *SearchReplaceBar
	router      *hotkeys.Router
	keys        hotkeys.KeyMap
	visible     bool
	unsubscribe func()

	// searched is set once enter ran an active search for the current
	// query; later presses step through the matches
	searched bool
}

// NewSearchReplaceOverlay creates a hidden overlay searching host
func NewSearchReplaceOverlay(host searchreplace.Host, router *hotkeys.Router, keys hotkeys.KeyMap, defaults search.Options) *SearchReplaceOverlay {
	o := &SearchReplaceOverlay{
		bar:    NewSearchReplaceBar(keys),
		router: router,
		keys:   keys,
	}
	o.controller = searchreplace.NewController(host, defaults)
	o.controller.SetFocusFunc(o.focusSearch)
	return o
}

// focusSearch refocuses the search input after a search settles. A
// hidden bar keeps its focus state.
func (o *SearchReplaceOverlay) focusSearch() tea.Cmd {
	if !o.visible {
		return nil
	}
	return o.bar.FocusSearch()
}

// Mount subscribes the overlay to the key router. Mounting twice keeps
// a single subscription.
func (o *SearchReplaceOverlay) Mount() {
	if o.unsubscribe != nil {
		return
	}
	o.unsubscribe = o.router.Subscribe(o.handleKey)
}

// Dispose releases the key subscription and drops pending completions
func (o *SearchReplaceOverlay) Dispose() {
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
	o.controller.Dispose()
}

func (o *SearchReplaceOverlay) Visible() bool {
	return o.visible
}

// State returns the current search and replace state
func (o *SearchReplaceOverlay) State() searchreplace.State {
	return o.controller.State()
}

// Context returns the state and the focus callback
func (o *SearchReplaceOverlay) Context() searchreplace.Context {
	return o.controller.Context()
}

// Show makes the overlay visible with the search input focused
func (o *SearchReplaceOverlay) Show() tea.Cmd {
	o.visible = true
	return o.bar.FocusSearch()
}

// Hide is the bar's hide control; it also clears the data
func (o *SearchReplaceOverlay) Hide() {
	o.visible = false
	o.bar.Blur()
	o.Reset()
}

// Reset clears the search data. Visibility is left unchanged.
func (o *SearchReplaceOverlay) Reset() {
	o.controller.Reset()
	o.bar.Reset()
	o.searched = false
}

// PerformSearch re-runs the search. It works while hidden so the
// embedder can keep results current as its content changes.
func (o *SearchReplaceOverlay) PerformSearch(reason searchreplace.Trigger) tea.Cmd {
	return o.controller.PerformSearch(reason)
}

// SetWidth sets the rendered width
func (o *SearchReplaceOverlay) SetWidth(width int) {
	o.bar.SetWidth(width)
}

// Update routes navigation completions and input blinking
func (o *SearchReplaceOverlay) Update(msg tea.Msg) tea.Cmd {
	if handled, cmd := o.controller.Update(msg); handled {
		return cmd
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		// Keys arrive through the router
		return nil
	}
	if !o.visible {
		return nil
	}
	return o.bar.Update(msg)
}

// View renders the bar, or nothing while hidden
func (o *SearchReplaceOverlay) View() string {
	if !o.visible {
		return ""
	}
	return o.bar.View(o.controller.State())
}

func (o *SearchReplaceOverlay) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !o.visible {
		if hotkeys.Matches(msg, o.keys.OpenSearch) {
			return true, o.Show()
		}
		return false, nil
	}

	switch {
	case hotkeys.Matches(msg, o.keys.Quit):
		return false, nil

	case hotkeys.Matches(msg, o.keys.OpenSearch):
		return true, o.bar.FocusSearch()

	case hotkeys.Matches(msg, o.keys.CloseSearch):
		o.Hide()
		return true, nil

	case hotkeys.Matches(msg, o.keys.SwitchField):
		return true, o.bar.SwitchField()

	case hotkeys.Matches(msg, o.keys.ToggleCase):
		opts := o.controller.State().Options
		opts.MatchCase = !opts.MatchCase
		o.setOptions(opts)
		return true, nil

	case hotkeys.Matches(msg, o.keys.ToggleRegex):
		opts := o.controller.State().Options
		opts.UseRegex = !opts.UseRegex
		o.setOptions(opts)
		return true, nil

	case hotkeys.Matches(msg, o.keys.ReplaceAll):
		return true, o.replace(true)

	case hotkeys.Matches(msg, o.keys.Replace):
		return true, o.replace(false)

	case hotkeys.Matches(msg, o.keys.NextMatch):
		return true, o.controller.MoveResultIndex(1)

	case hotkeys.Matches(msg, o.keys.PrevMatch):
		return true, o.controller.MoveResultIndex(-1)

	case hotkeys.Matches(msg, o.keys.SearchEnter):
		if o.bar.field == replaceField {
			return true, o.replace(false)
		}
		if !o.searched {
			o.searched = true
			return true, o.controller.PerformSearch(searchreplace.TriggerActive)
		}
		return true, o.controller.MoveResultIndex(1)
	}

	cmd := o.bar.Update(msg)
	o.syncInputs()
	return true, cmd
}

func (o *SearchReplaceOverlay) setOptions(opts search.Options) {
	o.controller.OnSearchOptionsChange(opts)
	o.searched = false
}

// syncInputs pushes edited input values into the controller
func (o *SearchReplaceOverlay) syncInputs() {
	state := o.controller.State()
	if v := o.bar.SearchValue(); v != state.SearchString {
		o.controller.OnSearchStringChange(v)
		o.searched = false
	}
	if v := o.bar.ReplaceValue(); v != state.ReplaceString {
		o.controller.OnReplaceStringChange(v)
	}
}

// replace runs the replacement and re-searches the changed content
func (o *SearchReplaceOverlay) replace(all bool) tea.Cmd {
	cmd := o.controller.OnReplace(all)
	o.controller.Refresh()
	return cmd
}
