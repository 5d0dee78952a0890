// Package searchreplace holds the state behind the search and replace
// overlay: the query, its options, the current match list and the
// cursor into it. The searchable content belongs to a Host; the
// controller only decides what to ask the host for and when.
package searchreplace

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/pluqqy-catalog/pkg/search"
)

// Trigger says why a search runs
type Trigger int

const (
	// TriggerPassive re-runs the search because the query, its options or
	// the searched content changed. The viewport is left alone.
	TriggerPassive Trigger = iota

	// TriggerActive is a search the user asked for from the search bar.
	// The host is asked to navigate to the current match and focus
	// returns to the search bar once that navigation has settled.
	TriggerActive
)

func (t Trigger) String() string {
	switch t {
	case TriggerActive:
		return "active"
	default:
		return "passive"
	}
}

// Host owns the searchable content
type Host interface {
	// SearchResults returns the matches for query. It must be stable for
	// a given query, options and content.
	SearchResults(query string, opts search.Options) []search.Match

	// JumpToResult moves the host view to m. Synchronous view changes
	// happen during the call; the returned command, if any, is the
	// remaining asynchronous work and navigation counts as settled once
	// it has run.
	JumpToResult(m search.Match) tea.Cmd

	// Replace substitutes replacement for each of matches
	Replace(matches []search.Match, replacement string)
}

// State is the overlay's search and replace state
type State struct {
	SearchString  string
	ReplaceString string
	SearchResults []search.Match
	CurrentIndex  int
	Options       search.Options
}

// Context is what the bar needs to render and to hand focus back
type Context struct {
	State          State
	FocusSearchBar func() tea.Cmd
}

// SettledMsg is delivered when navigation started by the controller has
// completed. The owner must route it back through Controller.Update.
type SettledMsg struct {
	generation uint64
	focus      bool

	// Result is whatever message the host's navigation command produced
	Result tea.Msg
}

// Controller tracks search and replace state. It is not safe for
// concurrent use; like any bubbletea model it is driven from Update.
type Controller struct {
	host     Host
	defaults search.Options
	state    State
	focus    func() tea.Cmd

	// generation invalidates completions that were in flight across a
	// Reset or Dispose
	generation uint64
	disposed   bool
}

// NewController creates a controller over host. defaults are the search
// options restored by Reset.
func NewController(host Host, defaults search.Options) *Controller {
	c := &Controller{
		host:     host,
		defaults: defaults,
	}
	c.state = c.initialState()
	return c
}

func (c *Controller) initialState() State {
	return State{
		SearchResults: []search.Match{},
		Options:       c.defaults,
	}
}

// SetFocusFunc installs the callback that returns focus to the search bar
func (c *Controller) SetFocusFunc(focus func() tea.Cmd) {
	c.focus = focus
}

// Context returns the current state and the focus callback
func (c *Controller) Context() Context {
	return Context{
		State:          c.State(),
		FocusSearchBar: c.focusSearchBar,
	}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	s := c.state
	s.SearchResults = make([]search.Match, len(c.state.SearchResults))
	copy(s.SearchResults, c.state.SearchResults)
	return s
}

// CurrentMatch returns the match under the cursor, if any
func (c *Controller) CurrentMatch() (search.Match, bool) {
	if c.state.CurrentIndex < len(c.state.SearchResults) {
		return c.state.SearchResults[c.state.CurrentIndex], true
	}
	return search.Match{}, false
}

func (c *Controller) focusSearchBar() tea.Cmd {
	if c.focus == nil {
		return nil
	}
	return c.focus()
}

// PerformSearch recomputes the match list. An active search also
// navigates to the current match and then refocuses the search bar.
func (c *Controller) PerformSearch(reason Trigger) tea.Cmd {
	results := c.host.SearchResults(c.state.SearchString, c.state.Options)
	if results == nil {
		results = []search.Match{}
	}
	c.state.SearchResults = results

	// Keep the cursor inside the list when the content shrank under it
	if c.state.CurrentIndex >= len(results) {
		c.state.CurrentIndex = max(len(results)-1, 0)
	}

	if reason != TriggerActive {
		return nil
	}

	var nav tea.Cmd
	if m, ok := c.CurrentMatch(); ok {
		nav = c.host.JumpToResult(m)
	}
	return c.settle(nav, true)
}

// Refresh re-runs the current query passively, e.g. after the content
// changed
func (c *Controller) Refresh() {
	c.PerformSearch(TriggerPassive)
}

// OnSearchStringChange updates the query and rewinds the cursor
func (c *Controller) OnSearchStringChange(s string) {
	changed := s != c.state.SearchString
	c.state.SearchString = s
	c.state.CurrentIndex = 0
	if changed {
		c.PerformSearch(TriggerPassive)
	}
}

// OnSearchOptionsChange updates the options and rewinds the cursor
func (c *Controller) OnSearchOptionsChange(opts search.Options) {
	changed := opts != c.state.Options
	c.state.Options = opts
	c.state.CurrentIndex = 0
	if changed {
		c.PerformSearch(TriggerPassive)
	}
}

// OnReplaceStringChange updates the pending replacement text
func (c *Controller) OnReplaceStringChange(s string) {
	c.state.ReplaceString = s
}

// MoveResultIndex moves the cursor by delta, wrapping in both
// directions, and navigates to the new match. The returned command
// completes once navigation has settled; with no matches it completes
// immediately without navigating.
func (c *Controller) MoveResultIndex(delta int) tea.Cmd {
	return c.moveIn(c.state.SearchResults, delta)
}

// moveIn moves the cursor relative to results, which may be a snapshot
// taken before the host changed the content
func (c *Controller) moveIn(results []search.Match, delta int) tea.Cmd {
	n := len(results)
	if n == 0 {
		return c.settle(nil, false)
	}

	index := (c.state.CurrentIndex + delta) % n
	if index < 0 {
		index += n
	}
	c.state.CurrentIndex = index

	return c.settle(c.host.JumpToResult(results[index]), false)
}

// OnReplace replaces every match (all) or the current one. Replacing
// the last match moves the cursor one step forward, wrapping to the
// first match; the step is taken against the list as it was before the
// replacement.
func (c *Controller) OnReplace(all bool) tea.Cmd {
	results := c.state.SearchResults
	if len(results) == 0 {
		return nil
	}

	if all {
		c.host.Replace(results, c.state.ReplaceString)
		return nil
	}

	index := c.state.CurrentIndex
	if index >= len(results) {
		return nil
	}

	c.host.Replace([]search.Match{results[index]}, c.state.ReplaceString)
	if index == len(results)-1 {
		return c.moveIn(results, 1)
	}
	return nil
}

// Reset restores the initial state. Navigation still in flight will not
// refocus the bar when it settles.
func (c *Controller) Reset() {
	c.state = c.initialState()
	c.generation++
}

// Dispose detaches the controller; later completions are dropped
func (c *Controller) Dispose() {
	c.disposed = true
	c.generation++
}

// Update consumes SettledMsg. It reports whether msg was one.
func (c *Controller) Update(msg tea.Msg) (bool, tea.Cmd) {
	settled, ok := msg.(SettledMsg)
	if !ok {
		return false, nil
	}
	if c.disposed || settled.generation != c.generation {
		return true, nil
	}

	var cmds []tea.Cmd
	if settled.Result != nil {
		result := settled.Result
		cmds = append(cmds, func() tea.Msg { return result })
	}
	if settled.focus {
		cmds = append(cmds, c.focusSearchBar())
	}
	return true, tea.Batch(cmds...)
}

// settle wraps navigation so that its completion is reported as a
// SettledMsg carrying the current generation
func (c *Controller) settle(nav tea.Cmd, focus bool) tea.Cmd {
	generation := c.generation
	return func() tea.Msg {
		var result tea.Msg
		if nav != nil {
			result = nav()
		}
		return SettledMsg{generation: generation, focus: focus, Result: result}
	}
}
