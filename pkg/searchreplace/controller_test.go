package searchreplace

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-catalog/pkg/search"
)

type navigatedMsg struct{ match search.Match }

// fakeHost searches a plain string and records every call
type fakeHost struct {
	content string

	searches []string
	jumps    []search.Match
	replaced [][]search.Match
	async    bool
}

func (h *fakeHost) SearchResults(query string, opts search.Options) []search.Match {
	h.searches = append(h.searches, query)
	matches, _ := search.Find(h.content, query, opts)
	return matches
}

func (h *fakeHost) JumpToResult(m search.Match) tea.Cmd {
	h.jumps = append(h.jumps, m)
	if !h.async {
		return nil
	}
	return func() tea.Msg { return navigatedMsg{match: m} }
}

func (h *fakeHost) Replace(matches []search.Match, replacement string) {
	h.replaced = append(h.replaced, matches)
	h.content, _ = search.Replace(h.content, matches, replacement)
}

func newTestController(content string) (*Controller, *fakeHost) {
	host := &fakeHost{content: content}
	return NewController(host, search.Options{}), host
}

// run executes cmd and feeds the resulting message back through Update
func run(t *testing.T, c *Controller, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	handled, _ := c.Update(msg)
	require.True(t, handled, "expected a SettledMsg, got %T", msg)
	return msg
}

func TestNewController_InitialState(t *testing.T) {
	c, _ := newTestController("")
	s := c.State()

	assert.Empty(t, s.SearchString)
	assert.Empty(t, s.ReplaceString)
	assert.Empty(t, s.SearchResults)
	assert.NotNil(t, s.SearchResults)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, search.Options{}, s.Options)
}

func TestOnSearchStringChange(t *testing.T) {
	c, host := newTestController("foo foo foo")

	c.OnSearchStringChange("foo")
	assert.Len(t, c.State().SearchResults, 3)
	assert.Equal(t, []string{"foo"}, host.searches)

	c.MoveResultIndex(2)
	assert.Equal(t, 2, c.State().CurrentIndex)

	c.OnSearchStringChange("fo")
	assert.Equal(t, 0, c.State().CurrentIndex)
	assert.Equal(t, []string{"foo", "fo"}, host.searches, "exactly one passive search per change")
	assert.Empty(t, host.jumps[1:], "passive search must not navigate")
}

func TestOnSearchStringChange_SameValue(t *testing.T) {
	c, host := newTestController("foo foo")

	c.OnSearchStringChange("foo")
	c.MoveResultIndex(1)
	c.OnSearchStringChange("foo")

	assert.Equal(t, 0, c.State().CurrentIndex)
	assert.Len(t, host.searches, 1)
}

func TestOnSearchOptionsChange(t *testing.T) {
	c, host := newTestController("Foo foo FOO")

	c.OnSearchStringChange("foo")
	require.Len(t, c.State().SearchResults, 3)
	c.MoveResultIndex(1)

	c.OnSearchOptionsChange(search.Options{MatchCase: true})
	s := c.State()
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Len(t, s.SearchResults, 1)
	assert.True(t, s.Options.MatchCase)
	assert.Len(t, host.searches, 2)

	c.OnSearchOptionsChange(search.Options{MatchCase: true})
	assert.Len(t, host.searches, 2, "unchanged options must not search")
}

func TestOnReplaceStringChange(t *testing.T) {
	c, host := newTestController("foo")

	c.OnReplaceStringChange("bar")
	assert.Equal(t, "bar", c.State().ReplaceString)
	assert.Empty(t, host.searches)
	assert.Empty(t, host.replaced)
}

func TestMoveResultIndex(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"forward", 0, 1, 1},
		{"wrap forward", 2, 1, 0},
		{"backward", 2, -1, 1},
		{"wrap backward", 0, -1, 2},
		{"large negative", 1, -7, 0},
		{"large positive", 1, 8, 0},
		{"zero", 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, host := newTestController("a a a")
			c.OnSearchStringChange("a")
			c.state.CurrentIndex = tt.start

			cmd := c.MoveResultIndex(tt.delta)
			assert.Equal(t, tt.want, c.State().CurrentIndex)
			require.Len(t, host.jumps, 1)
			assert.Equal(t, tt.want, host.jumps[0].Index)

			run(t, c, cmd)
		})
	}
}

func TestMoveResultIndex_FullCycle(t *testing.T) {
	for n := 1; n <= 5; n++ {
		c, _ := newTestController(strings.Repeat("x ", n))
		c.OnSearchStringChange("x")
		require.Len(t, c.State().SearchResults, n)
		c.state.CurrentIndex = n / 2
		start := c.State().CurrentIndex

		for i := 0; i < n; i++ {
			c.MoveResultIndex(1)
		}
		assert.Equal(t, start, c.State().CurrentIndex, "n=%d", n)
	}
}

func TestMoveResultIndex_NoResults(t *testing.T) {
	c, host := newTestController("nothing here")
	c.OnSearchStringChange("zzz")

	cmd := c.MoveResultIndex(1)
	msg := run(t, c, cmd)

	settled := msg.(SettledMsg)
	assert.Nil(t, settled.Result)
	assert.Empty(t, host.jumps)
	assert.Equal(t, 0, c.State().CurrentIndex)
}

func TestMoveResultIndex_WaitsForNavigation(t *testing.T) {
	c, host := newTestController("a a")
	host.async = true
	c.OnSearchStringChange("a")

	cmd := c.MoveResultIndex(1)
	msg := run(t, c, cmd)

	settled := msg.(SettledMsg)
	require.IsType(t, navigatedMsg{}, settled.Result)
	assert.Equal(t, 1, settled.Result.(navigatedMsg).match.Index)
}

func TestPerformSearch_Passive(t *testing.T) {
	c, host := newTestController("foo")
	c.state.SearchString = "foo"

	cmd := c.PerformSearch(TriggerPassive)
	assert.Nil(t, cmd)
	assert.Len(t, c.State().SearchResults, 1)
	assert.Empty(t, host.jumps)
}

func TestPerformSearch_ActiveFocusesAfterNavigation(t *testing.T) {
	c, host := newTestController("foo bar foo")
	host.async = true

	focused := 0
	c.SetFocusFunc(func() tea.Cmd {
		focused++
		return nil
	})

	c.OnSearchStringChange("foo")
	c.state.CurrentIndex = 1

	cmd := c.PerformSearch(TriggerActive)
	require.Len(t, host.jumps, 1)
	assert.Equal(t, 1, host.jumps[0].Index)
	assert.Equal(t, 0, focused, "focus must wait for navigation")

	msg := run(t, c, cmd)
	assert.Equal(t, 1, focused)
	assert.IsType(t, navigatedMsg{}, msg.(SettledMsg).Result)
}

func TestPerformSearch_ActiveWithoutMatches(t *testing.T) {
	c, host := newTestController("foo")
	focused := 0
	c.SetFocusFunc(func() tea.Cmd {
		focused++
		return nil
	})
	c.state.SearchString = "bar"

	run(t, c, c.PerformSearch(TriggerActive))
	assert.Empty(t, host.jumps)
	assert.Equal(t, 1, focused)
}

func TestPerformSearch_ClampsIndex(t *testing.T) {
	c, host := newTestController("a a a")
	c.OnSearchStringChange("a")
	c.state.CurrentIndex = 2

	host.content = "a"
	c.Refresh()
	assert.Equal(t, 0, c.State().CurrentIndex)

	host.content = ""
	c.Refresh()
	assert.Equal(t, 0, c.State().CurrentIndex)
	assert.Empty(t, c.State().SearchResults)
}

func TestOnReplace_Single(t *testing.T) {
	c, host := newTestController("foo foo foo")
	c.OnSearchStringChange("foo")
	c.OnReplaceStringChange("bar")
	c.state.CurrentIndex = 1

	cmd := c.OnReplace(false)
	assert.Nil(t, cmd)
	require.Len(t, host.replaced, 1)
	assert.Equal(t, []search.Match{c.state.SearchResults[1]}, host.replaced[0])
	assert.Equal(t, "foo bar foo", host.content)
	assert.Equal(t, 1, c.State().CurrentIndex)
}

func TestOnReplace_LastWrapsToFirst(t *testing.T) {
	c, host := newTestController("foo foo foo")
	c.OnSearchOptionsChange(search.Options{MatchCase: false, UseRegex: false})
	c.OnSearchStringChange("foo")
	c.OnReplaceStringChange("x")
	require.Len(t, c.State().SearchResults, 3)
	c.state.CurrentIndex = 2

	cmd := c.OnReplace(false)
	require.NotNil(t, cmd)

	require.Len(t, host.replaced, 1)
	assert.Equal(t, 2, host.replaced[0][0].Index)
	assert.Equal(t, "foo foo x", host.content)
	assert.Equal(t, 0, c.State().CurrentIndex)
	require.Len(t, host.jumps, 1)
	assert.Equal(t, 0, host.jumps[0].Index)

	run(t, c, cmd)
}

func TestOnReplace_All(t *testing.T) {
	c, host := newTestController("foo foo foo")
	c.OnSearchStringChange("foo")
	c.OnReplaceStringChange("x")
	c.state.CurrentIndex = 2

	cmd := c.OnReplace(true)
	assert.Nil(t, cmd)
	require.Len(t, host.replaced, 1, "replace all is a single host call")
	assert.Len(t, host.replaced[0], 3)
	assert.Equal(t, "x x x", host.content)
	assert.Equal(t, 2, c.State().CurrentIndex)
}

func TestOnReplace_NoResults(t *testing.T) {
	c, host := newTestController("foo")
	c.OnSearchStringChange("bar")

	assert.Nil(t, c.OnReplace(false))
	assert.Nil(t, c.OnReplace(true))
	assert.Empty(t, host.replaced)
}

func TestReset(t *testing.T) {
	defaults := search.Options{UseRegex: true}
	host := &fakeHost{content: "foo foo"}
	c := NewController(host, defaults)

	c.OnSearchStringChange("foo")
	c.OnSearchOptionsChange(search.Options{MatchCase: true})
	c.OnReplaceStringChange("bar")
	c.MoveResultIndex(1)

	c.Reset()
	assert.Equal(t, State{SearchResults: []search.Match{}, Options: defaults}, c.State())
}

func TestReset_DropsInFlightCompletion(t *testing.T) {
	c, _ := newTestController("foo")
	focused := 0
	c.SetFocusFunc(func() tea.Cmd {
		focused++
		return nil
	})
	c.OnSearchStringChange("foo")

	cmd := c.PerformSearch(TriggerActive)
	c.Reset()

	handled, out := c.Update(cmd())
	assert.True(t, handled)
	assert.Nil(t, out)
	assert.Equal(t, 0, focused)
}

func TestDispose_DropsCompletion(t *testing.T) {
	c, _ := newTestController("foo")
	focused := 0
	c.SetFocusFunc(func() tea.Cmd {
		focused++
		return nil
	})
	c.OnSearchStringChange("foo")

	cmd := c.PerformSearch(TriggerActive)
	c.Dispose()

	handled, _ := c.Update(cmd())
	assert.True(t, handled)
	assert.Equal(t, 0, focused)
}

func TestUpdate_IgnoresOtherMessages(t *testing.T) {
	c, _ := newTestController("")
	handled, cmd := c.Update(tea.KeyMsg{})
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestContext(t *testing.T) {
	c, _ := newTestController("foo")
	called := false
	c.SetFocusFunc(func() tea.Cmd {
		called = true
		return nil
	})
	c.OnSearchStringChange("foo")

	ctx := c.Context()
	assert.Equal(t, "foo", ctx.State.SearchString)
	require.NotNil(t, ctx.FocusSearchBar)
	ctx.FocusSearchBar()
	assert.True(t, called)
}

func TestTriggerString(t *testing.T) {
	assert.Equal(t, "active", TriggerActive.String())
	assert.Equal(t, "passive", TriggerPassive.String())
}
