package testhelpers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
}

// Key builds the key message bubbletea would deliver for s, written the
// way key bindings spell it ("ctrl+f", "alt+c", "enter", "x")
func Key(s string) tea.KeyMsg {
	if t, ok := namedKeys[s]; ok {
		return tea.KeyMsg{Type: t}
	}

	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok && len(rest) == 1 {
		c := rest[0]
		if c >= 'a' && c <= 'z' {
			return tea.KeyMsg{Type: tea.KeyType(c-'a') + tea.KeyCtrlA}
		}
	}

	if rest, ok := strings.CutPrefix(s, "alt+"); ok {
		msg := Key(rest)
		msg.Alt = true
		return msg
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Type returns one key message per rune of text
func Type(text string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}
