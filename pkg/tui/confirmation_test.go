package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/pluqqy/pluqqy-catalog/pkg/tui/testhelpers"
)

func TestConfirmation(t *testing.T) {
	tests := []struct {
		key      string
		want     string
		inactive bool
	}{
		{"y", "confirmed", true},
		{"Y", "confirmed", true},
		{"n", "cancelled", true},
		{"esc", "cancelled", true},
		{"x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewConfirmation()
			var got string
			m.Show(ConfirmationConfig{Message: "Discard?"},
				func() tea.Cmd { got = "confirmed"; return nil },
				func() tea.Cmd { got = "cancelled"; return nil },
			)
			testhelpers.AssertViewContains(t, m.View(), "Discard?")

			m.Update(testhelpers.Key(tt.key))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, !tt.inactive, m.Active())
		})
	}
}

func TestConfirmation_NilCallbacks(t *testing.T) {
	m := NewConfirmation()
	assert.Nil(t, m.Update(testhelpers.Key("y")))
	assert.Empty(t, m.View())

	m.Show(ConfirmationConfig{Message: "Sure?"}, nil, nil)
	assert.Nil(t, m.Update(testhelpers.Key("n")))
	assert.False(t, m.Active())
}
