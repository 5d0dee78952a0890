package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string
	Destructive bool // If true, Yes is red, No is green
}

// ConfirmationModel is an inline y/n prompt that owns the keyboard
// while active
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the prompt. Either callback may be nil.
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update answers the prompt with y, or cancels it with n or esc. Other
// keys are ignored.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	var next func() tea.Cmd
	switch msg.String() {
	case "y", "Y":
		next = m.onConfirm
	case "n", "N", "esc":
		next = m.onCancel
	default:
		return nil
	}

	m.active = false
	if next != nil {
		return next()
	}
	return nil
}

func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}
	return fmt.Sprintf("%s %s", m.config.Message, formatConfirmOptions(m.config.Destructive))
}

// formatConfirmOptions colors the answers so the destructive one stands out
func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	if destructive {
		yes, no = no, yes
	}
	return fmt.Sprintf("(%s/%s)", yes.Render("y"), no.Render("n"))
}
