package hotkeys

import (
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// GetOS returns the current operating system type
func GetOS() OSType {
	return osFromGOOS(runtime.GOOS)
}

func osFromGOOS(goos string) OSType {
	switch goos {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	return s.getFor(GetOS())
}

func (s ShortcutKey) getFor(os OSType) string {
	switch os {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Binding turns the shortcut into a key binding for the current OS
func (s ShortcutKey) Binding(desc string) key.Binding {
	k := s.Get()
	return key.NewBinding(
		key.WithKeys(k),
		key.WithHelp(FormatShortcutForHelp(k), desc),
	)
}

// FormatShortcutForHelp formats a key string for display in help text
func FormatShortcutForHelp(shortcut string) string {
	// Use M- prefix for Alt on Linux/Windows (common terminal convention)
	if GetOS() == OSLinux || GetOS() == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "⇧")
	return shortcut
}

// KeyMap holds every binding the catalog UI reacts to
type KeyMap struct {
	// Search and replace overlay
	OpenSearch  key.Binding
	CloseSearch key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	SearchEnter key.Binding
	SwitchField key.Binding
	ToggleCase  key.Binding
	ToggleRegex key.Binding
	Replace     key.Binding
	ReplaceAll  key.Binding

	// Editor
	Save key.Binding
	Copy key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Tab    key.Binding

	// Table detail
	AddTag  key.Binding
	Queries key.Binding

	Quit key.Binding
}

// Shortcuts are the OS aware defaults. Ctrl combinations that terminals
// swallow on Linux (XOFF, readline) move to alt there.
var Shortcuts = struct {
	ToggleCase  ShortcutKey
	ToggleRegex ShortcutKey
	Replace     ShortcutKey
	ReplaceAll  ShortcutKey
	Save        ShortcutKey
	Copy        ShortcutKey
}{
	ToggleCase: ShortcutKey{
		Mac:     "alt+c",
		Linux:   "alt+c",
		Windows: "alt+c",
		Default: "alt+c",
	},
	ToggleRegex: ShortcutKey{
		Default: "alt+r",
	},
	Replace: ShortcutKey{
		Default: "ctrl+r",
	},
	ReplaceAll: ShortcutKey{
		Mac:     "ctrl+a",
		Linux:   "alt+a", // Avoid readline beginning-of-line
		Windows: "alt+a",
		Default: "ctrl+a",
	},
	Save: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // Avoid Ctrl+S terminal conflict (XOFF)
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	Copy: ShortcutKey{
		Mac:     "ctrl+y",
		Linux:   "alt+y",
		Windows: "alt+y",
		Default: "ctrl+y",
	},
}

// DefaultKeyMap returns the built-in bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		OpenSearch: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("^f", "search"),
		),
		CloseSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("ctrl+n", "down"),
			key.WithHelp("^n/↓", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("ctrl+p", "up"),
			key.WithHelp("^p/↑", "previous match"),
		),
		SearchEnter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "find"),
		),
		SwitchField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "search/replace"),
		),
		ToggleCase:  Shortcuts.ToggleCase.Binding("match case"),
		ToggleRegex: Shortcuts.ToggleRegex.Binding("regex"),
		Replace:     Shortcuts.Replace.Binding("replace"),
		ReplaceAll:  Shortcuts.ReplaceAll.Binding("replace all"),
		Save:        Shortcuts.Save.Binding("save"),
		Copy:        Shortcuts.Copy.Binding("copy"),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		AddTag: key.NewBinding(
			key.WithKeys("t", "+"),
			key.WithHelp("t", "add tag"),
		),
		Queries: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "queries"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
	}
}

// KeyMapFromSettings applies the configured search keys on top of the
// defaults
func KeyMapFromSettings(settings models.SearchSettings) KeyMap {
	km := DefaultKeyMap()
	if len(settings.OpenKeys) > 0 {
		km.OpenSearch = key.NewBinding(
			key.WithKeys(settings.OpenKeys...),
			key.WithHelp(FormatShortcutForHelp(settings.OpenKeys[0]), "search"),
		)
	}
	if len(settings.CloseKeys) > 0 {
		km.CloseSearch = key.NewBinding(
			key.WithKeys(settings.CloseKeys...),
			key.WithHelp(FormatShortcutForHelp(settings.CloseKeys[0]), "close search"),
		)
	}
	return km
}
