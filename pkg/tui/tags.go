package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// TagColorFunc resolves the display color of a tag
type TagColorFunc func(name string) string

// fallbackTagColor colors tags without consulting the registry
func fallbackTagColor(name string) string {
	return models.TagColor(name, "")
}

// renderTagChips renders tags as small colored chips for inline display
func renderTagChips(tagNames []string, color TagColorFunc, maxTags int) string {
	if len(tagNames) == 0 {
		return ""
	}
	if color == nil {
		color = fallbackTagColor
	}

	tagsToShow := tagNames
	if maxTags > 0 && len(tagNames) > maxTags {
		tagsToShow = tagNames[:maxTags]
	}

	chips := make([]string, 0, len(tagsToShow))
	for _, tagName := range tagsToShow {
		chipStyle := lipgloss.NewStyle().
			Background(lipgloss.Color(color(tagName))).
			Foreground(lipgloss.Color(ColorWhite)).
			Padding(0, 1)

		chips = append(chips, chipStyle.Render(tagName))
	}

	result := strings.Join(chips, " ")
	if len(tagsToShow) < len(tagNames) {
		moreStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))
		result += " " + moreStyle.Render(fmt.Sprintf("+%d", len(tagNames)-len(tagsToShow)))
	}

	return result
}
