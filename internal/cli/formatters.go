package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// TableFormatter helps format tabular output
type TableFormatter struct {
	writer *tabwriter.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

// Header writes the table header
func (t *TableFormatter) Header(columns ...string) {
	fmt.Fprintln(t.writer, strings.Join(columns, "\t"))
	fmt.Fprintln(t.writer, strings.Repeat("-", 60))
}

// Row writes a table row
func (t *TableFormatter) Row(values ...string) {
	fmt.Fprintln(t.writer, strings.Join(values, "\t"))
}

// Flush writes the buffered table to output
func (t *TableFormatter) Flush() error {
	return t.writer.Flush()
}

// OutputResults writes data as json or yaml. Text output is rendered by
// the caller; data is printed with %v as a fallback.
func OutputResults(w io.Writer, format string, data any) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err

	case FormatText:
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// TruncateString shortens s to maxLen runes, marking the cut with "..."
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// ColorizeTag renders a tag in its registry color unless color is off
func ColorizeTag(tag string, color string) string {
	if noColor || color == "" {
		return tag
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(tag)
}

// JoinTags renders a comma separated, colorized tag list
func JoinTags(tags []string, color func(string) string) string {
	if len(tags) == 0 {
		return "-"
	}
	rendered := make([]string, len(tags))
	for i, tag := range tags {
		c := ""
		if color != nil {
			c = color(tag)
		}
		rendered[i] = ColorizeTag(tag, c)
	}
	return strings.Join(rendered, ", ")
}
