package search

import (
	"sort"
	"strings"
)

// Replace substitutes replacement for each match span in text. Matches
// are applied back to front so earlier offsets stay valid. Spans that
// are out of range, overlap a previously applied span, or no longer
// contain their recorded text are skipped. The replacement is literal.
func Replace(text string, matches []Match, replacement string) (string, int) {
	if len(matches) == 0 {
		return text, 0
	}

	ordered := make([]Match, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	var b strings.Builder
	b.Grow(len(text))

	result := text
	applied := 0
	limit := len(text)
	for _, m := range ordered {
		if m.Start < 0 || m.End > limit || m.Start >= m.End {
			continue
		}
		if result[m.Start:m.End] != m.Text {
			continue
		}
		b.Reset()
		b.WriteString(result[:m.Start])
		b.WriteString(replacement)
		b.WriteString(result[m.End:])
		result = b.String()
		limit = m.Start
		applied++
	}

	return result, applied
}
