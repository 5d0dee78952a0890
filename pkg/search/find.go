package search

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single regex evaluation so a pathological
// pattern cannot hang the UI
const DefaultMatchTimeout = 500 * time.Millisecond

// maxCachedPatterns caps the compiled pattern cache. Typing a query
// compiles every prefix, so the cache is dropped once it fills up.
const maxCachedPatterns = 64

// Options controls how a query is interpreted
type Options struct {
	MatchCase bool `json:"match_case" yaml:"match_case"`
	UseRegex  bool `json:"use_regex" yaml:"use_regex"`
}

// Match is one occurrence of a query in a text. Start and End are byte
// offsets; Line and Column are zero based, Column counted in runes.
type Match struct {
	Index  int    `json:"index" yaml:"index"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Text   string `json:"text" yaml:"text"`
}

type patternKey struct {
	pattern string
	options Options
}

// Finder locates matches in text. Compiled patterns are cached, so one
// Finder should be reused across keystrokes.
type Finder struct {
	mu      sync.Mutex
	cache   map[patternKey]*regexp2.Regexp
	timeout time.Duration
}

// NewFinder creates a finder with the default match timeout
func NewFinder() *Finder {
	return &Finder{
		cache:   make(map[patternKey]*regexp2.Regexp),
		timeout: DefaultMatchTimeout,
	}
}

// Compile returns the cached regexp for query under opts. Literal
// queries are escaped; regex queries use ECMAScript syntax.
func (f *Finder) Compile(query string, opts Options) (*regexp2.Regexp, error) {
	key := patternKey{pattern: query, options: opts}

	f.mu.Lock()
	defer f.mu.Unlock()

	if re, ok := f.cache[key]; ok {
		return re, nil
	}

	pattern := query
	flags := regexp2.RegexOptions(regexp2.ECMAScript)
	if !opts.UseRegex {
		pattern = regexp2.Escape(query)
		flags = regexp2.None
	}
	if !opts.MatchCase {
		flags |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(pattern, flags)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", query, err)
	}
	re.MatchTimeout = f.timeout

	if len(f.cache) >= maxCachedPatterns {
		clear(f.cache)
	}
	f.cache[key] = re
	return re, nil
}

// cached reports how many compiled patterns the finder holds
func (f *Finder) cached() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cache)
}

// Find returns every non-empty match of query in text, in order. An
// empty query has no matches.
func (f *Finder) Find(text, query string, opts Options) ([]Match, error) {
	if query == "" || text == "" {
		return []Match{}, nil
	}

	re, err := f.Compile(query, opts)
	if err != nil {
		return []Match{}, err
	}

	pos := newPositionTracker(text)
	matches := []Match{}

	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		// Zero-width matches (e.g. ^ or lookarounds) cannot be navigated
		// to or replaced meaningfully.
		if m.Length > 0 {
			start := pos.advance(m.Index)
			line, column := pos.line, pos.column
			end := pos.byteOffsetFrom(start, m.Length)
			matches = append(matches, Match{
				Index:  len(matches),
				Start:  start,
				End:    end,
				Line:   line,
				Column: column,
				Text:   text[start:end],
			})
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return matches, fmt.Errorf("search aborted: %w", err)
	}

	return matches, nil
}

var defaultFinder = NewFinder()

// Find searches text with a shared finder
func Find(text, query string, opts Options) ([]Match, error) {
	return defaultFinder.Find(text, query, opts)
}

// positionTracker converts increasing rune indexes (as reported by
// regexp2) into byte offsets and line/column positions in one pass.
type positionTracker struct {
	text   string
	rune   int
	byte   int
	line   int
	column int
}

func newPositionTracker(text string) *positionTracker {
	return &positionTracker{text: text}
}

// advance moves to runeIndex, which must not be behind the current
// position, and returns its byte offset
func (p *positionTracker) advance(runeIndex int) int {
	for p.rune < runeIndex && p.byte < len(p.text) {
		r, size := utf8.DecodeRuneInString(p.text[p.byte:])
		p.byte += size
		p.rune++
		if r == '\n' {
			p.line++
			p.column = 0
		} else {
			p.column++
		}
	}
	return p.byte
}

// byteOffsetFrom returns the byte offset runeCount runes after start
func (p *positionTracker) byteOffsetFrom(start, runeCount int) int {
	offset := start
	for i := 0; i < runeCount && offset < len(p.text); i++ {
		_, size := utf8.DecodeRuneInString(p.text[offset:])
		offset += size
	}
	return offset
}
