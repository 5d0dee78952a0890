package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spans(matches []Match) [][2]int {
	out := make([][2]int, len(matches))
	for i, m := range matches {
		out[i] = [2]int{m.Start, m.End}
	}
	return out
}

func TestFind(t *testing.T) {
	text := "SELECT foo FROM Foo\nWHERE foo.id = 1"

	tests := []struct {
		name  string
		query string
		opts  Options
		want  [][2]int
	}{
		{"case insensitive literal", "foo", Options{}, [][2]int{{7, 10}, {16, 19}, {26, 29}}},
		{"match case literal", "Foo", Options{MatchCase: true}, [][2]int{{16, 19}}},
		{"literal treats dot literally", "foo.", Options{}, [][2]int{{26, 30}}},
		{"regex", `f\w+\.id`, Options{UseRegex: true}, [][2]int{{26, 32}}},
		{"regex match case", `^WHERE`, Options{UseRegex: true, MatchCase: true}, [][2]int{}},
		{"no match", "bar", Options{}, [][2]int{}},
		{"empty query", "", Options{}, [][2]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Find(text, tt.query, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spans(matches))
		})
	}
}

func TestFind_Positions(t *testing.T) {
	text := "select 1\n  from foo\nfoo"

	matches, err := Find(text, "foo", Options{})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, 1, matches[0].Line)
	assert.Equal(t, 7, matches[0].Column)
	assert.Equal(t, "foo", matches[0].Text)

	assert.Equal(t, 1, matches[1].Index)
	assert.Equal(t, 2, matches[1].Line)
	assert.Equal(t, 0, matches[1].Column)
}

func TestFind_Multibyte(t *testing.T) {
	text := "naïve café naïve"

	matches, err := Find(text, "naïve", Options{})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	for _, m := range matches {
		assert.Equal(t, "naïve", text[m.Start:m.End])
	}
	assert.Equal(t, 11, matches[1].Column)
}

func TestFind_SkipsZeroWidth(t *testing.T) {
	matches, err := Find("a\nb", "^", Options{UseRegex: true})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFind_InvalidRegex(t *testing.T) {
	matches, err := Find("abc", "a(", Options{UseRegex: true})
	assert.Error(t, err)
	assert.Empty(t, matches)
}

func TestFinder_CachesPatterns(t *testing.T) {
	f := NewFinder()

	first, err := f.Compile("foo", Options{})
	require.NoError(t, err)
	second, err := f.Compile("foo", Options{})
	require.NoError(t, err)
	other, err := f.Compile("foo", Options{MatchCase: true})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestFinder_CompileOptions(t *testing.T) {
	tests := []struct {
		name  string
		query string
		opts  Options
		input string
		want  bool
	}{
		{"literal ignores case", "a.b", Options{}, "A.B", true},
		{"literal escapes metacharacters", "a.b", Options{}, "axb", false},
		{"literal match case", "a.b", Options{MatchCase: true}, "A.B", false},
		{"regex ignores case", `a\.b`, Options{UseRegex: true}, "A.B", true},
		{"regex metacharacters", "a.b", Options{UseRegex: true}, "axb", true},
		{"regex match case", "a.b", Options{UseRegex: true, MatchCase: true}, "AxB", false},
	}

	f := NewFinder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := f.Compile(tt.query, tt.opts)
			require.NoError(t, err)
			got, err := re.MatchString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinder_CacheIsBounded(t *testing.T) {
	f := NewFinder()

	// Every prefix of a typed query gets compiled
	query := ""
	for i := 0; i < maxCachedPatterns*3; i++ {
		query += "a"
		_, err := f.Compile(query, Options{})
		require.NoError(t, err)
		assert.LessOrEqual(t, f.cached(), maxCachedPatterns)
	}

	re, err := f.Compile(query, Options{})
	require.NoError(t, err)
	again, err := f.Compile(query, Options{})
	require.NoError(t, err)
	assert.Same(t, re, again)
}

func TestReplace(t *testing.T) {
	text := "foo bar foo baz foo"
	matches, err := Find(text, "foo", Options{})
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		got, n := Replace(text, matches, "qux")
		assert.Equal(t, "qux bar qux baz qux", got)
		assert.Equal(t, 3, n)
	})

	t.Run("single", func(t *testing.T) {
		got, n := Replace(text, matches[1:2], "x")
		assert.Equal(t, "foo bar x baz foo", got)
		assert.Equal(t, 1, n)
	})

	t.Run("stale span skipped", func(t *testing.T) {
		stale := []Match{{Start: 4, End: 7, Text: "foo"}}
		got, n := Replace(text, stale, "x")
		assert.Equal(t, text, got)
		assert.Equal(t, 0, n)
	})

	t.Run("out of range skipped", func(t *testing.T) {
		got, n := Replace(text, []Match{{Start: 17, End: 40, Text: "foo"}}, "x")
		assert.Equal(t, text, got)
		assert.Equal(t, 0, n)
	})

	t.Run("overlap skipped", func(t *testing.T) {
		overlapping := []Match{
			{Start: 0, End: 3, Text: "foo"},
			{Start: 1, End: 5, Text: "oo b"},
		}
		got, n := Replace(text, overlapping, "_")
		assert.Equal(t, "f_ar foo baz foo", got)
		assert.Equal(t, 1, n)
	})

	t.Run("no matches", func(t *testing.T) {
		got, n := Replace(text, nil, "x")
		assert.Equal(t, text, got)
		assert.Equal(t, 0, n)
	})
}
