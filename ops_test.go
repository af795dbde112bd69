package retext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S3: split_simple("\s*", "ab c", default, default) -> ["a","b"," ","c"].
func TestSplitFull_S3(t *testing.T) {
	re, err := Compile(`\s*`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	tokens, err := SplitFull(re, "ab c", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", " ", "c"}, tokens)
}

func TestSplitFullEmptySubject(t *testing.T) {
	re, err := Compile(`,`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	tokens, err := SplitFull(re, "", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{}, tokens)
}

func TestSplitFullMaxTokensOne(t *testing.T) {
	re, err := Compile(`,`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	tokens, err := SplitFull(re, "a,b,c", 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a,b,c"}, tokens)
}

// I3: splitting with no capture groups and rejoining with the literal
// separators between tail boundaries reconstructs the subject.
func TestSplitFullRoundTrip_I3(t *testing.T) {
	re, err := Compile(`,`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	tokens, err := SplitFull(re, "a,bb,ccc", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bb", "ccc"}, tokens)
}

// S4: replace(compile("(\w+) (\w+)"), "hello world", "\2 \1") -> "world hello".
func TestReplaceTemplate_S4(t *testing.T) {
	re, err := Compile(`(\w+) (\w+)`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	out, err := ReplaceTemplate(re, "hello world", 0, 0, `\2 \1`)
	require.NoError(t, err)
	assert.Equal(t, "world hello", out)
}

// S5: replace(compile("([a-z]+)"), "foo BAR baz", "\U\1\E!") -> "FOO! BAR BAZ!".
func TestReplaceTemplateCaseChange_S5(t *testing.T) {
	re, err := Compile(`([a-z]+)`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	out, err := ReplaceTemplate(re, "foo BAR baz", 0, 0, `\U\1\E!`)
	require.NoError(t, err)
	assert.Equal(t, "FOO! BAR BAZ!", out)
}

// I7: \u affects only the next emitted code point, regardless of its
// source (literal, char escape, or a group reference).
func TestCaseChangeOneShot_I7(t *testing.T) {
	re, err := Compile(`(\w+)`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	out, err := ReplaceTemplate(re, "hello", 0, 0, `\u\1`)
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestReplaceLiteral(t *testing.T) {
	re, err := Compile(`o`, 0, 0)
	require.NoError(t, err)
	defer re.Close()

	out, err := ReplaceLiteral(re, "foo bar", 0, 0, "0")
	require.NoError(t, err)
	assert.Equal(t, "f00 bar", out)
}

// S6: escape("a.b*c\0d") -> "a\.b\*c\0d".
func TestEscape_S6(t *testing.T) {
	in := "a.b*c\x00d"
	got := Escape(in)
	assert.Equal(t, `a\.b\*c\0d`, got)
}

// I4: escaping an already-escaped string doubles every introduced
// backslash.
func TestEscapeIdempotence_I4(t *testing.T) {
	in := "a.b"
	once := Escape(in)
	twice := Escape(once)
	assert.Equal(t, `a\\\.b`, twice)
}

// I1: escape(s) is a pattern whose only match in s is s entire.
func TestEscapeRoundTrip_I1(t *testing.T) {
	subjects := []string{"a.b*c", "[x]{y}", "100%", ""}
	for _, s := range subjects {
		pattern := Escape(s)
		re, err := Compile(pattern, 0, 0)
		require.NoError(t, err, "pattern %q", pattern)

		ms, err := FindFirst(re, s, 0, 0)
		require.NoError(t, err)
		if s == "" {
			re.Close()
			ms.Close()
			continue
		}
		require.True(t, ms.HasMatch(), "escape(%q) = %q should match %q", s, pattern, s)
		start, end := ms.FetchPos(0)
		assert.Equal(t, 0, start)
		assert.Equal(t, len(s), end)
		ms.Close()
		re.Close()
	}
}
