package retext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// groupSource is what an interpolation pass needs from a match cursor:
// group text and whether a group is present (matched) at all, by number
// or by name. *MatchState satisfies it.
type groupSource interface {
	FetchPos(n int) (start, end int)
	Fetch(n int) string
	FetchNamed(name string) (string, bool)
}

// interpolate walks tmpl's atoms against the groups ms currently holds,
// applying the §4.5 case-change state machine, and writes the result to
// out.
func interpolate(tmpl *Template, ms groupSource, out *strings.Builder) {
	mode := CaseNone

	emit := func(s string) {
		transformed, next := transformLiteral(s, mode)
		out.WriteString(transformed)
		mode = next
	}

	for _, a := range tmpl.atoms {
		switch a.kind {
		case atomLiteral:
			emit(a.text)
		case atomLiteralChar:
			emit(string(a.ch))
		case atomNumericRef:
			start, end := ms.FetchPos(a.num)
			if start < 0 || end < 0 {
				continue
			}
			emit(ms.Fetch(a.num))
		case atomSymbolicRef:
			text, ok := ms.FetchNamed(a.name)
			if !ok {
				continue
			}
			emit(text)
		case atomCaseChange:
			mode = a.mode
		}
	}
}

// transformLiteral applies mode to s and returns the text to emit plus
// the mode that should be in effect afterward (§4.5): "All" modes
// persist, "One" modes consume exactly one code point then reset to
// None — whether that code point came from literal text, a character
// escape, or a resolved group reference (§8 I7).
func transformLiteral(s string, mode CaseMode) (string, CaseMode) {
	switch mode {
	case CaseNone:
		return s, CaseNone
	case CaseUpperAll:
		return strings.ToUpper(s), CaseUpperAll
	case CaseLowerAll:
		return strings.ToLower(s), CaseLowerAll
	case CaseUpperOne, CaseLowerOne:
		if s == "" {
			return s, mode
		}
		r, size := utf8.DecodeRuneInString(s)
		var first rune
		if mode == CaseUpperOne {
			first = unicode.ToUpper(r)
		} else {
			first = unicode.ToLower(r)
		}
		return string(first) + s[size:], CaseNone
	default:
		return s, mode
	}
}
