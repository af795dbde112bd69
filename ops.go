package retext

import "strings"

// MatchSimple reports only whether re matches subject anywhere, running
// a single Step against a throwaway match state (§4.6).
func MatchSimple(re *Regexp, subject string) (bool, error) {
	ms, err := FindFirst(re, subject, 0, 0)
	if err != nil {
		return false, err
	}
	defer ms.Close()
	if ms.Failed() {
		return false, ms.Err()
	}
	return ms.HasMatch(), nil
}

// Match builds a match state at position 0 and runs one Step; the
// caller may retain it to keep iterating (§4.6).
func Match(re *Regexp, subject string, matchOpts MatchOptions) (*MatchState, error) {
	return FindFirst(re, subject, 0, matchOpts)
}

// MatchFull is Match with an explicit start position (§4.6).
func MatchFull(re *Regexp, subject string, start int, matchOpts MatchOptions) (*MatchState, error) {
	return FindFirst(re, subject, start, matchOpts)
}

// SplitFull splits subject on matches of re, optionally capping the
// number of emitted tokens (§4.6).
func SplitFull(re *Regexp, subject string, start int, matchOpts MatchOptions, maxTokens int) ([]string, error) {
	if len(subject) == 0 {
		return []string{}, nil
	}
	if maxTokens == 1 {
		return []string{subject[start:]}, nil
	}
	unlimited := maxTokens <= 0

	ms, err := FindFirst(re, subject, start, matchOpts)
	if err != nil {
		return nil, err
	}
	defer ms.Close()

	var tokens []string
	lastSepEnd := start
	lastMatchEmpty := false

	for ms.HasMatch() {
		m0, m1 := ms.FetchPos(0)
		if lastSepEnd != m1 {
			tokens = append(tokens, subject[lastSepEnd:m0])
		}
		if k := re.Groups(); k > 1 {
			for g := 1; g <= k; g++ {
				tokens = append(tokens, ms.Fetch(g))
			}
		}
		lastMatchEmpty = m0 == m1
		lastSepEnd = m1

		if !unlimited && len(tokens) >= maxTokens-1 {
			tailStart := ms.Pos()
			if tailStart < 0 {
				tailStart = len(subject)
			}
			if lastMatchEmpty {
				tailStart = backOneCodePoint(subject, tailStart, re.raw)
			}
			if tailStart < len(subject) {
				tokens = append(tokens, subject[tailStart:])
			}
			return tokens, nil
		}

		ms.Step()
	}
	if ms.Failed() {
		return nil, ms.Err()
	}

	if !lastMatchEmpty {
		tokens = append(tokens, subject[lastSepEnd:])
	}
	return tokens, nil
}

// backOneCodePoint moves pos back by one code point (or one byte, for a
// Raw-compiled pattern), mirroring advanceByCodePoint's forward step.
func backOneCodePoint(s string, pos int, raw bool) int {
	if pos <= 0 {
		return pos
	}
	if raw {
		return pos - 1
	}
	i := pos - 1
	for i > 0 && isUTF8Continuation(s[i]) {
		i--
	}
	return i
}

func isUTF8Continuation(b byte) bool { return b&0xC0 == 0x80 }

// ReplaceCallback is invoked once per match by ReplaceEval. It may
// append replacement text to out and returns whether the replace driver
// should stop iterating (§4.6, §9 "Callback-driven replace").
type ReplaceCallback func(ms *MatchState, out *strings.Builder) (stop bool, err error)

// ReplaceEval is the replace driver every other replace operation is
// built from (§4.6).
func ReplaceEval(re *Regexp, subject string, start int, matchOpts MatchOptions, cb ReplaceCallback) (string, error) {
	ms, err := FindFirst(re, subject, start, matchOpts)
	if err != nil {
		return "", err
	}
	defer ms.Close()

	var out strings.Builder
	out.Grow(len(subject))
	strPos := start

	for ms.HasMatch() {
		m0, m1 := ms.FetchPos(0)
		out.WriteString(subject[strPos:m0])

		stop, err := cb(ms, &out)
		if err != nil {
			return "", err
		}
		strPos = m1
		if stop {
			break
		}
		ms.Step()
	}
	if ms.Failed() {
		return "", ms.Err()
	}

	out.WriteString(subject[strPos:])
	return out.String(), nil
}

// ReplaceLiteral substitutes every match of re with replacement, copied
// byte for byte with no backreference interpolation (§4.6).
func ReplaceLiteral(re *Regexp, subject string, start int, matchOpts MatchOptions, replacement string) (string, error) {
	return ReplaceEval(re, subject, start, matchOpts, func(ms *MatchState, out *strings.Builder) (bool, error) {
		out.WriteString(replacement)
		return false, nil
	})
}

// ReplaceTemplate parses template once (§4.4) and substitutes every
// match of re with its interpolation (§4.5).
func ReplaceTemplate(re *Regexp, subject string, start int, matchOpts MatchOptions, template string) (string, error) {
	tmpl, err := ParseTemplate(template)
	if err != nil {
		return "", err
	}
	return ReplaceEval(re, subject, start, matchOpts, func(ms *MatchState, out *strings.Builder) (bool, error) {
		interpolate(tmpl, ms, out)
		return false, nil
	})
}

const escapeSpecials = "\\|()[]{}^$*+?."

// Escape returns s with every byte in {\0, \\, |, (, ), [, ], {, }, ^, $,
// *, +, ?, .} preceded by a backslash; the NUL byte becomes the two
// bytes '\' '0' (§4.6).
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 0 {
			b.WriteByte('\\')
			b.WriteByte('0')
			continue
		}
		if strings.IndexByte(escapeSpecials, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
