package retext

import (
	"unicode/utf8"

	"github.com/retext/retext/internal/pcre"
)

// status values a MatchState's last Step can be in.
type status int

const (
	statusNoMatch status = iota
	statusPartial
	statusMatched
	statusError
)

// MatchState is a cursor bound to (regex, subject, options) that advances
// through successive non-overlapping matches (§3, §4.2). It is a
// single-threaded object: callers must serialize Step/Fetch/FetchPos
// themselves (§5).
type MatchState struct {
	re      *Regexp
	subject string
	pos     int

	matchOpts MatchOptions

	status  status
	matches int
	ovector []int

	err error
}

// FindFirst constructs a match state at startPos and performs one Step
// (§4.2). A negative startPos is a contract violation.
func FindFirst(re *Regexp, subject string, startPos int, matchOpts MatchOptions) (*MatchState, error) {
	if startPos < 0 {
		return nil, &ContractViolation{Detail: "negative start_position"}
	}
	if err := validateMatchOptions(matchOpts); err != nil {
		return nil, err
	}

	re.retain()
	ms := &MatchState{
		re:        re,
		subject:   subject,
		pos:       startPos,
		matchOpts: re.matchOpts | matchOpts,
		ovector:   make([]int, 3*(re.Groups()+1)),
	}
	ms.Step()
	return ms, nil
}

// Close releases the match state's reference to its regex handle. The
// caller must not use the match state afterward.
func (ms *MatchState) Close() {
	if ms.re != nil {
		ms.re.release()
		ms.re = nil
	}
}

// Step executes one matcher call and advances the cursor (§4.2). It
// returns false once the cursor is exhausted or has failed; callers
// distinguish the two via Err/IsPartial.
func (ms *MatchState) Step() bool {
	if ms.pos < 0 {
		ms.status = statusNoMatch
		return false
	}

	flags := matchFlags(ms.matchOpts, ms.re.raw)
	rc := ms.re.inner.ExecString(ms.subject, ms.pos, flags, ms.ovector)

	switch {
	case rc == pcre.ERROR_NOMATCH:
		ms.pos = -1
		ms.status = statusNoMatch
		return false
	case rc == pcre.ERROR_PARTIAL:
		ms.pos = -1
		ms.status = statusPartial
		return false
	case pcre.IsError(rc):
		ms.pos = -1
		ms.status = statusError
		ms.err = &MatchError{Pattern: ms.re.pattern, Detail: matcherErrorDetail(rc)}
		return false
	}

	ms.matches = rc
	ms.status = statusMatched

	if ms.pos == ms.ovector[1] {
		next, ok := ms.advanceByCodePoint(ms.ovector[1])
		if !ok {
			ms.pos = -1
			ms.status = statusNoMatch
			return false
		}
		ms.pos = next
	} else {
		ms.pos = ms.ovector[1]
	}

	return true
}

// advanceByCodePoint moves past a zero-length match by one code point
// when the pattern is UTF-8, else by one byte (§4.2 step 3).
func (ms *MatchState) advanceByCodePoint(from int) (int, bool) {
	if from >= len(ms.subject) {
		return 0, false
	}
	if ms.re.raw {
		return from + 1, true
	}
	_, size := utf8.DecodeRuneInString(ms.subject[from:])
	if size <= 0 {
		size = 1
	}
	return from + size, true
}

// FetchPos returns the byte offsets of capture group n. It is defined
// only when n < Matches(); an unmatched optional group reports (-1,-1)
// as-is (§4.2).
func (ms *MatchState) FetchPos(n int) (start, end int) {
	if n < 0 || n >= ms.matches {
		return -1, -1
	}
	return ms.ovector[2*n], ms.ovector[2*n+1]
}

// Fetch returns the text of capture group n, or the empty string when
// the group did not participate in the match (§4.2).
func (ms *MatchState) Fetch(n int) string {
	start, end := ms.FetchPos(n)
	if start < 0 || end < 0 {
		return ""
	}
	return ms.subject[start:end]
}

// FetchAll returns the text of every capture group from 0 to Matches()-1.
func (ms *MatchState) FetchAll() []string {
	out := make([]string, ms.matches)
	for i := range out {
		out[i] = ms.Fetch(i)
	}
	return out
}

// FetchNamed resolves name via the regex handle's name table and
// returns its text. The bool is false if the name does not exist.
func (ms *MatchState) FetchNamed(name string) (string, bool) {
	n, ok := ms.re.GroupNumber(name)
	if !ok {
		return "", false
	}
	return ms.Fetch(n), true
}

// Matches returns the number of filled capture slots from the last Step.
func (ms *MatchState) Matches() int { return ms.matches }

// HasMatch reports whether the cursor currently sits on a match.
func (ms *MatchState) HasMatch() bool { return ms.status == statusMatched }

// Failed reports whether the last Step ended in a genuine matcher error
// (as opposed to exhaustion or a partial match).
func (ms *MatchState) Failed() bool { return ms.status == statusError }

// IsPartial reports whether the last Step ended in a partial match
// (§4.2; meaningful only after Step returned false).
func (ms *MatchState) IsPartial() bool { return ms.status == statusPartial }

// Err returns the MatchError from the last Step, if any.
func (ms *MatchState) Err() error { return ms.err }

// Pos returns the starting byte position the next Step will search
// from, or -1 once exhausted.
func (ms *MatchState) Pos() int { return ms.pos }

func matcherErrorDetail(rc int) string {
	switch rc {
	case pcre.ERROR_BADOPTION:
		return "invalid newline-flag combination or unsupported option"
	case pcre.ERROR_DFA_WSSIZE:
		return "workspace too small"
	default:
		return "matcher internal error"
	}
}
