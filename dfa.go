package retext

import "github.com/retext/retext/internal/pcre"

const (
	dfaInitialOffsets  = 24
	dfaInitialWorkspace = 100
)

// DFAMatchState is the "all matches" cursor (§3, §4.3): it holds an
// auto-growing workspace and offset vector, and returns every leftmost
// match at the current position ordered longest-first. Slot i refers to
// the i-th such match, not to a parenthesized group — there are no
// captures in DFA mode.
type DFAMatchState struct {
	re      *Regexp
	subject string
	pos     int

	matchOpts MatchOptions

	ovector   []int
	workspace []int
	matches   int

	status status
	err    error
}

// FindAll runs the DFA matcher once, growing workspace and offset vector
// on demand, then marks the cursor exhausted (pos = -1): the state holds
// the result of that single run and is never advanced (§4.3).
func FindAll(re *Regexp, subject string, startPos int, matchOpts MatchOptions) (*DFAMatchState, error) {
	if startPos < 0 {
		return nil, &ContractViolation{Detail: "negative start_position"}
	}
	if err := validateMatchOptions(matchOpts); err != nil {
		return nil, err
	}

	re.retain()
	ds := &DFAMatchState{
		re:        re,
		subject:   subject,
		pos:       startPos,
		matchOpts: re.matchOpts | matchOpts,
		ovector:   make([]int, dfaInitialOffsets),
		workspace: make([]int, dfaInitialWorkspace),
	}
	ds.run()
	return ds, nil
}

func (ds *DFAMatchState) run() {
	flags := matchFlags(ds.matchOpts, ds.re.raw)

	for {
		rc := ds.re.inner.ExecDFA(ds.subject, ds.pos, flags, ds.ovector, ds.workspace)

		switch {
		case rc == pcre.ERROR_DFA_WSSIZE:
			ds.workspace = make([]int, 2*len(ds.workspace))
			continue
		case rc == 0:
			// All offset slots used: pcre_dfa_exec returns 0 when the
			// vector was too small to hold every match (§4.3).
			ds.ovector = make([]int, 2*len(ds.ovector))
			continue
		case rc == pcre.ERROR_NOMATCH:
			ds.status = statusNoMatch
		case rc == pcre.ERROR_PARTIAL:
			ds.status = statusPartial
		case pcre.IsError(rc):
			ds.status = statusError
			ds.err = &MatchError{Pattern: ds.re.pattern, Detail: matcherErrorDetail(rc)}
		default:
			ds.matches = rc
			ds.status = statusMatched
		}
		break
	}

	ds.pos = -1
}

// Close releases the DFA match state's reference to its regex handle.
func (ds *DFAMatchState) Close() {
	if ds.re != nil {
		ds.re.release()
		ds.re = nil
	}
}

// Matches returns the number of leftmost matches found, longest first.
func (ds *DFAMatchState) Matches() int { return ds.matches }

// IsPartial reports whether the DFA run ended in a partial match.
func (ds *DFAMatchState) IsPartial() bool { return ds.status == statusPartial }

// Err returns the MatchError from the run, if any.
func (ds *DFAMatchState) Err() error { return ds.err }

// FetchPos returns the byte offsets of the i-th leftmost match.
func (ds *DFAMatchState) FetchPos(i int) (start, end int) {
	if i < 0 || i >= ds.matches {
		return -1, -1
	}
	return ds.ovector[2*i], ds.ovector[2*i+1]
}

// Fetch returns the text of the i-th leftmost match.
func (ds *DFAMatchState) Fetch(i int) string {
	start, end := ds.FetchPos(i)
	if start < 0 || end < 0 {
		return ""
	}
	return ds.subject[start:end]
}

// FetchAll returns the text of every match found, longest first.
func (ds *DFAMatchState) FetchAll() []string {
	out := make([]string, ds.matches)
	for i := range out {
		out[i] = ds.Fetch(i)
	}
	return out
}
