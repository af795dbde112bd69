// Package retext compiles Perl-compatible patterns once and matches,
// iterates, splits, replaces, and escapes strings against them. The
// underlying matcher primitive (package internal/pcre) is treated as an
// external collaborator: this package owns the regex handle, the match
// cursor (NFA and DFA), the replacement template language, and the
// high-level operations built from them.
package retext

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/retext/retext/internal/pcre"
)

var (
	capabilityOnce sync.Once
	capabilityErr  error
)

// checkCapability runs the one-time probe that the matcher primitive
// supports UTF-8 and Unicode properties (§4.1, §9 "Global one-time
// initialization"). It is realized with sync.Once rather than relying on
// package-init ordering, since the probe itself calls into cgo.
func checkCapability() error {
	capabilityOnce.Do(func() {
		re, err := pcre.Compile(`\p{L}`, pcre.UTF8|pcre.UCP)
		if err != nil {
			capabilityErr = &CompileError{
				Pattern: `\p{L}`,
				Message: "matcher build lacks UTF-8/Unicode property support",
			}
			return
		}
		re.FreeRegexp()
	})
	return capabilityErr
}

// Regexp is a reference-counted handle to a compiled pattern. A match
// state holds a strong reference so it can outlive the caller's own
// release of the handle (§3, §9 "Reference-counted regex handles").
type Regexp struct {
	pattern     string
	compileOpts CompileOptions
	matchOpts   MatchOptions
	raw         bool

	inner *pcre.Regexp

	groups     int
	maxBackref int
	studied    bool

	refs int32
}

// Compile compiles pattern with the given compile-option and default
// match-option bitsets (§4.1).
func Compile(pattern string, compileOpts CompileOptions, matchOpts MatchOptions) (*Regexp, error) {
	if err := checkCapability(); err != nil {
		return nil, err
	}
	if err := validateCompileOptions(compileOpts); err != nil {
		return nil, err
	}
	if err := validateMatchOptions(matchOpts); err != nil {
		return nil, err
	}

	raw := compileOpts&Raw != 0
	flags := compileFlags(compileOpts)

	inner, err := pcre.Compile(pattern, flags)
	if err != nil {
		var ce *pcre.CompileError
		if errors.As(err, &ce) {
			return nil, &CompileError{Pattern: pattern, Offset: ce.Offset, Message: ce.Message}
		}
		return nil, &CompileError{Pattern: pattern, Message: err.Error()}
	}

	re := &Regexp{
		pattern:     pattern,
		compileOpts: compileOpts,
		matchOpts:   matchOpts,
		raw:         raw,
		inner:       inner,
		groups:      inner.Groups(),
		maxBackref:  inner.MaxBackref(),
		refs:        1,
	}

	if wantsStudy(compileOpts) {
		studyFlags := 0
		if err := inner.Study(studyFlags); err != nil {
			return nil, &OptimizeError{Pattern: pattern, Message: err.Error()}
		}
		re.studied = true
	}

	return re, nil
}

// MustCompile is Compile but panics on error, for pattern literals known
// good at compile time.
func MustCompile(pattern string, compileOpts CompileOptions, matchOpts MatchOptions) *Regexp {
	re, err := Compile(pattern, compileOpts, matchOpts)
	if err != nil {
		panic(err)
	}
	return re
}

// Groups returns the number of capturing subpatterns, not counting the
// whole-match group 0.
func (re *Regexp) Groups() int { return re.groups }

// MaxBackref returns the highest backreference number used in the
// pattern, or 0 if it uses none.
func (re *Regexp) MaxBackref() int { return re.maxBackref }

// Pattern returns the original pattern text the handle was compiled
// from, retained for error messages and introspection (§3).
func (re *Regexp) Pattern() string { return re.pattern }

// GroupNumber resolves a named capture group to its 1-based index via
// the matcher's name table (§4.2, "group access by name").
func (re *Regexp) GroupNumber(name string) (int, bool) {
	n, err := re.inner.StringNumber(name)
	if err != nil {
		return 0, false
	}
	return n, true
}

// retain increments the handle's reference count. Called whenever a
// match state is created against this handle.
func (re *Regexp) retain() {
	atomic.AddInt32(&re.refs, 1)
}

// release decrements the handle's reference count, freeing the
// underlying compiled form when it reaches zero.
func (re *Regexp) release() {
	if atomic.AddInt32(&re.refs, -1) == 0 {
		re.inner.FreeRegexp()
	}
}

// Close releases the caller's own reference to re. A match state created
// from re before Close holds its own reference and remains valid.
func (re *Regexp) Close() {
	re.release()
}
