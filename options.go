package retext

import "github.com/retext/retext/internal/pcre"

// CompileOptions is the bitset a caller passes to Compile. Bit values are
// assigned by this package and never reused from the underlying matcher's
// numbering — mapping to matcher flags is done explicitly in
// compileFlags, never by forwarding the bitset verbatim.
type CompileOptions uint32

const (
	Caseless CompileOptions = 1 << iota
	Multiline
	DotAll
	Extended
	CompileAnchored
	DollarEndOnly
	Ungreedy
	Raw
	NoAutoCapture
	Optimize
	DupNames
	CompileNewlineCr
	CompileNewlineLf
	CompileNewlineCrLf
)

const compileOptionsMask = Caseless | Multiline | DotAll | Extended | CompileAnchored |
	DollarEndOnly | Ungreedy | Raw | NoAutoCapture | Optimize | DupNames |
	CompileNewlineCr | CompileNewlineLf | CompileNewlineCrLf

// MatchOptions is the bitset a caller passes per-execution (Step, Match,
// SplitFull, ReplaceEval, ...).
type MatchOptions uint32

const (
	MatchAnchored MatchOptions = 1 << iota
	NotBol
	NotEol
	NotEmpty
	Partial
	MatchNewlineCr
	MatchNewlineLf
	MatchNewlineCrLf
	MatchNewlineAny
)

const matchOptionsMask = MatchAnchored | NotBol | NotEol | NotEmpty | Partial |
	MatchNewlineCr | MatchNewlineLf | MatchNewlineCrLf | MatchNewlineAny

func validateCompileOptions(opts CompileOptions) error {
	if opts&^compileOptionsMask != 0 {
		return &CompileError{Message: "invalid compile option bits"}
	}
	return nil
}

func validateMatchOptions(opts MatchOptions) error {
	if opts&^matchOptionsMask != 0 {
		return &MatchError{Detail: "invalid match option bits"}
	}
	return nil
}

// wantsStudy reports whether the caller requested Optimize. Optimize is
// never forwarded to the matcher verbatim — it drives a separate Study
// call (§4.1).
func wantsStudy(opts CompileOptions) bool {
	return opts&Optimize != 0
}

// compileFlags maps our CompileOptions bitset to matcher-primitive flags,
// one name at a time — never by reusing numeric values, per §4.1.
func compileFlags(opts CompileOptions) int {
	f := 0
	if opts&Caseless != 0 {
		f |= pcre.CASELESS
	}
	if opts&Multiline != 0 {
		f |= pcre.MULTILINE
	}
	if opts&DotAll != 0 {
		f |= pcre.DOTALL
	}
	if opts&Extended != 0 {
		f |= pcre.EXTENDED
	}
	if opts&CompileAnchored != 0 {
		f |= pcre.ANCHORED
	}
	if opts&DollarEndOnly != 0 {
		f |= pcre.DOLLAR_ENDONLY
	}
	if opts&Ungreedy != 0 {
		f |= pcre.UNGREEDY
	}
	if opts&NoAutoCapture != 0 {
		f |= pcre.NO_AUTO_CAPTURE
	}
	if opts&DupNames != 0 {
		f |= pcre.DUPNAMES
	}
	if opts&CompileNewlineCr != 0 {
		f |= pcre.NEWLINE_CR
	}
	if opts&CompileNewlineLf != 0 {
		f |= pcre.NEWLINE_LF
	}
	if opts&CompileNewlineCrLf != 0 {
		f |= pcre.NEWLINE_CRLF
	}
	if opts&CompileNewlineCr == 0 && opts&CompileNewlineLf == 0 && opts&CompileNewlineCrLf == 0 {
		f |= pcre.NEWLINE_ANY
	}
	if opts&Raw == 0 {
		f |= pcre.UTF8 | pcre.NO_UTF8_CHECK
	}
	return f
}

// matchFlags maps our MatchOptions bitset to matcher-primitive exec
// flags. raw mirrors the regex handle's Raw compile option: when the
// pattern was not compiled Raw, every exec call skips the redundant
// UTF-8 validity recheck, per §4.1.
func matchFlags(opts MatchOptions, raw bool) int {
	f := 0
	if opts&MatchAnchored != 0 {
		f |= pcre.ANCHORED
	}
	if opts&NotBol != 0 {
		f |= pcre.NOTBOL
	}
	if opts&NotEol != 0 {
		f |= pcre.NOTEOL
	}
	if opts&NotEmpty != 0 {
		f |= pcre.NOTEMPTY
	}
	if opts&Partial != 0 {
		f |= pcre.PARTIAL_SOFT
	}
	if opts&MatchNewlineCr != 0 {
		f |= pcre.NEWLINE_CR
	}
	if opts&MatchNewlineLf != 0 {
		f |= pcre.NEWLINE_LF
	}
	if opts&MatchNewlineCrLf != 0 {
		f |= pcre.NEWLINE_CRLF
	}
	if opts&MatchNewlineAny != 0 {
		f |= pcre.NEWLINE_ANY
	}
	if !raw {
		f |= pcre.NO_UTF8_CHECK
	}
	return f
}
