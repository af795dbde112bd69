// Copyright (c) 2011 Florian Weimer. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
// * Redistributions of source code must retain the above copyright
//   notice, this list of conditions and the following disclaimer.
//
// * Redistributions in binary form must reproduce the above copyright
//   notice, this list of conditions and the following disclaimer in the
//   documentation and/or other materials provided with the distribution.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package pcre is the matcher primitive: a thin cgo bridge to the system
// PCRE1 library. It is intentionally low-level — compile a pattern plus
// option bitset, run an NFA exec or a DFA exec against an offset vector
// the caller owns, and answer a few questions about the compiled form
// (capture count, max backreference, name-to-number lookup). Match-state
// ownership, iteration, and everything else the regex library needs sits
// one layer up, in package retext.
package pcre

// #include <string.h>
// #include <pcre.h>
// static inline void pcre_free_stub(void *re) {
//     pcre_free(re);
// }
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Flags shared between Compile and Exec.
const (
	ANCHORED          = C.PCRE_ANCHORED
	BSR_ANYCRLF       = C.PCRE_BSR_ANYCRLF
	BSR_UNICODE       = C.PCRE_BSR_UNICODE
	NEWLINE_ANY       = C.PCRE_NEWLINE_ANY
	NEWLINE_ANYCRLF   = C.PCRE_NEWLINE_ANYCRLF
	NEWLINE_CR        = C.PCRE_NEWLINE_CR
	NEWLINE_CRLF      = C.PCRE_NEWLINE_CRLF
	NEWLINE_LF        = C.PCRE_NEWLINE_LF
	NO_START_OPTIMIZE = C.PCRE_NO_START_OPTIMIZE
	NO_UTF8_CHECK     = C.PCRE_NO_UTF8_CHECK
)

// Flags for Compile.
const (
	CASELESS          = C.PCRE_CASELESS
	DOLLAR_ENDONLY    = C.PCRE_DOLLAR_ENDONLY
	DOTALL            = C.PCRE_DOTALL
	DUPNAMES          = C.PCRE_DUPNAMES
	EXTENDED          = C.PCRE_EXTENDED
	EXTRA             = C.PCRE_EXTRA
	MULTILINE         = C.PCRE_MULTILINE
	NO_AUTO_CAPTURE   = C.PCRE_NO_AUTO_CAPTURE
	UNGREEDY          = C.PCRE_UNGREEDY
	UTF8              = C.PCRE_UTF8
	UCP               = C.PCRE_UCP
)

// Flags for Exec.
const (
	NOTBOL           = C.PCRE_NOTBOL
	NOTEOL           = C.PCRE_NOTEOL
	NOTEMPTY         = C.PCRE_NOTEMPTY
	NOTEMPTY_ATSTART = C.PCRE_NOTEMPTY_ATSTART
	PARTIAL_HARD     = C.PCRE_PARTIAL_HARD
	PARTIAL_SOFT     = C.PCRE_PARTIAL_SOFT
)

// Flags for Study.
const (
	STUDY_JIT_COMPILE = C.PCRE_STUDY_JIT_COMPILE
)

// Return codes from Exec / ExecDFA that callers branch on.
const (
	ERROR_NOMATCH    = C.PCRE_ERROR_NOMATCH
	ERROR_PARTIAL    = C.PCRE_ERROR_PARTIAL
	ERROR_BADOPTION  = C.PCRE_ERROR_BADOPTION
	ERROR_DFA_WSSIZE = C.PCRE_ERROR_DFA_WSSIZE
)

// IsError reports whether rc is a genuine pcre_exec/pcre_dfa_exec failure,
// as opposed to "no match" or "partial match", which are states rather
// than errors.
func IsError(rc int) bool {
	return rc < C.PCRE_ERROR_NOMATCH && rc != C.PCRE_ERROR_PARTIAL
}

// Regexp holds a reference to a compiled regular expression. Use Compile
// to create one; call FreeRegexp when done (a finalizer also frees it).
type Regexp struct {
	ptr   *C.pcre
	extra *C.pcre_extra
}

// FreeRegexp releases the C-allocated memory behind re.
func (re *Regexp) FreeRegexp() {
	if re.ptr != nil {
		C.pcre_free_stub(unsafe.Pointer(re.ptr))
		re.ptr = nil
	}
	if re.extra != nil {
		C.pcre_free_study(re.extra)
		re.extra = nil
	}
	runtime.SetFinalizer(re, nil)
}

// CompileError holds details about a compilation failure.
type CompileError struct {
	Pattern string
	Message string
	Offset  int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Pattern, e.Offset, e.Message)
}

// Compile compiles pattern with the given option bitset.
func Compile(pattern string, flags int) (*Regexp, error) {
	cpattern := C.CString(pattern)
	defer C.free(unsafe.Pointer(cpattern))
	if clen := int(C.strlen(cpattern)); clen != len(pattern) {
		return nil, &CompileError{Pattern: pattern, Message: "NUL byte in pattern", Offset: clen}
	}

	var errptr *C.char
	var erroffset C.int
	re := &Regexp{}
	re.ptr = C.pcre_compile(cpattern, C.int(flags), &errptr, &erroffset, nil)
	if re.ptr == nil {
		return nil, &CompileError{Pattern: pattern, Message: C.GoString(errptr), Offset: int(erroffset)}
	}
	runtime.SetFinalizer(re, (*Regexp).FreeRegexp)
	return re, nil
}

// Study runs pcre_study (optionally with JIT) over an already-compiled
// pattern. Calling it twice is an error.
func (re *Regexp) Study(flags int) error {
	if re.extra != nil {
		return fmt.Errorf("pcre: Study: already optimized")
	}
	var errptr *C.char
	re.extra = C.pcre_study(re.ptr, C.int(flags), &errptr)
	if errptr != nil {
		return fmt.Errorf("pcre: Study: %s", C.GoString(errptr))
	}
	return nil
}

// Groups returns the number of capturing subpatterns in the pattern.
func (re *Regexp) Groups() int {
	var count C.int
	C.pcre_fullinfo(re.ptr, re.extra, C.PCRE_INFO_CAPTURECOUNT, unsafe.Pointer(&count))
	return int(count)
}

// MaxBackref returns the number of the highest backreference in the
// pattern, or 0 if it contains none.
func (re *Regexp) MaxBackref() int {
	var value C.int
	C.pcre_fullinfo(re.ptr, re.extra, C.PCRE_INFO_BACKREFMAX, unsafe.Pointer(&value))
	return int(value)
}

// StringNumber converts a named capture group to its numeric index, or
// an error if the pattern has no group by that name.
func (re *Regexp) StringNumber(name string) (int, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	n := int(C.pcre_get_stringnumber(re.ptr, cname))
	if n < 0 {
		return -1, fmt.Errorf("pcre: unknown group name %q", name)
	}
	return n, nil
}

var nullbyte = []byte{0}

// Exec runs pcre_exec (the NFA matcher) against subject starting at
// byte offset startOffset, filling ovector (length must be a multiple
// of 3) with the resulting offsets. It returns the raw pcre_exec return
// code: >=0 is the number of filled capture slots, ERROR_NOMATCH and
// ERROR_PARTIAL are states rather than errors, anything else failing
// IsError is a genuine matcher error.
func (re *Regexp) Exec(subject []byte, startOffset, flags int, ovector []int) int {
	length := len(subject)
	if length == 0 {
		subject = nullbyte
	}
	subjectptr := (*C.char)(unsafe.Pointer(&subject[0]))
	return re.exec(subjectptr, length, startOffset, flags, ovector)
}

// ExecString is Exec for a Go string subject, avoiding a []byte copy.
func (re *Regexp) ExecString(subject string, startOffset, flags int, ovector []int) int {
	length := len(subject)
	if length == 0 {
		subject = "\x00"
	}
	subjectptr := *(**C.char)(unsafe.Pointer(&subject))
	return re.exec(subjectptr, length, startOffset, flags, ovector)
}

func (re *Regexp) exec(subjectptr *C.char, length, startOffset, flags int, ovector []int) int {
	cvector := make([]C.int, len(ovector))
	rc := C.pcre_exec(re.ptr, re.extra,
		subjectptr, C.int(length),
		C.int(startOffset), C.int(flags),
		&cvector[0], C.int(len(cvector)))
	for i, v := range cvector {
		ovector[i] = int(v)
	}
	return int(rc)
}

// ExecDFA runs pcre_dfa_exec (the "all matches" DFA matcher). ovector
// and workspace are owned and grown by the caller per spec: a return
// code of 0 means ovector was too small (all slots used), and
// ERROR_DFA_WSSIZE means workspace was too small.
func (re *Regexp) ExecDFA(subject string, startOffset, flags int, ovector, workspace []int) int {
	length := len(subject)
	if length == 0 {
		subject = "\x00"
	}
	subjectptr := *(**C.char)(unsafe.Pointer(&subject))

	cvector := make([]C.int, len(ovector))
	cworkspace := make([]C.int, len(workspace))
	rc := C.pcre_dfa_exec(re.ptr, re.extra,
		subjectptr, C.int(length),
		C.int(startOffset), C.int(flags),
		&cvector[0], C.int(len(cvector)),
		&cworkspace[0], C.int(len(cworkspace)))
	for i, v := range cvector {
		ovector[i] = int(v)
	}
	for i, v := range cworkspace {
		workspace[i] = int(v)
	}
	return int(rc)
}
