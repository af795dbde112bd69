package pcre

import "testing"

func TestCompileAndExec(t *testing.T) {
	re, err := Compile(`(\w+)@(\w+)`, UTF8)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer re.FreeRegexp()

	if got := re.Groups(); got != 2 {
		t.Errorf("Groups() = %d, want 2", got)
	}

	ovector := make([]int, 3*(re.Groups()+1))
	rc := re.ExecString("foo@bar", 0, 0, ovector)
	if rc < 0 {
		t.Fatalf("Exec rc = %d, want >= 0", rc)
	}
	if ovector[0] != 0 || ovector[1] != 7 {
		t.Errorf("whole match = (%d,%d), want (0,7)", ovector[0], ovector[1])
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile(`(unterminated`, 0)
	if err == nil {
		t.Fatal("Compile: want error for unterminated group")
	}
	ce, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("err type = %T, want *CompileError", err)
	}
	if ce.Pattern != `(unterminated` {
		t.Errorf("CompileError.Pattern = %q", ce.Pattern)
	}
}

func TestExecNoMatch(t *testing.T) {
	re, err := Compile(`xyz`, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer re.FreeRegexp()

	ovector := make([]int, 3)
	rc := re.ExecString("abc", 0, 0, ovector)
	if rc != ERROR_NOMATCH {
		t.Errorf("rc = %d, want ERROR_NOMATCH", rc)
	}
}

func TestExecDFAAllMatches(t *testing.T) {
	re, err := Compile(`<.*>`, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer re.FreeRegexp()

	subject := "<a> <b> <c>"
	ovector := make([]int, 24)
	workspace := make([]int, 100)
	rc := re.ExecDFA(subject, 0, 0, ovector, workspace)
	if rc <= 0 {
		t.Fatalf("ExecDFA rc = %d, want > 0", rc)
	}
	if ovector[0] != 0 || ovector[1] != len(subject) {
		t.Errorf("longest match = (%d,%d), want (0,%d)", ovector[0], ovector[1], len(subject))
	}
}

func TestMaxBackref(t *testing.T) {
	re, err := Compile(`(a)\1`, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer re.FreeRegexp()

	if got := re.MaxBackref(); got != 1 {
		t.Errorf("MaxBackref() = %d, want 1", got)
	}
}

func TestStringNumber(t *testing.T) {
	re, err := Compile(`(?P<word>\w+)`, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer re.FreeRegexp()

	n, err := re.StringNumber("word")
	if err != nil {
		t.Fatalf("StringNumber: %v", err)
	}
	if n != 1 {
		t.Errorf("StringNumber(word) = %d, want 1", n)
	}

	if _, err := re.StringNumber("nope"); err == nil {
		t.Error("StringNumber(nope): want error")
	}
}
