package compile

import (
	"testing"

	"github.com/gitrdm/symstr/internal/smt2"
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/sfa"
	"github.com/gitrdm/symstr/pkg/sst"
)

func wrap(s string) []domain.Wrapped {
	out := make([]domain.Wrapped, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = domain.WrapByte(s[i])
	}
	return out
}

// tape builds the flattened, separator-delimited multi-string input a
// compiled SST expects: one span per variable reference the compiled
// expression reads, in the order it reads them. A variable referenced
// more than once (e.g. str.++(x0, str.reverse(x0))) occupies one span
// per reference, since each reference compiles to its own span-reading
// sub-machine.
func tape(spans ...string) []domain.Wrapped {
	var out []domain.Wrapped
	for _, s := range spans {
		out = append(out, wrap(s)...)
		out = append(out, domain.WrappedSeparator)
	}
	return out
}

func outputOf(t *testing.T, runs []sst.Registers[domain.Wrapped]) string {
	t.Helper()
	if len(runs) != 1 {
		t.Fatalf("expected exactly one accepting path, got %d", len(runs))
	}
	chars := runs[0][outReg]
	b := make([]byte, len(chars))
	for i, c := range chars {
		b[i] = c.ToByte()
	}
	return string(b)
}

func TestCompileConcatAndReverse(t *testing.T) {
	input := `
	(declare-const x0 String)
	(declare-const x1 String)
	(assert (= x1 (str.++ x0 (str.reverse x0))))
	(check-sat)
	`
	script, err := smt2.Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result, err := Compile[domain.Wrapped](script)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	x1 := result.Vars["x1"]
	if x1 == nil {
		t.Fatalf("expected x1 to be compiled")
	}

	runs := sst.Run(x1.SST, tape("ab", "ab"))
	if got := outputOf(t, runs); got != "abba" {
		t.Errorf("expected %q, got %q", "abba", got)
	}
}

func TestCompileMembership(t *testing.T) {
	input := `
	(declare-const x0 String)
	(assert (str.in.re x0 (re.+ (str.to.re "ab"))))
	(check-sat)
	`
	script, err := smt2.Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result, err := Compile[domain.Wrapped](script)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(result.Memberships) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(result.Memberships))
	}
	m := result.Memberships[0]
	if !sfa.Member(m.SFA, wrap("abab")) {
		t.Error("expected \"abab\" to match re.+(ab)")
	}
	if sfa.Member(m.SFA, wrap("a")) {
		t.Error("expected \"a\" to be rejected by re.+(ab)")
	}
}

func TestCompileReplaceAllRe(t *testing.T) {
	input := `
	(declare-const x0 String)
	(declare-const x2 String)
	(assert (= x2 (str.replaceallre x0 (re.union (str.to.re "abc") (str.to.re "kkk")) "xyz")))
	(check-sat)
	`
	script, err := smt2.Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	result, err := Compile[domain.Wrapped](script)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	x2 := result.Vars["x2"]
	if x2 == nil {
		t.Fatalf("expected x2 to be compiled")
	}

	runs := sst.Run(x2.SST, tape("xxabcyykkkzz"))
	if got := outputOf(t, runs); got != "xxxyzyyxyzzz" {
		t.Errorf("expected %q, got %q", "xxxyzyyxyzzz", got)
	}
}

func TestCompileRejectsNonVarReverse(t *testing.T) {
	input := `
	(declare-const x0 String)
	(declare-const x1 String)
	(assert (= x1 (str.reverse (str.++ x0 x0))))
	(check-sat)
	`
	script, err := smt2.Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Compile[domain.Wrapped](script); err == nil {
		t.Error("expected an error compiling str.reverse of a non-variable expression")
	}
}
