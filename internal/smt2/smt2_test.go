package smt2

import (
	"errors"
	"testing"

	"github.com/gitrdm/symstr/pkg/symerr"
)

func TestParseDeclarationsAndAssignments(t *testing.T) {
	input := `
	(declare-const x0 String)
	(declare-const x1 String)
	(declare-const i2 Int)
	(assert (= x1 (str.++ x0 (str.reverse x0))))
	(assert (str.in.re x1 (re.+ (str.to.re "ab"))))
	(check-sat)
	`
	script, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.Decls) != 3 {
		t.Fatalf("expected 3 decls, got %d", len(script.Decls))
	}
	if script.Decls[2].Sort != SortInt {
		t.Error("expected i2 to be declared as Int")
	}
	if len(script.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(script.Assignments))
	}
	assign := script.Assignments[0]
	if assign.Var != "x1" || assign.RHS.Kind != RHSConcat {
		t.Fatalf("expected x1 := str.++(...), got %+v", assign)
	}
	if len(assign.RHS.Args) != 2 || assign.RHS.Args[1].Kind != RHSReverse {
		t.Fatalf("expected second str.++ argument to be str.reverse, got %+v", assign.RHS.Args)
	}

	if len(script.Memberships) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(script.Memberships))
	}
	mem := script.Memberships[0]
	if mem.Var != "x1" || mem.Regex.Kind != RegexPlus {
		t.Fatalf("expected x1 in_re re.+, got %+v", mem)
	}
}

func TestParseReplaceAllRe(t *testing.T) {
	input := `
	(declare-const x0 String)
	(declare-const x2 String)
	(assert (= x2 (str.replaceallre x0 (re.union (str.to.re "abc") (str.to.re "kkk")) "xyz")))
	(check-sat)
	`
	script, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rhs := script.Assignments[0].RHS
	if rhs.Kind != RHSReplaceAllRe {
		t.Fatalf("expected RHSReplaceAllRe, got %v", rhs.Kind)
	}
	if rhs.ReplaceRegex.Kind != RegexUnion || len(rhs.ReplaceRegex.Children) != 2 {
		t.Fatalf("expected a 2-child re.union, got %+v", rhs.ReplaceRegex)
	}
	if rhs.ReplaceWith != "xyz" {
		t.Errorf("expected replacement %q, got %q", "xyz", rhs.ReplaceWith)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		`(declare-const x0 Bool) (check-sat)`,
		`(assert (= x0)) (check-sat)`,
		`(assert (str.in.re x0 (re.bogus))) (check-sat)`,
		`(declare-const x0 String)`,
		`(declare-const x0 String)) (check-sat)`,
	}
	for _, c := range cases {
		_, err := Parse(c)
		if !errors.Is(err, symerr.ErrSyntax) {
			t.Errorf("input %q: expected ErrSyntax, got %v", c, err)
		}
	}
}

func TestParseNoStrAndAllChar(t *testing.T) {
	input := `
	(declare-const x0 String)
	(assert (str.in.re x0 (re.union re.nostr re.allchar)))
	(check-sat)
	`
	script, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	re := script.Memberships[0].Regex
	if re.Kind != RegexUnion || re.Children[0].Kind != RegexNoStr || re.Children[1].Kind != RegexAllChar {
		t.Fatalf("expected union(nostr, allchar), got %+v", re)
	}
}
