package smt2

import (
	"fmt"

	"github.com/gitrdm/symstr/pkg/symerr"
)

// Parse parses a full constraint script per spec.md §6's grammar:
// declare-const forms, = / str.in.re assertions, terminated by a
// check-sat form. Every malformed node reports symerr.ErrSyntax rather
// than panicking.
func Parse(input string) (*Script, error) {
	exprs, err := parseProgram(input)
	if err != nil {
		return nil, err
	}

	script := &Script{}
	sawCheckSat := false
	for _, e := range exprs {
		if sawCheckSat {
			return nil, fmt.Errorf("%w: content after check-sat", symerr.ErrSyntax)
		}
		if !e.isList() || len(e.list) == 0 || !e.list[0].isAtom() {
			return nil, fmt.Errorf("%w: expected a top-level form", symerr.ErrSyntax)
		}
		switch e.list[0].atom {
		case "declare-const":
			d, err := parseDecl(e.list)
			if err != nil {
				return nil, err
			}
			script.Decls = append(script.Decls, d)
		case "assert":
			if len(e.list) != 2 {
				return nil, fmt.Errorf("%w: assert takes exactly one argument", symerr.ErrSyntax)
			}
			if err := parseAssert(script, e.list[1]); err != nil {
				return nil, err
			}
		case "check-sat":
			if len(e.list) != 1 {
				return nil, fmt.Errorf("%w: check-sat takes no arguments", symerr.ErrSyntax)
			}
			sawCheckSat = true
		default:
			return nil, fmt.Errorf("%w: unrecognized top-level form %q", symerr.ErrSyntax, e.list[0].atom)
		}
	}
	if !sawCheckSat {
		return nil, fmt.Errorf("%w: missing check-sat terminator", symerr.ErrSyntax)
	}
	return script, nil
}

func parseDecl(list []sexpr) (Decl, error) {
	if len(list) != 3 || !list[1].isAtom() || !list[2].isAtom() {
		return Decl{}, fmt.Errorf("%w: malformed declare-const", symerr.ErrSyntax)
	}
	var sort Sort
	switch list[2].atom {
	case "String":
		sort = SortString
	case "Int":
		sort = SortInt
	default:
		return Decl{}, fmt.Errorf("%w: unknown sort %q", symerr.ErrSyntax, list[2].atom)
	}
	return Decl{Name: list[1].atom, Sort: sort}, nil
}

func parseAssert(script *Script, body sexpr) error {
	if !body.isList() || len(body.list) == 0 || !body.list[0].isAtom() {
		return fmt.Errorf("%w: malformed assert body", symerr.ErrSyntax)
	}
	switch body.list[0].atom {
	case "=":
		if len(body.list) != 3 || !body.list[1].isAtom() {
			return fmt.Errorf("%w: malformed = assertion", symerr.ErrSyntax)
		}
		rhs, err := parseRHS(body.list[2])
		if err != nil {
			return err
		}
		script.Assignments = append(script.Assignments, Assignment{Var: body.list[1].atom, RHS: rhs})
		return nil
	case "str.in.re":
		if len(body.list) != 3 || !body.list[1].isAtom() {
			return fmt.Errorf("%w: malformed str.in.re assertion", symerr.ErrSyntax)
		}
		re, err := parseRegex(body.list[2])
		if err != nil {
			return err
		}
		script.Memberships = append(script.Memberships, Membership{Var: body.list[1].atom, Regex: re})
		return nil
	default:
		return fmt.Errorf("%w: unrecognized assertion %q", symerr.ErrSyntax, body.list[0].atom)
	}
}

func parseRHS(e sexpr) (RHS, error) {
	if e.isAtom() {
		return RHS{Kind: RHSVar, Var: e.atom}, nil
	}
	if e.isString() {
		return RHS{Kind: RHSLiteral, Literal: *e.str}, nil
	}
	if !e.isList() || len(e.list) == 0 || !e.list[0].isAtom() {
		return RHS{}, fmt.Errorf("%w: malformed term", symerr.ErrSyntax)
	}
	switch e.list[0].atom {
	case "str.++":
		if len(e.list) < 3 {
			return RHS{}, fmt.Errorf("%w: str.++ needs at least two arguments", symerr.ErrSyntax)
		}
		var args []RHS
		for _, sub := range e.list[1:] {
			r, err := parseRHS(sub)
			if err != nil {
				return RHS{}, err
			}
			args = append(args, r)
		}
		return RHS{Kind: RHSConcat, Args: args}, nil
	case "str.reverse":
		if len(e.list) != 2 {
			return RHS{}, fmt.Errorf("%w: str.reverse takes exactly one argument", symerr.ErrSyntax)
		}
		inner, err := parseRHS(e.list[1])
		if err != nil {
			return RHS{}, err
		}
		return RHS{Kind: RHSReverse, ReverseOf: &inner}, nil
	case "str.replaceallre":
		if len(e.list) != 4 {
			return RHS{}, fmt.Errorf("%w: str.replaceallre takes exactly three arguments", symerr.ErrSyntax)
		}
		target, err := parseRHS(e.list[1])
		if err != nil {
			return RHS{}, err
		}
		re, err := parseRegex(e.list[2])
		if err != nil {
			return RHS{}, err
		}
		if !e.list[3].isString() {
			return RHS{}, fmt.Errorf("%w: str.replaceallre replacement must be a string literal", symerr.ErrSyntax)
		}
		return RHS{
			Kind:          RHSReplaceAllRe,
			ReplaceTarget: &target,
			ReplaceRegex:  re,
			ReplaceWith:   *e.list[3].str,
		}, nil
	default:
		return RHS{}, fmt.Errorf("%w: unrecognized term %q", symerr.ErrSyntax, e.list[0].atom)
	}
}

func parseRegex(e sexpr) (RegexAST, error) {
	if e.isAtom() {
		switch e.atom {
		case "re.nostr":
			return RegexAST{Kind: RegexNoStr}, nil
		case "re.allchar":
			return RegexAST{Kind: RegexAllChar}, nil
		default:
			return RegexAST{}, fmt.Errorf("%w: unrecognized regex atom %q", symerr.ErrSyntax, e.atom)
		}
	}
	if !e.isList() || len(e.list) == 0 || !e.list[0].isAtom() {
		return RegexAST{}, fmt.Errorf("%w: malformed regex", symerr.ErrSyntax)
	}
	switch e.list[0].atom {
	case "str.to.re":
		if len(e.list) != 2 || !e.list[1].isString() {
			return RegexAST{}, fmt.Errorf("%w: str.to.re takes one string literal", symerr.ErrSyntax)
		}
		return RegexAST{Kind: RegexToRe, Literal: *e.list[1].str}, nil
	case "re.++":
		children, err := parseRegexChildren(e.list[1:], 2)
		if err != nil {
			return RegexAST{}, err
		}
		return RegexAST{Kind: RegexConcat, Children: children}, nil
	case "re.union":
		children, err := parseRegexChildren(e.list[1:], 2)
		if err != nil {
			return RegexAST{}, err
		}
		return RegexAST{Kind: RegexUnion, Children: children}, nil
	case "re.inter":
		children, err := parseRegexChildren(e.list[1:], 2)
		if err != nil {
			return RegexAST{}, err
		}
		return RegexAST{Kind: RegexInter, Children: children}, nil
	case "re.*":
		if len(e.list) != 2 {
			return RegexAST{}, fmt.Errorf("%w: re.* takes exactly one argument", symerr.ErrSyntax)
		}
		inner, err := parseRegex(e.list[1])
		if err != nil {
			return RegexAST{}, err
		}
		return RegexAST{Kind: RegexStar, Child: &inner}, nil
	case "re.+":
		if len(e.list) != 2 {
			return RegexAST{}, fmt.Errorf("%w: re.+ takes exactly one argument", symerr.ErrSyntax)
		}
		inner, err := parseRegex(e.list[1])
		if err != nil {
			return RegexAST{}, err
		}
		return RegexAST{Kind: RegexPlus, Child: &inner}, nil
	case "re.range":
		if len(e.list) != 3 || !e.list[1].isString() || !e.list[2].isString() {
			return RegexAST{}, fmt.Errorf("%w: re.range takes two string literals", symerr.ErrSyntax)
		}
		return RegexAST{Kind: RegexRange, RangeStart: *e.list[1].str, RangeEnd: *e.list[2].str}, nil
	default:
		return RegexAST{}, fmt.Errorf("%w: unrecognized regex constructor %q", symerr.ErrSyntax, e.list[0].atom)
	}
}

func parseRegexChildren(list []sexpr, min int) ([]RegexAST, error) {
	if len(list) < min {
		return nil, fmt.Errorf("%w: expected at least %d regex arguments", symerr.ErrSyntax, min)
	}
	children := make([]RegexAST, 0, len(list))
	for _, sub := range list {
		child, err := parseRegex(sub)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}
