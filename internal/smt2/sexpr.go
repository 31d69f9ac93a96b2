package smt2

import (
	"fmt"

	"github.com/gitrdm/symstr/pkg/symerr"
)

// sexpr is a single parsed s-expression: either an atom (a bare symbol),
// a quoted string literal, or a parenthesized list of sub-expressions.
// Exactly one of str/list is non-nil for a non-atom node.
type sexpr struct {
	atom string
	str  *string
	list []sexpr
}

func (s sexpr) isAtom() bool { return s.str == nil && s.list == nil }
func (s sexpr) isString() bool { return s.str != nil }
func (s sexpr) isList() bool { return s.list != nil }

func parseProgram(input string) ([]sexpr, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	var exprs []sexpr
	pos := 0
	for toks[pos].kind != tokEOF {
		expr, next, err := parseSexpr(toks, pos)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		pos = next
	}
	return exprs, nil
}

func parseSexpr(toks []token, pos int) (sexpr, int, error) {
	switch toks[pos].kind {
	case tokLParen:
		pos++
		var items []sexpr
		for toks[pos].kind != tokRParen {
			if toks[pos].kind == tokEOF {
				return sexpr{}, pos, fmt.Errorf("%w: unterminated list", symerr.ErrSyntax)
			}
			item, next, err := parseSexpr(toks, pos)
			if err != nil {
				return sexpr{}, pos, err
			}
			items = append(items, item)
			pos = next
		}
		if items == nil {
			items = []sexpr{}
		}
		return sexpr{list: items}, pos + 1, nil
	case tokRParen:
		return sexpr{}, pos, fmt.Errorf("%w: unexpected %q", symerr.ErrSyntax, ")")
	case tokString:
		s := toks[pos].text
		return sexpr{str: &s}, pos + 1, nil
	case tokSymbol:
		return sexpr{atom: toks[pos].text}, pos + 1, nil
	default:
		return sexpr{}, pos, fmt.Errorf("%w: unexpected end of input", symerr.ErrSyntax)
	}
}
