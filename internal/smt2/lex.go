// Package smt2 parses the surface constraint grammar of spec.md §6 — a
// small subset of SMT-LIB2 s-expressions covering string/int
// declarations, string-equality assertions built from str.++/
// str.reverse/str.replaceallre, and regex-membership assertions — into a
// Script the rest of the compiler walks. Ill-formed input always returns
// symerr.ErrSyntax; this package never panics on bad input, unlike the
// reference parser it is grounded on.
package smt2

import (
	"fmt"

	"github.com/gitrdm/symstr/pkg/symerr"
)

type tokenKind int

const (
	tokLParen tokenKind = iota
	tokRParen
	tokSymbol
	tokString
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(input string) ([]token, error) {
	var toks []token
	i, n := 0, len(input)

	for i < n {
		c := input[i]
		switch {
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case isSpace(c):
			i++
		case c == '"':
			j := i + 1
			for j < n && input[j] != '"' {
				j++
			}
			if j >= n {
				return nil, fmt.Errorf("%w: unterminated string literal", symerr.ErrSyntax)
			}
			toks = append(toks, token{kind: tokString, text: input[i+1 : j]})
			i = j + 1
		default:
			j := i
			for j < n && !isDelim(input[j]) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("%w: unexpected character %q", symerr.ErrSyntax, c)
			}
			toks = append(toks, token{kind: tokSymbol, text: input[i:j]})
			i = j
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelim(c byte) bool {
	return c == '(' || c == ')' || c == '"' || isSpace(c)
}
