package smt2

// Sort is the declared type of a constraint variable.
type Sort int

const (
	SortString Sort = iota
	SortInt
)

// Decl is a `(declare-const NAME SORT)` form.
type Decl struct {
	Name string
	Sort Sort
}

// RegexKind discriminates the tagged variants of RegexAST, mirroring
// spec.md §6's recognized regex constructors exactly.
type RegexKind int

const (
	RegexToRe RegexKind = iota
	RegexConcat
	RegexUnion
	RegexInter
	RegexStar
	RegexPlus
	RegexRange
	RegexNoStr
	RegexAllChar
)

// RegexAST is the parsed (not yet compiled) shape of a `re.*` / `str.to.re`
// expression.
type RegexAST struct {
	Kind RegexKind

	Literal string // RegexToRe: the literal string argument to str.to.re

	Children []RegexAST // RegexConcat/RegexUnion/RegexInter

	Child *RegexAST // RegexStar/RegexPlus

	RangeStart, RangeEnd string // RegexRange: single-character strings
}

// RHSKind discriminates the tagged variants of RHS, the right side of a
// `(assert (= x RHS))` form.
type RHSKind int

const (
	RHSVar RHSKind = iota
	RHSLiteral
	RHSConcat
	RHSReverse
	RHSReplaceAllRe
)

// RHS is the parsed shape of an assignment's right-hand side.
type RHS struct {
	Kind RHSKind

	Var     string // RHSVar
	Literal string // RHSLiteral

	Args []RHS // RHSConcat (str.++): two or more sub-terms

	ReverseOf *RHS // RHSReverse (str.reverse)

	ReplaceTarget *RHS     // RHSReplaceAllRe: the string being scanned
	ReplaceRegex  RegexAST // RHSReplaceAllRe: the pattern to replace
	ReplaceWith   string   // RHSReplaceAllRe: the literal replacement
}

// Assignment is a `(assert (= x RHS))` form.
type Assignment struct {
	Var string
	RHS RHS
}

// Membership is a `(assert (str.in.re x REGEX))` form.
type Membership struct {
	Var   string
	Regex RegexAST
}

// Script is the fully parsed constraint file, in declaration order.
type Script struct {
	Decls       []Decl
	Assignments []Assignment
	Memberships []Membership
}
