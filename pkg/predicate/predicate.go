// Package predicate implements the effective Boolean algebra of
// predicates over a character domain: a tagged value with smart
// constructors that keep every predicate in a canonical, aggressively
// simplified form, plus denotation, satisfiability, and witness
// extraction. Canonicalization is fused into every constructor — there
// is no separate normalization pass, because without it predicate trees
// (and the automata built from them) grow unboundedly.
package predicate

import (
	"sort"

	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/term"
)

// Kind discriminates the tagged variants of Predicate.
type Kind int

const (
	KindBool Kind = iota
	KindEq
	KindRange
	KindInSet
	KindAnd
	KindOr
	KindNot
	KindWithLambda
)

// Predicate is a canonical-form predicate over domain D. The zero value
// is not meaningful; construct predicates via Bot, Top, Char, Range,
// InSet, And, Or, Not, and WithLambda.
type Predicate[D domain.Elem[D]] struct {
	kind Kind

	b bool // KindBool

	eq D // KindEq

	rangeLeft, rangeRight *D // KindRange, half/fully open

	set []D // KindInSet: sorted, len >= 2

	p, q *Predicate[D] // KindAnd/KindOr (p,q), KindNot/KindWithLambda (p)

	lambda term.Term[D] // KindWithLambda
}

// Kind reports the tagged variant of this predicate.
func (p Predicate[D]) Kind() Kind { return p.kind }

// Bool returns the canonical top (true) or bottom (false) predicate.
func Bool[D domain.Elem[D]](b bool) Predicate[D] {
	return Predicate[D]{kind: KindBool, b: b}
}

// Top returns the predicate that denotes every value.
func Top[D domain.Elem[D]]() Predicate[D] { return Bool[D](true) }

// Bot returns the predicate that denotes no value.
func Bot[D domain.Elem[D]]() Predicate[D] { return Bool[D](false) }

// Char returns the predicate x == a. Named Char (not Eq) because Eq
// collides with the equality-comparison vocabulary used elsewhere.
func Char[D domain.Elem[D]](a D) Predicate[D] {
	return Predicate[D]{kind: KindEq, eq: a}
}

// AllChar returns the predicate satisfied by every ordinary character,
// excluding the domain's separator sentinel.
func AllChar[D domain.Elem[D]]() Predicate[D] {
	var zero D
	return Char(zero.Separator()).Not()
}

// Range returns the half/fully-open interval predicate [left, right); a
// nil bound means unbounded on that side. Collapses to Bot when the
// interval would be empty (right < left, both bounded) and to Char
// when left == right, per spec.md §3/§4.3.
func Range[D domain.Elem[D]](left, right *D) Predicate[D] {
	switch {
	case left != nil && right != nil:
		switch (*left).Compare(*right) {
		case 0:
			return Char(*left)
		default:
			if (*right).Compare(*left) < 0 {
				return Bot[D]()
			}
			l, r := *left, *right
			return Predicate[D]{kind: KindRange, rangeLeft: &l, rangeRight: &r}
		}
	case left == nil && right == nil:
		return Top[D]()
	default:
		p := Predicate[D]{kind: KindRange}
		if left != nil {
			l := *left
			p.rangeLeft = &l
		}
		if right != nil {
			r := *right
			p.rangeRight = &r
		}
		return p
	}
}

// InSet returns the membership predicate for a deduplicated, sorted copy
// of elements. Collapses to Bot for an empty set and Char for a
// singleton, per spec.md §3.
func InSet[D domain.Elem[D]](elements ...D) Predicate[D] {
	var els []D
	for _, e := range elements {
		dup := false
		for _, have := range els {
			if have.Compare(e) == 0 {
				dup = true
				break
			}
		}
		if !dup {
			els = append(els, e)
		}
	}
	sort.Slice(els, func(i, j int) bool { return els[i].Compare(els[j]) < 0 })

	switch len(els) {
	case 0:
		return Bot[D]()
	case 1:
		return Char(els[0])
	default:
		return Predicate[D]{kind: KindInSet, set: els}
	}
}

// Equal reports structural equality. And/Or are commutative: And(p,q)
// == And(q,p).
func (p Predicate[D]) Equal(other Predicate[D]) bool {
	if p.kind != other.kind {
		return false
	}
	switch p.kind {
	case KindBool:
		return p.b == other.b
	case KindEq:
		return p.eq.Compare(other.eq) == 0
	case KindRange:
		return optEqual(p.rangeLeft, other.rangeLeft) && optEqual(p.rangeRight, other.rangeRight)
	case KindInSet:
		if len(p.set) != len(other.set) {
			return false
		}
		for i := range p.set {
			if p.set[i].Compare(other.set[i]) != 0 {
				return false
			}
		}
		return true
	case KindAnd, KindOr:
		return (p.p.Equal(*other.p) && p.q.Equal(*other.q)) ||
			(p.p.Equal(*other.q) && p.q.Equal(*other.p))
	case KindNot:
		return p.p.Equal(*other.p)
	case KindWithLambda:
		// Term equality is not generally decidable here, so a WithLambda
		// predicate never compares equal to anything, itself included.
		return false
	default:
		return false
	}
}

func optEqual[D domain.Elem[D]](a, b *D) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return (*a).Compare(*b) == 0
}

// And is the smart constructor for conjunction; see spec.md §4.3 for the
// full reduction table.
func (p Predicate[D]) And(other Predicate[D]) Predicate[D] {
	q := other

	if swap, ok := boolOperand(p, q); ok {
		return swap
	}
	if swap, ok := boolOperand(q, p); ok {
		return swap
	}
	if p.kind == KindEq {
		if q.Denote(p.eq) {
			return Char(p.eq)
		}
		return Bot[D]()
	}
	if q.kind == KindEq {
		if p.Denote(q.eq) {
			return Char(q.eq)
		}
		return Bot[D]()
	}
	if p.kind == KindRange && q.kind == KindRange {
		left := maxOpt(p.rangeLeft, q.rangeLeft)
		right := minOpt(p.rangeRight, q.rangeRight)
		return Range(left, right)
	}
	if p.kind == KindInSet {
		return filterSet(p.set, q)
	}
	if q.kind == KindInSet {
		return filterSet(q.set, p)
	}
	if p.kind == KindNot && p.p.Equal(q) {
		return Bot[D]()
	}
	if q.kind == KindNot && q.p.Equal(p) {
		return Bot[D]()
	}
	if p.kind == KindNot && q.kind == KindNot {
		return p.p.Or(*q.p).Not()
	}
	if p.Equal(q) {
		return p
	}
	pc, qc := p, q
	return Predicate[D]{kind: KindAnd, p: &pc, q: &qc}
}

// Or is the smart constructor for disjunction; see spec.md §4.3.
func (p Predicate[D]) Or(other Predicate[D]) Predicate[D] {
	q := other

	if p.kind == KindBool {
		if p.b {
			return Top[D]()
		}
		return q
	}
	if q.kind == KindBool {
		if q.b {
			return Top[D]()
		}
		return p
	}
	if p.kind == KindEq && q.Denote(p.eq) {
		return q
	}
	if q.kind == KindEq && p.Denote(q.eq) {
		return p
	}
	if p.kind == KindEq && q.kind == KindEq {
		return InSet(p.eq, q.eq)
	}
	if p.kind == KindEq && q.kind == KindInSet {
		return InSet(append(append([]D{}, q.set...), p.eq)...)
	}
	if q.kind == KindEq && p.kind == KindInSet {
		return InSet(append(append([]D{}, p.set...), q.eq)...)
	}
	if p.kind == KindRange && q.kind == KindRange {
		if rangesAbut(p, q) {
			left := unionBound(p.rangeLeft, q.rangeLeft, false)
			right := unionBound(p.rangeRight, q.rangeRight, true)
			return Range(left, right)
		}
		pc, qc := p, q
		return Predicate[D]{kind: KindOr, p: &pc, q: &qc}
	}
	if p.kind == KindInSet && q.kind == KindInSet {
		return InSet(append(append([]D{}, p.set...), q.set...)...)
	}
	if p.kind == KindInSet {
		return orSetWith(p.set, q)
	}
	if q.kind == KindInSet {
		return orSetWith(q.set, p)
	}
	if p.kind == KindNot && p.p.Equal(q) {
		return Top[D]()
	}
	if q.kind == KindNot && q.p.Equal(p) {
		return Top[D]()
	}
	if p.kind == KindNot && q.kind == KindNot {
		return p.p.And(*q.p).Not()
	}
	if p.Equal(q) {
		return p
	}
	pc, qc := p, q
	return Predicate[D]{kind: KindOr, p: &pc, q: &qc}
}

// Not is the smart constructor for negation.
func (p Predicate[D]) Not() Predicate[D] {
	switch p.kind {
	case KindNot:
		return *p.p
	case KindBool:
		return Bool[D](!p.b)
	default:
		pc := p
		return Predicate[D]{kind: KindNot, p: &pc}
	}
}

// WithLambda pushes a function term into this predicate's guard, meaning
// "p applied to f(x)". See spec.md §4.3.
func (p Predicate[D]) WithLambda(f term.Term[D]) Predicate[D] {
	switch f.Kind() {
	case term.KindIdentity:
		return p
	case term.KindConstant:
		c, _ := f.Apply(*new(D))
		return Bool[D](p.Denote(c))
	default:
		if p.kind == KindBool {
			return Bool[D](p.b)
		}
		if p.kind == KindWithLambda {
			pc := *p.p
			return Predicate[D]{kind: KindWithLambda, p: &pc, lambda: term.Compose(p.lambda, f)}
		}
		pc := p
		return Predicate[D]{kind: KindWithLambda, p: &pc, lambda: f}
	}
}

// Denote evaluates the predicate at x.
func (p Predicate[D]) Denote(x D) bool {
	switch p.kind {
	case KindBool:
		return p.b
	case KindEq:
		return p.eq.Compare(x) == 0
	case KindRange:
		if p.rangeLeft != nil && (*p.rangeLeft).Compare(x) > 0 {
			return false
		}
		if p.rangeRight != nil && x.Compare(*p.rangeRight) >= 0 {
			return false
		}
		return true
	case KindInSet:
		for _, e := range p.set {
			if e.Compare(x) == 0 {
				return true
			}
		}
		return false
	case KindAnd:
		return p.p.Denote(x) && p.q.Denote(x)
	case KindOr:
		return p.p.Denote(x) || p.q.Denote(x)
	case KindNot:
		return !p.p.Denote(x)
	case KindWithLambda:
		applied, ok := p.lambda.Apply(x)
		if !ok {
			return false
		}
		return p.p.Denote(applied)
	default:
		return false
	}
}

// Satisfiable is conservative: true except when the predicate is exactly
// Bot. Every other canonical shape must have been simplified away by the
// smart constructors if it were unsatisfiable.
func (p Predicate[D]) Satisfiable() bool {
	return !(p.kind == KindBool && !p.b)
}

func boolOperand[D domain.Elem[D]](b, p Predicate[D]) (Predicate[D], bool) {
	if b.kind != KindBool {
		return Predicate[D]{}, false
	}
	if b.b {
		return p, true
	}
	return Bot[D](), true
}

func filterSet[D domain.Elem[D]](set []D, p Predicate[D]) Predicate[D] {
	var kept []D
	for _, e := range set {
		if p.Denote(e) {
			kept = append(kept, e)
		}
	}
	return InSet(kept...)
}

func orSetWith[D domain.Elem[D]](set []D, p Predicate[D]) Predicate[D] {
	var remaining []D
	for _, e := range set {
		if !p.Denote(e) {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == 0 {
		return p
	}
	rem := InSet(remaining...)
	return Predicate[D]{kind: KindOr, p: &rem, q: &p}
}

func rangesAbut[D domain.Elem[D]](p, q Predicate[D]) bool {
	overlapsOrTouches := func(lo1, hi1, lo2, hi2 *D) bool {
		if hi1 == nil || lo2 == nil {
			return false
		}
		return (*lo2).Compare(*hi1) <= 0
	}
	return overlapsOrTouches(p.rangeLeft, p.rangeRight, q.rangeLeft, q.rangeRight) &&
		overlapsOrTouches(q.rangeLeft, q.rangeRight, p.rangeLeft, p.rangeRight)
}

// unionBound combines two optional interval bounds for Or: the result is
// unbounded (nil) whenever either operand is already unbounded on that
// side (an unbounded range already covers everything past its one
// bound), otherwise the more permissive of the two finite bounds (min
// for a left/lower bound, max for a right/upper bound).
func unionBound[D domain.Elem[D]](a, b *D, upper bool) *D {
	if a == nil || b == nil {
		return nil
	}
	if upper {
		return maxOpt(a, b)
	}
	return minOpt(a, b)
}

func maxOpt[D domain.Elem[D]](a, b *D) *D {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if (*a).Compare(*b) >= 0 {
		return a
	}
	return b
}

func minOpt[D domain.Elem[D]](a, b *D) *D {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if (*a).Compare(*b) <= 0 {
		return a
	}
	return b
}
