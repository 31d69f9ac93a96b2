package predicate

import (
	"fmt"

	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/symerr"
)

// satSet is the sat-set abstraction used by witness extraction: a set of
// concrete elements guaranteed to satisfy the predicate (included), a
// set guaranteed not to (excluded), and an overall satisfiability flag.
// See spec.md §4.3.
type satSet[D domain.Elem[D]] struct {
	included    []D
	excluded    []D
	satisfiable bool
}

func emptySatSet[D domain.Elem[D]]() satSet[D] {
	return satSet[D]{satisfiable: true}
}

func containsElem[D domain.Elem[D]](set []D, x D) bool {
	for _, e := range set {
		if e.Compare(x) == 0 {
			return true
		}
	}
	return false
}

func intersectElems[D domain.Elem[D]](a, b []D) []D {
	var out []D
	for _, e := range a {
		if containsElem(b, e) {
			out = append(out, e)
		}
	}
	return out
}

func unionElems[D domain.Elem[D]](a, b []D) []D {
	out := append([]D{}, a...)
	for _, e := range b {
		if !containsElem(out, e) {
			out = append(out, e)
		}
	}
	return out
}

func diffElems[D domain.Elem[D]](a, b []D) []D {
	var out []D
	for _, e := range a {
		if !containsElem(b, e) {
			out = append(out, e)
		}
	}
	return out
}

// toSatSet computes the sat-set abstraction of p structurally, per
// spec.md §4.3. zero is the domain's default value, used as the witness
// for an unconditional Top predicate (mirrors the Rust reference's
// char::default()).
func toSatSet[D domain.Elem[D]](p Predicate[D], zero D) (satSet[D], error) {
	switch p.kind {
	case KindBool:
		if p.b {
			s := emptySatSet[D]()
			s.included = []D{zero}
			return s, nil
		}
		return satSet[D]{satisfiable: false}, nil

	case KindEq:
		s := emptySatSet[D]()
		s.included = []D{p.eq}
		return s, nil

	case KindRange:
		s := emptySatSet[D]()
		lo, hi := byte(0), byte(255)
		if p.rangeLeft != nil {
			lo = (*p.rangeLeft).ToByte()
		}
		if p.rangeRight != nil {
			hi = (*p.rangeRight).ToByte()
		}
		for b := int(lo); b < int(hi); b++ {
			s.included = append(s.included, elemFromByte(zero, byte(b)))
		}
		return s, nil

	case KindInSet:
		if len(p.set) == 0 {
			return satSet[D]{satisfiable: false}, nil
		}
		s := emptySatSet[D]()
		s.included = append(s.included, p.set...)
		return s, nil

	case KindAnd:
		s1, err := toSatSet(*p.p, zero)
		if err != nil {
			return satSet[D]{}, err
		}
		s2, err := toSatSet(*p.q, zero)
		if err != nil {
			return satSet[D]{}, err
		}
		return satSet[D]{
			included:    intersectElems(s1.included, s2.included),
			excluded:    unionElems(s1.excluded, s2.excluded),
			satisfiable: s1.satisfiable && s2.satisfiable,
		}, nil

	case KindOr:
		// Or(p,q) is equivalent to Not(Not(p) And Not(q)); compute via
		// that identity so only one code path implements the sat-set
		// arithmetic, per spec.md §4.3.
		equiv := p.p.Not().And(p.q.Not()).Not()
		return toSatSet(equiv, zero)

	case KindNot:
		inner, err := toSatSet(*p.p, zero)
		if err != nil {
			return satSet[D]{}, err
		}
		if !inner.satisfiable {
			return inner, nil
		}
		s := emptySatSet[D]()
		s.excluded = diffElems(inner.included, inner.excluded)
		return s, nil

	case KindWithLambda:
		return satSet[D]{}, fmt.Errorf("%w: get_one over WithLambda", symerr.ErrUnsupported)

	default:
		return satSet[D]{}, fmt.Errorf("%w: unrecognized predicate kind", symerr.ErrSyntax)
	}
}

// elemFromByte re-embeds a byte into D through D's FromByte method (the
// fromByter interface below) when D has one.
func elemFromByte[D domain.Elem[D]](zero D, b byte) D {
	if f, ok := any(zero).(fromByter[D]); ok {
		return f.FromByte(b)
	}
	// Fallback: no byte constructor available, only usable for domains
	// where the zero value already carries enough information (never
	// hit by domain.Plain/domain.Wrapped, which both implement
	// fromByter).
	return zero
}

// fromByter lets a domain element reconstruct a sibling value from a raw
// byte; domain.Plain and domain.Wrapped both implement it.
type fromByter[D any] interface {
	FromByte(b byte) D
}

// GetOne performs witness extraction: it derives the sat-set
// abstraction for p and returns the first concrete element included but
// not excluded, scanning the byte range ['a', 0xFF) when the included
// set itself is empty (e.g. a pure negation). zero seeds the Top-case
// witness and the byte-range fallback's domain reconstruction.
func GetOne[D domain.Elem[D]](p Predicate[D], zero D) (D, error) {
	var none D

	s, err := toSatSet(p, zero)
	if err != nil {
		return none, err
	}
	if !s.satisfiable {
		return none, symerr.NoElement{Reason: "predicate is unsatisfiable"}
	}

	if len(s.included) == 0 {
		for b := int('a'); b < 0xFF; b++ {
			cand := elemFromByte(zero, byte(b))
			if !containsElem(s.excluded, cand) {
				return cand, nil
			}
		}
		return none, symerr.NoElement{Reason: "exhausted byte range"}
	}

	for _, cand := range s.included {
		if !containsElem(s.excluded, cand) {
			return cand, nil
		}
	}
	return none, symerr.NoElement{Reason: "all included candidates excluded"}
}
