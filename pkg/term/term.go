// Package term implements the function-term language used to describe
// how a single input character maps to an output value: the identity
// function, a constant, a finite associative mapping, a predicate-guarded
// piecewise function, and composition of two terms. Predicates push
// terms into their guards (see pkg/predicate's WithLambda) and SST output
// registers apply terms to the current input character.
package term

import "github.com/gitrdm/symstr/pkg/domain"

// Term is a tagged function term over domain D; Kind reports its
// variant. The zero value is the identity term.
type Term[D domain.Elem[D]] struct {
	kind Kind
	c    D             // Constant
	m    []pair[D]      // Mapping: first match wins
	fn   []guarded[D]   // Function: first satisfied predicate wins
	f, g *Term[D]        // Composition: f(g(x))
}

// Kind discriminates the tagged variants of Term.
type Kind int

const (
	// KindIdentity maps x to x.
	KindIdentity Kind = iota
	// KindConstant ignores the input and yields a fixed value.
	KindConstant
	// KindMapping is a finite association list; first match wins.
	KindMapping
	// KindFunction is a predicate-guarded piecewise constant.
	KindFunction
	// KindComposition applies g first, then f.
	KindComposition
)

type pair[D domain.Elem[D]] struct {
	key, value D
}

// Guard is the minimal interface pkg/predicate's Predicate satisfies,
// reproduced here (rather than imported) to avoid a dependency cycle
// between term and predicate: predicate.Predicate both contains Terms
// (WithLambda) and is guarded by them (Function).
type Guard[D domain.Elem[D]] interface {
	Denote(x D) bool
}

type guarded[D domain.Elem[D]] struct {
	pred Guard[D]
	out  D
}

// Identity returns the term x -> x.
func Identity[D domain.Elem[D]]() Term[D] {
	return Term[D]{kind: KindIdentity}
}

// Constant returns the term that ignores its input and always yields c.
func Constant[D domain.Elem[D]](c D) Term[D] {
	return Term[D]{kind: KindConstant, c: c}
}

// Mapping returns a finite associative term: the first pair whose key
// matches the input wins; if no pair matches, Apply's second return
// value is false (undefined).
func Mapping[D domain.Elem[D]](pairs ...[2]D) Term[D] {
	ps := make([]pair[D], len(pairs))
	for i, p := range pairs {
		ps[i] = pair[D]{key: p[0], value: p[1]}
	}
	return Term[D]{kind: KindMapping, m: ps}
}

// Function returns a predicate-guarded piecewise constant term: the
// first guard whose Denote holds on the input determines the output.
func Function[D domain.Elem[D]](cases ...struct {
	Pred Guard[D]
	Out  D
}) Term[D] {
	gs := make([]guarded[D], len(cases))
	for i, c := range cases {
		gs[i] = guarded[D]{pred: c.Pred, out: c.Out}
	}
	return Term[D]{kind: KindFunction, fn: gs}
}

// Compose returns a term equivalent to x -> f(g(x)), eagerly applying
// these reductions:
//   - compose(Id, g) = g; compose(f, Id) = f
//   - compose(Constant(c), _) = Constant(c)
//   - otherwise an explicit composition node
func Compose[D domain.Elem[D]](f, g Term[D]) Term[D] {
	if f.kind == KindIdentity {
		return g
	}
	if g.kind == KindIdentity {
		return f
	}
	if f.kind == KindConstant {
		return f
	}
	fCopy, gCopy := f, g
	return Term[D]{kind: KindComposition, f: &fCopy, g: &gCopy}
}

// Kind reports the tagged variant of this term.
func (t Term[D]) Kind() Kind { return t.kind }

// Apply evaluates the term at x. ok is false when the term is undefined
// at x: a Mapping term with no matching key, a Function term with no
// satisfied guard, or a Composition with an undefined part.
func (t Term[D]) Apply(x D) (result D, ok bool) {
	switch t.kind {
	case KindIdentity:
		return x, true
	case KindConstant:
		return t.c, true
	case KindMapping:
		for _, p := range t.m {
			if p.key.Compare(x) == 0 {
				return p.value, true
			}
		}
		var zero D
		return zero, false
	case KindFunction:
		for _, g := range t.fn {
			if g.pred.Denote(x) {
				return g.out, true
			}
		}
		var zero D
		return zero, false
	case KindComposition:
		inner, ok := t.g.Apply(x)
		if !ok {
			var zero D
			return zero, false
		}
		return t.f.Apply(inner)
	default:
		var zero D
		return zero, false
	}
}
