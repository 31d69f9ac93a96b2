// Package sfa implements the symbolic finite automaton: the state-machine
// substrate of pkg/automaton specialized so that both transition targets
// and final-state decorations are bare states, plus the regular
// operations over that specialization — union, intersection,
// complement, concatenation, Kleene star/plus, and membership.
package sfa

import (
	"sort"
	"strings"

	"github.com/gitrdm/symstr/pkg/automaton"
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
)

// SFA is the state-machine substrate specialized per spec.md §4.4/§4.6:
// T = State, F = State.
type SFA[D domain.Elem[D]] = automaton.Machine[D, automaton.State, automaton.State]

// Empty returns the SFA accepting no strings at all.
func Empty[D domain.Elem[D]]() *SFA[D] {
	return automaton.New[D, automaton.State, automaton.State]()
}

// Epsilon returns the SFA accepting only the empty string.
func Epsilon[D domain.Elem[D]]() *SFA[D] {
	m := automaton.New[D, automaton.State, automaton.State]()
	m.Finals = []automaton.State{m.Initial}
	return m
}

// Element returns the SFA accepting only the single-character string a.
func Element[D domain.Elem[D]](a D) *SFA[D] {
	m := automaton.New[D, automaton.State, automaton.State]()
	final := automaton.NewState()
	m.AddState(final)
	m.AddTransition(m.Initial, predicate.Char(a), final)
	m.Finals = []automaton.State{final}
	return m
}

// All returns the SFA accepting any single non-separator character.
func All[D domain.Elem[D]]() *SFA[D] {
	m := automaton.New[D, automaton.State, automaton.State]()
	final := automaton.NewState()
	m.AddState(final)
	m.AddTransition(m.Initial, predicate.AllChar[D](), final)
	m.Finals = []automaton.State{final}
	return m
}

// RangeOf returns the SFA accepting any single character in [left, right);
// a nil bound is unbounded on that side.
func RangeOf[D domain.Elem[D]](left, right *D) *SFA[D] {
	m := automaton.New[D, automaton.State, automaton.State]()
	final := automaton.NewState()
	m.AddState(final)
	m.AddTransition(m.Initial, predicate.Range(left, right), final)
	m.Finals = []automaton.State{final}
	return m
}

func containsState(states []automaton.State, s automaton.State) bool {
	for _, x := range states {
		if x == s {
			return true
		}
	}
	return false
}

// Concat returns the SFA accepting L(a)·L(b), per spec.md §4.5: the new
// initial is a's initial; a's finals inherit b's initial's outgoing
// transitions; b's finals become finals, and a's finals stay final too
// exactly when b's initial is itself final (so an empty b-suffix is
// allowed through).
func Concat[D domain.Elem[D]](a, b *SFA[D]) *SFA[D] {
	result := automaton.New[D, automaton.State, automaton.State]()
	result.Initial = a.Initial
	result.States = map[automaton.State]struct{}{}
	for s := range a.States {
		result.AddState(s)
	}
	for s := range b.States {
		result.AddState(s)
	}

	result.Trans = append(result.Trans, a.Trans...)
	result.Trans = append(result.Trans, b.Trans...)
	for _, tr := range b.Trans {
		if tr.Source != b.Initial {
			continue
		}
		for _, af := range a.Finals {
			result.AddTransition(af, tr.Guard, tr.Targets...)
		}
	}

	var finals []automaton.State
	if containsState(b.Finals, b.Initial) {
		finals = append(finals, a.Finals...)
	}
	finals = append(finals, b.Finals...)
	result.Finals = finals

	return result.Minimize()
}

// Union returns the SFA accepting L(a) ∪ L(b), per spec.md §4.5: a fresh
// initial state copies every out-transition of both original initial
// states, simulating the epsilon-transitions a classical Thompson
// construction would use.
func Union[D domain.Elem[D]](a, b *SFA[D]) *SFA[D] {
	result := automaton.New[D, automaton.State, automaton.State]()
	fresh := result.Initial
	result.States = map[automaton.State]struct{}{fresh: {}}
	for s := range a.States {
		result.AddState(s)
	}
	for s := range b.States {
		result.AddState(s)
	}

	result.Trans = append(result.Trans, a.Trans...)
	result.Trans = append(result.Trans, b.Trans...)
	for _, tr := range a.Trans {
		if tr.Source == a.Initial {
			result.AddTransition(fresh, tr.Guard, tr.Targets...)
		}
	}
	for _, tr := range b.Trans {
		if tr.Source == b.Initial {
			result.AddTransition(fresh, tr.Guard, tr.Targets...)
		}
	}

	var finals []automaton.State
	finals = append(finals, a.Finals...)
	finals = append(finals, b.Finals...)
	if containsState(a.Finals, a.Initial) || containsState(b.Finals, b.Initial) {
		finals = append(finals, fresh)
	}
	result.Finals = finals

	return result.Minimize()
}

// Inter returns the SFA accepting L(a) ∩ L(b) via the classical product
// construction: states are pairs, transitions combine guards with And,
// and a pair transition is dropped whenever the combined guard is
// unsatisfiable.
func Inter[D domain.Elem[D]](a, b *SFA[D]) *SFA[D] {
	result := automaton.New[D, automaton.State, automaton.State]()

	type pairKey [2]automaton.State
	pairState := map[pairKey]automaton.State{}
	var order []pairKey

	isFinalA := map[automaton.State]bool{}
	for _, f := range a.Finals {
		isFinalA[f] = true
	}
	isFinalB := map[automaton.State]bool{}
	for _, f := range b.Finals {
		isFinalB[f] = true
	}

	initKey := pairKey{a.Initial, b.Initial}
	pairState[initKey] = result.Initial
	order = append(order, initKey)

	var finals []automaton.State
	if isFinalA[a.Initial] && isFinalB[b.Initial] {
		finals = append(finals, result.Initial)
	}

	for i := 0; i < len(order); i++ {
		key := order[i]
		pa, pb := key[0], key[1]
		src := pairState[key]

		for _, ta := range a.Trans {
			if ta.Source != pa {
				continue
			}
			for _, tb := range b.Trans {
				if tb.Source != pb {
					continue
				}
				combined := ta.Guard.And(tb.Guard)
				if !combined.Satisfiable() {
					continue
				}
				for _, tga := range ta.Targets {
					for _, tgb := range tb.Targets {
						dstKey := pairKey{tga, tgb}
						dst, existed := pairState[dstKey]
						if !existed {
							dst = automaton.NewState()
							result.AddState(dst)
							pairState[dstKey] = dst
							order = append(order, dstKey)
							if isFinalA[tga] && isFinalB[tgb] {
								finals = append(finals, dst)
							}
						}
						result.AddTransition(src, combined, dst)
					}
				}
			}
		}
	}
	result.Finals = finals

	return result.Minimize()
}

// Star returns the SFA accepting L(a)*: the initial state becomes final,
// and every final state inherits the initial state's out-transitions so
// the language can loop back around.
func Star[D domain.Elem[D]](a *SFA[D]) *SFA[D] {
	result := loopBack(a)
	result.Finals = append(append([]automaton.State{}, a.Finals...), a.Initial)
	return result.Minimize()
}

// Plus returns the SFA accepting L(a)+ (one or more repetitions): the
// same looped structure as Star, but without making the initial state
// final — an empty string only remains accepted if it already was.
func Plus[D domain.Elem[D]](a *SFA[D]) *SFA[D] {
	result := loopBack(a)
	result.Finals = append([]automaton.State{}, a.Finals...)
	return result.Minimize()
}

func loopBack[D domain.Elem[D]](a *SFA[D]) *SFA[D] {
	result := automaton.New[D, automaton.State, automaton.State]()
	result.Initial = a.Initial
	result.States = map[automaton.State]struct{}{}
	for s := range a.States {
		result.AddState(s)
	}
	result.Trans = append(result.Trans, a.Trans...)
	for _, tr := range a.Trans {
		if tr.Source != a.Initial {
			continue
		}
		for _, f := range a.Finals {
			result.AddTransition(f, tr.Guard, tr.Targets...)
		}
	}
	return result
}

// Not returns the SFA accepting Σ* \ L(a): determinize, totalize with an
// explicit sink state, flip final/non-final, then minimize.
func Not[D domain.Elem[D]](a *SFA[D]) *SFA[D] {
	det := Determinize(a)
	tot := totalize(det)

	isFinal := map[automaton.State]bool{}
	for _, f := range tot.Finals {
		isFinal[f] = true
	}

	flipped := automaton.New[D, automaton.State, automaton.State]()
	flipped.Initial = tot.Initial
	flipped.States = tot.States
	flipped.Trans = tot.Trans

	var finals []automaton.State
	for s := range tot.States {
		if !isFinal[s] {
			finals = append(finals, s)
		}
	}
	flipped.Finals = finals

	return flipped.Minimize()
}

// totalize adds an explicit sink state and routes every state's
// uncovered input (the negation of the disjunction of its existing
// guards) there, so every state has a satisfiable transition for every
// input — a precondition for complementing by flipping final/non-final.
func totalize[D domain.Elem[D]](a *SFA[D]) *SFA[D] {
	sink := automaton.NewState()
	a.AddState(sink)

	bySource := map[automaton.State][]predicate.Predicate[D]{}
	for _, tr := range a.Trans {
		bySource[tr.Source] = append(bySource[tr.Source], tr.Guard)
	}

	for s := range a.States {
		covered := predicate.Bot[D]()
		for _, g := range bySource[s] {
			covered = covered.Or(g)
		}
		remainder := covered.Not()
		if remainder.Satisfiable() {
			a.AddTransition(s, remainder, sink)
		}
	}
	a.AddTransition(sink, predicate.Top[D](), sink)
	return a
}

// Member reports whether input is accepted: run generalized_run from the
// initial state, following any transition whose guard denotes the
// current symbol, and succeed iff some live possibility ends on a final
// state.
func Member[D domain.Elem[D]](a *SFA[D], input []D) bool {
	return automaton.GeneralizedRun(
		a,
		input,
		[]automaton.State{a.Initial},
		func(_ automaton.State, _ D, _ automaton.State, target automaton.State) automaton.State {
			return target.TargetState()
		},
		func(possibilities []automaton.State) bool {
			for _, p := range possibilities {
				if containsState(a.Finals, p) {
					return true
				}
			}
			return false
		},
	)
}

func stateSetKey(states []automaton.State) string {
	sorted := append([]automaton.State{}, states...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	var sb strings.Builder
	for _, s := range sorted {
		sb.WriteString(s.String())
		sb.WriteByte(',')
	}
	return sb.String()
}
