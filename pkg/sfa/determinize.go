package sfa

import (
	"github.com/gitrdm/symstr/pkg/automaton"
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
)

// minterm is one cell of the partition induced by a set of guards: a
// predicate guaranteed disjoint from every other minterm's predicate,
// plus which of the original guards (by index) it falls inside.
type minterm[D domain.Elem[D]] struct {
	pred     predicate.Predicate[D]
	included []bool
}

// minterms refines predicate.Top into a disjoint partition by
// successively splitting every current cell on "inside guard i" /
// "outside guard i", discarding unsatisfiable splits. The result is the
// symbolic analogue of an alphabet partition: any two characters falling
// in the same minterm are interchangeable with respect to every guard in
// guards.
func minterms[D domain.Elem[D]](guards []predicate.Predicate[D]) []minterm[D] {
	cur := []minterm[D]{{pred: predicate.Top[D]()}}
	for _, g := range guards {
		var next []minterm[D]
		for _, m := range cur {
			inside := m.pred.And(g)
			if inside.Satisfiable() {
				incl := append(append([]bool{}, m.included...), true)
				next = append(next, minterm[D]{pred: inside, included: incl})
			}
			outside := m.pred.And(g.Not())
			if outside.Satisfiable() {
				incl := append(append([]bool{}, m.included...), false)
				next = append(next, minterm[D]{pred: outside, included: incl})
			}
		}
		cur = next
	}
	return cur
}

// Determinize runs the symbolic subset construction of spec.md §4.5's
// Not case: each reachable subset of nondeterministic states becomes one
// deterministic state, and outgoing transitions are the minterms of that
// subset's combined outgoing guards, each routed to the union of targets
// whose guard it falls inside.
func Determinize[D domain.Elem[D]](a *SFA[D]) *SFA[D] {
	result := automaton.New[D, automaton.State, automaton.State]()

	subsetState := map[string]automaton.State{}
	subsetMembers := map[string][]automaton.State{}
	var order []string

	isFinal := map[automaton.State]bool{}
	for _, f := range a.Finals {
		isFinal[f] = true
	}
	subsetIsFinal := func(states []automaton.State) bool {
		for _, s := range states {
			if isFinal[s] {
				return true
			}
		}
		return false
	}

	initKey := stateSetKey([]automaton.State{a.Initial})
	subsetState[initKey] = result.Initial
	subsetMembers[initKey] = []automaton.State{a.Initial}
	order = append(order, initKey)
	if subsetIsFinal(subsetMembers[initKey]) {
		result.Finals = append(result.Finals, result.Initial)
	}

	for i := 0; i < len(order); i++ {
		key := order[i]
		members := subsetMembers[key]
		src := subsetState[key]

		var guards []predicate.Predicate[D]
		var targets [][]automaton.State
		for _, tr := range a.Trans {
			if !containsState(members, tr.Source) {
				continue
			}
			guards = append(guards, tr.Guard)
			targets = append(targets, append([]automaton.State{}, tr.Targets...))
		}

		for _, mt := range minterms(guards) {
			if !mt.pred.Satisfiable() {
				continue
			}
			var union []automaton.State
			seen := map[automaton.State]struct{}{}
			for idx, included := range mt.included {
				if !included {
					continue
				}
				for _, s := range targets[idx] {
					if _, ok := seen[s]; !ok {
						seen[s] = struct{}{}
						union = append(union, s)
					}
				}
			}
			if len(union) == 0 {
				continue
			}

			uk := stateSetKey(union)
			dst, ok := subsetState[uk]
			if !ok {
				dst = automaton.NewState()
				result.AddState(dst)
				subsetState[uk] = dst
				subsetMembers[uk] = union
				order = append(order, uk)
				if subsetIsFinal(union) {
					result.Finals = append(result.Finals, dst)
				}
			}
			result.AddTransition(src, mt.pred, dst)
		}
	}

	return result
}
