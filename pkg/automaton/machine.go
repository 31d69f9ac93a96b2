package automaton

import (
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
)

// Target is satisfied by whatever a transition leads to; for an SFA this
// is a bare State, for an SST it additionally carries per-variable
// output-register updates (see pkg/sst).
type Target interface {
	TargetState() State
}

// Final is satisfied by whatever decorates an accepting state; for an
// SFA this is a bare State, for an SST it additionally carries the final
// output assignment.
type Final interface {
	FinalState() State
}

// Transition is one guarded edge: from Source, on any input denoted by
// Guard, move to every state in Targets.
type Transition[D domain.Elem[D], T Target] struct {
	Source  State
	Guard   predicate.Predicate[D]
	Targets []T
}

// Machine is the generic state-machine substrate shared by pkg/sfa and
// pkg/sst: a set of reachable states, an initial state, a final set
// (possibly richer than just states), and a guarded transition table.
type Machine[D domain.Elem[D], T Target, F Final] struct {
	States  map[State]struct{}
	Initial State
	Finals  []F
	Trans   []Transition[D, T]
}

// New creates a machine with a single initial state, no transitions, and
// an empty final set.
func New[D domain.Elem[D], T Target, F Final]() *Machine[D, T, F] {
	initial := NewState()
	return &Machine[D, T, F]{
		States:  map[State]struct{}{initial: {}},
		Initial: initial,
	}
}

// AddState registers s as reachable.
func (m *Machine[D, T, F]) AddState(s State) {
	m.States[s] = struct{}{}
}

// AddTransition appends a guarded edge from source to targets.
func (m *Machine[D, T, F]) AddTransition(source State, guard predicate.Predicate[D], targets ...T) {
	m.Trans = append(m.Trans, Transition[D, T]{Source: source, Guard: guard, Targets: targets})
}

// Minimize prunes the machine to states reachable forward from Initial
// and backward from some final state, per spec.md §4.4:
//
//  1. Forward reachability from Initial, following only satisfiable
//     transitions.
//  2. Backward reachability from the final set (restricted to survivors
//     of pass 1), again following only satisfiable transitions.
//
// Initial is always re-inserted after pass 2 even if it reaches no
// final state, so downstream binary operations (concat, union,
// intersection) remain total.
func (m *Machine[D, T, F]) Minimize() *Machine[D, T, F] {
	forward := m.reachableForward()
	m.restrictTo(forward)

	backward := m.reachableBackward(forward)
	backward[m.Initial] = struct{}{}
	m.restrictTo(backward)

	return m
}

func (m *Machine[D, T, F]) reachableForward() map[State]struct{} {
	seen := map[State]struct{}{m.Initial: {}}
	stack := []State{m.Initial}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tr := range m.Trans {
			if tr.Source != s || !tr.Guard.Satisfiable() {
				continue
			}
			for _, t := range tr.Targets {
				next := t.TargetState()
				if _, ok := seen[next]; !ok {
					seen[next] = struct{}{}
					stack = append(stack, next)
				}
			}
		}
	}
	return seen
}

func (m *Machine[D, T, F]) reachableBackward(forward map[State]struct{}) map[State]struct{} {
	seen := map[State]struct{}{}
	var stack []State
	for _, f := range m.Finals {
		fs := f.FinalState()
		if _, ok := forward[fs]; !ok {
			continue
		}
		if _, ok := seen[fs]; !ok {
			seen[fs] = struct{}{}
			stack = append(stack, fs)
		}
	}

	for len(stack) > 0 {
		target := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tr := range m.Trans {
			if !tr.Guard.Satisfiable() {
				continue
			}
			leadsToTarget := false
			for _, t := range tr.Targets {
				if t.TargetState() == target {
					leadsToTarget = true
					break
				}
			}
			if !leadsToTarget {
				continue
			}
			if _, ok := forward[tr.Source]; !ok {
				continue
			}
			if _, ok := seen[tr.Source]; !ok {
				seen[tr.Source] = struct{}{}
				stack = append(stack, tr.Source)
			}
		}
	}
	return seen
}

func (m *Machine[D, T, F]) restrictTo(keep map[State]struct{}) {
	states := map[State]struct{}{}
	for s := range keep {
		states[s] = struct{}{}
	}
	m.States = states

	var trans []Transition[D, T]
	for _, tr := range m.Trans {
		if _, ok := states[tr.Source]; !ok {
			continue
		}
		var targets []T
		for _, t := range tr.Targets {
			if _, ok := states[t.TargetState()]; ok {
				targets = append(targets, t)
			}
		}
		if len(targets) > 0 {
			trans = append(trans, Transition[D, T]{Source: tr.Source, Guard: tr.Guard, Targets: targets})
		}
	}
	m.Trans = trans

	var finals []F
	for _, f := range m.Finals {
		if _, ok := states[f.FinalState()]; ok {
			finals = append(finals, f)
		}
	}
	m.Finals = finals
}

// Step is the relational one-character advance helper of spec.md §4.4:
// for every live possibility and every transition in the machine, invoke
// combine to decide whether (and how) that transition advances the
// possibility. combine is responsible for checking that the transition's
// source matches curr's current state when that matters — Step itself
// makes no assumption about what "current state" means for P, which is
// what lets determinization build subset-of-states possibilities from
// per-state transitions.
func Step[D domain.Elem[D], T Target, F Final, P any](
	m *Machine[D, T, F],
	possibilities []P,
	combine func(curr P, source State, guard predicate.Predicate[D], target T) (P, bool),
) []P {
	var out []P
	for _, curr := range possibilities {
		for _, tr := range m.Trans {
			for _, t := range tr.Targets {
				if np, ok := combine(curr, tr.Source, tr.Guard, t); ok {
					out = append(out, np)
				}
			}
		}
	}
	return out
}

// Possibility is anything GeneralizedRun can carry alongside a current
// state: a bare State for SFA membership, or a richer value (e.g. an
// accumulated output) for SST execution.
type Possibility interface {
	CurrentState() State
}

// GeneralizedRun drives the machine across input, per spec.md §4.4: for
// each symbol and each live possibility, it explores every satisfiable
// transition whose guard denotes that symbol, folds each match via step
// into a new possibility, then reduces the final possibility set with
// finish. All transitions for all current possibilities are explored per
// symbol; the only ordering guarantee is determinism relative to the
// transition table's iteration order.
func GeneralizedRun[D domain.Elem[D], T Target, F Final, P Possibility, Output any](
	m *Machine[D, T, F],
	input []D,
	initial []P,
	step func(curr P, symbol D, source State, target T) P,
	finish func(possibilities []P) Output,
) Output {
	possibilities := initial

	for _, symbol := range input {
		var next []P
		for _, curr := range possibilities {
			for _, tr := range m.Trans {
				if tr.Source != curr.CurrentState() || !tr.Guard.Denote(symbol) {
					continue
				}
				for _, t := range tr.Targets {
					next = append(next, step(curr, symbol, tr.Source, t))
				}
			}
		}
		possibilities = next
	}

	return finish(possibilities)
}
