// Package sst implements the symbolic streaming transducer skeleton of
// spec.md §4.6: a fixed ordered set of output variables, a transition
// relation built on pkg/automaton where each edge carries a per-variable
// register update, and a final set that decorates each accepting state
// with the assignment producing its overall output.
package sst

import (
	"github.com/gitrdm/symstr/pkg/automaton"
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
	"github.com/gitrdm/symstr/pkg/term"
)

// Variable names one of an SST's fixed, ordered output registers by its
// index.
type Variable int

// AtomKind discriminates the three kinds of output atom a register
// update can be built from.
type AtomKind int

const (
	// AtomVariable copies the current contents of another register.
	AtomVariable AtomKind = iota
	// AtomLiteral emits a fixed domain value.
	AtomLiteral
	// AtomFunction emits the result of applying a function term to the
	// current input character; it emits nothing when the term is
	// undefined at that character.
	AtomFunction
)

// Atom is one output-producing step of a register update.
type Atom[D domain.Elem[D]] struct {
	kind     AtomKind
	variable Variable  // AtomVariable
	literal  D         // AtomLiteral
	fn       term.Term[D] // AtomFunction
}

// VarAtom returns an atom that copies register v's current contents.
func VarAtom[D domain.Elem[D]](v Variable) Atom[D] {
	return Atom[D]{kind: AtomVariable, variable: v}
}

// LiteralAtom returns an atom that emits the fixed value c.
func LiteralAtom[D domain.Elem[D]](c D) Atom[D] {
	return Atom[D]{kind: AtomLiteral, literal: c}
}

// FunctionAtom returns an atom that applies f to the current input
// character.
func FunctionAtom[D domain.Elem[D]](f term.Term[D]) Atom[D] {
	return Atom[D]{kind: AtomFunction, fn: f}
}

// Update maps each register it touches to the sequence of atoms whose
// concatenation becomes that register's new contents; a register absent
// from the map keeps its prior contents across the transition.
type Update[D domain.Elem[D]] map[Variable][]Atom[D]

// Dest is a transition target: the next state plus the register update
// to apply while moving there. Dest satisfies automaton.Target.
type Dest[D domain.Elem[D]] struct {
	Next   automaton.State
	Update Update[D]
}

// TargetState satisfies automaton.Target.
func (d Dest[D]) TargetState() automaton.State { return d.Next }

// Assignment maps each register to the sequence of atoms that produce
// its contribution to the overall output once the run reaches a final
// state.
type Assignment[D domain.Elem[D]] map[Variable][]Atom[D]

// FinalOutput decorates an accepting state with its final assignment.
// FinalOutput satisfies automaton.Final.
type FinalOutput[D domain.Elem[D]] struct {
	State      automaton.State
	Assignment Assignment[D]
}

// FinalState satisfies automaton.Final.
func (f FinalOutput[D]) FinalState() automaton.State { return f.State }

// Machine is the state-machine substrate specialized for SSTs, per
// spec.md §4.4/§4.6: T = Dest (next state + update), F = FinalOutput
// (final state + output assignment).
type Machine[D domain.Elem[D]] = automaton.Machine[D, Dest[D], FinalOutput[D]]

// SST is a symbolic streaming transducer: a Machine plus the fixed
// number of output registers it carries.
type SST[D domain.Elem[D]] struct {
	M       *Machine[D]
	NumVars int
}

// New creates an SST with numVars output registers, a single initial
// state, no transitions, and no final states.
func New[D domain.Elem[D]](numVars int) *SST[D] {
	return &SST[D]{
		M:       automaton.New[D, Dest[D], FinalOutput[D]](),
		NumVars: numVars,
	}
}

// Initial returns the SST's initial state.
func (s *SST[D]) Initial() automaton.State { return s.M.Initial }

// AddState registers a reachable state.
func (s *SST[D]) AddState(state automaton.State) { s.M.AddState(state) }

// AddTransition adds a guarded edge carrying a register update.
func (s *SST[D]) AddTransition(source automaton.State, guard predicate.Predicate[D], next automaton.State, update Update[D]) {
	s.M.AddTransition(source, guard, Dest[D]{Next: next, Update: update})
}

// SetFinal decorates state as accepting with the given output
// assignment.
func (s *SST[D]) SetFinal(state automaton.State, assignment Assignment[D]) {
	s.M.Finals = append(s.M.Finals, FinalOutput[D]{State: state, Assignment: assignment})
}

// Minimize prunes unreachable/dead states, carrying register updates and
// assignments along unchanged.
func (s *SST[D]) Minimize() *SST[D] {
	s.M = s.M.Minimize()
	return s
}
