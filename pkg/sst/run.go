package sst

import (
	"github.com/gitrdm/symstr/pkg/automaton"
	"github.com/gitrdm/symstr/pkg/domain"
)

// Registers is a single run's current per-variable contents.
type Registers[D any] map[Variable][]D

func (r Registers[D]) clone() Registers[D] {
	out := make(Registers[D], len(r))
	for v, val := range r {
		out[v] = append([]D{}, val...)
	}
	return out
}

// possibility is the carried state of one live SST run: a current
// automaton state plus the register contents accumulated so far.
type possibility[D any] struct {
	state automaton.State
	regs  Registers[D]
}

// CurrentState satisfies automaton.Possibility.
func (p possibility[D]) CurrentState() automaton.State { return p.state }

func evalAtoms[D domain.Elem[D]](atoms []Atom[D], regs Registers[D], symbol D, haveSymbol bool) []D {
	var out []D
	for _, a := range atoms {
		switch a.kind {
		case AtomVariable:
			out = append(out, regs[a.variable]...)
		case AtomLiteral:
			out = append(out, a.literal)
		case AtomFunction:
			if !haveSymbol {
				continue
			}
			if v, ok := a.fn.Apply(symbol); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// Run executes the transducer over input, per spec.md §4.6: every
// transition whose guard denotes the current symbol advances a live
// possibility and rewrites the Registers its update touches; Registers
// the update leaves untouched keep their prior contents. Each
// possibility still alive on a final state after the whole input is
// consumed contributes one output, evaluated through that state's final
// assignment. Multiple results mean multiple accepting paths; callers
// resolve or prune the ambiguity.
func Run[D domain.Elem[D]](s *SST[D], input []D) []Registers[D] {
	init := []possibility[D]{{state: s.M.Initial, regs: Registers[D]{}}}

	return automaton.GeneralizedRun(
		s.M,
		input,
		init,
		func(curr possibility[D], symbol D, _ automaton.State, target Dest[D]) possibility[D] {
			next := curr.regs.clone()
			for v, atoms := range target.Update {
				next[v] = evalAtoms(atoms, curr.regs, symbol, true)
			}
			return possibility[D]{state: target.Next, regs: next}
		},
		func(possibilities []possibility[D]) []Registers[D] {
			var outs []Registers[D]
			for _, p := range possibilities {
				for _, f := range s.M.Finals {
					if f.State != p.state {
						continue
					}
					final := Registers[D]{}
					for v := 0; v < s.NumVars; v++ {
						var zero D
						final[Variable(v)] = evalAtoms(f.Assignment[Variable(v)], p.regs, zero, false)
					}
					outs = append(outs, final)
				}
			}
			return outs
		},
	)
}
