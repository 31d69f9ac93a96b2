package compile

import (
	"github.com/gitrdm/symstr/pkg/automaton"
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
	"github.com/gitrdm/symstr/pkg/sst"
	"github.com/gitrdm/symstr/pkg/term"
)

// freeSpanSST builds the SST for a declared-but-unassigned string
// variable: copy every character of its own span (up to, but not
// including, the separator that marks its end on the flattened
// multi-string tape) into register 0 verbatim, then stop.
func freeSpanSST[D domain.Elem[D]]() *sst.SST[D] {
	m := sst.New[D](1)
	loop := m.Initial()
	final := automaton.NewState()
	m.AddState(final)
	m.AddTransition(loop, predicate.AllChar[D](), loop, sst.Update[D]{
		outReg: {sst.VarAtom[D](outReg), sst.FunctionAtom(term.Identity[D]())},
	})
	var zero D
	m.AddTransition(loop, predicate.Char(zero.Separator()), final, sst.Update[D]{})
	m.SetFinal(final, sst.Assignment[D]{outReg: {sst.VarAtom[D](outReg)}})
	return m.Minimize()
}

// reverseSpanSST builds the SST for str.reverse of a direct variable
// reference: prepend each new character ahead of whatever a scratch
// register already holds, then, at the separator ending the span,
// append that reversed span to register 0 and clear the scratch
// register. Register 0's prior contents are kept.
func reverseSpanSST[D domain.Elem[D]]() *sst.SST[D] {
	const revReg sst.Variable = 1
	m := sst.New[D](2)
	loop := m.Initial()
	final := automaton.NewState()
	m.AddState(final)
	m.AddTransition(loop, predicate.AllChar[D](), loop, sst.Update[D]{
		revReg: {sst.FunctionAtom(term.Identity[D]()), sst.VarAtom[D](revReg)},
	})
	var zero D
	m.AddTransition(loop, predicate.Char(zero.Separator()), final, sst.Update[D]{
		outReg: {sst.VarAtom[D](outReg), sst.VarAtom[D](revReg)},
		revReg: {},
	})
	m.SetFinal(final, sst.Assignment[D]{outReg: {sst.VarAtom[D](outReg)}})
	return m.Minimize()
}

// concatSST sequences two single-register SSTs built over the same
// shared input tape, matching the structural shape of sfa.Concat: a's
// states and transitions survive unchanged; b's initial state's
// out-transitions are spliced onto every one of a's final states
// (carrying over a's final assignment into the start of b's run, since
// both operands always address register 0 and updates are additive —
// "keep prior contents, append" — never a reset). b is not itself
// reachable as a standalone SST afterward; only the spliced copy is.
//
// This only composes correctly when each operand expects to read
// exactly the one span immediately in front of it on the tape, which is
// true of every SST this compiler builds (freeSpanSST, reverseSpanSST,
// replaceAllSST, and literalSST all consume their own span and stop at
// the next separator).
func concatSST[D domain.Elem[D]](a, b *sst.SST[D]) *sst.SST[D] {
	out := sst.New[D](1)
	out.M.States = map[automaton.State]struct{}{}
	out.M.Initial = a.Initial()
	for s := range a.M.States {
		out.AddState(s)
	}
	for s := range b.M.States {
		out.AddState(s)
	}
	out.M.Trans = append(out.M.Trans, a.M.Trans...)
	out.M.Trans = append(out.M.Trans, b.M.Trans...)

	bInitOut := transitionsFrom(b, b.Initial())
	for _, f := range a.M.Finals {
		for _, tr := range bInitOut {
			out.M.Trans = append(out.M.Trans, newTransFrom(tr, f.State))
		}
	}

	out.M.Finals = append(out.M.Finals, b.M.Finals...)
	return out.Minimize()
}

func transitionsFrom[D domain.Elem[D]](s *sst.SST[D], state automaton.State) []automaton.Transition[D, sst.Dest[D]] {
	var out []automaton.Transition[D, sst.Dest[D]]
	for _, tr := range s.M.Trans {
		if tr.Source == state {
			out = append(out, tr)
		}
	}
	return out
}

func newTransFrom[D domain.Elem[D]](tr automaton.Transition[D, sst.Dest[D]], newSource automaton.State) automaton.Transition[D, sst.Dest[D]] {
	return automaton.Transition[D, sst.Dest[D]]{Source: newSource, Guard: tr.Guard, Targets: tr.Targets}
}
