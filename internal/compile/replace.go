package compile

import (
	"github.com/gitrdm/symstr/pkg/automaton"
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
	"github.com/gitrdm/symstr/pkg/sfa"
	"github.com/gitrdm/symstr/pkg/sst"
	"github.com/gitrdm/symstr/pkg/symregex"
	"github.com/gitrdm/symstr/pkg/term"
)

// bufReg is replaceAllSST's private scratch register, holding whatever
// has been read since the last confirmed match or flush. It never
// escapes the machine this file builds: every transition that reaches a
// state outside this construction first folds bufReg's pending contents
// into outReg.
const bufReg sst.Variable = 1

// replaceAllSST builds the SST for str.replaceallre applied directly to
// a variable's own span: scan the span against pattern's deterministic
// automaton, and on every successful match emit replacement in place of
// the matched characters; on every failed match attempt, emit the
// buffered characters verbatim instead (the scan restarts immediately
// after a failure rather than retrying from the second buffered
// character, since this engine's SST model has no slicing primitive to
// split a register's contents — only whole-register copy, literal, and
// function atoms. This is a global, non-overlapping, leftmost-match
// replace with no backtracking into a failed partial match, matching
// what a copyless single-pass streaming transducer can express without
// a splitting operator).
func replaceAllSST[D domain.Elem[D]](pattern symregex.Regex[D], replacement string) *sst.SST[D] {
	det := sfa.Determinize(pattern.ToSFA())
	det = det.Minimize()

	m := sst.New[D](2)
	m.M.States = map[automaton.State]struct{}{}
	m.M.Initial = det.Initial
	for s := range det.States {
		m.AddState(s)
	}
	final := automaton.NewState()
	m.AddState(final)

	isAccept := map[automaton.State]bool{}
	for _, f := range det.Finals {
		isAccept[f] = true
	}

	nonSep := predicate.AllChar[D]()
	var zero D
	sepGuard := predicate.Char(zero.Separator())
	replLits := stringToElems[D](replacement)

	for s := range det.States {
		covered := predicate.Bot[D]()
		for _, tr := range det.Trans {
			if tr.Source != s {
				continue
			}
			covered = covered.Or(tr.Guard)
			target := tr.Targets[0]

			if isAccept[target] {
				atoms := []sst.Atom[D]{sst.VarAtom[D](outReg)}
				for _, c := range replLits {
					atoms = append(atoms, sst.LiteralAtom(c))
				}
				m.AddTransition(s, tr.Guard, det.Initial, sst.Update[D]{
					outReg: atoms,
					bufReg: {},
				})
			} else {
				m.AddTransition(s, tr.Guard, target, sst.Update[D]{
					bufReg: {sst.VarAtom[D](bufReg), sst.FunctionAtom(term.Identity[D]())},
				})
			}
		}

		failGuard := nonSep.And(covered.Not())
		if failGuard.Satisfiable() {
			m.AddTransition(s, failGuard, det.Initial, sst.Update[D]{
				outReg: {sst.VarAtom[D](outReg), sst.VarAtom[D](bufReg), sst.FunctionAtom(term.Identity[D]())},
				bufReg: {},
			})
		}

		m.AddTransition(s, sepGuard, final, sst.Update[D]{
			outReg: {sst.VarAtom[D](outReg), sst.VarAtom[D](bufReg)},
			bufReg: {},
		})
	}

	m.SetFinal(final, sst.Assignment[D]{outReg: {sst.VarAtom[D](outReg)}})
	return m.Minimize()
}
