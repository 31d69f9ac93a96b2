// Package compile walks a parsed internal/smt2.Script and produces
// runnable artifacts: one symbolic streaming transducer per string
// assignment, per spec.md §4.2/§9, and one symbolic finite automaton per
// regex-membership assertion, per spec.md §4.5. It is a straight-line
// compiler, not an optimizer: assignments are processed once, in
// declaration order, and each one's SST is built directly from its
// already-compiled dependencies.
package compile

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gitrdm/symstr/internal/batch"
	"github.com/gitrdm/symstr/internal/smt2"
	"github.com/gitrdm/symstr/pkg/automaton"
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
	"github.com/gitrdm/symstr/pkg/sfa"
	"github.com/gitrdm/symstr/pkg/sst"
	"github.com/gitrdm/symstr/pkg/symerr"
	"github.com/gitrdm/symstr/pkg/symregex"
)

// outReg is the register every compiled variable's SST exposes its
// result in. Helper constructions (e.g. replaceAllSST) may use further
// private registers internally, but the composed result always
// publishes through register 0, which is what lets sequential
// composition (str.++) splice two compiled SSTs together without
// knowing anything about each other's internals.
const outReg sst.Variable = 0

// CompiledVar is one assignment's compiled form: an SST whose
// register 0 carries the variable's value over its own
// separator-delimited span of the flattened multi-string input tape.
type CompiledVar[D domain.Elem[D]] struct {
	Name string
	SST  *sst.SST[D]
}

// CompiledMembership is a regex-membership assertion compiled to an
// SFA; the caller decides what to do with it (e.g. run Member against a
// concrete candidate value, or feed it to a separate decision
// procedure — solving is explicitly out of scope, per spec.md's
// Non-goals).
type CompiledMembership[D domain.Elem[D]] struct {
	Var string
	SFA *sfa.SFA[D]
}

// Result is everything Compile produces from a script.
type Result[D domain.Elem[D]] struct {
	Vars        map[string]*CompiledVar[D]
	Memberships []CompiledMembership[D]
}

// Compile walks script.Assignments in order, maintaining a map from
// variable name to its defining SST, then compiles every membership
// assertion's regex to an SFA. Declared-but-unassigned string variables
// compile lazily to a copy-through span reader the first time something
// references them.
func Compile[D domain.Elem[D]](script *smt2.Script) (*Result[D], error) {
	declared := map[string]bool{}
	for _, d := range script.Decls {
		if d.Sort == smt2.SortString {
			declared[d.Name] = true
		}
	}

	res := &Result[D]{Vars: map[string]*CompiledVar[D]{}}
	for _, a := range script.Assignments {
		if !declared[a.Var] {
			return nil, fmt.Errorf("%w: assignment to undeclared variable %q", symerr.ErrSyntax, a.Var)
		}
		s, err := compileRHS(a.RHS, declared, res.Vars)
		if err != nil {
			return nil, err
		}
		res.Vars[a.Var] = &CompiledVar[D]{Name: a.Var, SST: s}
	}

	// Membership assertions are independent of each other and of every
	// assignment (neither reads the other's SST), unlike assignments,
	// which must walk in declaration order to resolve variable
	// references. Fan them out with internal/batch rather than a plain
	// loop.
	compileOne := batch.Processor[smt2.Membership, CompiledMembership[D]](
		func(_ context.Context, m smt2.Membership) (CompiledMembership[D], error) {
			re, err := compileRegex[D](m.Regex)
			if err != nil {
				return CompiledMembership[D]{}, err
			}
			return CompiledMembership[D]{Var: m.Var, SFA: re.ToSFA()}, nil
		},
	)
	memberships, err := batch.New(compileOne).
		WithConcurrencyLimit(runtime.NumCPU()).
		Run(context.Background(), script.Memberships)
	if err != nil {
		return nil, err
	}
	res.Memberships = memberships

	return res, nil
}

func compileRHS[D domain.Elem[D]](rhs smt2.RHS, declared map[string]bool, vars map[string]*CompiledVar[D]) (*sst.SST[D], error) {
	switch rhs.Kind {
	case smt2.RHSVar:
		return resolveVar[D](rhs.Var, declared, vars)

	case smt2.RHSLiteral:
		return literalSST[D](rhs.Literal), nil

	case smt2.RHSConcat:
		if len(rhs.Args) < 2 {
			return nil, fmt.Errorf("%w: str.++ needs at least two arguments", symerr.ErrSyntax)
		}
		acc, err := compileRHS[D](rhs.Args[0], declared, vars)
		if err != nil {
			return nil, err
		}
		for _, arg := range rhs.Args[1:] {
			next, err := compileRHS[D](arg, declared, vars)
			if err != nil {
				return nil, err
			}
			acc = concatSST(acc, next)
		}
		return acc, nil

	case smt2.RHSReverse:
		if rhs.ReverseOf == nil || rhs.ReverseOf.Kind != smt2.RHSVar {
			return nil, fmt.Errorf("%w: str.reverse only supports a direct variable reference", symerr.ErrUnsupported)
		}
		if !declared[rhs.ReverseOf.Var] {
			return nil, fmt.Errorf("%w: str.reverse of undeclared variable %q", symerr.ErrSyntax, rhs.ReverseOf.Var)
		}
		return reverseSpanSST[D](), nil

	case smt2.RHSReplaceAllRe:
		if rhs.ReplaceTarget == nil || rhs.ReplaceTarget.Kind != smt2.RHSVar {
			return nil, fmt.Errorf("%w: str.replaceallre only supports a direct variable target", symerr.ErrUnsupported)
		}
		if !declared[rhs.ReplaceTarget.Var] {
			return nil, fmt.Errorf("%w: str.replaceallre of undeclared variable %q", symerr.ErrSyntax, rhs.ReplaceTarget.Var)
		}
		pattern, err := compileRegex[D](rhs.ReplaceRegex)
		if err != nil {
			return nil, err
		}
		return replaceAllSST[D](pattern, rhs.ReplaceWith), nil

	default:
		return nil, fmt.Errorf("%w: unrecognized RHS kind %v", symerr.ErrSyntax, rhs.Kind)
	}
}

// resolveVar returns the compiled SST for a variable reference: its
// assignment's SST if one was already compiled (str.++'s operands are
// always compiled before the enclosing assignment, straight-line), or a
// fresh copy-through reader of its own span in the flattened tape
// otherwise.
func resolveVar[D domain.Elem[D]](name string, declared map[string]bool, vars map[string]*CompiledVar[D]) (*sst.SST[D], error) {
	if cv, ok := vars[name]; ok {
		return cv.SST, nil
	}
	if !declared[name] {
		return nil, fmt.Errorf("%w: reference to undeclared variable %q", symerr.ErrSyntax, name)
	}
	return freeSpanSST[D](), nil
}

func compileRegex[D domain.Elem[D]](ast smt2.RegexAST) (symregex.Regex[D], error) {
	switch ast.Kind {
	case smt2.RegexToRe:
		return symregex.Seq(stringToElems[D](ast.Literal)), nil
	case smt2.RegexNoStr:
		return symregex.Empty[D](), nil
	case smt2.RegexAllChar:
		return symregex.All[D](), nil
	case smt2.RegexRange:
		start := stringToElems[D](ast.RangeStart)
		end := stringToElems[D](ast.RangeEnd)
		if len(start) != 1 || len(end) != 1 {
			return symregex.Regex[D]{}, fmt.Errorf("%w: re.range bounds must be single characters", symerr.ErrSyntax)
		}
		return symregex.RangeOf(&start[0], &end[0]), nil
	case smt2.RegexStar:
		child, err := compileRegex[D](*ast.Child)
		if err != nil {
			return symregex.Regex[D]{}, err
		}
		return child.Star(), nil
	case smt2.RegexPlus:
		child, err := compileRegex[D](*ast.Child)
		if err != nil {
			return symregex.Regex[D]{}, err
		}
		return child.Plus(), nil
	case smt2.RegexConcat, smt2.RegexUnion, smt2.RegexInter:
		if len(ast.Children) < 2 {
			return symregex.Regex[D]{}, fmt.Errorf("%w: regex combinator needs at least two children", symerr.ErrSyntax)
		}
		acc, err := compileRegex[D](ast.Children[0])
		if err != nil {
			return symregex.Regex[D]{}, err
		}
		for _, c := range ast.Children[1:] {
			child, err := compileRegex[D](c)
			if err != nil {
				return symregex.Regex[D]{}, err
			}
			switch ast.Kind {
			case smt2.RegexConcat:
				acc = acc.Concat(child)
			case smt2.RegexUnion:
				acc = acc.Or(child)
			case smt2.RegexInter:
				acc = acc.Inter(child)
			}
		}
		return acc, nil
	default:
		return symregex.Regex[D]{}, fmt.Errorf("%w: unrecognized regex kind %v", symerr.ErrSyntax, ast.Kind)
	}
}

// stringToElems embeds a Go string's raw bytes into D one at a time via
// the same fromByter escape hatch pkg/predicate's GetOne uses to
// reconstruct witnesses — the only other place this codebase needs to
// manufacture a D value from a literal byte rather than receive one from
// an existing input.
func stringToElems[D domain.Elem[D]](s string) []D {
	var zero D
	out := make([]D, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = elemFromByte(zero, s[i])
	}
	return out
}

type fromByter[D any] interface {
	FromByte(b byte) D
}

func elemFromByte[D domain.Elem[D]](zero D, b byte) D {
	if f, ok := any(zero).(fromByter[D]); ok {
		return f.FromByte(b)
	}
	return zero
}

// literalSST builds an SST that ignores its input span entirely and
// always outputs the fixed literal s, appended to register 0 at the
// separator ending its span — used when an assignment's RHS is a bare
// string constant rather than a variable-derived expression.
func literalSST[D domain.Elem[D]](s string) *sst.SST[D] {
	m := sst.New[D](1)
	loop := m.Initial()
	final := automaton.NewState()
	m.AddState(final)
	m.AddTransition(loop, predicate.AllChar[D](), loop, sst.Update[D]{})
	lits := stringToElems[D](s)
	atoms := []sst.Atom[D]{sst.VarAtom[D](outReg)}
	for _, c := range lits {
		atoms = append(atoms, sst.LiteralAtom(c))
	}
	var zero D
	m.AddTransition(loop, predicate.Char(zero.Separator()), final, sst.Update[D]{outReg: atoms})
	m.SetFinal(final, sst.Assignment[D]{outReg: {sst.VarAtom[D](outReg)}})
	return m.Minimize()
}
