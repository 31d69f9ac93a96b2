package symregex

import (
	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/sfa"
)

// ToSFA compiles a regex to a symbolic finite automaton via the
// Thompson-style construction of spec.md §4.5: each constructor is
// translated directly to the corresponding SFA operation, with n-ary
// Concat/Or/Inter nodes left-folded pairwise.
func (r Regex[D]) ToSFA() *sfa.SFA[D] {
	switch r.kind {
	case KindEmpty:
		return sfa.Empty[D]()
	case KindEpsilon:
		return sfa.Epsilon[D]()
	case KindAll:
		return sfa.All[D]()
	case KindElement:
		return sfa.Element(r.elem)
	case KindRange:
		return sfa.RangeOf(r.rangeLeft, r.rangeRight)
	case KindConcat:
		return foldSFA(r.children, sfa.Concat[D])
	case KindOr:
		return foldSFA(r.children, sfa.Union[D])
	case KindInter:
		return foldSFA(r.children, sfa.Inter[D])
	case KindStar:
		return sfa.Star(r.child.ToSFA())
	case KindPlus:
		return sfa.Plus(r.child.ToSFA())
	case KindNot:
		return sfa.Not(r.child.ToSFA())
	default:
		return sfa.Empty[D]()
	}
}

func foldSFA[D domain.Elem[D]](children []Regex[D], op func(a, b *sfa.SFA[D]) *sfa.SFA[D]) *sfa.SFA[D] {
	if len(children) == 0 {
		return sfa.Empty[D]()
	}
	acc := children[0].ToSFA()
	for _, c := range children[1:] {
		acc = op(acc, c.ToSFA())
	}
	return acc
}
