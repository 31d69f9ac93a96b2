package symregex

import (
	"testing"

	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/sfa"
)

func w(b byte) domain.Wrapped { return domain.WrapByte(b) }

func TestAtomics(t *testing.T) {
	if Empty[domain.Wrapped]().Kind() != KindEmpty {
		t.Error("expected Empty")
	}
	if Epsilon[domain.Wrapped]().Kind() != KindEpsilon {
		t.Error("expected Epsilon")
	}
	if All[domain.Wrapped]().Kind() != KindAll {
		t.Error("expected All")
	}

	t.Run("range collapses", func(t *testing.T) {
		if RangeOf[domain.Wrapped](nil, nil).Kind() != KindEmpty {
			t.Error("fully unbounded range should collapse to Empty")
		}
		a := w('a')
		eq := RangeOf(&a, &a)
		if eq.Kind() != KindElement {
			t.Error("equal bounds should collapse to Element")
		}
		c := w('c')
		bounded := RangeOf(&a, &c)
		if bounded.Kind() != KindRange {
			t.Error("distinct bounds should stay a Range")
		}
	})
}

func TestConcatFlattening(t *testing.T) {
	ab := Element(w('a')).Concat(Element(w('b')))
	if ab.Kind() != KindConcat || len(ab.children) != 2 {
		t.Fatalf("expected a 2-element Concat, got %+v", ab)
	}
	abab := ab.Concat(ab)
	if len(abab.children) != 4 {
		t.Errorf("expected nested Concat to flatten to 4 children, got %d", len(abab.children))
	}

	seq := Seq([]domain.Wrapped{w('a'), w('b'), w('a'), w('b')})
	if !seq.Equal(abab) {
		t.Error("Seq should match the manually built Concat chain")
	}
}

func TestOrDedupeAndSort(t *testing.T) {
	ab := Element(w('a')).Or(Element(w('b')))
	if ab.Kind() != KindOr || len(ab.children) != 2 {
		t.Fatalf("expected 2-element Or, got %+v", ab)
	}
	same := ab.Or(ab)
	if !same.Equal(ab) {
		t.Error("Or should dedupe identical operands")
	}
	abc := ab.Or(Element(w('c')))
	if len(abc.children) != 3 {
		t.Errorf("expected 3-element Or, got %d", len(abc.children))
	}
}

func TestInterReductions(t *testing.T) {
	ab := Element(w('a')).Inter(Element(w('b')))
	if ab.Kind() != KindInter || len(ab.children) != 2 {
		t.Fatalf("expected 2-element Inter, got %+v", ab)
	}
	if !Empty[domain.Wrapped]().Inter(Element(w('a'))).Equal(Empty[domain.Wrapped]()) {
		t.Error("Empty ∩ r should be Empty")
	}
	if !Epsilon[domain.Wrapped]().Inter(All[domain.Wrapped]().Star()).Equal(Epsilon[domain.Wrapped]()) {
		t.Error("Epsilon ∩ All* should be Epsilon")
	}
}

func TestStarAndPlus(t *testing.T) {
	abc := Seq([]domain.Wrapped{w('a'), w('b'), w('c')})
	star := abc.Star()
	if star.Kind() != KindStar {
		t.Fatalf("expected Star, got %v", star.Kind())
	}
	if !star.child.Equal(abc) {
		t.Error("Star should wrap its operand unchanged")
	}
	if !star.Star().Equal(star) {
		t.Error("Star(Star(x)) should flatten to Star(x)")
	}

	plus := abc.Plus()
	if plus.Kind() != KindPlus {
		t.Fatalf("expected Plus, got %v", plus.Kind())
	}
}

func TestNotReductions(t *testing.T) {
	a := Element(w('a'))
	notA := a.Not()
	if notA.Kind() != KindNot {
		t.Fatalf("expected Not, got %v", notA.Kind())
	}
	if !notA.Not().Equal(a) {
		t.Error("double negation should cancel")
	}
	if !Empty[domain.Wrapped]().Not().Equal(All[domain.Wrapped]().Star()) {
		t.Error("Not(Empty) should be All*")
	}
}

func TestToSFAMatchesSemanticIntent(t *testing.T) {
	pattern := Seq([]domain.Wrapped{w('a'), w('b')}).Or(Element(w('c'))).Star()
	machine := pattern.ToSFA()

	accept := func(s string) []domain.Wrapped {
		out := make([]domain.Wrapped, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = w(s[i])
		}
		return out
	}

	for _, s := range []string{"", "ab", "c", "abcabab", "ccc"} {
		if !sfa.Member(machine, accept(s)) {
			t.Errorf("expected %q to be accepted by (ab|c)*", s)
		}
	}
	for _, s := range []string{"a", "b", "abc ", "d"} {
		if sfa.Member(machine, accept(s)) {
			t.Errorf("expected %q to be rejected by (ab|c)*", s)
		}
	}
}
