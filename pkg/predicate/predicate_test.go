package predicate

import (
	"errors"
	"testing"

	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/symerr"
	"github.com/gitrdm/symstr/pkg/term"
)

func p(b byte) domain.Wrapped { return domain.WrapByte(b) }

func TestChar(t *testing.T) {
	t.Run("denotes only its own value", func(t *testing.T) {
		a := Char(p('a'))
		if !a.Denote(p('a')) {
			t.Error("expected Char('a') to denote 'a'")
		}
		if a.Denote(p('b')) {
			t.Error("expected Char('a') not to denote 'b'")
		}
	})
}

func TestRange(t *testing.T) {
	t.Run("left-bounded only", func(t *testing.T) {
		c := p('c')
		r := Range[domain.Wrapped](&c, nil)
		if r.Denote(p('b')) {
			t.Error("'b' should be rejected")
		}
		if !r.Denote(p('f')) || !r.Denote(p('z')) {
			t.Error("'f' and 'z' should be accepted")
		}
	})

	t.Run("right-open bound rejects the right endpoint", func(t *testing.T) {
		f, k := p('f'), p('k')
		r := Range(&f, &k)
		if !r.Denote(p('f')) || !r.Denote(p('i')) {
			t.Error("'f' and 'i' should be accepted")
		}
		if r.Denote(p('k')) || r.Denote(p('b')) || r.Denote(p('z')) {
			t.Error("'k', 'b', 'z' should be rejected")
		}
	})

	t.Run("inverted bounds normalize to Bot", func(t *testing.T) {
		k, f := p('k'), p('f')
		r := Range(&k, &f)
		if r.Kind() != KindBool || r.Satisfiable() {
			t.Errorf("expected Bot, got %+v", r)
		}
		for _, c := range []byte{'b', 'f', 'z'} {
			if r.Denote(p(c)) {
				t.Errorf("Bot should reject %q", c)
			}
		}
	})

	t.Run("fully unbounded normalizes to Top", func(t *testing.T) {
		r := Range[domain.Wrapped](nil, nil)
		if r.Kind() != KindBool || !r.Satisfiable() {
			t.Errorf("expected Top, got %+v", r)
		}
	})

	t.Run("equal bounds collapse to Char", func(t *testing.T) {
		f1, f2 := p('f'), p('f')
		r := Range(&f1, &f2)
		if r.Kind() != KindEq {
			t.Errorf("expected Eq, got kind %v", r.Kind())
		}
	})
}

func TestInSet(t *testing.T) {
	avd := InSet(p('a'), p('v'), p('d'))
	if avd.Kind() != KindInSet {
		t.Fatalf("expected InSet, got %v", avd.Kind())
	}
	want := InSet(p('a'), p('d'), p('v'))
	if !avd.Equal(want) {
		t.Error("InSet canonical form should be sorted/deduplicated")
	}
	for _, c := range []byte{'a', 'v', 'd'} {
		if !avd.Denote(p(c)) {
			t.Errorf("expected InSet to accept %q", c)
		}
	}
	for _, c := range []byte{'c', 'h', 'i'} {
		if avd.Denote(p(c)) {
			t.Errorf("expected InSet to reject %q", c)
		}
	}
}

func TestWithLambda(t *testing.T) {
	t.Run("constant term rewrites to a Bool", func(t *testing.T) {
		condX := Char(p('x')).WithLambda(term.Constant(p('x')))
		for _, c := range []byte{'a', 'x', 'z', '9'} {
			if !condX.Denote(p(c)) {
				t.Errorf("expected constant-lambda predicate to denote %q", c)
			}
		}
	})

	t.Run("mapping term", func(t *testing.T) {
		condSet := InSet(p('x'), p('y'), p('z')).WithLambda(term.Mapping(
			[2]domain.Wrapped{p('a'), p('x')},
			[2]domain.Wrapped{p('b'), p('y')},
			[2]domain.Wrapped{p('c'), p('z')},
		))
		for _, c := range []byte{'a', 'b', 'c'} {
			if !condSet.Denote(p(c)) {
				t.Errorf("expected %q to satisfy mapped set predicate", c)
			}
		}
		for _, c := range []byte{'0', 's'} {
			if condSet.Denote(p(c)) {
				t.Errorf("expected %q to fail mapped set predicate", c)
			}
		}
	})
}

func TestNegation(t *testing.T) {
	for _, x := range []byte{'a', 'b', 'c'} {
		a := Char(p('a'))
		notA := a.Not()
		if notA.Denote(p(x)) == a.Denote(p(x)) {
			t.Errorf("not(char(a)) should invert denotation at %q", x)
		}
	}

	t.Run("not(not(p)) = p", func(t *testing.T) {
		a := Char(p('a'))
		if !a.Not().Not().Equal(a) {
			t.Error("double negation should cancel")
		}
	})
}

func TestAndOrDenotation(t *testing.T) {
	rnd := func(lo, hi byte) Predicate[domain.Wrapped] {
		l, h := p(lo), p(hi)
		return Range(&l, &h)
	}
	a := rnd('a', 'm')
	b := rnd('g', 'z')

	and := a.And(b)
	or := a.Or(b)
	for c := byte('a'); c < 'z'; c++ {
		want := a.Denote(p(c)) && b.Denote(p(c))
		if and.Denote(p(c)) != want {
			t.Errorf("and mismatch at %q", c)
		}
		wantOr := a.Denote(p(c)) || b.Denote(p(c))
		if or.Denote(p(c)) != wantOr {
			t.Errorf("or mismatch at %q", c)
		}
	}
}

func TestSatisfiable(t *testing.T) {
	if Bot[domain.Wrapped]().Satisfiable() {
		t.Error("bot should be unsatisfiable")
	}
	if !Top[domain.Wrapped]().Satisfiable() {
		t.Error("top should be satisfiable")
	}
	if !Char(p('a')).Satisfiable() {
		t.Error("char should be satisfiable")
	}
}

func TestGetOne(t *testing.T) {
	t.Run("InSet returns its first element", func(t *testing.T) {
		got, err := GetOne(InSet(p('x'), p('y')), domain.Wrapped{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Compare(p('x')) != 0 {
			t.Errorf("expected 'x', got %v", got)
		}
	})

	t.Run("unsatisfiable intersection reports NoElement", func(t *testing.T) {
		pred := InSet(p('x')).And(Char(p('x')).Not())
		_, err := GetOne(pred, domain.Wrapped{})
		if !errors.Is(err, symerr.ErrNoElement) {
			t.Fatalf("expected ErrNoElement, got %v", err)
		}
	})

	t.Run("WithLambda is unsupported", func(t *testing.T) {
		pred := Char(p('x')).WithLambda(term.Mapping([2]domain.Wrapped{p('a'), p('x')}))
		_, err := GetOne(pred, domain.Wrapped{})
		if !errors.Is(err, symerr.ErrUnsupported) {
			t.Fatalf("expected ErrUnsupported, got %v", err)
		}
	})
}
