package automaton

import (
	"testing"

	"github.com/gitrdm/symstr/pkg/domain"
	"github.com/gitrdm/symstr/pkg/predicate"
)

func TestNewStateUnique(t *testing.T) {
	s1 := NewState()
	s2 := NewState()

	if s1 == s2 {
		t.Error("fresh states should be unique")
	}
	s3 := s1
	if s1 != s3 {
		t.Error("copying a state should preserve equality")
	}
}

func charP(c byte) predicate.Predicate[domain.Wrapped] {
	return predicate.Char(domain.WrapByte(c))
}

// buildChain returns a 3-state machine accepting exactly "ab", using
// bare States as both Target and Final.
func buildChain(t *testing.T) *Machine[domain.Wrapped, State, State] {
	t.Helper()
	m := New[domain.Wrapped, State, State]()
	mid := NewState()
	final := NewState()
	m.AddState(mid)
	m.AddState(final)
	m.AddTransition(m.Initial, charP('a'), mid)
	m.AddTransition(mid, charP('b'), final)
	m.Finals = []State{final}
	return m
}

func TestMinimizePreservesLanguage(t *testing.T) {
	m := buildChain(t)

	// add an unreachable dead state plus a transition nothing can use.
	dead := NewState()
	m.AddState(dead)
	m.AddTransition(dead, charP('z'), m.Initial)

	minimized := m.Minimize()

	if _, ok := minimized.States[dead]; ok {
		t.Error("unreachable state should be pruned")
	}

	accepts := func(mm *Machine[domain.Wrapped, State, State], s string) bool {
		input := make([]domain.Wrapped, len(s))
		for i := 0; i < len(s); i++ {
			input[i] = domain.WrapByte(s[i])
		}
		return GeneralizedRun(
			mm,
			input,
			[]State{mm.Initial},
			func(curr State, _ domain.Wrapped, _ State, target State) State {
				return target.TargetState()
			},
			func(possibilities []State) bool {
				for _, p := range possibilities {
					for _, f := range mm.Finals {
						if p == f.FinalState() {
							return true
						}
					}
				}
				return false
			},
		)
	}

	if !accepts(minimized, "ab") {
		t.Error("minimized machine should still accept \"ab\"")
	}
	if accepts(minimized, "a") || accepts(minimized, "abc") || accepts(minimized, "") {
		t.Error("minimized machine should reject non-members")
	}
}

func TestMinimizeRetainsInitialEvenIfDead(t *testing.T) {
	m := New[domain.Wrapped, State, State]()
	// no transitions, no finals: initial reaches nothing, but must
	// survive minimization so downstream binary ops stay total.
	minimized := m.Minimize()
	if _, ok := minimized.States[minimized.Initial]; !ok {
		t.Error("initial state must always survive minimization")
	}
}
