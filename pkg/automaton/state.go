// Package automaton provides the shared state-machine substrate reused
// by symbolic finite automata (pkg/sfa) and symbolic streaming
// transducers (pkg/sst): an opaque state identifier, a generic
// guarded-transition table, reachability-based minimization, and a
// generic stepping/run driver.
package automaton

import "sync/atomic"

// stateCounter mints fresh, globally-unique state identifiers. Per
// spec.md §5/§9, state identity is only ever needed for equality and
// hashing, never persisted or exposed, so a single process-wide counter
// is sufficient; only the increment itself need be atomic.
var stateCounter uint64

// State is an opaque, globally-unique, comparable, orderable token.
// Equality is identity: two States are equal iff they were minted from
// the same NewState call (or copied from one).
type State struct {
	id uint64
}

// NewState mints a fresh state identifier.
func NewState() State {
	return State{id: atomic.AddUint64(&stateCounter, 1)}
}

// Less gives States a total order so they can be sorted deterministically
// in debug output and tests, without attaching any meaning to the order
// beyond minting sequence.
func (s State) Less(other State) bool { return s.id < other.id }

// TargetState lets a bare State satisfy Target: an SFA's transition
// targets are just the next state itself.
func (s State) TargetState() State { return s }

// FinalState lets a bare State satisfy Final: an SFA's final set is just
// a set of states.
func (s State) FinalState() State { return s }

// CurrentState lets a bare State satisfy Possibility: an SFA membership
// run carries nothing beyond its current state.
func (s State) CurrentState() State { return s }

func (s State) String() string {
	return "s" + itoa(s.id)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
