package eval

import "github.com/flowc-lang/flowc/internal/value"

// RefState is the ref-state of one mutable variable: either a known value
// (carrying whether its current value is the implicit zero default or an
// explicit initialiser/assignment), or unknown, optionally remembering the
// last known value for codegen seeding.
type RefState struct {
	Known              bool
	Value              value.Value // valid when Known
	Implicit           bool        // valid when Known: true if Value is still the implicit default
	Remembered         value.Value // valid when !Known: last known value, or nil if none
	RememberedImplicit bool        // valid when Remembered != nil: the last known value was the implicit default
}

// MutableStore is the flat table of ref-states keyed by unique-id. Unlike
// Scope, unique-ids are assigned once per program so a single flat map
// suffices; no chaining is needed.
type MutableStore struct {
	vars map[string]*RefState
}

// NewMutableStore returns an empty store.
func NewMutableStore() *MutableStore {
	return &MutableStore{vars: make(map[string]*RefState)}
}

// Declare introduces id as known with value v (implicit marks v as the
// type's zero default rather than an explicit initialiser), or as
// unknown-with-no-remembered-value when v is nil (an initialiser that did not
// reduce, or no ground default to build).
func (m *MutableStore) Declare(id string, v value.Value, implicit bool) {
	if v == nil {
		m.vars[id] = &RefState{Known: false, Remembered: nil}
		return
	}
	m.vars[id] = &RefState{Known: true, Value: v, Implicit: implicit}
}

// Get returns the ref-state for id, or nil if id was never declared.
func (m *MutableStore) Get(id string) *RefState {
	return m.vars[id]
}

// SetKnown performs an in-place update after a statically resolvable
// assignment.
func (m *MutableStore) SetKnown(id string, v value.Value) {
	m.vars[id] = &RefState{Known: true, Value: v, Implicit: false}
}

// Invalidate moves id to unknown. When complex is true (partial overwrite:
// an array-element/slice/field selector with an unresolved path) the prior
// known value is retained as Remembered, so later codegen can seed initial
// state. When complex is false (simple: the whole variable is overwritten
// and the new value itself is unresolved) the old value is discarded.
func (m *MutableStore) Invalidate(id string, complex bool) {
	cur := m.vars[id]
	next := &RefState{Known: false}
	if complex && cur != nil {
		if cur.Known {
			next.Remembered = cur.Value
			next.RememberedImplicit = cur.Implicit
		} else {
			next.Remembered = cur.Remembered
			next.RememberedImplicit = cur.RememberedImplicit
		}
	}
	m.vars[id] = next
}

// InvalidateAll moves every declared variable to unknown. Used for the
// coarse-grained invalidation at an If whose condition cannot be resolved,
// an opaque Call, and a For/While loop that fails to unroll. Every
// variable retains its prior known value as Remembered, since the caller
// cannot tell in general which variables a residual branch may or may not
// touch.
func (m *MutableStore) InvalidateAll() {
	for id := range m.vars {
		m.Invalidate(id, true)
	}
}

// Snapshot captures the current ref-state of every variable, for the For
// loop's speculative-unroll/abort-and-restore mechanism.
func (m *MutableStore) Snapshot() map[string]RefState {
	snap := make(map[string]RefState, len(m.vars))
	for id, rs := range m.vars {
		snap[id] = *rs
	}
	return snap
}

// Restore replaces the current ref-states with a previously captured
// snapshot.
func (m *MutableStore) Restore(snap map[string]RefState) {
	m.vars = make(map[string]*RefState, len(snap))
	for id, rs := range snap {
		v := rs
		m.vars[id] = &v
	}
}
