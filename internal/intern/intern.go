// Package intern implements a bidirectional name<->small-id map with
// free-slot reuse, adapted from cid/cid.go's NodeID<->connection-ID map.
// The GFF encoder uses it to assign label indices by first-seen
// traversal order (spec.md §4.2.3 phase 1/2); the 2DA encoder
// uses it to deduplicate cell strings into the heap (§4.4).
package intern

import "sync"

// Map assigns small, dense integer ids to string keys in first-seen order.
// Unlike cid.Map (which recycles freed slots for long-lived connection
// tables) this variant never frees a slot: both GFF labels and 2DA
// heap entries live for exactly one encode pass, so there is nothing to
// recycle and no benefit to the extra bookkeeping.
type Map struct {
	mu     sync.Mutex
	toID   map[string]int
	toName []string
}

// New returns an empty Map.
func New() *Map {
	return &Map{toID: make(map[string]int)}
}

// Intern returns the id for name, assigning the next free id on first use.
// firstSeen reports whether this was the first time name was seen.
func (m *Map) Intern(name string) (id int, firstSeen bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.toID[name]; ok {
		return id, false
	}

	id = len(m.toName)
	m.toName = append(m.toName, name)
	m.toID[name] = id
	return id, true
}

// Lookup returns the id already assigned to name, if any.
func (m *Map) Lookup(name string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.toID[name]
	return id, ok
}

// Name returns the name assigned to id.
func (m *Map) Name(id int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toName[id]
}

// Len returns the number of distinct names interned so far.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toName)
}

// Names returns the interned names in assignment order.
func (m *Map) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.toName))
	copy(out, m.toName)
	return out
}
