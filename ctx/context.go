// Package ctx implements the ordered variable-typing context the core
// consumes for type inference (spec §4.1).
package ctx

import "golang.org/x/exp/maps"

// Entry is a single (name, value) binding in a Context.
type Entry[V any] struct {
	Name  string
	Value V
}

// Context is an ordered association of names to values with LIFO lookup:
// the most recently inserted binding for a name shadows earlier ones.
// Shadowing is resolved by overlay, never by deletion.
type Context[V any] struct {
	// entries is stored newest-first so Lookup and ToList both read
	// front-to-back without needing to reverse anything.
	entries []Entry[V]
}

// Empty returns a Context with no bindings.
func Empty[V any]() Context[V] {
	return Context[V]{}
}

// Insert prepends a new binding for name, shadowing any earlier binding
// of the same name without removing it.
func (c Context[V]) Insert(name string, v V) Context[V] {
	next := make([]Entry[V], 0, len(c.entries)+1)
	next = append(next, Entry[V]{Name: name, Value: v})
	next = append(next, c.entries...)
	return Context[V]{entries: next}
}

// Lookup returns the most recently inserted binding for name, if any.
func (c Context[V]) Lookup(name string) (V, bool) {
	for _, e := range c.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// ToList returns the context's entries newest-first, the same order
// Lookup scans them in.
func (c Context[V]) ToList() []Entry[V] {
	return append([]Entry[V]{}, c.entries...)
}

// ToListOldestFirst returns the context's entries oldest-first, the order
// diagnostic rendering (spec §4.7) prepends them to a TypeError.
func (c Context[V]) ToListOldestFirst() []Entry[V] {
	list := c.ToList()
	out := make([]Entry[V], len(list))
	for i, e := range list {
		out[len(list)-1-i] = e
	}
	return out
}

// Len reports the number of bindings, including shadowed ones.
func (c Context[V]) Len() int {
	return len(c.entries)
}

// snapshotNames returns a defensive copy of the distinct names currently
// visible (i.e. not shadowed), used by callers that only care about the
// visible variable set rather than shadowing history.
func (c Context[V]) snapshotNames() map[string]V {
	visible := make(map[string]V, len(c.entries))
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		visible[e.Name] = e.Value
	}
	return visible
}

// VisibleNames returns the set of names with at least one binding,
// deduplicated via a snapshot so shadowed bindings do not appear twice.
func (c Context[V]) VisibleNames() []string {
	return maps.Keys(c.snapshotNames())
}
