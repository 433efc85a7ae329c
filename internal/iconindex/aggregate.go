package iconindex

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicatePath indicates two icon files normalized to the same key. It
// points at a walker or normalization bug and is always fatal.
var ErrDuplicatePath = errors.New("duplicate icon path")

// Aggregate maps '/'-separated relative icon paths to their entries.
// Iteration and serialization are in ascending key order.
type Aggregate struct {
	entries map[string]Entry
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{entries: make(map[string]Entry)}
}

// Insert adds the entry for path. Inserting an existing path fails with
// ErrDuplicatePath and leaves the aggregate unchanged.
func (a *Aggregate) Insert(path string, e Entry) error {
	if _, exists := a.entries[path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
	}
	a.entries[path] = e
	return nil
}

// Len returns the number of icon files.
func (a *Aggregate) Len() int { return len(a.entries) }

// Get returns the entry stored for path. Get and Contains are the read side
// of the cache for in-process consumers that build an Aggregate instead of
// loading the emitted JSON.
func (a *Aggregate) Get(path string) (Entry, bool) {
	e, ok := a.entries[path]
	return e, ok
}

// Paths returns every key in ascending order.
func (a *Aggregate) Paths() []string {
	paths := make([]string, 0, len(a.entries))
	for p := range a.entries {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Contains answers "does icon file path contain state?", the lookup the
// consuming server performs against the emitted cache.
func (a *Aggregate) Contains(path, state string) bool {
	e, ok := a.entries[path]
	return ok && e.Has(state)
}

// MarshalJSON emits an object keyed by path in sorted order.
func (a *Aggregate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range a.Paths() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, p); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		b, err := a.entries[p].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", p, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
