package restaurant

import "slices"

// Extent is the ordered list of every instance of one entity type created
// through a Registry. Entries are appended on construction and only ever
// removed all at once, by Clear or by a restore from storage.
type Extent[T any] struct {
	items []T
}

// All returns a copy of the extent in creation order.
func (e *Extent[T]) All() []T {
	return slices.Clone(e.items)
}

// Len returns the number of entries.
func (e *Extent[T]) Len() int {
	return len(e.items)
}

// At returns the i-th entry in creation order. It panics if i is out of range.
func (e *Extent[T]) At(i int) T {
	return e.items[i]
}

// Clear empties the extent. Relationships between the removed entities are left as they are.
func (e *Extent[T]) Clear() {
	e.items = nil
}

func (e *Extent[T]) add(v T) {
	e.items = append(e.items, v)
}

func (e *Extent[T]) replace(vs []T) {
	e.items = vs
}
