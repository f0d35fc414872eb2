package services

import "fmt"

// ListEditor manages one variable-length ordered collection inside a form
// session. Index position is the only identity a row has: RemoveAt shifts
// every following row down by one, and no client-side ids are assigned.
type ListEditor[T any] struct {
	items    []T
	newItem  func() T
	minItems int
}

// NewListEditor builds an editor seeded to minItems default rows. minItems is
// the removal floor: stock levels use 1, most lists permit an empty list.
func NewListEditor[T any](newItem func() T, minItems int) *ListEditor[T] {
	ed := &ListEditor[T]{newItem: newItem, minItems: minItems}
	for len(ed.items) < minItems {
		ed.items = append(ed.items, newItem())
	}
	return ed
}

func (ed *ListEditor[T]) Len() int { return len(ed.items) }

// Items exposes the backing slice for reads and derived calculations.
func (ed *ListEditor[T]) Items() []T { return ed.items }

// At returns the row at index i.
func (ed *ListEditor[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(ed.items) {
		return zero, fmt.Errorf("index %d out of range (len %d)", i, len(ed.items))
	}
	return ed.items[i], nil
}

// Append adds a default row at the end and returns its index.
func (ed *ListEditor[T]) Append() int {
	ed.items = append(ed.items, ed.newItem())
	return len(ed.items) - 1
}

// CanRemove reports whether the list is above its minimum count.
func (ed *ListEditor[T]) CanRemove() bool { return len(ed.items) > ed.minItems }

// RemoveAt deletes the row at index i; all following rows shift down by one.
// Removal is refused at the configured minimum count.
func (ed *ListEditor[T]) RemoveAt(i int) error {
	if i < 0 || i >= len(ed.items) {
		return fmt.Errorf("index %d out of range (len %d)", i, len(ed.items))
	}
	if !ed.CanRemove() {
		return fmt.Errorf("at least %d item(s) required", ed.minItems)
	}
	ed.items = append(ed.items[:i], ed.items[i+1:]...)
	return nil
}

// UpdateAt mutates the row at index i in place.
func (ed *ListEditor[T]) UpdateAt(i int, mutate func(*T)) error {
	if i < 0 || i >= len(ed.items) {
		return fmt.Errorf("index %d out of range (len %d)", i, len(ed.items))
	}
	mutate(&ed.items[i])
	return nil
}

// SetItems replaces the whole collection, used when hydrating an edit form
// from a persisted record.
func (ed *ListEditor[T]) SetItems(items []T) {
	ed.items = items
	for len(ed.items) < ed.minItems {
		ed.items = append(ed.items, ed.newItem())
	}
}
