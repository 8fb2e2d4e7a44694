// Package evidence provides the ordered collection logic shared by the three
// evidence kinds (notes, photos, recordings): newest-first insertion,
// delete-by-id and patch-by-id.
package evidence

// Item is implemented by every evidence record held in a Collection.
// Clone must return a deep value copy so collections never share state.
type Item[T any] interface {
	EvidenceID() string
	Clone() T
}

// Collection is an ordered, most-recent-first sequence of evidence items.
// The zero value is an empty collection ready to use.
type Collection[T Item[T]] struct {
	items []T
}

// FromSlice builds a collection from an existing slice, deep-copying every item
func FromSlice[T Item[T]](items []T) Collection[T] {
	c := Collection[T]{}
	if len(items) == 0 {
		return c
	}
	c.items = make([]T, len(items))
	for i, it := range items {
		c.items[i] = it.Clone()
	}
	return c
}

// Prepend inserts an item at the front (most recent first)
func (c *Collection[T]) Prepend(item T) {
	c.items = append([]T{item}, c.items...)
}

// Remove drops the item with the given id. Removing an absent id is a no-op.
// Reports whether an item was removed.
func (c *Collection[T]) Remove(id string) bool {
	for i, it := range c.items {
		if it.EvidenceID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies patch to the item with the given id, replacing it with the
// returned value. Updating an absent id is a no-op. Reports whether a match
// was found.
func (c *Collection[T]) Update(id string, patch func(T) T) bool {
	for i, it := range c.items {
		if it.EvidenceID() == id {
			c.items[i] = patch(it)
			return true
		}
	}
	return false
}

// Get returns the item with the given id
func (c *Collection[T]) Get(id string) (T, bool) {
	for _, it := range c.items {
		if it.EvidenceID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a deep copy of the collection contents in order
func (c *Collection[T]) Items() []T {
	if c.items == nil {
		return nil
	}
	out := make([]T, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

// IDs returns the item ids in collection order
func (c *Collection[T]) IDs() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.EvidenceID()
	}
	return ids
}

// Len returns the number of items held
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Clone returns an independent deep copy of the collection
func (c *Collection[T]) Clone() Collection[T] {
	return FromSlice(c.items)
}

// Reset empties the collection
func (c *Collection[T]) Reset() {
	c.items = nil
}
