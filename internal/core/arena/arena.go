package arena

import "iter"

// Arena is a bump-allocated store of a fixed number of slots. Items are
// never freed one at a time; Reset recycles the whole Arena at once.
// Backing storage is allocated once, so pointers returned by Ptr stay valid
// for the life of the Arena.
type Arena[T any] struct {
	items   []T
	current int
}

// New allocates an Arena with room for capacity items.
func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[T]{items: make([]T, capacity)}
}

// Add stores item in the next free slot and returns its Handle.
// Panics with CapacityError when every slot is taken.
func (a *Arena[T]) Add(item T) Handle {
	if a.current == len(a.items) {
		panic(CapacityError{Capacity: len(a.items)})
	}
	h := Handle(a.current)
	a.items[a.current] = item
	a.current++
	return h
}

// Get returns a copy of the item at h.
func (a *Arena[T]) Get(h Handle) T {
	return *a.Ptr(h)
}

// Ptr returns a pointer to the item at h for in-place mutation.
func (a *Arena[T]) Ptr(h Handle) *T {
	if h.Index() >= a.current {
		panic(IndexError{Handle: h, Len: a.current})
	}
	return &a.items[h]
}

// Set overwrites the item at h.
func (a *Arena[T]) Set(h Handle, item T) {
	*a.Ptr(h) = item
}

func (a *Arena[T]) Len() int { return a.current }
func (a *Arena[T]) Cap() int { return len(a.items) }

// Full reports whether the next Add would panic.
func (a *Arena[T]) Full() bool { return a.current == len(a.items) }

// Reset forgets every item. Slots are not cleared; they are overwritten by
// subsequent Adds, and handle numbering restarts at 0.
func (a *Arena[T]) Reset() {
	a.current = 0
}

// Slice exposes the live prefix [0, Len()). Writes through the slice update
// the Arena.
func (a *Arena[T]) Slice() []T {
	return a.items[:a.current]
}

// All iterates the live items in handle order.
func (a *Arena[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := 0; i < a.current; i++ {
			if !yield(Handle(i), &a.items[i]) {
				return
			}
		}
	}
}
