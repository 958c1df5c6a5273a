// Package api
// Author: momentics@gmail.com
//
// Fixed-capacity history ring: newest-first indexed access with
// overwrite-oldest eviction.

package api

// Ring is a fixed-capacity history buffer contract.
type Ring[T any] interface {
	// Append stores item as the newest element, evicting the oldest when full.
	Append(item T) error
	// Item returns the element at logical index i (0 = newest).
	Item(i int) (T, error)
	// Peek returns the oldest retained element.
	Peek() (T, error)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
	// Destroy releases every retained item and the storage.
	Destroy() error
}
