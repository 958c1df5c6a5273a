// File: internal/ring/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"github.com/momentics/fastqueue/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*RingBuffer[any])(nil)

// Option configures a RingBuffer at construction.
type Option[T any] func(*RingBuffer[T])

// WithReleaser installs fn as the release hook. It is invoked exactly once
// for every value whose lifetime ends inside the buffer: on eviction and on
// Destroy.
func WithReleaser[T any](fn func(T)) Option[T] {
	return func(r *RingBuffer[T]) {
		r.release = fn
	}
}

// RingBuffer is a fixed-capacity, overwrite-oldest history buffer.
type RingBuffer[T any] struct {
	slots     []T
	capacity  int
	count     int // occupied slots, 0..capacity
	head      int // newest slot; valid only when count > 0
	tail      int // oldest slot; valid only when count > 0
	release   func(T)
	destroyed bool
}

// New allocates an empty buffer with capacity slots.
func New[T any](capacity int, opts ...Option[T]) (*RingBuffer[T], error) {
	if capacity <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidCapacity, "capacity must be a positive integer").
			WithContext("capacity", capacity)
	}
	r := &RingBuffer[T]{
		slots:    make([]T, capacity),
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Append stores v as the newest value. When the buffer is full the oldest
// value is released and its slot reused.
func (r *RingBuffer[T]) Append(v T) error {
	if r.destroyed {
		return api.NewError(api.ErrCodeBufferDestroyed, "append to destroyed queue")
	}

	head, tail, count := r.head, r.tail, r.count
	var (
		evicted T
		evict   bool
	)
	switch {
	case count == 0:
		head, tail, count = 0, 0, 1
	case count == r.capacity:
		// The newest slot after advancing is the oldest one; it is reused.
		evicted, evict = r.slots[tail], true
		tail = mod(tail+1, r.capacity)
		head = mod(head+1, r.capacity)
	default:
		head = mod(head+1, r.capacity)
		count++
	}

	r.slots[head] = v
	r.head, r.tail, r.count = head, tail, count
	if evict && r.release != nil {
		r.release(evicted)
	}
	return nil
}

// Item returns the value at logical index i, where 0 is the newest value and
// Len()-1 the oldest.
func (r *RingBuffer[T]) Item(i int) (T, error) {
	if i < 0 || i >= r.count {
		var zero T
		return zero, api.NewError(api.ErrCodeIndexOutOfRange, "queue index out of range").
			WithContext("index", i).
			WithContext("len", r.count)
	}
	return r.slots[mod(r.head-i, r.capacity)], nil
}

// Peek returns the oldest retained value.
func (r *RingBuffer[T]) Peek() (T, error) {
	if r.count == 0 {
		var zero T
		return zero, api.NewError(api.ErrCodeEmptyBuffer, "peek from empty queue")
	}
	return r.slots[r.tail], nil
}

// Len returns the number of retained values.
func (r *RingBuffer[T]) Len() int {
	return r.count
}

// Cap returns the fixed capacity.
func (r *RingBuffer[T]) Cap() int {
	return r.capacity
}

// Full reports whether the next Append will evict.
func (r *RingBuffer[T]) Full() bool {
	return !r.destroyed && r.count == r.capacity
}

// Destroy releases every retained value once, oldest first, and drops the
// storage. The buffer is already empty when the release hook runs. Calling
// Destroy twice returns api.ErrBufferDestroyed.
func (r *RingBuffer[T]) Destroy() error {
	if r.destroyed {
		return api.NewError(api.ErrCodeBufferDestroyed, "queue already destroyed")
	}
	retained := make([]T, 0, r.count)
	for n, i := r.count, r.tail; n > 0; n-- {
		retained = append(retained, r.slots[i])
		i = mod(i+1, r.capacity)
	}

	r.destroyed = true
	r.count, r.head, r.tail = 0, 0, 0
	r.slots = nil

	if r.release != nil {
		for _, v := range retained {
			r.release(v)
		}
	}
	return nil
}

// mod is the floored modulo: the result is always in [0, b) for b > 0.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
