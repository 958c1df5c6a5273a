// Package pool adapts the internal history ring as api.Ring.
//
// HistoryRing[T] is a thin wrapper over ring.RingBuffer[T].
// Provides overwrite-oldest retention of the last N values.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"github.com/momentics/fastqueue/api"
	"github.com/momentics/fastqueue/internal/ring"
)

// HistoryRing[T] implements api.Ring[T] with a fixed positive capacity.
type HistoryRing[T any] struct {
	*ring.RingBuffer[T]
}

// WithReleaser sets the hook run once for every value the ring drops.
func WithReleaser[T any](fn func(T)) ring.Option[T] {
	return ring.WithReleaser(fn)
}

// NewHistoryRing creates a ring retaining the last `capacity` values.
func NewHistoryRing[T any](capacity int, opts ...ring.Option[T]) (*HistoryRing[T], error) {
	rb, err := ring.New[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &HistoryRing[T]{RingBuffer: rb}, nil
}

// Ensure compile-time compliance.
var _ api.Ring[any] = (*HistoryRing[any])(nil)
