// File: facade/registry.go
// Unified handle-based facade for fastqueue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Registry owns a table of history queues addressed by api.Handle. It is the
// surface a host-language binding marshals into: create, append, item_at,
// peek, length and destroy map 1:1 to its methods, and every failure carries
// the api.Err* sentinel of its kind. A single mutex serializes all queue
// operations; the queues themselves are not safe for concurrent use.

package facade

import (
	"fmt"
	"io"
	"log"
	"math"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"golang.org/x/sys/cpu"

	"github.com/momentics/fastqueue/adapters"
	"github.com/momentics/fastqueue/api"
	"github.com/momentics/fastqueue/internal/ring"
)

// Ensure compliance with api.Registry and api.GracefulShutdown.
var (
	_ api.Registry         = (*Registry)(nil)
	_ api.GracefulShutdown = (*Registry)(nil)
)

// Registry is the main facade type.
type Registry struct {
	mu         sync.Mutex
	queues     map[api.Handle]*ring.RingBuffer[any]
	freeIDs    *queue.Queue // recycled handles, reissued oldest-freed first
	next       api.Handle
	maxBuffers int
	closed     bool

	_ cpu.CacheLinePad // keep lock-free counters off the table lock's line

	created   atomic.Uint64
	destroyed atomic.Uint64
	appends   atomic.Uint64
	evictions atomic.Uint64

	control api.Control
	config  *Config
}

// New constructs a Registry. A nil cfg selects DefaultConfig().
func New(cfg *Config) *Registry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &Registry{
		queues:     make(map[api.Handle]*ring.RingBuffer[any]),
		freeIDs:    queue.New(),
		maxBuffers: cfg.MaxBuffers,
		control:    adapters.NewControlAdapter(),
		config:     cfg,
	}

	// Expose configuration values via Control for observability and reload.
	r.control.SetConfig(map[string]any{
		KeyDefaultCapacity: cfg.DefaultCapacity,
		KeyMaxBuffers:      cfg.MaxBuffers,
		KeyMetricsEnabled:  cfg.EnableMetrics,
		KeyDebugEnabled:    cfg.EnableDebug,
	})
	r.control.OnReload(r.reload)

	if cfg.EnableDebug {
		r.control.RegisterDebugProbe("registry.live", func() any {
			r.mu.Lock()
			defer r.mu.Unlock()
			return len(r.queues)
		})
	}
	return r
}

// reload applies runtime-tunable settings from Control.
func (r *Registry) reload() {
	limit := r.control.ConfigInt(KeyMaxBuffers, r.config.MaxBuffers)
	if limit < 0 {
		limit = 0
	}
	r.mu.Lock()
	r.maxBuffers = limit
	r.mu.Unlock()
}

// Create allocates an empty queue retaining the last capacity values.
func (r *Registry) Create(capacity int) (api.Handle, error) {
	q, err := r.newQueue(capacity)
	if err != nil {
		return api.InvalidHandle, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return api.InvalidHandle, api.NewError(api.ErrCodeRegistryClosed, "create on closed registry")
	}
	if r.maxBuffers > 0 && len(r.queues) >= r.maxBuffers {
		return api.InvalidHandle, api.NewError(api.ErrCodeResourceExhausted, "queue limit reached").
			WithContext("max_buffers", r.maxBuffers)
	}
	h, err := r.allocHandle()
	if err != nil {
		return api.InvalidHandle, err
	}
	r.queues[h] = q
	r.created.Add(1)
	r.metric(MetricCreated)
	return h, nil
}

// CreateDefault allocates a queue with Config.DefaultCapacity.
func (r *Registry) CreateDefault() (api.Handle, error) {
	return r.Create(r.config.DefaultCapacity)
}

// allocHandle must be called with r.mu held.
func (r *Registry) allocHandle() (api.Handle, error) {
	if r.freeIDs.Length() > 0 {
		return r.freeIDs.Remove().(api.Handle), nil
	}
	if r.next == math.MaxUint32 {
		return api.InvalidHandle, api.NewError(api.ErrCodeResourceExhausted, "handle space exhausted")
	}
	r.next++
	return r.next, nil
}

// lookup must be called with r.mu held.
func (r *Registry) lookup(h api.Handle) (*ring.RingBuffer[any], error) {
	q, ok := r.queues[h]
	if !ok {
		return nil, api.NewError(api.ErrCodeInvalidHandle, "unknown or destroyed queue handle").
			WithContext("handle", uint32(h))
	}
	return q, nil
}

// Append stores value as the newest element of queue h. The queue takes
// ownership of value: when it is dropped, a Release or Close method on it is
// called once, unless the same pointer is still held by another slot.
func (r *Registry) Append(h api.Handle, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.lookup(h)
	if err != nil {
		return err
	}
	evicting := q.Full()
	if err := q.Append(value); err != nil {
		return fmt.Errorf("%s: %w", h, err)
	}
	r.appends.Add(1)
	r.metric(MetricAppends)
	if evicting {
		r.evictions.Add(1)
		r.metric(MetricEvictions)
	}
	return nil
}

// ItemAt returns element index of queue h, 0 being the newest.
func (r *Registry) ItemAt(h api.Handle, index int) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	v, err := q.Item(index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h, err)
	}
	return v, nil
}

// Peek returns the oldest retained element of queue h.
func (r *Registry) Peek(h api.Handle) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	v, err := q.Peek()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h, err)
	}
	return v, nil
}

// Length returns the number of elements retained by queue h.
func (r *Registry) Length(h api.Handle) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.lookup(h)
	if err != nil {
		return 0, err
	}
	return q.Len(), nil
}

// Capacity returns the fixed capacity of queue h.
func (r *Registry) Capacity(h api.Handle) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.lookup(h)
	if err != nil {
		return 0, err
	}
	return q.Cap(), nil
}

// Destroy releases every element of queue h and retires the handle.
// Destroying the same handle twice fails with api.ErrInvalidHandle.
func (r *Registry) Destroy(h api.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, err := r.lookup(h)
	if err != nil {
		return err
	}
	r.retire(h, q)
	return nil
}

// retire must be called with r.mu held.
func (r *Registry) retire(h api.Handle, q *ring.RingBuffer[any]) {
	delete(r.queues, h)
	if err := q.Destroy(); err != nil && r.config.EnableDebug {
		log.Printf("[facade] destroy %s: %v", h, err)
	}
	r.freeIDs.Add(h)
	r.destroyed.Add(1)
	r.metric(MetricDestroyed)
}

// Close destroys every live queue. Further calls are no-ops; other
// operations on a closed registry fail.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if n := len(r.queues); n > 0 && r.config.EnableDebug {
		log.Printf("[facade] closing registry with %d live queues", n)
	}
	for h, q := range r.queues {
		r.retire(h, q)
	}
	return nil
}

// Shutdown implements api.GracefulShutdown by delegating to Close().
func (r *Registry) Shutdown() error {
	return r.Close()
}

// Stats reports lifetime counters. It does not take the table lock except
// to count live queues.
func (r *Registry) Stats() api.RegistryStats {
	r.mu.Lock()
	live := len(r.queues)
	r.mu.Unlock()
	return api.RegistryStats{
		Live:      live,
		Created:   r.created.Load(),
		Destroyed: r.destroyed.Load(),
		Appends:   r.appends.Load(),
		Evictions: r.evictions.Load(),
	}
}

// GetControl returns the Control interface for dynamic config and metrics.
func (r *Registry) GetControl() api.Control {
	return r.control
}

// newQueue builds a queue whose release hook drops each pointer value once,
// however many slots hold it: an evicted pointer still retained by a newer
// slot is kept alive, and Destroy releases duplicates a single time.
func (r *Registry) newQueue(capacity int) (*ring.RingBuffer[any], error) {
	var (
		q       *ring.RingBuffer[any]
		retired map[any]struct{}
		err     error
	)
	q, err = ring.New[any](capacity, ring.WithReleaser(func(v any) {
		if !sharedRef(v) {
			r.releaseValue(v)
			return
		}
		if q.Len() > 0 {
			// Eviction: the queue is never empty after an append.
			if retains(q, v) {
				return
			}
		} else {
			// Destroy: the queue is emptied before values are released.
			if retired == nil {
				retired = make(map[any]struct{})
			}
			if _, dup := retired[v]; dup {
				return
			}
			retired[v] = struct{}{}
		}
		r.releaseValue(v)
	}))
	return q, err
}

// sharedRef reports whether v is a releasable value that can sit in several
// slots at once.
func sharedRef(v any) bool {
	switch v.(type) {
	case api.Releaser, io.Closer:
	default:
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Pointer
}

func retains(q *ring.RingBuffer[any], v any) bool {
	for i := 0; i < q.Len(); i++ {
		if item, _ := q.Item(i); item == v {
			return true
		}
	}
	return false
}

// releaseValue ends the lifetime of a value dropped by a queue.
func (r *Registry) releaseValue(v any) {
	switch rv := v.(type) {
	case api.Releaser:
		rv.Release()
	case io.Closer:
		if err := rv.Close(); err != nil {
			r.metric(MetricReleaseErrors)
			if r.config.EnableDebug {
				log.Printf("[facade] release: close failed: %v", err)
			}
		}
	}
}

func (r *Registry) metric(key string) {
	if r.config.EnableMetrics {
		r.control.AddMetric(key, 1)
	}
}
