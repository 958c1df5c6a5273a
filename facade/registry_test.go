package facade_test

import (
	"errors"
	"testing"

	"github.com/momentics/fastqueue/api"
	"github.com/momentics/fastqueue/facade"
)

type trackedValue struct {
	name     string
	released *int
}

func (v *trackedValue) Release() { *v.released++ }

type closerValue struct {
	closed int
	err    error
}

func (c *closerValue) Close() error {
	c.closed++
	return c.err
}

func TestRegistryScenario(t *testing.T) {
	reg := facade.New(nil)
	defer reg.Close()

	h, err := reg.Create(3)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"a", "b", "c", "d"} {
		if err := reg.Append(h, v); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := reg.Length(h); n != 3 {
		t.Errorf("Length = %d", n)
	}
	for i, want := range []string{"d", "c", "b"} {
		got, err := reg.ItemAt(h, i)
		if err != nil || got != want {
			t.Errorf("ItemAt(%d) = %v, %v; want %q", i, got, err, want)
		}
	}
	if _, err := reg.ItemAt(h, 3); !errors.Is(err, api.ErrIndexOutOfRange) {
		t.Errorf("ItemAt(3) err = %v", err)
	}
	if v, err := reg.Peek(h); err != nil || v != "b" {
		t.Errorf("Peek = %v, %v", v, err)
	}
	if c, _ := reg.Capacity(h); c != 3 {
		t.Errorf("Capacity = %d", c)
	}

	st := reg.Stats()
	if st.Live != 1 || st.Created != 1 || st.Appends != 4 || st.Evictions != 1 {
		t.Errorf("Stats = %+v", st)
	}
	metrics := reg.GetControl().Stats()
	if metrics[facade.MetricAppends] != uint64(4) || metrics[facade.MetricEvictions] != uint64(1) {
		t.Errorf("metrics = %v", metrics)
	}
}

func TestRegistryErrors(t *testing.T) {
	reg := facade.New(facade.DefaultConfig())
	defer reg.Close()

	for _, c := range []int{0, -3} {
		if _, err := reg.Create(c); !errors.Is(err, api.ErrInvalidCapacity) {
			t.Errorf("Create(%d) err = %v", c, err)
		}
	}
	h, _ := reg.Create(2)
	if _, err := reg.Peek(h); !errors.Is(err, api.ErrEmptyBuffer) {
		t.Errorf("Peek on empty err = %v", err)
	}
	if _, err := reg.ItemAt(h, 0); !errors.Is(err, api.ErrIndexOutOfRange) {
		t.Errorf("ItemAt(0) on empty err = %v", err)
	}
	if _, err := reg.ItemAt(h, -1); !errors.Is(err, api.ErrIndexOutOfRange) {
		t.Errorf("ItemAt(-1) err = %v", err)
	}

	bogus := api.Handle(999)
	if err := reg.Append(bogus, 1); !errors.Is(err, api.ErrInvalidHandle) {
		t.Errorf("Append(bogus) err = %v", err)
	}
	if _, err := reg.Length(bogus); !errors.Is(err, api.ErrInvalidHandle) {
		t.Errorf("Length(bogus) err = %v", err)
	}
	if err := reg.Destroy(h); err != nil {
		t.Fatal(err)
	}
	if err := reg.Destroy(h); !errors.Is(err, api.ErrInvalidHandle) {
		t.Errorf("second Destroy err = %v", err)
	}
}

func TestRegistryReleasesOwnedValues(t *testing.T) {
	reg := facade.New(nil)
	released := 0
	c := &closerValue{}

	h, _ := reg.Create(2)
	reg.Append(h, &trackedValue{name: "first", released: &released})
	reg.Append(h, c)
	reg.Append(h, &trackedValue{name: "third", released: &released})
	if released != 1 {
		t.Fatalf("eviction released %d values, want 1", released)
	}
	if c.closed != 0 {
		t.Fatal("closer released while retained")
	}

	if err := reg.Destroy(h); err != nil {
		t.Fatal(err)
	}
	if released != 2 || c.closed != 1 {
		t.Errorf("after destroy: released %d, closed %d", released, c.closed)
	}
}

func TestRegistryCloseErrorCounted(t *testing.T) {
	reg := facade.New(nil)
	h, _ := reg.Create(1)
	reg.Append(h, &closerValue{err: errors.New("boom")})
	reg.Append(h, "next")
	if got := reg.GetControl().Stats()[facade.MetricReleaseErrors]; got != uint64(1) {
		t.Errorf("release errors = %v", got)
	}
	reg.Close()
}

func TestRegistryHandleRecycling(t *testing.T) {
	reg := facade.New(nil)
	defer reg.Close()

	h1, _ := reg.Create(1)
	h2, _ := reg.Create(1)
	if h1 == api.InvalidHandle || h1 == h2 {
		t.Fatalf("handles %v, %v", h1, h2)
	}
	reg.Destroy(h2)
	reg.Destroy(h1)

	// Freed handles come back in the order they were freed.
	a, _ := reg.Create(1)
	b, _ := reg.Create(1)
	if a != h2 || b != h1 {
		t.Errorf("recycled %v, %v; want %v, %v", a, b, h2, h1)
	}
	c, _ := reg.Create(1)
	if c == h1 || c == h2 {
		t.Errorf("fresh handle %v collides", c)
	}
}

func TestRegistryMaxBuffersReload(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.MaxBuffers = 1
	reg := facade.New(cfg)
	defer reg.Close()

	if _, err := reg.Create(4); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Create(4); !errors.Is(err, api.ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", err)
	}
	if err := reg.GetControl().SetConfig(map[string]any{facade.KeyMaxBuffers: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Create(4); err != nil {
		t.Errorf("Create after raising limit: %v", err)
	}
	if got := reg.GetControl().GetConfig()[facade.KeyMaxBuffers]; got != 2 {
		t.Errorf("published max_buffers = %v", got)
	}
}

func TestRegistryClose(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.EnableDebug = true
	reg := facade.New(cfg)

	released := 0
	for i := 0; i < 3; i++ {
		h, err := reg.CreateDefault()
		if err != nil {
			t.Fatal(err)
		}
		reg.Append(h, &trackedValue{released: &released})
	}
	if live := reg.GetControl().Stats()["debug.registry.live"]; live != 3 {
		t.Errorf("registry.live probe = %v", live)
	}
	if err := reg.Close(); err != nil {
		t.Fatal(err)
	}
	if released != 3 {
		t.Errorf("Close released %d values", released)
	}
	if st := reg.Stats(); st.Live != 0 || st.Destroyed != 3 {
		t.Errorf("Stats after Close = %+v", st)
	}
	if _, err := reg.Create(1); !errors.Is(err, api.ErrRegistryClosed) {
		t.Errorf("Create after Close err = %v", err)
	}
	if err := reg.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestRegistryShutdown(t *testing.T) {
	var gs api.GracefulShutdown = facade.New(nil)
	reg := gs.(*facade.Registry)
	h, _ := reg.Create(2)
	reg.Append(h, 1)
	if err := gs.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Length(h); !errors.Is(err, api.ErrInvalidHandle) {
		t.Errorf("Length after Shutdown err = %v", err)
	}
}

func TestRegistryErrorCodesSurviveWrapping(t *testing.T) {
	reg := facade.New(nil)
	defer reg.Close()

	h, _ := reg.Create(3)
	_, err := reg.Peek(h)
	if code := api.CodeOf(err); code != api.ErrCodeEmptyBuffer {
		t.Errorf("Peek on empty queue: code %v, want %v (%v)", code, api.ErrCodeEmptyBuffer, err)
	}
	reg.Append(h, "a")
	_, err = reg.ItemAt(h, 5)
	if code := api.CodeOf(err); code != api.ErrCodeIndexOutOfRange {
		t.Errorf("ItemAt(5): code %v, want %v (%v)", code, api.ErrCodeIndexOutOfRange, err)
	}
	if code := api.CodeOf(reg.Append(api.Handle(404), 1)); code != api.ErrCodeInvalidHandle {
		t.Errorf("Append(unknown): code %v", code)
	}
}

func TestRegistrySharedValueReleasedOnce(t *testing.T) {
	reg := facade.New(nil)
	defer reg.Close()

	released := 0
	shared := &trackedValue{name: "shared", released: &released}

	h, _ := reg.Create(2)
	reg.Append(h, shared)
	reg.Append(h, shared)
	reg.Append(h, "x")
	if released != 0 {
		t.Fatalf("released %d while still retained", released)
	}
	if v, _ := reg.ItemAt(h, 1); v != shared {
		t.Fatalf("ItemAt(1) = %v, want shared value", v)
	}
	reg.Append(h, "y")
	if released != 1 {
		t.Errorf("released %d after last copy evicted, want 1", released)
	}

	released = 0
	h2, _ := reg.Create(3)
	for i := 0; i < 3; i++ {
		reg.Append(h2, shared)
	}
	if err := reg.Destroy(h2); err != nil {
		t.Fatal(err)
	}
	if released != 1 {
		t.Errorf("Destroy released shared value %d times, want 1", released)
	}
}

func TestRegistryMaxBuffersReloadUnsigned(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.MaxBuffers = 1
	reg := facade.New(cfg)
	defer reg.Close()

	reg.Create(1)
	reg.GetControl().SetConfig(map[string]any{facade.KeyMaxBuffers: uint64(2)})
	if _, err := reg.Create(1); err != nil {
		t.Errorf("Create after uint64 limit raise: %v", err)
	}
}
