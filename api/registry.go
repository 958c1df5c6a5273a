// File: api/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Handle-oriented queue contract consumed by host-language bindings.

package api

// Registry exposes queues through opaque handles. Every method maps 1:1 to
// a binding entry point; failures carry the Err* sentinels unchanged.
type Registry interface {
	Create(capacity int) (Handle, error)
	Append(h Handle, value any) error
	ItemAt(h Handle, index int) (any, error)
	Peek(h Handle) (any, error)
	Length(h Handle) (int, error)
	Destroy(h Handle) error
	Stats() RegistryStats
}
