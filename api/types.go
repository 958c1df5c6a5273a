// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

import "strconv"

// Handle identifies a queue owned by a Registry. Zero is never issued.
type Handle uint32

// InvalidHandle is the zero handle, returned alongside errors.
const InvalidHandle Handle = 0

func (h Handle) String() string {
	return "queue#" + strconv.FormatUint(uint64(h), 10)
}

// Releaser is implemented by values that hold resources which must be freed
// when the queue drops them (eviction or destruction).
type Releaser interface {
	Release()
}

// RegistryStats provides a standard layout for registry health reporting.
type RegistryStats struct {
	Live      int    // queues currently alive
	Created   uint64 // queues ever created
	Destroyed uint64 // queues destroyed
	Appends   uint64 // successful appends across all queues
	Evictions uint64 // values dropped by overwrite
}
