// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown releases every resource a component still owns.
type GracefulShutdown interface {
	// Shutdown destroys all live queues and rejects further creation.
	Shutdown() error
}
