// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration control, and debug introspection layer
// for fastqueue registries.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads, typed getters and merged updates
//   - Reload listeners notified after each update
//   - Counters and gauges for queue telemetry
//   - Debug probe registration, including platform probes
package control
