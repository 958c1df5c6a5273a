// Package pool
// Author: momentics <momentics@gmail.com>
//
// Public generic entry point for fastqueue history rings.
// HistoryRing keeps the N most recently appended values and serves them
// newest-first by index; see history_ring.go.
package pool
