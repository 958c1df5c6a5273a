// File: facade/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

// Config holds parameters fixed at registry construction.
// MaxBuffers can later be changed through the Control interface
// ("registry.max_buffers"), which triggers a reload.
type Config struct {
	DefaultCapacity int  // Capacity used by CreateDefault
	MaxBuffers      int  // Upper bound on live queues; 0 means unlimited
	EnableMetrics   bool // Whether to mirror counters into Control metrics
	EnableDebug     bool // Whether to register debug probes and log lifecycle events
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		DefaultCapacity: 128,  // 128 most recent values
		MaxBuffers:      0,    // No limit on live queues
		EnableMetrics:   true, // Enable built-in metrics
		EnableDebug:     false,
	}
}

// Config keys published to Control.
const (
	KeyDefaultCapacity = "registry.default_capacity"
	KeyMaxBuffers      = "registry.max_buffers"
	KeyMetricsEnabled  = "registry.metrics.enabled"
	KeyDebugEnabled    = "registry.debug.enabled"
)

// Metric keys maintained when EnableMetrics is set.
const (
	MetricCreated       = "registry.buffers.created"
	MetricDestroyed     = "registry.buffers.destroyed"
	MetricAppends       = "registry.appends"
	MetricEvictions     = "registry.evictions"
	MetricReleaseErrors = "registry.release.errors"
)
