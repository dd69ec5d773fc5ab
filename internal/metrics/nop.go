// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/edugzlez/electosim/types"

// NopMetrics discards every measurement.
//
// It is the default collector of the System and of district configurations.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a no-op metrics collector.
//
// Example:
//
//	sys, err := electosim.NewSystem(nil, cfg, electosim.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SystemMetrics implementation

// RecordEvent is a no-op.
func (n *NopMetrics) RecordEvent(_ /* kind */ types.EventKind) {}

// RecordRegionCount is a no-op.
func (n *NopMetrics) RecordRegionCount(_ /* count */ int) {}

// RecordCandidacyCount is a no-op.
func (n *NopMetrics) RecordCandidacyCount(_ /* count */ int) {}

// DistrictMetrics implementation

// RecordRecompute is a no-op.
func (n *NopMetrics) RecordRecompute(_ /* scope */ string, _ /* duration */ float64, _ /* success */ bool) {
}

// RecordRecomputeSkipped is a no-op.
func (n *NopMetrics) RecordRecomputeSkipped(_ /* scope */ string) {}
