package district

import (
	"github.com/edugzlez/electosim/internal/logger"
	"github.com/edugzlez/electosim/internal/metrics"
	"github.com/edugzlez/electosim/types"
)

// Option configures a district configuration.
type Option func(*options)

type options struct {
	logger  types.Logger
	metrics types.DistrictMetrics
}

func defaultOptions() options {
	return options{
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used for recompute diagnostics.
//
// Parameters:
//   - l: Logger implementation (nil keeps the no-op default)
//
// Returns:
//   - Option: Functional option for NewUnique and NewMulti
func WithLogger(l types.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the collector for recompute metrics.
//
// Parameters:
//   - m: Collector (nil keeps the no-op default)
//
// Returns:
//   - Option: Functional option for NewUnique and NewMulti
//
// Example:
//
//	collector := metrics.NewPrometheus(reg, "")
//	cfg := district.NewMulti(district.WithMetrics(collector))
func WithMetrics(m types.DistrictMetrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
