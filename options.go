package electosim

// Option configures a System with optional dependencies.
type Option func(*systemOptions)

// systemOptions holds optional System configuration.
type systemOptions struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
}

// WithHooks sets event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions (nil callbacks are skipped)
//
// Returns:
//   - Option: Functional option for NewSystem
//
// Example:
//
//	hooks := &electosim.Hooks{
//	    OnError: func(ev electosim.Event, err error) {
//	        log.Printf("recompute after %s failed: %v", ev, err)
//	    },
//	}
//	sys, err := electosim.NewSystem(nil, cfg, electosim.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *systemOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewSystem
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.NewRegistry(), "")
//	sys, err := electosim.NewSystem(nil, cfg, electosim.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *systemOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation
//
// Returns:
//   - Option: Functional option for NewSystem
//
// Example:
//
//	sys, err := electosim.NewSystem(nil, cfg, electosim.WithLogger(logging.NewSlogDefault()))
func WithLogger(logger Logger) Option {
	return func(o *systemOptions) {
		o.logger = logger
	}
}
