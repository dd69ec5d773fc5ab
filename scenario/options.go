package scenario

import (
	"github.com/edugzlez/electosim"
	"github.com/edugzlez/electosim/district"
)

// Option configures Build.
type Option func(*options)

type options struct {
	system   []electosim.Option
	district []district.Option
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithSystemOptions passes options to electosim.NewSystem.
func WithSystemOptions(opts ...electosim.Option) Option {
	return func(o *options) {
		o.system = append(o.system, opts...)
	}
}

// WithDistrictOptions passes options to the district configuration.
//
// Example:
//
//	run, err := sc.Build(
//	    scenario.WithSystemOptions(electosim.WithMetrics(collector)),
//	    scenario.WithDistrictOptions(district.WithMetrics(collector)),
//	)
func WithDistrictOptions(opts ...district.Option) Option {
	return func(o *options) {
		o.district = append(o.district, opts...)
	}
}
