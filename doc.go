// Package electosim simulates electoral seat apportionment over a hierarchy
// of regions.
//
// Votes are recorded for candidacies at leaf regions and roll up to every
// ancestor and to a global total. A district configuration decides which
// scopes award seats and recomputes them whenever their inputs change.
//
// # Quick Start
//
// Per-region districts, as in a Spanish general election:
//
//	import (
//	    "github.com/edugzlez/electosim"
//	    "github.com/edugzlez/electosim/district"
//	)
//
//	sys, err := electosim.NewSystem(nil, district.NewMulti())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Close()
//
//	avila, _ := sys.CreateRegion("Ávila")
//	pp, _ := sys.CreateCandidacy("PP")
//	psoe, _ := sys.CreateCandidacy("PSOE")
//
//	_ = sys.SetDistrict(avila, electosim.District{Method: electosim.MethodDHondt, Seats: 3, Cutoff: 0.03})
//	_ = sys.IncreaseVotes(avila, pp, 42369)
//	_ = sys.IncreaseVotes(avila, psoe, 26828)
//
//	fmt.Println(sys.GlobalSeats(pp)) // 2
//
// # Key Features
//
//   - Aggregation Tree: every ancestor holds the sum of its children, votes and seats alike
//   - Event-driven recompute: each mutation is reported to the district configuration
//   - Single or per-region districts: district.Unique and district.Multi
//   - Apportionment methods: D'Hondt, Sainte-Laguë, Hare, Droop and more in package apportion
//   - Declarative setup: Config and package scenario load districts from YAML
//
// # Architecture
//
// Every mutating call goes through the same pipeline:
//
//	tree mutation → DistrictConfiguration.OnEvent → Hooks.OnEvent → subscribers
//
// Seat write-backs performed by a configuration are plain tree mutations and
// never produce further events.
//
// # Advanced Usage
//
// Logging, metrics and hooks:
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewPrometheus(reg, "")
//
//	sys, err := electosim.NewSystem(nil,
//	    district.NewMulti(district.WithMetrics(collector)),
//	    electosim.WithMetrics(collector),
//	    electosim.WithLogger(logging.NewSlogDefault()),
//	    electosim.WithHooks(&electosim.Hooks{
//	        OnError: func(ev electosim.Event, err error) {
//	            log.Printf("recompute after %s failed: %v", ev, err)
//	        },
//	    }),
//	)
//
// See the examples/ directory for complete working examples.
package electosim
