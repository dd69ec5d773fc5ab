// Package types provides core type definitions and interfaces for electosim.
//
// This package contains the types shared by the tree, the apportionment
// policies, the district configurations and the System facade. Keeping them
// in a leaf package avoids import cycles between the root electosim package
// and its implementations.
//
// Key types:
//   - RegionID, CandidacyID: Opaque identifiers issued by the owning tree
//   - Tally, Result: Per-region vote and seat counts
//   - WithVotes, WithSeats, Candidate: Capabilities consumed by apportionment policies
//   - Method, District, ApportionmentPolicy: Seat allocation contract
//   - Event, EventKind: Closed set of mutation events
//   - DistrictConfiguration, TallyTree: Event-driven recomputation strategy
//   - Logger, MetricsCollector, Hooks: Ambient dependencies
package types
