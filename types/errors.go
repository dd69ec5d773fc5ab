package types

import "errors"

// Sentinel errors for electosim.
//
// These errors provide type-safe error checking using errors.Is().
// Components wrap them with context using fmt.Errorf("%s: %w", msg, err)
// and never return bare strings for known conditions.

// Tree errors - returned by the aggregation tree and passed through the System.
var (
	// ErrRegionNotFound is returned when a region id does not exist.
	ErrRegionNotFound = errors.New("region not found")

	// ErrCandidacyNotFound is returned when a candidacy id does not exist.
	ErrCandidacyNotFound = errors.New("candidacy not found")

	// ErrNotParentable is returned when a re-parent would create a cycle.
	ErrNotParentable = errors.New("region cannot be parented: it is already an ancestor")
)

// System errors - returned by the System facade.
var (
	// ErrNotLeafRegion is returned when votes are written to a region with children.
	ErrNotLeafRegion = errors.New("votes can only be recorded at leaf regions")
)

// Apportionment errors - returned by policies and district configurations.
var (
	// ErrEmptyResults is returned when a policy is invoked without candidates.
	ErrEmptyResults = errors.New("empty results")

	// ErrUnknownMethod is returned when a method name cannot be parsed.
	ErrUnknownMethod = errors.New("unknown apportionment method")

	// ErrInvalidDistrict is returned when a district setup cannot be apportioned.
	ErrInvalidDistrict = errors.New("invalid district")
)
