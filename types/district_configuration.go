package types

// TallyTree is the view of the aggregation tree handed to district
// configurations.
//
// Seat writes go through SetSeats/GlobalSetSeats so that every ancestor
// stays consistent. Reads return copies.
type TallyTree interface {
	// Results returns a snapshot of a region's tally table, ordered by candidacy id.
	Results(region RegionID) ([]Result, error)

	// GlobalResults returns a snapshot of the global root's tally table.
	GlobalResults() []Result

	// Ancestors returns the parent chain of region, nearest first.
	Ancestors(region RegionID) ([]RegionID, error)

	// SetSeats sets a region's seats for a candidacy and propagates the delta upwards.
	SetSeats(region RegionID, candidacy CandidacyID, seats uint32) error

	// GlobalSetSeats sets the global root's seats for a candidacy.
	GlobalSetSeats(candidacy CandidacyID, seats uint32) error

	// ClearRegion sets every seat recorded at region to zero, leaving votes untouched.
	ClearRegion(region RegionID) error
}

// DistrictConfiguration decides which scopes are apportioned and when.
//
// A System calls OnEvent synchronously after each mutation it performs.
// Implementations recompute seats for the affected scope and write them back
// through the tree. Seat write-backs are plain tree mutations and never
// produce further events.
type DistrictConfiguration interface {
	// OnEvent reacts to a mutation.
	//
	// Parameters:
	//   - tree: Tree view to read tallies from and write seats to
	//   - event: The mutation that just happened
	//
	// Returns:
	//   - error: Recompute failure (the tree mutation itself has already been applied)
	OnEvent(tree TallyTree, event Event) error
}

// DistrictSetter is implemented by configurations whose districts can be
// changed at runtime.
type DistrictSetter interface {
	// SetDistrict adds or replaces the district setup of a region.
	SetDistrict(region RegionID, district District) error

	// RemoveDistrict drops the district setup of a region.
	RemoveDistrict(region RegionID)

	// District returns the district setup of a region, if any.
	District(region RegionID) (District, bool)
}
