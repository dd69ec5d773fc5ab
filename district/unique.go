package district

import (
	"fmt"

	"github.com/edugzlez/electosim/types"
)

// Unique apportions the whole electorate as a single district.
//
// Region boundaries are ignored: the global root's votes are apportioned and
// the seats are written straight to the root, so the root's seats are the
// national allocation and region seats stay untouched.
type Unique struct {
	recomputer

	district types.District
	state    scopeState
}

var _ types.DistrictConfiguration = (*Unique)(nil)

// NewUnique creates a single global district configuration.
//
// Parameters:
//   - d: Method, seats and cutoff of the district
//   - opts: Optional logger and metrics
//
// Returns:
//   - *Unique: Configuration ready for electosim.NewSystem
//   - error: types.ErrInvalidDistrict when d does not validate
//
// Example:
//
//	cfg, err := district.NewUnique(types.District{Method: types.MethodDHondt, Seats: 13, Cutoff: 0.03})
//	sys, err := electosim.NewSystem(nil, cfg)
func NewUnique(d types.District, opts ...Option) (*Unique, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &Unique{recomputer: recomputer{opts: applyOptions(opts)}, district: d}, nil
}

// District returns the district setup.
func (u *Unique) District() types.District {
	return u.district
}

// OnEvent recomputes the global allocation after every change to global
// vote totals: creation, vote increases and region or candidacy removal.
// Re-parenting never changes global totals and is ignored.
func (u *Unique) OnEvent(tree types.TallyTree, event types.Event) error {
	switch event.Kind {
	case types.EventCreate,
		types.EventIncreaseVotes,
		types.EventRegionRemoved,
		types.EventCandidacyRemoved:
		return u.compute(tree)
	case types.EventBeforeSetParent,
		types.EventAfterSetParent,
		types.EventBeforeRemoveParent,
		types.EventAfterRemoveParent,
		types.EventRegionCreated,
		types.EventRegionModified:
		return nil
	default:
		return fmt.Errorf("unexpected event %s", event)
	}
}

func (u *Unique) compute(tree types.TallyTree) error {
	read := func() ([]types.Result, error) { return tree.GlobalResults(), nil }
	if err := u.run(scopeGlobal, nil, u.district, read, tree.GlobalSetSeats, &u.state); err != nil {
		return fmt.Errorf("global district: %w", err)
	}

	return nil
}
