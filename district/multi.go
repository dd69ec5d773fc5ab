package district

import (
	"errors"
	"fmt"
	"slices"

	"github.com/edugzlez/electosim/types"
)

// Multi apportions each configured region as an independent district.
//
// Seats are written at the configured region and roll up to its ancestors,
// so a parent of several districts holds the sum of their allocations.
type Multi struct {
	recomputer

	districts map[types.RegionID]types.District
	states    map[types.RegionID]*scopeState
}

var (
	_ types.DistrictConfiguration = (*Multi)(nil)
	_ types.DistrictSetter        = (*Multi)(nil)
)

// NewMulti creates a configuration with no districts.
//
// Districts are added with SetDistrict, usually through
// System.SetDistrict so the region is recomputed right away.
//
// Example:
//
//	cfg := district.NewMulti()
//	sys, _ := electosim.NewSystem(nil, cfg)
//	madrid := sys.CreateRegion("Madrid")
//	_ = sys.SetDistrict(madrid, types.District{Method: types.MethodDHondt, Seats: 37, Cutoff: 0.03})
func NewMulti(opts ...Option) *Multi {
	return &Multi{
		recomputer: recomputer{opts: applyOptions(opts)},
		districts:  make(map[types.RegionID]types.District),
		states:     make(map[types.RegionID]*scopeState),
	}
}

// SetDistrict adds or replaces the district setup of region.
//
// Returns:
//   - error: types.ErrInvalidDistrict when d does not validate
func (m *Multi) SetDistrict(region types.RegionID, d types.District) error {
	if err := d.Validate(); err != nil {
		return err
	}
	m.districts[region] = d

	return nil
}

// RemoveDistrict drops the district setup of region.
func (m *Multi) RemoveDistrict(region types.RegionID) {
	delete(m.districts, region)
	delete(m.states, region)
}

// District returns the district setup of region.
func (m *Multi) District(region types.RegionID) (types.District, bool) {
	d, ok := m.districts[region]
	return d, ok
}

// Regions returns the configured regions, ascending.
func (m *Multi) Regions() []types.RegionID {
	regions := make([]types.RegionID, 0, len(m.districts))
	for id := range m.districts {
		regions = append(regions, id)
	}
	slices.Sort(regions)

	return regions
}

// OnEvent dispatches a mutation:
//   - Create: recompute every district
//   - IncreaseVotes: recompute the districts among the region and its ancestors
//   - RegionModified: recompute the region, or clear its seats when it has no district
//   - RegionRemoved: forget the region's district, then recompute every district
//   - AfterSetParent, AfterRemoveParent, CandidacyRemoved: recompute every district
//
// Districts whose inputs did not change are skipped, so the broad cases only
// pay for the regions the mutation actually touched.
func (m *Multi) OnEvent(tree types.TallyTree, event types.Event) error {
	switch event.Kind {
	case types.EventCreate,
		types.EventAfterSetParent,
		types.EventAfterRemoveParent,
		types.EventCandidacyRemoved:
		return m.computeAll(tree, false)
	case types.EventIncreaseVotes:
		return m.computeChain(tree, event.Region)
	case types.EventRegionModified:
		if _, ok := m.districts[event.Region]; ok {
			return m.compute(tree, event.Region)
		}
		delete(m.states, event.Region)
		if err := tree.ClearRegion(event.Region); err != nil {
			return fmt.Errorf("clear region %d: %w", event.Region, err)
		}

		return nil
	case types.EventRegionRemoved:
		m.RemoveDistrict(event.Region)
		return m.computeAll(tree, true)
	case types.EventBeforeSetParent,
		types.EventBeforeRemoveParent,
		types.EventRegionCreated:
		return nil
	default:
		return fmt.Errorf("unexpected event %s", event)
	}
}

// computeAll recomputes every district. With prune set, districts whose
// region no longer exists (removed along with an ancestor) are dropped.
func (m *Multi) computeAll(tree types.TallyTree, prune bool) error {
	var errs []error
	for _, region := range m.Regions() {
		err := m.compute(tree, region)
		if prune && errors.Is(err, types.ErrRegionNotFound) {
			m.opts.logger.Debug("dropping district of removed region", "region", region)
			m.RemoveDistrict(region)

			continue
		}
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (m *Multi) computeChain(tree types.TallyTree, region types.RegionID) error {
	ancestors, err := tree.Ancestors(region)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range append([]types.RegionID{region}, ancestors...) {
		if _, ok := m.districts[id]; ok {
			errs = append(errs, m.compute(tree, id))
		}
	}

	return errors.Join(errs...)
}

func (m *Multi) compute(tree types.TallyTree, region types.RegionID) error {
	state, ok := m.states[region]
	if !ok {
		state = &scopeState{}
		m.states[region] = state
	}

	read := func() ([]types.Result, error) { return tree.Results(region) }
	write := func(candidacy types.CandidacyID, seats uint32) error {
		return tree.SetSeats(region, candidacy, seats)
	}
	if err := m.run(scopeRegion, []any{"region", region}, m.districts[region], read, write, state); err != nil {
		return fmt.Errorf("district of region %d: %w", region, err)
	}

	return nil
}
