package electosim

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/edugzlez/electosim/internal/hooks"
	"github.com/edugzlez/electosim/internal/logger"
	"github.com/edugzlez/electosim/internal/metrics"
	"github.com/edugzlez/electosim/tree"
	"github.com/edugzlez/electosim/types"
)

// System owns an aggregation tree and keeps its seats in line with a
// district configuration.
//
// Every mutation is applied to the tree first and then reported to the
// configuration as an Event, followed by hooks and subscribers. Votes may only
// be recorded at leaf regions; parents hold rollups.
//
// A System is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access.
type System struct {
	tree    *tree.Tree
	config  DistrictConfiguration
	logger  Logger
	metrics MetricsCollector
	hooks   Hooks

	subscribers  *xsync.Map[uint64, func(Event)]
	subscriberID atomic.Uint64

	closed bool
}

// NewSystem creates a System around a tree and a district configuration.
//
// Seats at every leaf region are cleared, then EventCreate is dispatched so
// the configuration can compute its initial allocation. Votes are untouched.
//
// Parameters:
//   - t: Tree to own (nil creates an empty one)
//   - cfg: District configuration (required)
//   - opts: Optional logger, metrics and hooks
//
// Returns:
//   - *System: Ready system
//   - error: ErrConfigurationRequired, or the configuration's failure on EventCreate
//
// Example:
//
//	cfg := district.NewMulti()
//	sys, err := electosim.NewSystem(nil, cfg)
//	if err != nil {
//	    return err
//	}
//	defer sys.Close()
//
//	madrid, _ := sys.CreateRegion("Madrid")
//	pp, _ := sys.CreateCandidacy("PP")
//	_ = sys.IncreaseVotes(madrid, pp, 1_463_183)
//	_ = sys.SetDistrict(madrid, electosim.District{Method: electosim.MethodDHondt, Seats: 37, Cutoff: 0.03})
func NewSystem(t *tree.Tree, cfg DistrictConfiguration, opts ...Option) (*System, error) {
	if cfg == nil {
		return nil, ErrConfigurationRequired
	}
	if t == nil {
		t = tree.New()
	}

	o := systemOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewNop()
	}
	if o.metrics == nil {
		o.metrics = metrics.NewNop()
	}

	s := &System{
		tree:        t,
		config:      cfg,
		logger:      o.logger,
		metrics:     o.metrics,
		hooks:       hooks.Fill(o.hooks),
		subscribers: xsync.NewMap[uint64, func(Event)](),
	}

	if err := s.clearLeaves(); err != nil {
		return nil, err
	}
	s.recordCounts()
	if err := s.dispatch(types.CreateEvent()); err != nil {
		return nil, err
	}

	s.logger.Debug("system created", "regions", t.RegionCount(), "candidacies", t.CandidacyCount())

	return s, nil
}

// Close clears seats at every leaf region. Later mutations fail with
// ErrSystemClosed; reads keep working. Closing twice is a no-op.
func (s *System) Close() error {
	if s.closed {
		return nil
	}
	if err := s.clearLeaves(); err != nil {
		return err
	}
	s.closed = true

	return nil
}

func (s *System) clearLeaves() error {
	for _, id := range s.tree.LeafRegionIDs() {
		if err := s.tree.ClearRegion(id); err != nil {
			return fmt.Errorf("clear seats of region %d: %w", id, err)
		}
	}

	return nil
}

// Subscribe registers fn to receive every event after the configuration and
// hooks have handled it. Delivery is synchronous; the order between
// subscribers is unspecified.
//
// Returns:
//   - func(): Unsubscribe function
//
// Example:
//
//	unsubscribe := sys.Subscribe(func(ev electosim.Event) {
//	    fmt.Println(ev)
//	})
//	defer unsubscribe()
func (s *System) Subscribe(fn func(Event)) func() {
	id := s.subscriberID.Add(1)
	s.subscribers.Store(id, fn)

	return func() {
		s.subscribers.Delete(id)
	}
}

// dispatch reports an event to the configuration, hooks and subscribers.
func (s *System) dispatch(event Event) error {
	s.metrics.RecordEvent(event.Kind)

	err := s.config.OnEvent(s.tree, event)
	if err != nil {
		err = fmt.Errorf("district configuration on %s: %w", event.Kind, err)
		s.logger.Error("district configuration failed", "event", event.String(), "error", err)
		s.hooks.OnError(event, err)
	}

	s.hooks.OnEvent(event)
	s.subscribers.Range(func(_ uint64, fn func(Event)) bool {
		fn(event)
		return true
	})

	return err
}

func (s *System) recordCounts() {
	s.metrics.RecordRegionCount(s.tree.RegionCount())
	s.metrics.RecordCandidacyCount(s.tree.CandidacyCount())
}

func (s *System) checkOpen() error {
	if s.closed {
		return ErrSystemClosed
	}

	return nil
}

// CreateRegion adds a top-level leaf region and dispatches EventRegionCreated.
//
// Returns:
//   - RegionID: Identifier of the new region (valid even when error is non-nil)
//   - error: ErrSystemClosed, or the configuration's failure
func (s *System) CreateRegion(name string) (RegionID, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	id := s.tree.AddRegion(name)
	s.recordCounts()

	return id, s.dispatch(types.RegionEvent(types.EventRegionCreated, id))
}

// CreateCandidacy registers a candidacy. No event is dispatched: a
// candidacy without votes changes no allocation.
func (s *System) CreateCandidacy(name string) (CandidacyID, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	id := s.tree.AddCandidacy(name)
	s.recordCounts()

	return id, nil
}

// IncreaseVotes adds a signed delta to a candidacy's votes at a leaf region
// and dispatches EventIncreaseVotes.
//
// Parameters:
//   - region: Leaf region
//   - candidacy: Candidacy whose votes change
//   - delta: Signed amount; a negative delta larger than the current
//     count removes only what the region holds
//
// The dispatched event carries the delta actually applied.
//
// Returns:
//   - error: ErrRegionNotFound, ErrCandidacyNotFound, ErrNotLeafRegion,
//     ErrSystemClosed, or the configuration's failure (the votes are recorded
//     regardless)
func (s *System) IncreaseVotes(region RegionID, candidacy CandidacyID, delta int64) error {
	if err := s.checkLeafWrite(region); err != nil {
		return err
	}
	before, err := s.tree.Votes(region, candidacy)
	if err != nil {
		return err
	}
	if err := s.tree.IncreaseVotes(region, candidacy, delta); err != nil {
		return err
	}
	after, err := s.tree.Votes(region, candidacy)
	if err != nil {
		return err
	}

	return s.dispatch(types.IncreaseVotesEvent(region, candidacy, signedDelta(before, after)))
}

// SetVotes sets a candidacy's votes at a leaf region and dispatches
// EventIncreaseVotes carrying the applied difference.
func (s *System) SetVotes(region RegionID, candidacy CandidacyID, votes uint64) error {
	if err := s.checkLeafWrite(region); err != nil {
		return err
	}
	before, err := s.tree.Votes(region, candidacy)
	if err != nil {
		return err
	}
	if err := s.tree.SetVotes(region, candidacy, votes); err != nil {
		return err
	}

	return s.dispatch(types.IncreaseVotesEvent(region, candidacy, signedDelta(before, votes)))
}

func (s *System) checkLeafWrite(region RegionID) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	leaf, err := s.tree.IsLeaf(region)
	if err != nil {
		return err
	}
	if !leaf {
		return fmt.Errorf("%w: region %d has children", ErrNotLeafRegion, region)
	}

	return nil
}

// SetParent attaches region under parent.
//
// All preconditions are checked before anything is dispatched. Then
// EventBeforeSetParent is dispatched, the tree is updated and
// EventAfterSetParent, carrying the previous parent, is dispatched.
//
// Returns:
//   - error: ErrRegionNotFound, ErrNotParentable, ErrSystemClosed, or the
//     configuration's failure
func (s *System) SetParent(region, parent RegionID) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	previous, hadPrevious, err := s.tree.Parent(region)
	if err != nil {
		return err
	}
	ancestors, err := s.tree.Ancestors(parent)
	if err != nil {
		return err
	}
	if region == parent || slices.Contains(ancestors, region) {
		return fmt.Errorf("%w: region %d under %d", ErrNotParentable, region, parent)
	}

	before := s.dispatch(types.BeforeSetParentEvent(region, parent))
	if err := s.tree.SetParent(region, parent); err != nil {
		return errors.Join(before, err)
	}
	after := s.dispatch(types.AfterSetParentEvent(region, parent, previous, hadPrevious))

	return errors.Join(before, after)
}

// RemoveParent detaches region from its parent, making it top-level, between
// EventBeforeRemoveParent and EventAfterRemoveParent. The after event's Parent
// is the former parent. A top-level region is left alone and nothing is
// dispatched.
func (s *System) RemoveParent(region RegionID) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	parent, hasParent, err := s.tree.Parent(region)
	if err != nil {
		return err
	}
	if !hasParent {
		return nil
	}

	beforeEvent := types.RegionEvent(types.EventBeforeRemoveParent, region)
	beforeEvent.Parent = parent
	before := s.dispatch(beforeEvent)
	if err := s.tree.Unparent(region); err != nil {
		return errors.Join(before, err)
	}
	afterEvent := types.RegionEvent(types.EventAfterRemoveParent, region)
	afterEvent.Parent = parent

	return errors.Join(before, s.dispatch(afterEvent))
}

// RemoveRegion deletes a region.
//
// Without cascade its children become top-level regions. With cascade the
// whole subtree is deleted. One EventRegionRemoved is dispatched per deleted
// region, deepest first.
func (s *System) RemoveRegion(region RegionID, cascade bool) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	removed := []RegionID{region}
	if cascade {
		var err error
		if removed, err = s.subtree(region); err != nil {
			return err
		}
	}
	if err := s.tree.RemoveRegion(region, cascade); err != nil {
		return err
	}
	s.recordCounts()

	var errs []error
	for _, id := range removed {
		errs = append(errs, s.dispatch(types.RegionRemovedEvent(id, cascade)))
	}

	return errors.Join(errs...)
}

// subtree lists region and its descendants, deepest first.
func (s *System) subtree(region RegionID) ([]RegionID, error) {
	children, err := s.tree.Children(region)
	if err != nil {
		return nil, err
	}

	var ids []RegionID
	for _, child := range children {
		sub, err := s.subtree(child)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sub...)
	}

	return append(ids, region), nil
}

// RemoveCandidacy zeroes a candidacy everywhere, forgets it and dispatches
// EventCandidacyRemoved.
func (s *System) RemoveCandidacy(candidacy CandidacyID) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.tree.RemoveCandidacy(candidacy); err != nil {
		return err
	}
	s.recordCounts()

	return s.dispatch(types.CandidacyRemovedEvent(candidacy))
}

// SetDistrict configures region as an independent district and dispatches
// EventRegionModified so its seats are recomputed.
//
// Returns:
//   - error: ErrNotConfigurable when the configuration is not a
//     DistrictSetter, ErrRegionNotFound, ErrInvalidDistrict,
//     ErrSystemClosed, or the configuration's failure
func (s *System) SetDistrict(region RegionID, district District) error {
	setter, err := s.districtSetter(region)
	if err != nil {
		return err
	}
	if err := setter.SetDistrict(region, district); err != nil {
		return err
	}

	return s.dispatch(types.RegionEvent(types.EventRegionModified, region))
}

// RemoveDistrict drops region's district and dispatches EventRegionModified,
// which clears the region's seats.
func (s *System) RemoveDistrict(region RegionID) error {
	setter, err := s.districtSetter(region)
	if err != nil {
		return err
	}
	setter.RemoveDistrict(region)

	return s.dispatch(types.RegionEvent(types.EventRegionModified, region))
}

// District returns region's district setup when the configuration supports
// per-region districts and one is set.
func (s *System) District(region RegionID) (District, bool) {
	setter, ok := s.config.(DistrictSetter)
	if !ok {
		return District{}, false
	}

	return setter.District(region)
}

func (s *System) districtSetter(region RegionID) (DistrictSetter, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	setter, ok := s.config.(DistrictSetter)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotConfigurable, s.config)
	}
	if !s.tree.HasRegion(region) {
		return nil, fmt.Errorf("%w: %d", ErrRegionNotFound, region)
	}

	return setter, nil
}

// Tree returns the underlying tree for reads. Mutating it directly bypasses
// the leaf policy and event dispatch.
func (s *System) Tree() *tree.Tree {
	return s.tree
}

// Votes returns a candidacy's votes at region.
func (s *System) Votes(region RegionID, candidacy CandidacyID) (uint64, error) {
	return s.tree.Votes(region, candidacy)
}

// Seats returns a candidacy's seats at region.
func (s *System) Seats(region RegionID, candidacy CandidacyID) (uint32, error) {
	return s.tree.Seats(region, candidacy)
}

// Results returns a snapshot of region's tallies ordered by candidacy id.
func (s *System) Results(region RegionID) ([]Result, error) {
	return s.tree.Results(region)
}

// GlobalVotes returns a candidacy's total votes.
func (s *System) GlobalVotes(candidacy CandidacyID) uint64 {
	return s.tree.GlobalVotes(candidacy)
}

// GlobalSeats returns a candidacy's total seats.
func (s *System) GlobalSeats(candidacy CandidacyID) uint32 {
	return s.tree.GlobalSeats(candidacy)
}

// GlobalResults returns a snapshot of the global tallies ordered by candidacy id.
func (s *System) GlobalResults() []Result {
	return s.tree.GlobalResults()
}

// Parent returns region's parent; ok is false for top-level regions.
func (s *System) Parent(region RegionID) (parent RegionID, ok bool, err error) {
	return s.tree.Parent(region)
}

// Children returns region's direct children, ascending.
func (s *System) Children(region RegionID) ([]RegionID, error) {
	return s.tree.Children(region)
}

// Ancestors returns region's parent chain, nearest first.
func (s *System) Ancestors(region RegionID) ([]RegionID, error) {
	return s.tree.Ancestors(region)
}

// IsLeaf reports whether region has no children.
func (s *System) IsLeaf(region RegionID) (bool, error) {
	return s.tree.IsLeaf(region)
}

// RegionIDs returns every region id, ascending.
func (s *System) RegionIDs() []RegionID {
	return s.tree.RegionIDs()
}

// LeafRegionIDs returns the ids of leaf regions, ascending.
func (s *System) LeafRegionIDs() []RegionID {
	return s.tree.LeafRegionIDs()
}

// CandidacyIDs returns every candidacy id, ascending.
func (s *System) CandidacyIDs() []CandidacyID {
	return s.tree.CandidacyIDs()
}

// RegionName returns a region's display name.
func (s *System) RegionName(region RegionID) (string, error) {
	return s.tree.RegionName(region)
}

// CandidacyName returns a candidacy's display name.
func (s *System) CandidacyName(candidacy CandidacyID) (string, error) {
	return s.tree.CandidacyName(candidacy)
}

// signedDelta returns after-before clamped to int64.
func signedDelta(before, after uint64) int64 {
	const maxInt64 = uint64(1<<63 - 1)
	if after >= before {
		return int64(min(after-before, maxInt64))
	}

	return -int64(min(before-after, maxInt64))
}
