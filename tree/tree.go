package tree

import (
	"fmt"
	"math"
	"slices"

	"github.com/edugzlez/electosim/types"
)

// region is one node of the arena. Parent and children are ids into Tree.regions.
type region struct {
	name      string
	parent    types.RegionID
	hasParent bool
	children  map[types.RegionID]struct{}
	table     *Table
}

// Tree is the region hierarchy plus one tally table per region and a
// synthetic global root.
//
// The zero value is not usable; create trees with New.
type Tree struct {
	root        *Table
	regions     map[types.RegionID]*region
	candidacies map[types.CandidacyID]string

	nextRegion    types.RegionID
	nextCandidacy types.CandidacyID
}

var _ types.TallyTree = (*Tree)(nil)

// New creates an empty tree with only the global root.
//
// Returns:
//   - *Tree: Empty tree
//
// Example:
//
//	t := tree.New()
//	cyl := t.AddRegion("Castilla y León")
//	avila := t.AddRegion("Ávila")
//	_ = t.SetParent(avila, cyl)
func New() *Tree {
	return &Tree{
		root:        NewTable(),
		regions:     make(map[types.RegionID]*region),
		candidacies: make(map[types.CandidacyID]string),
	}
}

// AddRegion creates a parentless region with zero tallies.
//
// Parameters:
//   - name: Display name (not required to be unique)
//
// Returns:
//   - types.RegionID: Fresh identifier
func (t *Tree) AddRegion(name string) types.RegionID {
	id := t.nextRegion
	t.regions[id] = &region{
		name:     name,
		children: make(map[types.RegionID]struct{}),
		table:    NewTable(),
	}
	t.nextRegion++

	return id
}

// AddCandidacy registers a candidacy. It has no tallies until votes are recorded.
//
// Parameters:
//   - name: Display name
//
// Returns:
//   - types.CandidacyID: Fresh identifier
func (t *Tree) AddCandidacy(name string) types.CandidacyID {
	id := t.nextCandidacy
	t.candidacies[id] = name
	t.nextCandidacy++

	return id
}

// RegionName returns the display name of a region.
func (t *Tree) RegionName(id types.RegionID) (string, error) {
	r, err := t.region(id)
	if err != nil {
		return "", err
	}

	return r.name, nil
}

// CandidacyName returns the display name of a candidacy.
func (t *Tree) CandidacyName(id types.CandidacyID) (string, error) {
	name, ok := t.candidacies[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", types.ErrCandidacyNotFound, id)
	}

	return name, nil
}

// HasRegion reports whether id names an existing region.
func (t *Tree) HasRegion(id types.RegionID) bool {
	_, ok := t.regions[id]
	return ok
}

// HasCandidacy reports whether id names an existing candidacy.
func (t *Tree) HasCandidacy(id types.CandidacyID) bool {
	_, ok := t.candidacies[id]
	return ok
}

// Parent returns the parent of a region.
//
// Returns:
//   - types.RegionID: Parent id (meaningless when ok is false)
//   - bool: false for top-level regions
//   - error: ErrRegionNotFound
func (t *Tree) Parent(id types.RegionID) (types.RegionID, bool, error) {
	r, err := t.region(id)
	if err != nil {
		return 0, false, err
	}

	return r.parent, r.hasParent, nil
}

// Votes returns the votes of candidacy at region, zero if none were recorded.
func (t *Tree) Votes(regionID types.RegionID, candidacy types.CandidacyID) (uint64, error) {
	r, err := t.lookup(regionID, candidacy)
	if err != nil {
		return 0, err
	}

	return r.table.Votes(candidacy), nil
}

// Seats returns the seats of candidacy at region, zero if none were recorded.
func (t *Tree) Seats(regionID types.RegionID, candidacy types.CandidacyID) (uint32, error) {
	r, err := t.lookup(regionID, candidacy)
	if err != nil {
		return 0, err
	}

	return r.table.Seats(candidacy), nil
}

// IncreaseVotes adds a signed delta to candidacy's votes at region and at
// every ancestor, ending at the global root.
//
// A negative delta is clamped to region's current count before it climbs, so
// ancestors lose only what region actually held and votes recorded at
// sibling regions are untouched.
//
// Parameters:
//   - regionID: Region to start from
//   - candidacy: Candidacy whose votes change
//   - delta: Signed amount
//
// Returns:
//   - error: ErrRegionNotFound or ErrCandidacyNotFound (nothing is written)
func (t *Tree) IncreaseVotes(regionID types.RegionID, candidacy types.CandidacyID, delta int64) error {
	r, err := t.lookup(regionID, candidacy)
	if err != nil {
		return err
	}
	t.propagate(regionID, candidacy, clamp(delta, r.table.Votes(candidacy)), 0)

	return nil
}

// IncreaseSeats adds a signed delta to candidacy's seats at region and at
// every ancestor, ending at the global root. Negative deltas are clamped
// like IncreaseVotes.
func (t *Tree) IncreaseSeats(regionID types.RegionID, candidacy types.CandidacyID, delta int64) error {
	r, err := t.lookup(regionID, candidacy)
	if err != nil {
		return err
	}
	t.propagate(regionID, candidacy, 0, clamp(delta, uint64(r.table.Seats(candidacy))))

	return nil
}

// SetVotes sets candidacy's votes at region to an absolute value by
// propagating the difference from the current value.
func (t *Tree) SetVotes(regionID types.RegionID, candidacy types.CandidacyID, votes uint64) error {
	r, err := t.lookup(regionID, candidacy)
	if err != nil {
		return err
	}
	t.propagate(regionID, candidacy, difference(votes, r.table.Votes(candidacy)), 0)

	return nil
}

// SetSeats sets candidacy's seats at region to an absolute value by
// propagating the difference from the current value. Re-assigning the
// current value is a no-op at every ancestor.
func (t *Tree) SetSeats(regionID types.RegionID, candidacy types.CandidacyID, seats uint32) error {
	r, err := t.lookup(regionID, candidacy)
	if err != nil {
		return err
	}
	t.propagate(regionID, candidacy, 0, int64(seats)-int64(r.table.Seats(candidacy)))

	return nil
}

// propagate applies the deltas at id and climbs the parent chain, finishing
// at the global root. Callers validate ids first.
func (t *Tree) propagate(id types.RegionID, candidacy types.CandidacyID, votes, seats int64) {
	r := t.regions[id]
	r.table.IncreaseVotes(candidacy, votes)
	r.table.IncreaseSeats(candidacy, seats)

	if r.hasParent {
		t.propagate(r.parent, candidacy, votes, seats)
		return
	}

	t.root.IncreaseVotes(candidacy, votes)
	t.root.IncreaseSeats(candidacy, seats)
}

// SetParent attaches region under parent, moving its tallies from the old
// ancestor chain (or the root) to the new one.
//
// The algorithm is delta based: the region's snapshot is subtracted from the
// old parent, or from the root when the region was top-level, and added to
// the new parent. Both walks propagate, so every ancestor and the root stay
// consistent for votes and seats alike.
//
// Parameters:
//   - regionID: Region to move
//   - parentID: New parent
//
// Returns:
//   - error: ErrRegionNotFound for unknown ids, ErrNotParentable when
//     regionID equals parentID or is one of parentID's ancestors
func (t *Tree) SetParent(regionID, parentID types.RegionID) error {
	r, err := t.region(regionID)
	if err != nil {
		return err
	}
	parent, err := t.region(parentID)
	if err != nil {
		return err
	}
	if regionID == parentID {
		return fmt.Errorf("%w: region %d onto itself", types.ErrNotParentable, regionID)
	}
	ancestors, err := t.Ancestors(parentID)
	if err != nil {
		return err
	}
	if slices.Contains(ancestors, regionID) {
		return fmt.Errorf("%w: region %d is an ancestor of %d", types.ErrNotParentable, regionID, parentID)
	}

	snapshot := r.table.Results()
	if r.hasParent {
		t.propagateSnapshot(r.parent, snapshot, -1)
		delete(t.regions[r.parent].children, regionID)
	} else {
		for _, res := range snapshot {
			t.root.IncreaseVotes(res.Candidacy, -int64(res.VoteCount))
			t.root.IncreaseSeats(res.Candidacy, -int64(res.SeatCount))
		}
	}

	r.parent = parentID
	r.hasParent = true
	t.propagateSnapshot(parentID, snapshot, 1)
	parent.children[regionID] = struct{}{}

	return nil
}

// Unparent detaches region from its parent and makes it top-level.
//
// The negative snapshot walks the old chain up to the root, which cancels the
// root's total; the snapshot is then added back to the root because the
// region now contributes to it directly. Unparenting a top-level region is a
// no-op.
//
// Returns:
//   - error: ErrRegionNotFound
func (t *Tree) Unparent(regionID types.RegionID) error {
	r, err := t.region(regionID)
	if err != nil {
		return err
	}
	if !r.hasParent {
		return nil
	}

	snapshot := r.table.Results()
	oldParent := r.parent
	t.propagateSnapshot(oldParent, snapshot, -1)
	delete(t.regions[oldParent].children, regionID)

	r.parent = 0
	r.hasParent = false
	for _, res := range snapshot {
		t.root.IncreaseVotes(res.Candidacy, int64(res.VoteCount))
		t.root.IncreaseSeats(res.Candidacy, int64(res.SeatCount))
	}

	return nil
}

func (t *Tree) propagateSnapshot(from types.RegionID, snapshot []types.Result, sign int64) {
	for _, res := range snapshot {
		t.propagate(from, res.Candidacy, sign*int64(res.VoteCount), sign*int64(res.SeatCount))
	}
}

// Ancestors returns the parent chain of region, nearest first.
//
// Returns:
//   - []types.RegionID: Parent, grandparent, ... (empty for top-level regions)
//   - error: ErrRegionNotFound
func (t *Tree) Ancestors(regionID types.RegionID) ([]types.RegionID, error) {
	r, err := t.region(regionID)
	if err != nil {
		return nil, err
	}

	var ancestors []types.RegionID
	for r.hasParent {
		ancestors = append(ancestors, r.parent)
		r = t.regions[r.parent]
	}

	return ancestors, nil
}

// IsLeaf reports whether region has no children.
func (t *Tree) IsLeaf(regionID types.RegionID) (bool, error) {
	r, err := t.region(regionID)
	if err != nil {
		return false, err
	}

	return len(r.children) == 0, nil
}

// Children returns the direct children of region, ascending.
func (t *Tree) Children(regionID types.RegionID) ([]types.RegionID, error) {
	r, err := t.region(regionID)
	if err != nil {
		return nil, err
	}

	return sortedKeys(r.children), nil
}

// ClearRegion sets every seat recorded at region to zero through SetSeats.
// Votes are untouched. Calling it twice leaves the same state as once.
func (t *Tree) ClearRegion(regionID types.RegionID) error {
	r, err := t.region(regionID)
	if err != nil {
		return err
	}

	for _, candidacy := range r.table.Candidacies() {
		if err := t.SetSeats(regionID, candidacy, 0); err != nil {
			return err
		}
	}

	return nil
}

// RemoveRegion deletes a region.
//
// The region is unparented first. Every child is unparented too and, when
// cascade is set, removed recursively; otherwise children become top-level
// regions and keep contributing to the root. Whatever the region still holds
// afterwards is subtracted from the root before its storage is dropped.
//
// Parameters:
//   - regionID: Region to delete
//   - cascade: Remove the whole subtree instead of promoting children
//
// Returns:
//   - error: ErrRegionNotFound
func (t *Tree) RemoveRegion(regionID types.RegionID, cascade bool) error {
	r, err := t.region(regionID)
	if err != nil {
		return err
	}
	if err := t.Unparent(regionID); err != nil {
		return err
	}

	for _, child := range sortedKeys(r.children) {
		if err := t.Unparent(child); err != nil {
			return err
		}
		if cascade {
			if err := t.RemoveRegion(child, true); err != nil {
				return err
			}
		}
	}

	t.propagateSnapshot(regionID, r.table.Results(), -1)
	delete(t.regions, regionID)

	return nil
}

// RemoveRegionCandidacy zeroes candidacy's votes and seats at region through
// the propagation path and drops the entry from the region's table.
func (t *Tree) RemoveRegionCandidacy(regionID types.RegionID, candidacy types.CandidacyID) error {
	r, err := t.lookup(regionID, candidacy)
	if err != nil {
		return err
	}
	t.propagate(regionID, candidacy, -int64(min(r.table.Votes(candidacy), math.MaxInt64)), -int64(r.table.Seats(candidacy)))
	r.table.Remove(candidacy)

	return nil
}

// RemoveCandidacy zeroes a candidacy everywhere and forgets it.
//
// Leaf tallies are zeroed through the propagation path, which clears every
// rollup; the entry is then dropped from every table, including the root.
//
// Returns:
//   - error: ErrCandidacyNotFound
func (t *Tree) RemoveCandidacy(candidacy types.CandidacyID) error {
	if !t.HasCandidacy(candidacy) {
		return fmt.Errorf("%w: %d", types.ErrCandidacyNotFound, candidacy)
	}

	for _, id := range t.LeafRegionIDs() {
		if !t.regions[id].table.Has(candidacy) {
			continue
		}
		if err := t.SetVotes(id, candidacy, 0); err != nil {
			return err
		}
		if err := t.SetSeats(id, candidacy, 0); err != nil {
			return err
		}
	}

	for _, r := range t.regions {
		r.table.Remove(candidacy)
	}
	t.root.Remove(candidacy)
	delete(t.candidacies, candidacy)

	return nil
}

// Results returns a snapshot of region's tally table ordered by candidacy id.
func (t *Tree) Results(regionID types.RegionID) ([]types.Result, error) {
	r, err := t.region(regionID)
	if err != nil {
		return nil, err
	}

	return r.table.Results(), nil
}

// GlobalResults returns a snapshot of the global root's tally table.
func (t *Tree) GlobalResults() []types.Result {
	return t.root.Results()
}

// GlobalVotes returns the root's votes for candidacy, zero if none.
func (t *Tree) GlobalVotes(candidacy types.CandidacyID) uint64 {
	return t.root.Votes(candidacy)
}

// GlobalSeats returns the root's seats for candidacy, zero if none.
func (t *Tree) GlobalSeats(candidacy types.CandidacyID) uint32 {
	return t.root.Seats(candidacy)
}

// GlobalSetVotes overwrites the root's votes for candidacy.
func (t *Tree) GlobalSetVotes(candidacy types.CandidacyID, votes uint64) error {
	if !t.HasCandidacy(candidacy) {
		return fmt.Errorf("%w: %d", types.ErrCandidacyNotFound, candidacy)
	}
	t.root.SetVotes(candidacy, votes)

	return nil
}

// GlobalSetSeats overwrites the root's seats for candidacy.
//
// The root has no parent, so nothing else changes. The single global
// district writes its allocation here.
func (t *Tree) GlobalSetSeats(candidacy types.CandidacyID, seats uint32) error {
	if !t.HasCandidacy(candidacy) {
		return fmt.Errorf("%w: %d", types.ErrCandidacyNotFound, candidacy)
	}
	t.root.SetSeats(candidacy, seats)

	return nil
}

// GlobalIncreaseVotes adds a signed delta to the root's votes for candidacy.
func (t *Tree) GlobalIncreaseVotes(candidacy types.CandidacyID, delta int64) error {
	if !t.HasCandidacy(candidacy) {
		return fmt.Errorf("%w: %d", types.ErrCandidacyNotFound, candidacy)
	}
	t.root.IncreaseVotes(candidacy, delta)

	return nil
}

// GlobalIncreaseSeats adds a signed delta to the root's seats for candidacy.
func (t *Tree) GlobalIncreaseSeats(candidacy types.CandidacyID, delta int64) error {
	if !t.HasCandidacy(candidacy) {
		return fmt.Errorf("%w: %d", types.ErrCandidacyNotFound, candidacy)
	}
	t.root.IncreaseSeats(candidacy, delta)

	return nil
}

// RegionIDs returns every region id, ascending.
func (t *Tree) RegionIDs() []types.RegionID {
	return sortedKeys(t.regions)
}

// LeafRegionIDs returns the ids of regions without children, ascending.
func (t *Tree) LeafRegionIDs() []types.RegionID {
	return t.filterRegions(func(r *region) bool { return len(r.children) == 0 })
}

// TopLevelRegionIDs returns the ids of parentless regions, ascending.
func (t *Tree) TopLevelRegionIDs() []types.RegionID {
	return t.filterRegions(func(r *region) bool { return !r.hasParent })
}

// CandidacyIDs returns every candidacy id, ascending.
func (t *Tree) CandidacyIDs() []types.CandidacyID {
	return sortedKeys(t.candidacies)
}

// RegionCount returns the number of regions.
func (t *Tree) RegionCount() int {
	return len(t.regions)
}

// CandidacyCount returns the number of candidacies.
func (t *Tree) CandidacyCount() int {
	return len(t.candidacies)
}

func (t *Tree) filterRegions(keep func(*region) bool) []types.RegionID {
	ids := make([]types.RegionID, 0, len(t.regions))
	for _, id := range t.RegionIDs() {
		if keep(t.regions[id]) {
			ids = append(ids, id)
		}
	}

	return ids
}

func (t *Tree) region(id types.RegionID) (*region, error) {
	r, ok := t.regions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", types.ErrRegionNotFound, id)
	}

	return r, nil
}

// lookup validates both ids and returns the region.
func (t *Tree) lookup(regionID types.RegionID, candidacy types.CandidacyID) (*region, error) {
	r, err := t.region(regionID)
	if err != nil {
		return nil, err
	}
	if !t.HasCandidacy(candidacy) {
		return nil, fmt.Errorf("%w: %d", types.ErrCandidacyNotFound, candidacy)
	}

	return r, nil
}

// difference returns target-current as a signed delta, clamped to int64.
// clamp limits a negative delta to -current.
func clamp(delta int64, current uint64) int64 {
	return max(delta, -int64(min(current, math.MaxInt64)))
}

func difference(target, current uint64) int64 {
	if target >= current {
		return int64(min(target-current, math.MaxInt64))
	}

	return -int64(min(current-target, math.MaxInt64))
}

func sortedKeys[K ~uint32, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
