package tree

import (
	"slices"

	"github.com/edugzlez/electosim/types"
)

// Table is the tally table of one region: candidacy id to (votes, seats).
//
// Absent entries read as zero.
type Table struct {
	tallies map[types.CandidacyID]*types.Tally
}

// NewTable creates an empty tally table.
func NewTable() *Table {
	return &Table{tallies: make(map[types.CandidacyID]*types.Tally)}
}

// Votes returns the votes recorded for candidacy, or zero.
func (t *Table) Votes(candidacy types.CandidacyID) uint64 {
	if tally, ok := t.tallies[candidacy]; ok {
		return tally.Votes()
	}

	return 0
}

// Seats returns the seats recorded for candidacy, or zero.
func (t *Table) Seats(candidacy types.CandidacyID) uint32 {
	if tally, ok := t.tallies[candidacy]; ok {
		return tally.Seats()
	}

	return 0
}

// Has reports whether the table holds an entry for candidacy.
func (t *Table) Has(candidacy types.CandidacyID) bool {
	_, ok := t.tallies[candidacy]
	return ok
}

// IncreaseVotes applies a signed delta to candidacy's votes, creating the entry if needed.
func (t *Table) IncreaseVotes(candidacy types.CandidacyID, delta int64) {
	t.entry(candidacy).IncreaseVotes(delta)
}

// IncreaseSeats applies a signed delta to candidacy's seats, creating the entry if needed.
func (t *Table) IncreaseSeats(candidacy types.CandidacyID, delta int64) {
	t.entry(candidacy).IncreaseSeats(delta)
}

// SetVotes overwrites candidacy's votes without propagation.
func (t *Table) SetVotes(candidacy types.CandidacyID, votes uint64) {
	t.entry(candidacy).SetVotes(votes)
}

// SetSeats overwrites candidacy's seats without propagation.
func (t *Table) SetSeats(candidacy types.CandidacyID, seats uint32) {
	t.entry(candidacy).SetSeats(seats)
}

// Remove deletes candidacy's entry.
func (t *Table) Remove(candidacy types.CandidacyID) {
	delete(t.tallies, candidacy)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.tallies)
}

// Candidacies returns the candidacy ids present in the table, ascending.
func (t *Table) Candidacies() []types.CandidacyID {
	ids := make([]types.CandidacyID, 0, len(t.tallies))
	for id := range t.tallies {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Results returns a copy of the table ordered by candidacy id.
func (t *Table) Results() []types.Result {
	results := make([]types.Result, 0, len(t.tallies))
	for _, id := range t.Candidacies() {
		tally := t.tallies[id]
		results = append(results, types.Result{Candidacy: id, VoteCount: tally.Votes(), SeatCount: tally.Seats()})
	}

	return results
}

// Each calls fn for every entry in ascending candidacy order.
func (t *Table) Each(fn func(candidacy types.CandidacyID, tally types.Tally)) {
	for _, id := range t.Candidacies() {
		fn(id, *t.tallies[id])
	}
}

func (t *Table) entry(candidacy types.CandidacyID) *types.Tally {
	tally, ok := t.tallies[candidacy]
	if !ok {
		tally = &types.Tally{}
		t.tallies[candidacy] = tally
	}

	return tally
}
