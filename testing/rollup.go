package testing

import (
	"testing"

	"github.com/edugzlez/electosim/tree"
	"github.com/edugzlez/electosim/types"
)

// RequireRollup fails the test unless every non-leaf region holds exactly
// the sum of its children and the global root holds exactly the sum of the
// top-level regions, for votes and seats alike.
//
// Seats written directly to the root (single global district) break the seat
// half of the root check by construction; use RequireVoteRollup there.
//
// Parameters:
//   - t: Testing context
//   - tr: Tree to inspect
func RequireRollup(t testing.TB, tr *tree.Tree) {
	t.Helper()
	requireRollup(t, tr, true)
}

// RequireVoteRollup is RequireRollup restricted to votes at the root.
// Region-level seat sums are still checked.
func RequireVoteRollup(t testing.TB, tr *tree.Tree) {
	t.Helper()
	requireRollup(t, tr, false)
}

func requireRollup(t testing.TB, tr *tree.Tree, rootSeats bool) {
	t.Helper()

	for _, id := range tr.RegionIDs() {
		children, err := tr.Children(id)
		if err != nil {
			t.Fatalf("children of region %d: %v", id, err)
		}
		if len(children) == 0 {
			continue
		}

		results, err := tr.Results(id)
		if err != nil {
			t.Fatalf("results of region %d: %v", id, err)
		}
		compare(t, "region", int(id), results, sum(t, tr, children), true)
	}

	compare(t, "root", -1, tr.GlobalResults(), sum(t, tr, tr.TopLevelRegionIDs()), rootSeats)
}

func sum(t testing.TB, tr *tree.Tree, ids []types.RegionID) map[types.CandidacyID]types.Tally {
	t.Helper()

	totals := make(map[types.CandidacyID]types.Tally)
	for _, id := range ids {
		results, err := tr.Results(id)
		if err != nil {
			t.Fatalf("results of region %d: %v", id, err)
		}
		for _, r := range results {
			tally := totals[r.Candidacy]
			tally.VoteCount += r.VoteCount
			tally.SeatCount += r.SeatCount
			totals[r.Candidacy] = tally
		}
	}

	return totals
}

func compare(t testing.TB, scope string, id int, got []types.Result, want map[types.CandidacyID]types.Tally, seats bool) {
	t.Helper()

	seen := make(map[types.CandidacyID]struct{}, len(got))
	for _, r := range got {
		seen[r.Candidacy] = struct{}{}
		expected := want[r.Candidacy]
		if r.VoteCount != expected.VoteCount {
			t.Errorf("%s %d candidacy %d: votes %d, children sum to %d", scope, id, r.Candidacy, r.VoteCount, expected.VoteCount)
		}
		if seats && r.SeatCount != expected.SeatCount {
			t.Errorf("%s %d candidacy %d: seats %d, children sum to %d", scope, id, r.Candidacy, r.SeatCount, expected.SeatCount)
		}
	}

	for candidacy, expected := range want {
		if _, ok := seen[candidacy]; ok || expected.IsZero() {
			continue
		}
		t.Errorf("%s %d: missing candidacy %d with children total %+v", scope, id, candidacy, expected)
	}
}
