package testing

import (
	"testing"

	"github.com/edugzlez/electosim/tree"
	"github.com/edugzlez/electosim/types"
)

// SpainFixture is a small slice of a Spanish general election: Ávila and
// Segovia under Castilla y León, with Madrid as a separate top-level region.
type SpainFixture struct {
	Tree *tree.Tree

	CastillaYLeon types.RegionID
	Avila         types.RegionID
	Segovia       types.RegionID
	Madrid        types.RegionID

	PP    types.CandidacyID
	PSOE  types.CandidacyID
	VOX   types.CandidacyID
	SUMAR types.CandidacyID
}

// Districts returns the provincial setup used in the fixture: D'Hondt with a
// 3% cutoff, 3 seats for Ávila and Segovia and 37 for Madrid.
func (f *SpainFixture) Districts() map[types.RegionID]types.District {
	return map[types.RegionID]types.District{
		f.Avila:   {Method: types.MethodDHondt, Seats: 3, Cutoff: 0.03},
		f.Segovia: {Method: types.MethodDHondt, Seats: 3, Cutoff: 0.03},
		f.Madrid:  {Method: types.MethodDHondt, Seats: 37, Cutoff: 0.03},
	}
}

// NewSpainFixture builds the fixture tree with votes recorded at the leaves.
//
// Parameters:
//   - t: Testing context
//
// Returns:
//   - *SpainFixture: Populated fixture
func NewSpainFixture(t testing.TB) *SpainFixture {
	t.Helper()

	tr := tree.New()
	f := &SpainFixture{
		Tree:          tr,
		CastillaYLeon: tr.AddRegion("Castilla y León"),
		Avila:         tr.AddRegion("Ávila"),
		Segovia:       tr.AddRegion("Segovia"),
		Madrid:        tr.AddRegion("Madrid"),
		PP:            tr.AddCandidacy("PP"),
		PSOE:          tr.AddCandidacy("PSOE"),
		VOX:           tr.AddCandidacy("VOX"),
		SUMAR:         tr.AddCandidacy("SUMAR"),
	}

	must(t, tr.SetParent(f.Avila, f.CastillaYLeon))
	must(t, tr.SetParent(f.Segovia, f.CastillaYLeon))

	votes := map[types.RegionID][4]int64{
		f.Avila:   {42369, 26828, 15068, 5027},
		f.Segovia: {39894, 27113, 12510, 7137},
		f.Madrid:  {1463183, 1004599, 506164, 557780},
	}
	for _, region := range []types.RegionID{f.Avila, f.Segovia, f.Madrid} {
		counts := votes[region]
		for i, candidacy := range []types.CandidacyID{f.PP, f.PSOE, f.VOX, f.SUMAR} {
			must(t, tr.IncreaseVotes(region, candidacy, counts[i]))
		}
	}

	return f
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
}
