package district

import (
	"testing"

	"github.com/edugzlez/electosim/internal/logger"
	electotest "github.com/edugzlez/electosim/testing"
	"github.com/edugzlez/electosim/tree"
	"github.com/edugzlez/electosim/types"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	recomputes map[string]int
	failures   map[string]int
	skipped    map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		recomputes: make(map[string]int),
		failures:   make(map[string]int),
		skipped:    make(map[string]int),
	}
}

func (r *recordingMetrics) RecordRecompute(scope string, _ float64, success bool) {
	if success {
		r.recomputes[scope]++
	} else {
		r.failures[scope]++
	}
}

func (r *recordingMetrics) RecordRecomputeSkipped(scope string) {
	r.skipped[scope]++
}

func seats(t *testing.T, tr *tree.Tree, region types.RegionID, candidacy types.CandidacyID) uint32 {
	t.Helper()
	s, err := tr.Seats(region, candidacy)
	require.NoError(t, err)

	return s
}

func configure(t *testing.T, m *Multi, tr *tree.Tree, region types.RegionID, d types.District) {
	t.Helper()
	require.NoError(t, m.SetDistrict(region, d))
	require.NoError(t, m.OnEvent(tr, types.RegionEvent(types.EventRegionModified, region)))
}

func setVotes(t *testing.T, cfg types.DistrictConfiguration, tr *tree.Tree, region types.RegionID, candidacy types.CandidacyID, votes uint64) {
	t.Helper()
	before, err := tr.Votes(region, candidacy)
	require.NoError(t, err)
	require.NoError(t, tr.SetVotes(region, candidacy, votes))
	require.NoError(t, cfg.OnEvent(tr, types.IncreaseVotesEvent(region, candidacy, int64(votes)-int64(before))))
}

func TestMulti_SpanishProvinces(t *testing.T) {
	fx := electotest.NewSpainFixture(t)
	m := NewMulti()
	for region, d := range fx.Districts() {
		configure(t, m, fx.Tree, region, d)
	}

	require.Equal(t, uint32(20), fx.Tree.GlobalSeats(fx.PP))
	require.Equal(t, uint32(12), fx.Tree.GlobalSeats(fx.PSOE))
	require.Equal(t, uint32(5), fx.Tree.GlobalSeats(fx.VOX))
	require.Equal(t, uint32(6), fx.Tree.GlobalSeats(fx.SUMAR))

	for _, party := range []types.CandidacyID{fx.PP, fx.PSOE, fx.VOX, fx.SUMAR} {
		require.Equal(t,
			seats(t, fx.Tree, fx.Avila, party)+seats(t, fx.Tree, fx.Segovia, party),
			seats(t, fx.Tree, fx.CastillaYLeon, party),
		)
	}
	require.Equal(t, uint32(2), seats(t, fx.Tree, fx.Avila, fx.PP))
	require.Equal(t, uint32(1), seats(t, fx.Tree, fx.Avila, fx.PSOE))
	require.Equal(t, uint32(16), seats(t, fx.Tree, fx.Madrid, fx.PP))

	electotest.RequireRollup(t, fx.Tree)
}

func TestMulti_ChangeMethod(t *testing.T) {
	fx := electotest.NewSpainFixture(t)
	m := NewMulti()

	configure(t, m, fx.Tree, fx.Avila, types.District{Method: types.MethodDHondt, Seats: 3, Cutoff: 0.03})
	configure(t, m, fx.Tree, fx.Avila, types.District{Method: types.MethodWinnerTakesAll, Seats: 5, Cutoff: 0.03})

	require.Equal(t, uint32(5), seats(t, fx.Tree, fx.Avila, fx.PP))
	require.Equal(t, uint32(0), seats(t, fx.Tree, fx.Avila, fx.PSOE))
	require.Equal(t, uint32(0), seats(t, fx.Tree, fx.Avila, fx.VOX))
	require.Equal(t, uint32(0), seats(t, fx.Tree, fx.Avila, fx.SUMAR))
	require.Equal(t, uint32(5), seats(t, fx.Tree, fx.CastillaYLeon, fx.PP))
}

func TestMulti_ChangeVotes(t *testing.T) {
	fx := electotest.NewSpainFixture(t)
	m := NewMulti()
	configure(t, m, fx.Tree, fx.Avila, types.District{Method: types.MethodDHondt, Seats: 3, Cutoff: 0.03})

	setVotes(t, m, fx.Tree, fx.Avila, fx.PP, 26828)
	setVotes(t, m, fx.Tree, fx.Avila, fx.PSOE, 42369)

	require.Equal(t, uint32(2), seats(t, fx.Tree, fx.Avila, fx.PSOE))
	require.Equal(t, uint32(1), seats(t, fx.Tree, fx.Avila, fx.PP))
	electotest.RequireRollup(t, fx.Tree)
}

func TestMulti_RemoveDistrict(t *testing.T) {
	fx := electotest.NewSpainFixture(t)
	m := NewMulti()
	configure(t, m, fx.Tree, fx.Avila, types.District{Method: types.MethodDHondt, Seats: 3})
	configure(t, m, fx.Tree, fx.Segovia, types.District{Method: types.MethodDHondt, Seats: 3})
	require.Equal(t, uint32(4), seats(t, fx.Tree, fx.CastillaYLeon, fx.PP))

	m.RemoveDistrict(fx.Avila)
	require.NoError(t, m.OnEvent(fx.Tree, types.RegionEvent(types.EventRegionModified, fx.Avila)))

	_, ok := m.District(fx.Avila)
	require.False(t, ok)
	require.Equal(t, uint32(0), seats(t, fx.Tree, fx.Avila, fx.PP))
	require.Equal(t, uint32(2), seats(t, fx.Tree, fx.CastillaYLeon, fx.PP))

	votes, err := fx.Tree.Votes(fx.Avila, fx.PP)
	require.NoError(t, err)
	require.Equal(t, uint64(42369), votes)
	electotest.RequireRollup(t, fx.Tree)
}

func TestMulti_IncreaseVotesRecomputesConfiguredAncestors(t *testing.T) {
	fx := electotest.NewSpainFixture(t)
	m := NewMulti()
	configure(t, m, fx.Tree, fx.CastillaYLeon, types.District{Method: types.MethodWinnerTakesAll, Seats: 5})
	require.Equal(t, uint32(5), seats(t, fx.Tree, fx.CastillaYLeon, fx.PP))

	// PSOE overtakes PP across the region
	setVotes(t, m, fx.Tree, fx.Segovia, fx.PSOE, 100000)

	require.Equal(t, uint32(5), seats(t, fx.Tree, fx.CastillaYLeon, fx.PSOE))
	require.Equal(t, uint32(0), seats(t, fx.Tree, fx.CastillaYLeon, fx.PP))
}

func TestMulti_SkipsUnchangedDistricts(t *testing.T) {
	fx := electotest.NewSpainFixture(t)
	rec := newRecordingMetrics()
	m := NewMulti(WithMetrics(rec))
	for region, d := range fx.Districts() {
		require.NoError(t, m.SetDistrict(region, d))
	}

	require.NoError(t, m.OnEvent(fx.Tree, types.CreateEvent()))
	require.Equal(t, 3, rec.recomputes[scopeRegion])

	require.NoError(t, m.OnEvent(fx.Tree, types.CreateEvent()))
	require.Equal(t, 3, rec.recomputes[scopeRegion])
	require.Equal(t, 3, rec.skipped[scopeRegion])

	setVotes(t, m, fx.Tree, fx.Madrid, fx.VOX, 600000)
	require.Equal(t, 4, rec.recomputes[scopeRegion])
}

func TestMulti_RegionRemoved(t *testing.T) {
	t.Run("drops the removed region's district", func(t *testing.T) {
		fx := electotest.NewSpainFixture(t)
		m := NewMulti()
		configure(t, m, fx.Tree, fx.Madrid, types.District{Method: types.MethodDHondt, Seats: 37})

		require.NoError(t, fx.Tree.RemoveRegion(fx.Madrid, false))
		require.NoError(t, m.OnEvent(fx.Tree, types.RegionRemovedEvent(fx.Madrid, false)))

		require.Empty(t, m.Regions())
	})

	t.Run("prunes districts removed with an ancestor", func(t *testing.T) {
		fx := electotest.NewSpainFixture(t)
		m := NewMulti()
		configure(t, m, fx.Tree, fx.Avila, types.District{Method: types.MethodDHondt, Seats: 3})
		configure(t, m, fx.Tree, fx.Madrid, types.District{Method: types.MethodDHondt, Seats: 37})

		require.NoError(t, fx.Tree.RemoveRegion(fx.CastillaYLeon, true))
		require.NoError(t, m.OnEvent(fx.Tree, types.RegionRemovedEvent(fx.CastillaYLeon, true)))

		require.Equal(t, []types.RegionID{fx.Madrid}, m.Regions())
		require.Equal(t, uint32(16), fx.Tree.GlobalSeats(fx.PP))
	})
}

func TestMulti_EmptyScope(t *testing.T) {
	tr := tree.New()
	region := tr.AddRegion("empty")
	rec := newRecordingMetrics()
	m := NewMulti(WithMetrics(rec))

	configure(t, m, tr, region, types.District{Method: types.MethodDHondt, Seats: 3})

	require.Zero(t, rec.recomputes[scopeRegion])
}

func TestMulti_SetDistrictValidates(t *testing.T) {
	m := NewMulti()

	err := m.SetDistrict(0, types.District{Method: types.MethodDHondt, Seats: 3, Cutoff: 1.5})
	require.ErrorIs(t, err, types.ErrInvalidDistrict)
	require.Empty(t, m.Regions())
}

func TestMulti_UnknownRegion(t *testing.T) {
	tr := tree.New()
	rec := newRecordingMetrics()
	m := NewMulti(WithMetrics(rec))
	require.NoError(t, m.SetDistrict(9, types.District{Method: types.MethodDHondt, Seats: 3}))

	err := m.OnEvent(tr, types.CreateEvent())
	require.ErrorIs(t, err, types.ErrRegionNotFound)
}

func TestUnique_SingleMunicipality(t *testing.T) {
	tr := tree.New()
	candeleda := tr.AddRegion("Candeleda")
	pp := tr.AddCandidacy("Partido Popular")
	psoe := tr.AddCandidacy("Partido Socialista Obrero Español")
	pcal := tr.AddCandidacy("Partido de Castilla y León")

	u, err := NewUnique(types.District{Method: types.MethodDHondt, Seats: 13, Cutoff: 0.03})
	require.NoError(t, err)
	require.NoError(t, u.OnEvent(tr, types.CreateEvent()))

	for candidacy, votes := range map[types.CandidacyID]int64{pp: 1846, psoe: 1114, pcal: 466} {
		require.NoError(t, tr.IncreaseVotes(candeleda, candidacy, votes))
		require.NoError(t, u.OnEvent(tr, types.IncreaseVotesEvent(candeleda, candidacy, votes)))
	}

	require.Equal(t, uint32(7), tr.GlobalSeats(pp))
	require.Equal(t, uint32(4), tr.GlobalSeats(psoe))
	require.Equal(t, uint32(2), tr.GlobalSeats(pcal))
	require.Equal(t, uint32(0), seats(t, tr, candeleda, pp))
	electotest.RequireVoteRollup(t, tr)
}

func TestUnique_NobodyPassesCutoff(t *testing.T) {
	tr := tree.New()
	region := tr.AddRegion("tied")
	a := tr.AddCandidacy("a")
	b := tr.AddCandidacy("b")
	require.NoError(t, tr.IncreaseVotes(region, a, 50))
	require.NoError(t, tr.IncreaseVotes(region, b, 50))
	require.NoError(t, tr.GlobalSetSeats(a, 3))

	log := logger.NewTest(t)
	u, err := NewUnique(types.District{Method: types.MethodDHondt, Seats: 3, Cutoff: 0.5}, WithLogger(log))
	require.NoError(t, err)

	require.NoError(t, u.OnEvent(tr, types.CreateEvent()))
	require.Equal(t, uint32(0), tr.GlobalSeats(a))
	require.Equal(t, uint32(0), tr.GlobalSeats(b))
	require.True(t, log.Contains("cutoff"))
}

func TestUnique_IgnoresReparenting(t *testing.T) {
	tr := tree.New()
	rec := newRecordingMetrics()
	u, err := NewUnique(types.District{Method: types.MethodSainteLague, Seats: 5}, WithMetrics(rec))
	require.NoError(t, err)

	for _, kind := range []types.EventKind{
		types.EventBeforeSetParent,
		types.EventAfterSetParent,
		types.EventBeforeRemoveParent,
		types.EventAfterRemoveParent,
		types.EventRegionCreated,
		types.EventRegionModified,
	} {
		require.NoError(t, u.OnEvent(tr, types.Event{Kind: kind}))
	}
	require.Empty(t, rec.recomputes)

	require.Error(t, u.OnEvent(tr, types.Event{Kind: types.EventKind(99)}))
}

func TestNewUnique_Validates(t *testing.T) {
	_, err := NewUnique(types.District{Method: types.Method(42), Seats: 3})
	require.ErrorIs(t, err, types.ErrInvalidDistrict)
}

func TestFingerprint(t *testing.T) {
	d := types.District{Method: types.MethodDHondt, Seats: 3, Cutoff: 0.03}
	snapshot := []types.Result{{Candidacy: 0, VoteCount: 10, SeatCount: 2}, {Candidacy: 1, VoteCount: 5, SeatCount: 1}}

	require.Equal(t, fingerprint(d, snapshot), fingerprint(d, append([]types.Result(nil), snapshot...)))

	changedSeats := append([]types.Result(nil), snapshot...)
	changedSeats[1].SeatCount = 0
	require.NotEqual(t, fingerprint(d, snapshot), fingerprint(d, changedSeats))

	d2 := d
	d2.Cutoff = 0.05
	require.NotEqual(t, fingerprint(d, snapshot), fingerprint(d2, snapshot))
}
