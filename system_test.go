package electosim

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/edugzlez/electosim/district"
	"github.com/edugzlez/electosim/internal/logger"
	"github.com/edugzlez/electosim/internal/metrics"
	electotest "github.com/edugzlez/electosim/testing"
	"github.com/edugzlez/electosim/tree"
	"github.com/edugzlez/electosim/types"
)

// recordingConfig records every event it receives and optionally fails.
type recordingConfig struct {
	events []Event
	fail   func(Event) error
	check  func(TallyTree, Event)
}

func (r *recordingConfig) OnEvent(t TallyTree, ev Event) error {
	r.events = append(r.events, ev)
	if r.check != nil {
		r.check(t, ev)
	}
	if r.fail != nil {
		return r.fail(ev)
	}

	return nil
}

func (r *recordingConfig) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind)
	}

	return kinds
}

func newSpainSystem(t *testing.T, opts ...Option) (*System, *electotest.SpainFixture) {
	t.Helper()

	f := electotest.NewSpainFixture(t)
	sys, err := NewSystem(f.Tree, district.NewMulti(), opts...)
	require.NoError(t, err)
	for region, d := range f.Districts() {
		require.NoError(t, sys.SetDistrict(region, d))
	}

	return sys, f
}

func TestNewSystem(t *testing.T) {
	t.Run("requires a district configuration", func(t *testing.T) {
		_, err := NewSystem(nil, nil)
		require.ErrorIs(t, err, ErrConfigurationRequired)
	})

	t.Run("creates an empty tree when none is given", func(t *testing.T) {
		sys, err := NewSystem(nil, district.NewMulti())
		require.NoError(t, err)
		require.NotNil(t, sys.Tree())
		require.Empty(t, sys.RegionIDs())
	})

	t.Run("clears leaf seats and dispatches Create", func(t *testing.T) {
		tr := tree.New()
		region := tr.AddRegion("r")
		c := tr.AddCandidacy("c")
		require.NoError(t, tr.SetVotes(region, c, 10))
		require.NoError(t, tr.SetSeats(region, c, 4))

		cfg := &recordingConfig{}
		sys, err := NewSystem(tr, cfg)
		require.NoError(t, err)

		require.Equal(t, []EventKind{EventCreate}, cfg.kinds())
		seats, err := sys.Seats(region, c)
		require.NoError(t, err)
		require.Zero(t, seats)
		require.Zero(t, sys.GlobalSeats(c))
		require.Equal(t, uint64(10), sys.GlobalVotes(c))
	})

	t.Run("fails when the configuration rejects Create", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewSystem(nil, &recordingConfig{fail: func(Event) error { return boom }})
		require.ErrorIs(t, err, boom)
	})
}

func TestSystem_LeafOnlyVotes(t *testing.T) {
	sys, f := newSpainSystem(t)

	err := sys.IncreaseVotes(f.CastillaYLeon, f.PP, 10)
	require.ErrorIs(t, err, ErrNotLeafRegion)

	err = sys.SetVotes(f.CastillaYLeon, f.PP, 10)
	require.ErrorIs(t, err, ErrNotLeafRegion)

	votes, err := sys.Votes(f.CastillaYLeon, f.PP)
	require.NoError(t, err)
	require.Equal(t, uint64(42369+39894), votes)

	require.ErrorIs(t, sys.IncreaseVotes(99, f.PP, 1), ErrRegionNotFound)
	require.ErrorIs(t, sys.IncreaseVotes(f.Avila, 99, 1), ErrCandidacyNotFound)
}

func TestSystem_IncreaseVotesBelowZero(t *testing.T) {
	cfg := &recordingConfig{}
	sys, err := NewSystem(nil, cfg)
	require.NoError(t, err)

	p, _ := sys.CreateRegion("p")
	a, _ := sys.CreateRegion("a")
	b, _ := sys.CreateRegion("b")
	require.NoError(t, sys.SetParent(a, p))
	require.NoError(t, sys.SetParent(b, p))
	c, _ := sys.CreateCandidacy("c")
	require.NoError(t, sys.IncreaseVotes(a, c, 10))
	require.NoError(t, sys.IncreaseVotes(b, c, 20))

	require.NoError(t, sys.IncreaseVotes(a, c, -15))

	votes, err := sys.Votes(a, c)
	require.NoError(t, err)
	require.Equal(t, uint64(0), votes)
	votes, err = sys.Votes(p, c)
	require.NoError(t, err)
	require.Equal(t, uint64(20), votes)
	require.Equal(t, uint64(20), sys.GlobalVotes(c))
	electotest.RequireRollup(t, sys.Tree())

	last := cfg.events[len(cfg.events)-1]
	require.Equal(t, types.IncreaseVotesEvent(a, c, -10), last)

	t.Run("an empty leaf dispatches a zero delta", func(t *testing.T) {
		require.NoError(t, sys.IncreaseVotes(a, c, -5))
		require.Equal(t, types.IncreaseVotesEvent(a, c, 0), cfg.events[len(cfg.events)-1])
		electotest.RequireRollup(t, sys.Tree())
	})
}

func TestSystem_SpanishProvinces(t *testing.T) {
	t.Run("allocates every provincial district", func(t *testing.T) {
		sys, f := newSpainSystem(t)

		require.Equal(t, uint32(20), sys.GlobalSeats(f.PP))
		require.Equal(t, uint32(12), sys.GlobalSeats(f.PSOE))
		require.Equal(t, uint32(5), sys.GlobalSeats(f.VOX))
		require.Equal(t, uint32(6), sys.GlobalSeats(f.SUMAR))

		madrid, err := sys.Seats(f.Madrid, f.PP)
		require.NoError(t, err)
		require.Equal(t, uint32(16), madrid)
		electotest.RequireRollup(t, sys.Tree())
	})

	t.Run("changing a district method recomputes it", func(t *testing.T) {
		sys, f := newSpainSystem(t)

		require.NoError(t, sys.SetDistrict(f.Avila, District{Method: MethodWinnerTakesAll, Seats: 5, Cutoff: 0.03}))

		seats, err := sys.Seats(f.Avila, f.PP)
		require.NoError(t, err)
		require.Equal(t, uint32(5), seats)
		d, ok := sys.District(f.Avila)
		require.True(t, ok)
		require.Equal(t, MethodWinnerTakesAll, d.Method)
		electotest.RequireRollup(t, sys.Tree())
	})

	t.Run("swapping votes swaps seats", func(t *testing.T) {
		sys, f := newSpainSystem(t)

		require.NoError(t, sys.SetVotes(f.Avila, f.PP, 26828))
		require.NoError(t, sys.SetVotes(f.Avila, f.PSOE, 42369))

		pp, err := sys.Seats(f.Avila, f.PP)
		require.NoError(t, err)
		psoe, err := sys.Seats(f.Avila, f.PSOE)
		require.NoError(t, err)
		require.Equal(t, uint32(1), pp)
		require.Equal(t, uint32(2), psoe)
		electotest.RequireRollup(t, sys.Tree())
	})

	t.Run("removing a district clears its seats", func(t *testing.T) {
		sys, f := newSpainSystem(t)

		require.NoError(t, sys.RemoveDistrict(f.Madrid))

		results, err := sys.Results(f.Madrid)
		require.NoError(t, err)
		for _, r := range results {
			require.Zero(t, r.SeatCount)
		}
		require.Equal(t, uint32(4), sys.GlobalSeats(f.PP))
		electotest.RequireRollup(t, sys.Tree())
	})

	t.Run("moving a province keeps rollups consistent", func(t *testing.T) {
		sys, f := newSpainSystem(t)

		require.NoError(t, sys.SetParent(f.Madrid, f.CastillaYLeon))
		electotest.RequireRollup(t, sys.Tree())
		require.Equal(t, uint32(20), sys.GlobalSeats(f.PP))

		cylSeats, err := sys.Seats(f.CastillaYLeon, f.PP)
		require.NoError(t, err)
		require.Equal(t, uint32(20), cylSeats)

		require.NoError(t, sys.RemoveParent(f.Madrid))
		electotest.RequireRollup(t, sys.Tree())
		cylSeats, err = sys.Seats(f.CastillaYLeon, f.PP)
		require.NoError(t, err)
		require.Equal(t, uint32(4), cylSeats)
	})
}

func TestSystem_EventOrder(t *testing.T) {
	var order []string
	cfg := &recordingConfig{
		check: func(tt TallyTree, ev Event) {
			order = append(order, "config:"+ev.Kind.String())
			if ev.Kind == EventIncreaseVotes {
				results, err := tt.Results(ev.Region)
				require.NoError(t, err)
				require.Equal(t, uint64(7), results[0].VoteCount, "tree mutated before dispatch")
			}
		},
	}
	hooks := &Hooks{OnEvent: func(ev Event) { order = append(order, "hook:"+ev.Kind.String()) }}

	sys, err := NewSystem(nil, cfg, WithHooks(hooks))
	require.NoError(t, err)
	sys.Subscribe(func(ev Event) { order = append(order, "subscriber:"+ev.Kind.String()) })

	region, err := sys.CreateRegion("r")
	require.NoError(t, err)
	c, err := sys.CreateCandidacy("c")
	require.NoError(t, err)
	require.NoError(t, sys.IncreaseVotes(region, c, 7))

	require.Equal(t, []string{
		"config:Create", "hook:Create",
		"config:RegionCreated", "hook:RegionCreated", "subscriber:RegionCreated",
		"config:IncreaseVotes", "hook:IncreaseVotes", "subscriber:IncreaseVotes",
	}, order)
}

func TestSystem_Hierarchy(t *testing.T) {
	t.Run("SetParent reports the previous parent", func(t *testing.T) {
		cfg := &recordingConfig{}
		sys, err := NewSystem(nil, cfg)
		require.NoError(t, err)
		a, _ := sys.CreateRegion("a")
		b, _ := sys.CreateRegion("b")
		c, _ := sys.CreateRegion("c")

		require.NoError(t, sys.SetParent(c, a))
		require.NoError(t, sys.SetParent(c, b))

		n := len(cfg.events)
		require.Equal(t, types.BeforeSetParentEvent(c, b), cfg.events[n-2])
		require.Equal(t, types.AfterSetParentEvent(c, b, a, true), cfg.events[n-1])
		parent, ok, err := sys.Parent(c)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, b, parent)
	})

	t.Run("SetParent rejects cycles without dispatching", func(t *testing.T) {
		cfg := &recordingConfig{}
		sys, err := NewSystem(nil, cfg)
		require.NoError(t, err)
		a, _ := sys.CreateRegion("a")
		b, _ := sys.CreateRegion("b")
		require.NoError(t, sys.SetParent(b, a))
		n := len(cfg.events)

		require.ErrorIs(t, sys.SetParent(a, b), ErrNotParentable)
		require.ErrorIs(t, sys.SetParent(a, a), ErrNotParentable)
		require.ErrorIs(t, sys.SetParent(a, 42), ErrRegionNotFound)
		require.Len(t, cfg.events, n)
	})

	t.Run("RemoveParent dispatches both events with the former parent", func(t *testing.T) {
		cfg := &recordingConfig{}
		sys, err := NewSystem(nil, cfg)
		require.NoError(t, err)
		a, _ := sys.CreateRegion("a")
		b, _ := sys.CreateRegion("b")
		require.NoError(t, sys.SetParent(b, a))

		require.NoError(t, sys.RemoveParent(b))
		n := len(cfg.events)
		require.Equal(t, EventBeforeRemoveParent, cfg.events[n-2].Kind)
		require.Equal(t, EventAfterRemoveParent, cfg.events[n-1].Kind)
		require.Equal(t, a, cfg.events[n-1].Parent)

		require.NoError(t, sys.RemoveParent(b))
		require.Len(t, cfg.events, n, "top-level region dispatches nothing")
	})

	t.Run("cascading removal reports descendants first", func(t *testing.T) {
		cfg := &recordingConfig{}
		sys, err := NewSystem(nil, cfg)
		require.NoError(t, err)
		a, _ := sys.CreateRegion("a")
		b, _ := sys.CreateRegion("b")
		c, _ := sys.CreateRegion("c")
		require.NoError(t, sys.SetParent(b, a))
		require.NoError(t, sys.SetParent(c, b))
		n := len(cfg.events)

		require.NoError(t, sys.RemoveRegion(a, true))

		removed := cfg.events[n:]
		require.Equal(t, []Event{
			types.RegionRemovedEvent(c, true),
			types.RegionRemovedEvent(b, true),
			types.RegionRemovedEvent(a, true),
		}, removed)
		require.Empty(t, sys.RegionIDs())
	})

	t.Run("non-cascading removal promotes children", func(t *testing.T) {
		sys, f := newSpainSystem(t)

		require.NoError(t, sys.RemoveRegion(f.CastillaYLeon, false))

		_, ok, err := sys.Parent(f.Avila)
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, uint32(20), sys.GlobalSeats(f.PP))
		electotest.RequireRollup(t, sys.Tree())
	})
}

func TestSystem_RemoveCandidacy(t *testing.T) {
	sys, f := newSpainSystem(t)

	require.NoError(t, sys.RemoveCandidacy(f.SUMAR))

	require.NotContains(t, sys.CandidacyIDs(), f.SUMAR)
	require.Zero(t, sys.GlobalVotes(f.SUMAR))
	require.Zero(t, sys.GlobalSeats(f.SUMAR))

	madrid, err := sys.Seats(f.Madrid, f.PP)
	require.NoError(t, err)
	require.Greater(t, madrid, uint32(16))
	electotest.RequireRollup(t, sys.Tree())

	require.ErrorIs(t, sys.RemoveCandidacy(f.SUMAR), ErrCandidacyNotFound)
}

func TestSystem_Districts(t *testing.T) {
	t.Run("unique configuration is not configurable per region", func(t *testing.T) {
		cfg, err := district.NewUnique(District{Method: MethodDHondt, Seats: 13})
		require.NoError(t, err)
		sys, err := NewSystem(nil, cfg)
		require.NoError(t, err)
		region, _ := sys.CreateRegion("r")

		require.ErrorIs(t, sys.SetDistrict(region, District{Seats: 3}), ErrNotConfigurable)
		require.ErrorIs(t, sys.RemoveDistrict(region), ErrNotConfigurable)
		_, ok := sys.District(region)
		require.False(t, ok)
	})

	t.Run("unknown region is rejected", func(t *testing.T) {
		sys, err := NewSystem(nil, district.NewMulti())
		require.NoError(t, err)

		require.ErrorIs(t, sys.SetDistrict(3, District{Seats: 3}), ErrRegionNotFound)
	})

	t.Run("invalid district is rejected", func(t *testing.T) {
		sys, f := newSpainSystem(t)

		err := sys.SetDistrict(f.Avila, District{Method: MethodDHondt, Seats: 3, Cutoff: 2})
		require.ErrorIs(t, err, ErrInvalidDistrict)
	})
}

func TestSystem_ConfigurationErrors(t *testing.T) {
	boom := errors.New("boom")
	cfg := &recordingConfig{fail: func(ev Event) error {
		if ev.Kind == EventIncreaseVotes {
			return boom
		}
		return nil
	}}

	log := logger.NewTest(t)
	var hookErr error
	hooks := &Hooks{OnError: func(_ Event, err error) { hookErr = err }}
	sys, err := NewSystem(nil, cfg, WithLogger(log), WithHooks(hooks))
	require.NoError(t, err)

	var delivered int
	sys.Subscribe(func(Event) { delivered++ })

	region, _ := sys.CreateRegion("r")
	c, _ := sys.CreateCandidacy("c")
	err = sys.IncreaseVotes(region, c, 3)

	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, hookErr, boom)
	require.True(t, log.Contains("district configuration failed"))
	require.Equal(t, 2, delivered, "subscribers still see the event")

	votes, err := sys.Votes(region, c)
	require.NoError(t, err)
	require.Equal(t, uint64(3), votes)
}

func TestSystem_Subscribe(t *testing.T) {
	sys, err := NewSystem(nil, district.NewMulti())
	require.NoError(t, err)

	var first, second []EventKind
	unsubscribe := sys.Subscribe(func(ev Event) { first = append(first, ev.Kind) })
	sys.Subscribe(func(ev Event) { second = append(second, ev.Kind) })

	region, _ := sys.CreateRegion("r")
	unsubscribe()
	c, _ := sys.CreateCandidacy("c")
	require.NoError(t, sys.IncreaseVotes(region, c, 1))

	require.Equal(t, []EventKind{EventRegionCreated}, first)
	require.Equal(t, []EventKind{EventRegionCreated, EventIncreaseVotes}, second)
}

func TestSystem_Close(t *testing.T) {
	sys, f := newSpainSystem(t)

	require.NoError(t, sys.Close())

	for _, id := range sys.LeafRegionIDs() {
		results, err := sys.Results(id)
		require.NoError(t, err)
		for _, r := range results {
			require.Zero(t, r.SeatCount)
		}
	}
	require.Zero(t, sys.GlobalSeats(f.PP))
	require.Equal(t, uint64(42369+39894+1463183), sys.GlobalVotes(f.PP))

	require.NoError(t, sys.Close())
	require.ErrorIs(t, sys.IncreaseVotes(f.Avila, f.PP, 1), ErrSystemClosed)
	_, err := sys.CreateRegion("late")
	require.ErrorIs(t, err, ErrSystemClosed)
	require.ErrorIs(t, sys.SetDistrict(f.Avila, District{Seats: 3}), ErrSystemClosed)
	require.ErrorIs(t, sys.RemoveRegion(f.Avila, false), ErrSystemClosed)
}

func TestSystem_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewPrometheus(reg, "")
	sys, err := NewSystem(nil, district.NewMulti(district.WithMetrics(collector)), WithMetrics(collector))
	require.NoError(t, err)

	region, _ := sys.CreateRegion("r")
	_, _ = sys.CreateRegion("s")
	c, _ := sys.CreateCandidacy("c")
	require.NoError(t, sys.SetDistrict(region, District{Method: MethodDHondt, Seats: 2}))
	require.NoError(t, sys.IncreaseVotes(region, c, 10))

	expected := `
# HELP electosim_system_regions Current number of regions in the tree.
# TYPE electosim_system_regions gauge
electosim_system_regions 2
# HELP electosim_system_candidacies Current number of candidacies in the tree.
# TYPE electosim_system_candidacies gauge
electosim_system_candidacies 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"electosim_system_regions", "electosim_system_candidacies"))

	count, err := testutil.GatherAndCount(reg, "electosim_system_events_total")
	require.NoError(t, err)
	require.Equal(t, 4, count, "one series per dispatched kind")

	recomputes, err := testutil.GatherAndCount(reg, "electosim_district_recomputes_total")
	require.NoError(t, err)
	require.Positive(t, recomputes)
}
