package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type plainCandidate struct {
	votes uint64
	seats uint32
}

func (c *plainCandidate) Votes() uint64         { return c.votes }
func (c *plainCandidate) SetVotes(votes uint64) { c.votes = votes }
func (c *plainCandidate) Seats() uint32         { return c.seats }
func (c *plainCandidate) SetSeats(seats uint32) { c.seats = seats }

func TestIncreaseHelpers(t *testing.T) {
	t.Run("adds and subtracts through the interface", func(t *testing.T) {
		c := &plainCandidate{votes: 1000, seats: 50}

		IncreaseVotes(c, 100)
		require.Equal(t, uint64(1100), c.Votes())
		IncreaseVotes(c, -200)
		require.Equal(t, uint64(900), c.Votes())

		IncreaseSeats(c, 10)
		require.Equal(t, uint32(60), c.Seats())
		IncreaseSeats(c, -20)
		require.Equal(t, uint32(40), c.Seats())
	})

	t.Run("saturates at zero", func(t *testing.T) {
		c := &plainCandidate{votes: 5, seats: 1}

		IncreaseVotes(c, -6)
		IncreaseSeats(c, -100)

		require.Zero(t, c.Votes())
		require.Zero(t, c.Seats())
	})

	t.Run("saturates at the type maximum", func(t *testing.T) {
		c := &plainCandidate{votes: math.MaxUint64 - 1, seats: math.MaxUint32 - 1}

		IncreaseVotes(c, 10)
		IncreaseSeats(c, 10)

		require.Equal(t, uint64(math.MaxUint64), c.Votes())
		require.Equal(t, uint32(math.MaxUint32), c.Seats())
	})

	t.Run("handles the most negative delta", func(t *testing.T) {
		c := &plainCandidate{votes: 10}

		IncreaseVotes(c, math.MinInt64)

		require.Zero(t, c.Votes())
	})
}

func TestTally(t *testing.T) {
	tally := &Tally{}
	require.True(t, tally.IsZero())

	tally.IncreaseVotes(2350)
	tally.IncreaseSeats(3)
	require.Equal(t, uint64(2350), tally.Votes())
	require.Equal(t, uint32(3), tally.Seats())
	require.False(t, tally.IsZero())

	tally.IncreaseVotes(-3000)
	require.Zero(t, tally.Votes())
	require.Equal(t, uint32(3), tally.Seats())
}

func TestAsCandidates(t *testing.T) {
	results := []Result{
		{Candidacy: 0, VoteCount: 10},
		{Candidacy: 1, VoteCount: 20},
	}

	candidates := AsCandidates(results)
	require.Len(t, candidates, 2)

	candidates[1].SetSeats(7)
	require.Equal(t, uint32(7), results[1].SeatCount, "seats written through candidates must reach the slice")
	require.Equal(t, uint64(20), candidates[1].Votes())
}
