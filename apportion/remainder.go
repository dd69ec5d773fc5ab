package apportion

import (
	"math"

	"github.com/edugzlez/electosim/types"
)

// QuotaFunc returns the number of votes worth one seat.
type QuotaFunc func(totalVotes uint64, seats uint32) float64

// Remainder is a largest-remainder apportionment policy.
//
// Integer seats are assigned before the remainder phase and are never taken
// back: when the integer parts add up to more than the requested seats, the
// remainder phase hands out nothing and the total exceeds the request. The
// Hagenbach-Bischoff quota can do this on small electorates with many seats.
type Remainder struct {
	quota QuotaFunc
}

var _ types.ApportionmentPolicy = (*Remainder)(nil)

// NewRemainder creates a largest-remainder policy from a quota function.
//
// Parameters:
//   - fn: Quota as a function of total votes and seats
//
// Returns:
//   - *Remainder: Policy ready to use
//
// Example:
//
//	// Hare
//	policy := apportion.NewRemainder(func(v uint64, s uint32) float64 { return float64(v) / float64(s) })
func NewRemainder(fn QuotaFunc) *Remainder {
	return &Remainder{quota: fn}
}

// Hare returns the Hare (Hamilton) policy, quota votes/seats.
func Hare() *Remainder {
	return NewRemainder(func(v uint64, s uint32) float64 { return float64(v) / float64(s) })
}

// Droop returns the Droop policy, quota floor(votes/(seats+1))+1.
func Droop() *Remainder {
	return NewRemainder(func(v uint64, s uint32) float64 {
		return math.Floor(float64(v)/(float64(s)+1)) + 1
	})
}

// HagenbachBischoff returns the Hagenbach-Bischoff policy, quota votes/(seats+1).
func HagenbachBischoff() *Remainder {
	return NewRemainder(func(v uint64, s uint32) float64 { return float64(v) / (float64(s) + 1) })
}

// ImperialiQuotient returns the Imperiali quotient policy, quota floor(votes/(seats+2))+1.
func ImperialiQuotient() *Remainder {
	return NewRemainder(func(v uint64, s uint32) float64 {
		return math.Floor(float64(v)/(float64(s)+2)) + 1
	})
}

type share struct {
	integer   uint32
	remainder float64
}

// Apportion assigns integer quotas, then the seats left by largest remainder.
//
// A non-positive quota gives every candidate a zero share, so all seats are
// decided in the remainder phase.
//
// Parameters:
//   - candidates: Candidates to apportion among (seats are overwritten)
//   - seats: Number of seats to distribute
//
// Returns:
//   - error: types.ErrEmptyResults when candidates is empty
func (r *Remainder) Apportion(candidates []types.Candidate, seats uint32) error {
	if len(candidates) == 0 {
		return types.ErrEmptyResults
	}
	ClearSeats(candidates)

	quota := r.quota(TotalVotes(candidates), seats)
	shares := make([]share, len(candidates))
	seatsLeft := seats
	for i, c := range candidates {
		shares[i] = shareOf(c.Votes(), quota)
		c.SetSeats(shares[i].integer)
		seatsLeft -= min(shares[i].integer, seatsLeft)
	}

	for range seatsLeft {
		best := 0
		for i := range shares {
			if shares[i].remainder >= shares[best].remainder {
				best = i
			}
		}
		types.IncreaseSeats(candidates[best], 1)
		shares[best].integer++
		shares[best].remainder--
	}

	return nil
}

func shareOf(votes uint64, quota float64) share {
	if quota <= 0 || math.IsNaN(quota) {
		return share{}
	}

	exact := float64(votes) / quota
	integer := math.Floor(exact)
	if integer >= math.MaxUint32 {
		return share{integer: math.MaxUint32}
	}

	return share{integer: uint32(integer), remainder: exact - integer}
}
