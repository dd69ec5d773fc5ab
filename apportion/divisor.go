package apportion

import (
	"math"

	"github.com/edugzlez/electosim/types"
)

// DivisorFunc returns the divisor applied to a candidate's votes given the
// seats it has already won in the current apportionment.
type DivisorFunc func(seats uint32) float64

// Divisor is a highest-quotient apportionment policy.
type Divisor struct {
	divisor DivisorFunc
}

var _ types.ApportionmentPolicy = (*Divisor)(nil)

// NewDivisor creates a highest-quotient policy from a divisor function.
//
// Parameters:
//   - fn: Divisor as a function of seats already won
//
// Returns:
//   - *Divisor: Policy ready to use
//
// Example:
//
//	// D'Hondt
//	policy := apportion.NewDivisor(func(s uint32) float64 { return float64(s) + 1 })
func NewDivisor(fn DivisorFunc) *Divisor {
	return &Divisor{divisor: fn}
}

// DHondt returns the D'Hondt policy (divisor s+1).
func DHondt() *Divisor {
	return NewDivisor(func(s uint32) float64 { return float64(s) + 1 })
}

// SainteLague returns the Sainte-Laguë (Webster) policy (divisor 2s+1).
func SainteLague() *Divisor {
	return NewDivisor(func(s uint32) float64 { return 2*float64(s) + 1 })
}

// Adams returns the Adams policy (divisor s).
//
// Every candidate with votes takes one seat before anybody takes a second.
func Adams() *Divisor {
	return NewDivisor(func(s uint32) float64 { return float64(s) })
}

// Imperiali returns the Imperiali divisor policy (divisor s+2).
func Imperiali() *Divisor {
	return NewDivisor(func(s uint32) float64 { return float64(s) + 2 })
}

// HuntingtonHill returns the Huntington-Hill policy (divisor sqrt(s(s+1))).
func HuntingtonHill() *Divisor {
	return NewDivisor(func(s uint32) float64 {
		f := float64(s)
		return math.Sqrt(f * (f + 1))
	})
}

// Danish returns the Danish policy (divisor 3s+1).
func Danish() *Divisor {
	return NewDivisor(func(s uint32) float64 { return 3*float64(s) + 1 })
}

// Apportion assigns seats one round at a time to the highest quotient.
//
// A zero divisor yields an infinite quotient for a candidate with votes and a
// zero quotient for one without.
//
// Parameters:
//   - candidates: Candidates to apportion among (seats are overwritten)
//   - seats: Number of seats to distribute
//
// Returns:
//   - error: types.ErrEmptyResults when candidates is empty
func (d *Divisor) Apportion(candidates []types.Candidate, seats uint32) error {
	if len(candidates) == 0 {
		return types.ErrEmptyResults
	}
	ClearSeats(candidates)

	for range seats {
		best := -1
		bestQuotient := 0.0
		for i, c := range candidates {
			q := quotient(c.Votes(), d.divisor(c.Seats()))
			if best < 0 || q >= bestQuotient {
				best = i
				bestQuotient = q
			}
		}
		types.IncreaseSeats(candidates[best], 1)
	}

	return nil
}

func quotient(votes uint64, divisor float64) float64 {
	if divisor <= 0 {
		if votes > 0 {
			return math.Inf(1)
		}

		return 0
	}

	return float64(votes) / divisor
}

// WinnerTakesAll gives every seat to the most voted candidate.
type WinnerTakesAll struct{}

var _ types.ApportionmentPolicy = WinnerTakesAll{}

// Apportion gives all seats to the last candidate with the maximum votes.
func (WinnerTakesAll) Apportion(candidates []types.Candidate, seats uint32) error {
	if len(candidates) == 0 {
		return types.ErrEmptyResults
	}
	ClearSeats(candidates)

	best := 0
	for i, c := range candidates {
		if c.Votes() >= candidates[best].Votes() {
			best = i
		}
	}
	candidates[best].SetSeats(seats)

	return nil
}
