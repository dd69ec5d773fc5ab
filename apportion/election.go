package apportion

import (
	"math"

	"github.com/edugzlez/electosim/types"
)

// Election is one apportionment request: candidates, seats, method and cutoff.
type Election struct {
	// Candidates receive the computed seats in place.
	Candidates []types.Candidate

	// Seats is the number of seats to distribute.
	Seats uint32

	// Method selects the built-in policy. Ignored when Policy is set.
	Method types.Method

	// Cutoff is the vote share (0.0-1.0) a candidate must exceed.
	Cutoff float64

	// Policy overrides Method with a custom policy.
	Policy types.ApportionmentPolicy
}

// NewElection creates an election for a district setup.
//
// Parameters:
//   - candidates: Candidates to apportion among
//   - district: Method, seats and cutoff
//
// Returns:
//   - *Election: Election ready to compute
func NewElection(candidates []types.Candidate, district types.District) *Election {
	return &Election{
		Candidates: candidates,
		Seats:      district.Seats,
		Method:     district.Method,
		Cutoff:     district.Cutoff,
	}
}

// CutoffVotes returns floor(total votes * cutoff). Candidates at or below it
// are excluded.
func (e *Election) CutoffVotes() uint64 {
	return uint64(math.Floor(float64(TotalVotes(e.Candidates)) * e.Cutoff))
}

// Compute clears every seat, drops candidates whose votes do not exceed the
// cutoff and runs the policy on the rest.
//
// Returns:
//   - error: types.ErrEmptyResults when no candidate passes the cutoff (all
//     seats stay at zero), types.ErrUnknownMethod for an invalid Method
func (e *Election) Compute() error {
	policy := e.Policy
	if policy == nil {
		var err error
		policy, err = PolicyFor(e.Method)
		if err != nil {
			return err
		}
	}

	cutoff := e.CutoffVotes()
	ClearSeats(e.Candidates)

	eligible := make([]types.Candidate, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		if c.Votes() > cutoff {
			eligible = append(eligible, c)
		}
	}

	return policy.Apportion(eligible, e.Seats)
}

// TotalVotes returns the sum of votes over candidates.
func TotalVotes[C types.WithVotes](candidates []C) uint64 {
	var total uint64
	for _, c := range candidates {
		total += c.Votes()
	}

	return total
}

// TotalSeats returns the sum of seats over candidates.
func TotalSeats[C types.WithSeats](candidates []C) uint64 {
	var total uint64
	for _, c := range candidates {
		total += uint64(c.Seats())
	}

	return total
}

// ClearSeats sets every candidate's seats to zero.
func ClearSeats[C types.WithSeats](candidates []C) {
	for _, c := range candidates {
		c.SetSeats(0)
	}
}
