// Package apportion implements seat apportionment policies.
//
// Two families are provided. Divisor (highest quotient) policies award one
// seat per round to the candidate with the largest votes/divisor(seats won).
// Remainder (largest remainder) policies award floor(votes/quota) seats to
// every candidate and hand out what is left by largest fractional remainder.
//
// Every policy implements types.ApportionmentPolicy: it clears all seats
// before assigning, fails with types.ErrEmptyResults when given no
// candidates, and resolves ties in favour of the last maximal candidate.
//
// Election bundles a policy with a seat count and a vote share cutoff, the
// way district configurations use it:
//
//	results := []types.Result{{VoteCount: 2010}, {VoteCount: 1018}, {VoteCount: 86}, {VoteCount: 77}}
//	e := apportion.Election{
//	    Candidates: types.AsCandidates(results),
//	    Seats:      13,
//	    Method:     types.MethodDHondt,
//	}
//	err := e.Compute() // results now hold 9, 4, 0, 0 seats
package apportion
