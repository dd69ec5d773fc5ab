package types

import "math"

// WithVotes is implemented by anything that carries a vote count.
type WithVotes interface {
	// Votes returns the current vote count.
	Votes() uint64

	// SetVotes replaces the vote count.
	SetVotes(votes uint64)
}

// WithSeats is implemented by anything that carries a seat count.
type WithSeats interface {
	// Seats returns the current seat count.
	Seats() uint32

	// SetSeats replaces the seat count.
	SetSeats(seats uint32)
}

// Candidate is the capability apportionment policies operate on.
//
// Plain candidacy records, tree snapshots and caller-defined types all
// participate in apportionment by implementing both halves.
type Candidate interface {
	WithVotes
	WithSeats
}

// IncreaseVotes applies a signed delta to v, saturating at zero.
//
// Parameters:
//   - v: Target whose votes are modified
//   - delta: Signed amount to add (negative values subtract)
func IncreaseVotes(v WithVotes, delta int64) {
	v.SetVotes(addVotes(v.Votes(), delta))
}

// IncreaseSeats applies a signed delta to s, saturating at zero.
//
// Parameters:
//   - s: Target whose seats are modified
//   - delta: Signed amount to add (negative values subtract)
func IncreaseSeats(s WithSeats, delta int64) {
	s.SetSeats(addSeats(s.Seats(), delta))
}

// Tally is the (votes, seats) pair of one candidacy inside one region.
type Tally struct {
	VoteCount uint64 `json:"votes" yaml:"votes"`
	SeatCount uint32 `json:"seats" yaml:"seats"`
}

var _ Candidate = (*Tally)(nil)

// Votes returns the vote count.
func (t *Tally) Votes() uint64 { return t.VoteCount }

// SetVotes replaces the vote count.
func (t *Tally) SetVotes(votes uint64) { t.VoteCount = votes }

// Seats returns the seat count.
func (t *Tally) Seats() uint32 { return t.SeatCount }

// SetSeats replaces the seat count.
func (t *Tally) SetSeats(seats uint32) { t.SeatCount = seats }

// IncreaseVotes applies a signed delta to the vote count, saturating at zero.
func (t *Tally) IncreaseVotes(delta int64) { t.VoteCount = addVotes(t.VoteCount, delta) }

// IncreaseSeats applies a signed delta to the seat count, saturating at zero.
func (t *Tally) IncreaseSeats(delta int64) { t.SeatCount = addSeats(t.SeatCount, delta) }

// IsZero reports whether both counts are zero.
func (t Tally) IsZero() bool { return t.VoteCount == 0 && t.SeatCount == 0 }

// Result is a snapshot row of a region tally table.
//
// Results are copies: mutating one never touches the tree it was read from.
// Write seat changes back through the tree API.
type Result struct {
	Candidacy CandidacyID `json:"candidacy" yaml:"candidacy"`
	VoteCount uint64      `json:"votes" yaml:"votes"`
	SeatCount uint32      `json:"seats" yaml:"seats"`
}

var _ Candidate = (*Result)(nil)

// Votes returns the vote count.
func (r *Result) Votes() uint64 { return r.VoteCount }

// SetVotes replaces the vote count.
func (r *Result) SetVotes(votes uint64) { r.VoteCount = votes }

// Seats returns the seat count.
func (r *Result) Seats() uint32 { return r.SeatCount }

// SetSeats replaces the seat count.
func (r *Result) SetSeats(seats uint32) { r.SeatCount = seats }

// AsCandidates adapts a result slice to the policy input type.
//
// The returned candidates point into results, so seats assigned by a policy
// are visible in the original slice.
//
// Parameters:
//   - results: Snapshot rows to expose
//
// Returns:
//   - []Candidate: One candidate per row, same order
func AsCandidates(results []Result) []Candidate {
	out := make([]Candidate, len(results))
	for i := range results {
		out[i] = &results[i]
	}

	return out
}

func addVotes(current uint64, delta int64) uint64 {
	if delta < 0 {
		sub := uint64(-(delta + 1)) + 1
		if current < sub {
			return 0
		}

		return current - sub
	}

	add := uint64(delta)
	if current > math.MaxUint64-add {
		return math.MaxUint64
	}

	return current + add
}

func addSeats(current uint32, delta int64) uint32 {
	next := int64(current) + delta
	switch {
	case next < 0:
		return 0
	case next > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(next)
	}
}
