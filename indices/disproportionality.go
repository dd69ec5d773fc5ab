package indices

import (
	"math"

	"github.com/edugzlez/electosim/types"
)

// shares returns each candidacy's vote share and seat share. ok is false
// when either total is zero.
func shares[C types.Candidate](candidates []C) (votes, seats []float64, ok bool) {
	var totalVotes, totalSeats float64
	for _, c := range candidates {
		totalVotes += float64(c.Votes())
		totalSeats += float64(c.Seats())
	}
	if totalVotes == 0 || totalSeats == 0 {
		return nil, nil, false
	}

	votes = make([]float64, len(candidates))
	seats = make([]float64, len(candidates))
	for i, c := range candidates {
		votes[i] = float64(c.Votes()) / totalVotes
		seats[i] = float64(c.Seats()) / totalSeats
	}

	return votes, seats, true
}

// LoosemoreHanby returns half the sum of absolute differences between vote
// and seat shares. 0 is perfectly proportional, 1 the maximum distortion.
//
// Example:
//
//	results, _ := sys.Results(madrid)
//	lh := indices.LoosemoreHanby(types.AsCandidates(results))
func LoosemoreHanby[C types.Candidate](candidates []C) float64 {
	votes, seats, ok := shares(candidates)
	if !ok {
		return 0
	}

	var sum float64
	for i := range votes {
		sum += math.Abs(votes[i] - seats[i])
	}

	return sum / 2
}

// Rose returns 1 - LoosemoreHanby, so 1 is perfectly proportional.
func Rose[C types.Candidate](candidates []C) float64 {
	return 1 - LoosemoreHanby(candidates)
}

// SainteLague returns half the sum of (s-v)²/v over candidacies with votes.
// Candidacies without votes are left out because their term is undefined.
func SainteLague[C types.Candidate](candidates []C) float64 {
	votes, seats, ok := shares(candidates)
	if !ok {
		return 0
	}

	var sum float64
	for i := range votes {
		if votes[i] == 0 {
			continue
		}
		d := seats[i] - votes[i]
		sum += d * d / votes[i]
	}

	return sum / 2
}

// Gallagher returns the least squares index: the square root of half the
// sum of squared differences between vote and seat shares.
func Gallagher[C types.Candidate](candidates []C) float64 {
	votes, seats, ok := shares(candidates)
	if !ok {
		return 0
	}

	var sum float64
	for i := range votes {
		d := seats[i] - votes[i]
		sum += d * d
	}

	return math.Sqrt(sum / 2)
}
