package indices

import "github.com/edugzlez/electosim/types"

// LaaksoTaagepera returns the effective number of parties 1/Σp², where p is
// each value's share of the total. Pass vote counts or seat counts.
//
// Parameters:
//   - values: Votes or seats per candidacy
//
// Returns:
//   - float64: Effective number of parties, 0 when the total is zero
//
// Example:
//
//	enp := indices.LaaksoTaagepera(indices.Votes(types.AsCandidates(results)))
func LaaksoTaagepera(values []float64) float64 {
	total := sum(values)
	if total == 0 {
		return 0
	}

	var concentration float64
	for _, v := range values {
		p := v / total
		concentration += p * p
	}

	return 1 / concentration
}

// Golosov returns the effective number of parties Σ p/(p + p₁² - p²), where
// p₁ is the largest share.
func Golosov(values []float64) float64 {
	total := sum(values)
	if total == 0 {
		return 0
	}

	var largest float64
	for _, v := range values {
		largest = max(largest, v/total)
	}

	var enp float64
	for _, v := range values {
		p := v / total
		if p == 0 {
			continue
		}
		enp += p / (p + largest*largest - p*p)
	}

	return enp
}

// Votes extracts vote counts for the ENP functions.
func Votes[C types.WithVotes](candidates []C) []float64 {
	values := make([]float64, len(candidates))
	for i, c := range candidates {
		values[i] = float64(c.Votes())
	}

	return values
}

// Seats extracts seat counts for the ENP functions.
func Seats[C types.WithSeats](candidates []C) []float64 {
	values := make([]float64, len(candidates))
	for i, c := range candidates {
		values[i] = float64(c.Seats())
	}

	return values
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}

	return total
}
