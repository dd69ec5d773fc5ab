package indices

import "github.com/edugzlez/electosim/types"

// Summary bundles every index for one scope.
type Summary struct {
	LoosemoreHanby float64 `yaml:"loosemoreHanby"`
	Rose           float64 `yaml:"rose"`
	SainteLague    float64 `yaml:"sainteLague"`
	Gallagher      float64 `yaml:"gallagher"`

	// ENP by votes and by seats.
	VotesLaaksoTaagepera float64 `yaml:"votesLaaksoTaagepera"`
	SeatsLaaksoTaagepera float64 `yaml:"seatsLaaksoTaagepera"`
	VotesGolosov         float64 `yaml:"votesGolosov"`
	SeatsGolosov         float64 `yaml:"seatsGolosov"`
}

// Summarize computes every index over a results snapshot.
//
// Parameters:
//   - results: Snapshot such as System.GlobalResults()
//
// Returns:
//   - Summary: All indices, zero for empty scopes
func Summarize(results []types.Result) Summary {
	candidates := types.AsCandidates(results)
	votes := Votes(candidates)
	seats := Seats(candidates)

	return Summary{
		LoosemoreHanby:       LoosemoreHanby(candidates),
		Rose:                 Rose(candidates),
		SainteLague:          SainteLague(candidates),
		Gallagher:            Gallagher(candidates),
		VotesLaaksoTaagepera: LaaksoTaagepera(votes),
		SeatsLaaksoTaagepera: LaaksoTaagepera(seats),
		VotesGolosov:         Golosov(votes),
		SeatsGolosov:         Golosov(seats),
	}
}
