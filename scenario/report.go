package scenario

import (
	"fmt"

	"github.com/edugzlez/electosim"
	"github.com/edugzlez/electosim/indices"
)

// Row is one candidacy's tally in a report.
type Row struct {
	Candidacy string `yaml:"candidacy"`
	Votes     uint64 `yaml:"votes"`
	Seats     uint32 `yaml:"seats"`
}

// RegionReport is the state of one region.
type RegionReport struct {
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent,omitempty"`
	District string `yaml:"district,omitempty"`
	Rows     []Row  `yaml:"results"`
}

// Report is a name-resolved snapshot of a built scenario.
type Report struct {
	Name    string          `yaml:"name,omitempty"`
	Regions []RegionReport  `yaml:"regions"`
	Global  []Row           `yaml:"global"`
	Indices indices.Summary `yaml:"indices"`
}

// Report snapshots every region, in creation order, and the global totals.
//
// Returns:
//   - Report: Current votes and seats with names resolved
//   - error: Lookup failure (only if the System was mutated inconsistently)
func (r *Run) Report() (Report, error) {
	sys := r.System
	report := Report{Name: r.Scenario.Name}

	for _, id := range sys.RegionIDs() {
		name, err := sys.RegionName(id)
		if err != nil {
			return Report{}, err
		}
		region := RegionReport{Name: name}

		if parent, ok, err := sys.Parent(id); err != nil {
			return Report{}, err
		} else if ok {
			if region.Parent, err = sys.RegionName(parent); err != nil {
				return Report{}, err
			}
		}
		if d, ok := sys.District(id); ok {
			region.District = d.String()
		}

		results, err := sys.Results(id)
		if err != nil {
			return Report{}, err
		}
		if region.Rows, err = r.rows(results); err != nil {
			return Report{}, err
		}
		report.Regions = append(report.Regions, region)
	}

	global := sys.GlobalResults()
	rows, err := r.rows(global)
	if err != nil {
		return Report{}, err
	}
	report.Global = rows
	report.Indices = indices.Summarize(global)

	return report, nil
}

func (r *Run) rows(results []electosim.Result) ([]Row, error) {
	rows := make([]Row, 0, len(results))
	for _, res := range results {
		name, err := r.System.CandidacyName(res.Candidacy)
		if err != nil {
			return nil, fmt.Errorf("candidacy %d: %w", res.Candidacy, err)
		}
		rows = append(rows, Row{Candidacy: name, Votes: res.VoteCount, Seats: res.SeatCount})
	}

	return rows, nil
}
