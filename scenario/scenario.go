package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/edugzlez/electosim"
	"github.com/edugzlez/electosim/tree"
)

// ErrInvalidScenario is returned when a scenario cannot be decoded or built.
var ErrInvalidScenario = errors.New("invalid scenario")

// Region is one node of the scenario hierarchy.
//
// Votes may only be given for regions without children.
type Region struct {
	Name     string            `yaml:"name"`
	Votes    map[string]uint64 `yaml:"votes,omitempty"`
	Children []Region          `yaml:"children,omitempty"`
}

// Scenario describes a complete election.
type Scenario struct {
	Name        string           `yaml:"name,omitempty"`
	Candidacies []string         `yaml:"candidacies"`
	Regions     []Region         `yaml:"regions"`
	Districts   electosim.Config `yaml:"districts"`
}

// Parse decodes a scenario, rejecting unknown fields, and validates it.
//
// Parameters:
//   - r: YAML source
//
// Returns:
//   - *Scenario: Decoded scenario with district defaults applied
//   - error: ErrInvalidScenario wrapping the decode or validation failure
func Parse(r io.Reader) (*Scenario, error) {
	var s Scenario

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	electosim.SetDefaults(&s.Districts)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Validate checks names, vote placement and the district configuration.
//
// Rules:
//   - Candidacy names are non-empty and unique
//   - Region names are non-empty and unique across the whole hierarchy
//   - Votes name known candidacies and are only given at leaf regions
//   - The district configuration validates and names known regions
//
// Returns:
//   - error: ErrInvalidScenario wrapped with the first violation, nil if valid
func (s *Scenario) Validate() error {
	known := make(map[string]struct{}, len(s.Candidacies))
	for i, name := range s.Candidacies {
		if name == "" {
			return fmt.Errorf("%w: candidacies[%d]: name is required", ErrInvalidScenario, i)
		}
		if _, dup := known[name]; dup {
			return fmt.Errorf("%w: candidacy %q listed twice", ErrInvalidScenario, name)
		}
		known[name] = struct{}{}
	}

	regions := make(map[string]struct{})
	if err := walk(s.Regions, func(r Region) error {
		if r.Name == "" {
			return errors.New("region name is required")
		}
		if _, dup := regions[r.Name]; dup {
			return fmt.Errorf("region %q listed twice", r.Name)
		}
		regions[r.Name] = struct{}{}

		if len(r.Children) > 0 && len(r.Votes) > 0 {
			return fmt.Errorf("region %q has children: votes can only be given at leaf regions", r.Name)
		}
		for candidacy := range r.Votes {
			if _, ok := known[candidacy]; !ok {
				return fmt.Errorf("region %q: unknown candidacy %q", r.Name, candidacy)
			}
		}

		return nil
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	if err := s.Districts.Validate(); err != nil {
		return fmt.Errorf("%w: districts: %w", ErrInvalidScenario, err)
	}
	for _, d := range s.Districts.Districts {
		if _, ok := regions[d.Region]; !ok {
			return fmt.Errorf("%w: district for unknown region %q", ErrInvalidScenario, d.Region)
		}
	}

	return nil
}

// walk visits regions depth first, parents before children.
func walk(regions []Region, fn func(Region) error) error {
	for _, r := range regions {
		if err := fn(r); err != nil {
			return err
		}
		if err := walk(r.Children, fn); err != nil {
			return err
		}
	}

	return nil
}

// Run is a built scenario.
type Run struct {
	Scenario    *Scenario
	System      *electosim.System
	Regions     map[string]electosim.RegionID
	Candidacies map[string]electosim.CandidacyID
}

// Build creates the tree, the district configuration and the System.
//
// Regions are created depth first in file order and candidacies in list
// order, so ids are stable for a given file. Votes are loaded into the tree
// before the System exists; the System's initial Create event then computes
// every district once.
//
// Parameters:
//   - opts: System and district options
//
// Returns:
//   - *Run: The System together with name to id lookups
//   - error: Build or initial recompute failure
//
// Example:
//
//	sc, err := scenario.Load("spain.yaml")
//	run, err := sc.Build()
//	fmt.Println(run.System.GlobalSeats(run.Candidacies["PP"]))
func (s *Scenario) Build(opts ...Option) (*Run, error) {
	o := applyOptions(opts)

	t := tree.New()
	run := &Run{
		Scenario:    s,
		Regions:     make(map[string]electosim.RegionID),
		Candidacies: make(map[string]electosim.CandidacyID, len(s.Candidacies)),
	}
	for _, name := range s.Candidacies {
		run.Candidacies[name] = t.AddCandidacy(name)
	}
	if err := s.addRegions(t, run, s.Regions, nil); err != nil {
		return nil, err
	}

	dc, err := s.Districts.Build(run.Regions, o.district...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	sys, err := electosim.NewSystem(t, dc, o.system...)
	if err != nil {
		return nil, fmt.Errorf("create system: %w", err)
	}
	run.System = sys

	return run, nil
}

func (s *Scenario) addRegions(t *tree.Tree, run *Run, regions []Region, parent *electosim.RegionID) error {
	for _, r := range regions {
		id := t.AddRegion(r.Name)
		run.Regions[r.Name] = id
		if parent != nil {
			if err := t.SetParent(id, *parent); err != nil {
				return fmt.Errorf("attach %q: %w", r.Name, err)
			}
		}

		for _, candidacy := range s.Candidacies {
			votes, ok := r.Votes[candidacy]
			if !ok {
				continue
			}
			if err := t.SetVotes(id, run.Candidacies[candidacy], votes); err != nil {
				return fmt.Errorf("votes of %q in %q: %w", candidacy, r.Name, err)
			}
		}

		if err := s.addRegions(t, run, r.Children, &id); err != nil {
			return err
		}
	}

	return nil
}

// RegionNames returns every region name in creation order.
func (r *Run) RegionNames() []string {
	names := make([]string, 0, len(r.Regions))
	for name := range r.Regions {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return int(r.Regions[a]) - int(r.Regions[b])
	})

	return names
}
