package electosim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edugzlez/electosim/district"
	"github.com/edugzlez/electosim/types"
)

// Configuration modes.
const (
	// ModeUnique apportions the whole electorate as one district.
	ModeUnique = "unique"

	// ModeMulti apportions each configured region as an independent district.
	ModeMulti = "multi"
)

// DistrictConfig configures one per-region district in multi mode.
//
// Method and Cutoff fall back to the enclosing Config when left empty.
type DistrictConfig struct {
	// Region is the name of the region the district covers.
	Region string `yaml:"region"`

	// Method overrides Config.Method for this district.
	Method string `yaml:"method,omitempty"`

	// Seats is the number of seats the district awards.
	Seats uint32 `yaml:"seats"`

	// Cutoff overrides Config.Cutoff for this district. A pointer so that an
	// explicit 0 can disable an inherited cutoff.
	Cutoff *float64 `yaml:"cutoff,omitempty"`
}

// Config describes a district configuration declaratively.
//
// Example YAML:
//
//	mode: multi
//	method: dhondt
//	cutoff: 0.03
//	districts:
//	  - region: Ávila
//	    seats: 3
//	  - region: Madrid
//	    seats: 37
type Config struct {
	// Mode is "unique" or "multi".
	//
	// Default: "multi"
	Mode string `yaml:"mode"`

	// Method is the apportionment method name, parsed with types.ParseMethod.
	//
	// Default: "dhondt"
	Method string `yaml:"method"`

	// Seats is the number of seats of the single district in unique mode.
	// Ignored in multi mode.
	Seats uint32 `yaml:"seats,omitempty"`

	// Cutoff is the vote share (0.0-1.0) a candidacy must exceed. In multi mode
	// it is the default for districts that do not set their own.
	//
	// Default: 0 (no cutoff)
	Cutoff float64 `yaml:"cutoff,omitempty"`

	// Districts lists the per-region districts in multi mode.
	Districts []DistrictConfig `yaml:"districts,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Multi mode, D'Hondt, no cutoff, no districts
func DefaultConfig() Config {
	return Config{
		Mode:   ModeMulti,
		Method: types.MethodDHondt.String(),
	}
}

// SetDefaults fills in missing configuration values.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Mode == "" {
		cfg.Mode = defaults.Mode
	}
	if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	// Cutoff of 0 is valid (no threshold), so no default is applied.
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Rules:
//   - Mode is "unique" or "multi"
//   - Every method name parses
//   - Every cutoff lies in [0, 1)
//   - Unique mode awards at least one seat and lists no districts
//   - Multi mode districts name a region, award at least one seat and do not
//     repeat a region
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the first violation, nil if valid
func (cfg *Config) Validate() error {
	if _, err := types.ParseMethod(cfg.Method); err != nil {
		return fmt.Errorf("%w: method: %w", ErrInvalidConfig, err)
	}
	if err := validateCutoff(cfg.Cutoff); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch cfg.Mode {
	case ModeUnique:
		if cfg.Seats == 0 {
			return fmt.Errorf("%w: unique mode requires seats > 0", ErrInvalidConfig)
		}
		if len(cfg.Districts) > 0 {
			return fmt.Errorf("%w: unique mode does not take per-region districts", ErrInvalidConfig)
		}
	case ModeMulti:
		seen := make(map[string]struct{}, len(cfg.Districts))
		for i, d := range cfg.Districts {
			if err := d.validate(); err != nil {
				return fmt.Errorf("%w: districts[%d]: %w", ErrInvalidConfig, i, err)
			}
			if _, dup := seen[d.Region]; dup {
				return fmt.Errorf("%w: districts[%d]: region %q configured twice", ErrInvalidConfig, i, d.Region)
			}
			seen[d.Region] = struct{}{}
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}

	return nil
}

func (d DistrictConfig) validate() error {
	if d.Region == "" {
		return errors.New("region is required")
	}
	if d.Seats == 0 {
		return fmt.Errorf("region %q: seats must be > 0", d.Region)
	}
	if d.Method != "" {
		if _, err := types.ParseMethod(d.Method); err != nil {
			return fmt.Errorf("region %q: %w", d.Region, err)
		}
	}
	if d.Cutoff != nil {
		if err := validateCutoff(*d.Cutoff); err != nil {
			return fmt.Errorf("region %q: %w", d.Region, err)
		}
	}

	return nil
}

func validateCutoff(cutoff float64) error {
	if cutoff < 0 || cutoff >= 1 {
		return fmt.Errorf("cutoff %v outside [0, 1)", cutoff)
	}

	return nil
}

// ValidateWithWarnings logs warnings for values that are valid but unusual.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Cutoff > 0.2 {
		logger.Warn(
			"cutoff is unusually high, most candidacies may be excluded",
			"cutoff", cfg.Cutoff,
		)
	}
	if cfg.Mode == ModeMulti && len(cfg.Districts) == 0 {
		logger.Warn("multi mode without districts, no seats will be awarded")
	}
	if method, err := types.ParseMethod(cfg.Method); err == nil && method == types.MethodWinnerTakesAll && cfg.Mode == ModeUnique && cfg.Seats > 1 {
		logger.Warn("winner-takes-all awards every seat to one candidacy", "seats", cfg.Seats)
	}
}

// Build creates the district configuration described by cfg.
//
// Defaults are applied to a copy and the result is validated first.
//
// Parameters:
//   - regions: Region name to id mapping used to resolve multi mode districts
//   - opts: Logger and metrics handed to the district configuration
//
// Returns:
//   - DistrictConfiguration: *district.Unique or *district.Multi
//   - error: ErrInvalidConfig, or ErrRegionNotFound for an unknown region name
//
// Example:
//
//	cfg, err := electosim.LoadConfig("districts.yaml")
//	dc, err := cfg.Build(map[string]electosim.RegionID{"Madrid": madrid})
//	sys, err := electosim.NewSystem(t, dc)
func (cfg Config) Build(regions map[string]RegionID, opts ...district.Option) (DistrictConfiguration, error) {
	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	method, err := types.ParseMethod(cfg.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: method: %w", ErrInvalidConfig, err)
	}

	if cfg.Mode == ModeUnique {
		unique, err := district.NewUnique(District{Method: method, Seats: cfg.Seats, Cutoff: cfg.Cutoff}, opts...)
		if err != nil {
			return nil, err
		}

		return unique, nil
	}

	multi := district.NewMulti(opts...)
	for _, dc := range cfg.Districts {
		id, ok := regions[dc.Region]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, dc.Region)
		}

		d := District{Method: method, Seats: dc.Seats, Cutoff: cfg.Cutoff}
		if dc.Method != "" {
			if d.Method, err = types.ParseMethod(dc.Method); err != nil {
				return nil, fmt.Errorf("%w: region %q: %w", ErrInvalidConfig, dc.Region, err)
			}
		}
		if dc.Cutoff != nil {
			d.Cutoff = *dc.Cutoff
		}
		if err := multi.SetDistrict(id, d); err != nil {
			return nil, fmt.Errorf("district %q: %w", dc.Region, err)
		}
	}

	return multi, nil
}

// ParseConfig decodes a YAML configuration, rejecting unknown fields, and
// applies defaults. The result is not validated.
//
// Parameters:
//   - r: YAML source
//
// Returns:
//   - Config: Decoded configuration with defaults applied
//   - error: ErrInvalidConfig wrapping the decode failure
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	SetDefaults(&cfg)

	return cfg, nil
}

// LoadConfig reads, parses and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (cfg Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
