package pathify

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Optimizer tags as used in the configuration file.
const (
	ADFloorTag           = "ad_floor"
	ThreePointAverageTag = "three_pt_average"
	VisvalingamTag       = "visvalingam"
	DouglasPeuckerTag    = "douglas_peucker"
)

// Config is the configuration of a batch of aircraft outlines.
type Config struct {
	Configuration Settings                  `toml:"configuration"`
	Minmax        *BoundsConfig             `toml:"minmax,omitempty"`
	Aircraft      map[string]AircraftConfig `toml:"aircraft"`

	// Dir is the directory of the configuration file, relative paths are resolved against it.
	Dir string `toml:"-"`
}

// Settings are the global settings.
type Settings struct {
	OutputDirectory string `toml:"output_directory"`
	MaxPoints       int    `toml:"max_points"`
}

// BoundsConfig are the bounds of a threshold search. The margins default to the steps.
type BoundsConfig struct {
	ACeiling float64  `toml:"a_ceiling"`
	AStep    float64  `toml:"a_step"`
	DCeiling float64  `toml:"d_ceiling"`
	DStep    float64  `toml:"d_step"`
	AMargin  *float64 `toml:"a_margin,omitempty"`
	DMargin  *float64 `toml:"d_margin,omitempty"`
}

// Bounds returns the search bounds.
func (c BoundsConfig) Bounds() SearchBounds {
	b := NewSearchBounds(c.ACeiling, c.AStep, c.DCeiling, c.DStep)
	if c.AMargin != nil {
		b.AMargin = *c.AMargin
	}
	if c.DMargin != nil {
		b.DMargin = *c.DMargin
	}
	return b
}

// OptimizerConfig selects the fidelity policy by its tag T. Only the parameters of the selected policy are used.
type OptimizerConfig struct {
	T         string  `toml:"t"`
	AFloor    float64 `toml:"a_floor,omitempty"`
	DFloor    float64 `toml:"d_floor,omitempty"`
	DT        float64 `toml:"dt,omitempty"`
	Tolerance float64 `toml:"tolerance,omitempty"`
	Threshold float64 `toml:"threshold,omitempty"`
}

// Policy returns the fidelity policy.
func (c OptimizerConfig) Policy() (Policy, error) {
	var params []float64
	var policy Policy
	switch c.T {
	case ADFloorTag:
		params = []float64{c.AFloor, c.DFloor}
		policy = ADFloor{c.AFloor, c.DFloor}
	case ThreePointAverageTag:
		params = []float64{c.DT}
		policy = ThreePointAverage{c.DT}
	case VisvalingamTag:
		params = []float64{c.Tolerance}
		policy = Visvalingam{c.Tolerance}
	case DouglasPeuckerTag:
		params = []float64{c.Threshold}
		policy = DouglasPeucker{c.Threshold}
	default:
		return nil, fmt.Errorf("unknown optimizer %q", c.T)
	}
	for _, v := range params {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0.0 {
			return nil, fmt.Errorf("optimizer %s: thresholds must be finite and non-negative", c.T)
		}
	}
	return policy, nil
}

// AircraftConfig is the configuration of a single aircraft outline.
type AircraftConfig struct {
	File        string           `toml:"f"`
	Attribution string           `toml:"attr"`
	Width       float64          `toml:"w"` // in feet
	Length      float64          `toml:"l"` // in feet
	Types       []string         `toml:"types,omitempty"`
	Optimizer   *OptimizerConfig `toml:"optimizer,omitempty"`
	Minmax      *BoundsConfig    `toml:"minmax,omitempty"`

	// legacy thresholds, used when Optimizer is not set
	AFloor *float64 `toml:"a_floor,omitempty"`
	DFloor *float64 `toml:"d_floor,omitempty"`
}

// Policy returns the fidelity policy of the aircraft. Legacy entries without an optimizer table but with a_floor and d_floor select ADFloor.
func (c AircraftConfig) Policy() (Policy, error) {
	if c.Optimizer != nil {
		return c.Optimizer.Policy()
	} else if c.AFloor == nil && c.DFloor == nil {
		return nil, fmt.Errorf("no optimizer")
	}

	opt := OptimizerConfig{T: ADFloorTag}
	if c.AFloor != nil {
		opt.AFloor = *c.AFloor
	}
	if c.DFloor != nil {
		opt.DFloor = *c.DFloor
	}
	return opt.Policy()
}

// HasPolicy returns true if the aircraft has an optimizer table or legacy thresholds.
func (c AircraftConfig) HasPolicy() bool {
	return c.Optimizer != nil || c.AFloor != nil || c.DFloor != nil
}

// UsesADFloor returns true if the policy of the aircraft is ADFloor or not set yet, which are the aircraft that a threshold search applies to.
func (c AircraftConfig) UsesADFloor() bool {
	return c.Optimizer == nil || c.Optimizer.T == ADFloorTag
}

// SetPolicy replaces the fidelity policy of the aircraft by the given ADFloor policy.
func (c *AircraftConfig) SetPolicy(p ADFloor) {
	c.Optimizer = &OptimizerConfig{
		T:      ADFloorTag,
		AFloor: p.AFloor,
		DFloor: p.DFloor,
	}
	c.AFloor, c.DFloor = nil, nil
}

// AircraftTypes returns the aircraft type codes that the outline applies to, which is the name followed by any additional types.
func (c AircraftConfig) AircraftTypes(name string) []string {
	types := []string{name}
	for _, typ := range c.Types {
		if typ != name {
			types = append(types, typ)
		}
	}
	return types
}

// LoadConfig reads and validates a TOML configuration file.
func LoadConfig(filename string) (*Config, error) {
	cfg := &Config{}
	md, err := toml.DecodeFile(filename, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	} else if undecoded := md.Undecoded(); 0 < len(undecoded) {
		return nil, fmt.Errorf("%s: unknown key %s", filename, undecoded[0])
	}
	cfg.Dir = filepath.Dir(filename)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Validate returns the first problem in the configuration. Aircraft without a policy are accepted, so that a threshold search can set one, but Policy returns an error for them.
func (c *Config) Validate() error {
	if c.Configuration.MaxPoints <= 0 {
		return fmt.Errorf("configuration: max_points must be positive")
	} else if c.Configuration.OutputDirectory == "" {
		return fmt.Errorf("configuration: output_directory must be set")
	} else if len(c.Aircraft) == 0 {
		return errors.New("no aircraft")
	}
	if c.Minmax != nil {
		if err := c.Minmax.Bounds().Validate(); err != nil {
			return fmt.Errorf("minmax: %w", err)
		}
	}
	for _, name := range c.Names() {
		ac := c.Aircraft[name]
		if ac.File == "" {
			return fmt.Errorf("[%s] f must be set", name)
		} else if !(0.0 < ac.Width) || !(0.0 < ac.Length) || math.IsInf(ac.Width, 0) || math.IsInf(ac.Length, 0) {
			return fmt.Errorf("[%s:%s] w and l must be positive", name, ac.File)
		} else if ac.HasPolicy() {
			if _, err := ac.Policy(); err != nil {
				return fmt.Errorf("[%s:%s] %w", name, ac.File, err)
			}
		}
		if ac.Minmax != nil {
			if err := ac.Minmax.Bounds().Validate(); err != nil {
				return fmt.Errorf("[%s:%s] minmax: %w", name, ac.File, err)
			}
		}
	}
	return nil
}

// Names returns the aircraft names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Aircraft))
	for name := range c.Aircraft {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bounds returns the search bounds of an aircraft, which are its own or else the global ones.
func (c *Config) Bounds(name string) (SearchBounds, bool) {
	if ac, ok := c.Aircraft[name]; ok && ac.Minmax != nil {
		return ac.Minmax.Bounds(), true
	} else if c.Minmax != nil {
		return c.Minmax.Bounds(), true
	}
	return SearchBounds{}, false
}

// OutputDirectory returns the output directory resolved against the configuration's directory.
func (c *Config) OutputDirectory() string {
	return resolvePath(c.Dir, c.Configuration.OutputDirectory)
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func resolvePath(dir, filename string) string {
	if dir == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(dir, filename)
}
