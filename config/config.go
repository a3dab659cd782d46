// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/evosim/genes"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters. It is built once at
// startup and treated as immutable for the run; the core takes it explicitly
// rather than reading ambient global state.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Energy       EnergyConfig       `yaml:"energy"`
	Food         FoodConfig         `yaml:"food"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Genes        GenesConfig        `yaml:"genes"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// WorldConfig holds grid dimensions in cells, fixed for the simulation lifetime.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds population bounds.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
	Max     int `yaml:"max"`
}

// EnergyConfig holds the energy economy constants.
type EnergyConfig struct {
	InitialMin       float64 `yaml:"initial_min"`
	InitialMax       float64 `yaml:"initial_max"`
	PerFood          float64 `yaml:"per_food"`
	DailyCost        float64 `yaml:"daily_cost"`
	MoveCostFactor   float64 `yaml:"move_cost_factor"`
	ReproductionCost float64 `yaml:"reproduction_cost"`
	MinReproduce     float64 `yaml:"min_reproduce"`
}

// FoodConfig holds food spawning parameters.
type FoodConfig struct {
	Initial     int    `yaml:"initial"`
	SpawnPerDay int    `yaml:"spawn_per_day"`
	Max         int    `yaml:"max"`
	CapPolicy   string `yaml:"cap_policy"` // reject | evict_oldest | evict_random
}

// ReproductionConfig holds reproduction eligibility parameters.
type ReproductionConfig struct {
	MinAge   int `yaml:"min_age"`
	MaxAge   int `yaml:"max_age"`
	Cooldown int `yaml:"cooldown"`
	Distance int `yaml:"distance"`
}

// MutationConfig holds per-trait mutation parameters.
type MutationConfig struct {
	Probability float64 `yaml:"probability"`
	Magnitude   float64 `yaml:"magnitude"`
}

// GeneRange bounds one trait in config form.
type GeneRange struct {
	Min        float64 `yaml:"min"`
	Max        float64 `yaml:"max"`
	InitialMin float64 `yaml:"initial_min"`
	InitialMax float64 `yaml:"initial_max"`
}

// GenesConfig holds the configured range for every heritable trait.
type GenesConfig struct {
	Speed             GeneRange `yaml:"speed"`
	FeedingEfficiency GeneRange `yaml:"feeding_efficiency"`
	BaseLongevity     GeneRange `yaml:"base_longevity"`
	ReproductionRate  GeneRange `yaml:"reproduction_rate"`
	PerceptionRadius  GeneRange `yaml:"perception_radius"`
}

// TelemetryConfig holds reporting parameters.
type TelemetryConfig struct {
	SummaryEveryDays int `yaml:"summary_every_days"`
}

// Ranges converts the configured gene ranges into the form the genes package
// operates on, indexed by trait.
func (c *Config) Ranges() genes.Ranges {
	conv := func(g GeneRange) genes.Range {
		return genes.Range{Min: g.Min, Max: g.Max, InitialMin: g.InitialMin, InitialMax: g.InitialMax}
	}
	var r genes.Ranges
	r[genes.Speed] = conv(c.Genes.Speed)
	r[genes.FeedingEfficiency] = conv(c.Genes.FeedingEfficiency)
	r[genes.BaseLongevity] = conv(c.Genes.BaseLongevity)
	r[genes.ReproductionRate] = conv(c.Genes.ReproductionRate)
	r[genes.PerceptionRadius] = conv(c.Genes.PerceptionRadius)
	return r
}

// global holds the loaded configuration for the CLI layer.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks configuration sanity. It is the only error surface of the
// core: a violation aborts simulation creation, everything past creation is
// handled as a no-op or clamped value.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.Population.Initial < 0 {
		return fmt.Errorf("config: population.initial must be >= 0, got %d", c.Population.Initial)
	}
	if c.Population.Max < c.Population.Initial {
		return fmt.Errorf("config: population.max (%d) must be >= population.initial (%d)",
			c.Population.Max, c.Population.Initial)
	}
	if c.Energy.InitialMin > c.Energy.InitialMax {
		return fmt.Errorf("config: energy.initial_min (%g) must be <= energy.initial_max (%g)",
			c.Energy.InitialMin, c.Energy.InitialMax)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"energy.initial_min", c.Energy.InitialMin},
		{"energy.per_food", c.Energy.PerFood},
		{"energy.daily_cost", c.Energy.DailyCost},
		{"energy.move_cost_factor", c.Energy.MoveCostFactor},
		{"energy.reproduction_cost", c.Energy.ReproductionCost},
		{"energy.min_reproduce", c.Energy.MinReproduce},
	} {
		if v.val < 0 {
			return fmt.Errorf("config: %s must be >= 0, got %g", v.name, v.val)
		}
	}
	if c.Food.Initial < 0 || c.Food.SpawnPerDay < 0 || c.Food.Max < 0 {
		return fmt.Errorf("config: food counts must be >= 0")
	}
	switch c.Food.CapPolicy {
	case "reject", "evict_oldest", "evict_random":
	default:
		return fmt.Errorf("config: unknown food.cap_policy %q", c.Food.CapPolicy)
	}
	if c.Reproduction.MinAge < 0 || c.Reproduction.MaxAge < c.Reproduction.MinAge {
		return fmt.Errorf("config: reproduction ages must satisfy 0 <= min_age (%d) <= max_age (%d)",
			c.Reproduction.MinAge, c.Reproduction.MaxAge)
	}
	if c.Reproduction.Cooldown < 0 || c.Reproduction.Distance < 0 {
		return fmt.Errorf("config: reproduction.cooldown and reproduction.distance must be >= 0")
	}
	if c.Mutation.Probability < 0 || c.Mutation.Probability > 1 {
		return fmt.Errorf("config: mutation.probability must be in [0,1], got %g", c.Mutation.Probability)
	}
	if c.Mutation.Magnitude < 0 {
		return fmt.Errorf("config: mutation.magnitude must be >= 0, got %g", c.Mutation.Magnitude)
	}
	ranges := c.Ranges()
	for t := genes.Trait(0); t < genes.NumTraits; t++ {
		r := ranges[t]
		if r.Min > r.Max {
			return fmt.Errorf("config: genes.%s: min (%g) > max (%g)", t, r.Min, r.Max)
		}
		if r.InitialMin > r.InitialMax {
			return fmt.Errorf("config: genes.%s: initial_min (%g) > initial_max (%g)", t, r.InitialMin, r.InitialMax)
		}
		if r.InitialMin < r.Min || r.InitialMax > r.Max {
			return fmt.Errorf("config: genes.%s: initial range [%g,%g] outside [%g,%g]",
				t, r.InitialMin, r.InitialMax, r.Min, r.Max)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
