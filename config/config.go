// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Cell         CellConfig         `yaml:"cell"`
	Chemistry    ChemistryConfig    `yaml:"chemistry"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Genome       GenomeConfig       `yaml:"genome"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Population   PopulationConfig   `yaml:"population"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// PhysicsConfig holds integration parameters for the host driver.
type PhysicsConfig struct {
	DT          float64 `yaml:"dt"`
	Damping     float64 `yaml:"damping"`      // Fraction of velocity kept per second
	Workers     int     `yaml:"workers"`      // 0 = GOMAXPROCS
	SpawnOffset float64 `yaml:"spawn_offset"` // Distance a child is placed from its parent
}

// CellConfig holds initial pools and base metabolism of a freshly built cell.
type CellConfig struct {
	InitialEnergy       float64 `yaml:"initial_energy"`
	InitialSugar        float64 `yaml:"initial_sugar"`
	EnergyStorage       float64 `yaml:"energy_storage"`
	SugarStorage        float64 `yaml:"sugar_storage"`
	SugarDifficulty     float64 `yaml:"sugar_difficulty"`
	SignalCount         int     `yaml:"signal_count"`   // Number of signal molecule slots
	SignalInitial       float64 `yaml:"signal_initial"` // Starting amount of each signal
	DigestionRate       float64 `yaml:"digestion_rate"`
	DigestionEasiness   float64 `yaml:"digestion_easiness"`
	DigestionEfficiency float64 `yaml:"digestion_efficiency"`
	InflowRate          float64 `yaml:"inflow_rate"`     // sugar += sugar_storage * inflow_rate * dt
	DeathThreshold      float64 `yaml:"death_threshold"` // Dying when energy <= this
}

// ChemistryConfig holds the fixed constants of the behavior catalog.
type ChemistryConfig struct {
	AminoAcidYield       float64 `yaml:"amino_acid_yield"`       // Amino acids per sugar burned in glycolysis
	PolymerEnergyCost    float64 `yaml:"polymer_energy_cost"`    // Energy per sugar stored as polymer
	PolymerComplexity    float64 `yaml:"polymer_complexity"`     // Complexity of newly built polymers
	LocomotionCostFactor float64 `yaml:"locomotion_cost_factor"` // cost = amount^2 * size / this
}

// ReproductionConfig holds reproduction unit parameters.
type ReproductionConfig struct {
	SugarIntake      float64 `yaml:"sugar_intake"`        // Sugar absorbed per second
	UpkeepFactor     float64 `yaml:"upkeep_factor"`       // Upkeep = size^2 / this per second
	HighWaterMark    float64 `yaml:"high_water_mark"`     // Energy that triggers fission
	FissionCost      float64 `yaml:"fission_cost"`        // Energy paid per child
	ChildEnergy      float64 `yaml:"child_energy"`        // Starting energy of a child cell
	MaxQueuedPerCell int     `yaml:"max_queued_per_cell"` // Spawn queue cap per tick (0 = unlimited)
}

// GenomeConfig describes the distribution of randomly generated genomes.
type GenomeConfig struct {
	MinEntries      int     `yaml:"min_entries"`
	MaxEntries      int     `yaml:"max_entries"`
	IndexSpan       float64 `yaml:"index_span"`
	RangeSpan       float64 `yaml:"range_span"`
	BaseSpread      float64 `yaml:"base_spread"`       // base in [-spread, spread)
	SignalIndexSpan int     `yaml:"signal_index_span"` // signal index in [0, span)
	SignalSpread    float64 `yaml:"signal_spread"`     // signal weight in [-spread, spread)
}

// MutationConfig holds sparse genome mutation parameters.
type MutationConfig struct {
	Rate     float64 `yaml:"rate"`
	Sigma    float64 `yaml:"sigma"`
	BigRate  float64 `yaml:"big_rate"`
	BigSigma float64 `yaml:"big_sigma"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial          int `yaml:"initial"`
	Max              int `yaml:"max"`
	RespawnThreshold int `yaml:"respawn_threshold"`
	RespawnCount     int `yaml:"respawn_count"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Physics.DT as float32
	WorldW32 float32 // Effective world width as float32
	WorldH32 float32 // Effective world height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Genome.MinEntries < 1 || c.Genome.MaxEntries < c.Genome.MinEntries {
		return fmt.Errorf("genome entry bounds invalid: min=%d max=%d", c.Genome.MinEntries, c.Genome.MaxEntries)
	}
	if c.Chemistry.LocomotionCostFactor <= 0 || c.Reproduction.UpkeepFactor <= 0 {
		return fmt.Errorf("cost factors must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
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
