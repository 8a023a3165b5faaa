// Package config provides configuration management for the trading calculator.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v3"

	"github.com/bughtuch/tennis-trader-ai/internal/models"
)

// Assessment defaults
const (
	// defaultBreakEvenSearchLimit caps the tick walk towards break even
	defaultBreakEvenSearchLimit = 200
	// defaultWorstCaseTicks is how far the price moves against a held position
	defaultWorstCaseTicks = 10
	// defaultPartialHedgeFraction hedges half of the position
	defaultPartialHedgeFraction = 0.5
	// defaultDivergenceTolerance is the widest gap between branch profits
	// accepted before a hedge is reported as inconsistent
	defaultDivergenceTolerance = 0.02
	// defaultWorkers bounds concurrent assessments
	defaultWorkers = 4
	// defaultSimulationSteps is the length of a simulated quote feed
	defaultSimulationSteps = 20
)

// Config represents the complete application configuration.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Guardian    GuardianConfig    `yaml:"guardian"`
	Simulation  SimulationConfig  `yaml:"simulation"`
}

// EnvironmentConfig defines the environment settings.
type EnvironmentConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug | info | warn | error
	LogFormat string `yaml:"log_format"` // text | json
}

// GuardianConfig defines position assessment parameters. A DivergenceTolerance
// of 0 flags any gap between branch profits.
type GuardianConfig struct {
	BreakEvenSearchLimit int     `yaml:"break_even_search_limit"`
	WorstCaseTicks       int     `yaml:"worst_case_ticks"`
	PartialHedgeFraction float64 `yaml:"partial_hedge_fraction"`
	DivergenceTolerance  float64 `yaml:"divergence_tolerance"`
	Workers              int     `yaml:"workers"`
}

// SimulationConfig drives the mock quote feed.
type SimulationConfig struct {
	EntryPrice float64 `yaml:"entry_price"`
	EntryStake float64 `yaml:"entry_stake"`
	EntrySide  string  `yaml:"entry_side"`
	Steps      int     `yaml:"steps"`
	Seed       uint64  `yaml:"seed"`
}

// Default returns a configuration usable without a config file.
func Default() *Config {
	c := &Config{
		Environment: EnvironmentConfig{LogLevel: "info", LogFormat: "text"},
		Guardian:    GuardianConfig{DivergenceTolerance: defaultDivergenceTolerance},
		Simulation: SimulationConfig{
			EntryPrice: 1.54,
			EntryStake: 50,
			EntrySide:  "BACK",
		},
	}
	c.normalize()
	return c
}

// Load reads and parses the configuration file from the specified path.
// An empty path returns Default().
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- configPath is a user-provided config file path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	config := Default()
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks that all configuration values are valid and consistent.
func (c *Config) Validate() error {
	c.normalize()

	if _, err := logrus.ParseLevel(c.Environment.LogLevel); err != nil {
		return fmt.Errorf("environment.log_level invalid: %w", err)
	}
	if c.Environment.LogFormat != "text" && c.Environment.LogFormat != "json" {
		return fmt.Errorf("environment.log_format must be 'text' or 'json'")
	}

	g := c.Guardian
	if g.BreakEvenSearchLimit <= 0 {
		return fmt.Errorf("guardian.break_even_search_limit must be > 0")
	}
	if g.WorstCaseTicks <= 0 {
		return fmt.Errorf("guardian.worst_case_ticks must be > 0")
	}
	if g.PartialHedgeFraction <= 0 || g.PartialHedgeFraction >= 1 {
		return fmt.Errorf("guardian.partial_hedge_fraction must be in (0,1)")
	}
	if g.DivergenceTolerance < 0 {
		return fmt.Errorf("guardian.divergence_tolerance must be >= 0")
	}
	if g.Workers <= 0 {
		return fmt.Errorf("guardian.workers must be > 0")
	}

	s := c.Simulation
	if s.EntryPrice < 1.01 || s.EntryPrice > 1000 {
		return fmt.Errorf("simulation.entry_price (%.2f) must be within [1.01,1000]", s.EntryPrice)
	}
	if s.EntryStake <= 0 {
		return fmt.Errorf("simulation.entry_stake must be > 0")
	}
	if _, err := models.ParseSide(s.EntrySide); err != nil {
		return fmt.Errorf("simulation.entry_side: %w", err)
	}
	if s.Steps <= 0 {
		return fmt.Errorf("simulation.steps must be > 0")
	}

	return nil
}

// normalize sets default values for fields left at zero. DivergenceTolerance
// is seeded by Default instead, since zero is a valid setting.
func (c *Config) normalize() {
	if c.Environment.LogLevel == "" {
		c.Environment.LogLevel = "info"
	}
	if c.Environment.LogFormat == "" {
		c.Environment.LogFormat = "text"
	}
	if c.Guardian.BreakEvenSearchLimit == 0 {
		c.Guardian.BreakEvenSearchLimit = defaultBreakEvenSearchLimit
	}
	if c.Guardian.WorstCaseTicks == 0 {
		c.Guardian.WorstCaseTicks = defaultWorstCaseTicks
	}
	if c.Guardian.PartialHedgeFraction == 0 {
		c.Guardian.PartialHedgeFraction = defaultPartialHedgeFraction
	}
	if c.Guardian.Workers == 0 {
		c.Guardian.Workers = defaultWorkers
	}
	if c.Simulation.Steps == 0 {
		c.Simulation.Steps = defaultSimulationSteps
	}
}

// NewLogger builds a logger from the environment settings.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(c.Environment.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if c.Environment.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
