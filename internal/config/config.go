package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/tabu"
)

// Config represents a run configuration file.
// Unknown keys are rejected so that typos surface as errors.
type Config struct {
	Tenure     int     `yaml:"tenure"`
	Iterations int     `yaml:"iterations"`
	TimeLimit  float64 `yaml:"time_limit"` // Seconds, 0 disables the limit
	Seed       uint64  `yaml:"seed"`
	Penalty    float64 `yaml:"penalty"`
	Results    string  `yaml:"results"` // History file, empty disables it
	LogLevel   string  `yaml:"log_level"`
}

func Default() Config {
	search := tabu.DefaultConfig()
	return Config{
		Tenure:     search.Tenure,
		Iterations: search.Iterations,
		TimeLimit:  search.TimeLimit.Seconds(),
		Seed:       search.Seed,
		Penalty:    model.DefaultPenalty,
		LogLevel:   logrus.InfoLevel.String(),
	}
}

// Load reads a YAML file on top of the defaults: keys missing from the file keep their
// default value
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Search().Validate(); err != nil {
		return err
	}
	if c.Penalty < 0 {
		return fmt.Errorf("penalty must be >= 0, got %v", c.Penalty)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Search returns the engine parameters
func (c Config) Search() tabu.Config {
	return tabu.Config{
		Tenure:     c.Tenure,
		Iterations: c.Iterations,
		TimeLimit:  time.Duration(c.TimeLimit * float64(time.Second)),
		Seed:       c.Seed,
	}
}

func (c Config) EvaluatorOptions() []model.EvaluatorOption {
	return []model.EvaluatorOption{model.WithPenalty(c.Penalty)}
}
