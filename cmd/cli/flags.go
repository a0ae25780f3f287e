package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/limaJavier/allocation/internal/config"
)

// searchFlags are the run configuration flags shared by solve and bench. A flag given on the
// command line overrides the configuration file.
type searchFlags struct {
	configPath string
	tenure     int
	iterations int
	timeLimit  float64
	seed       uint64
	penalty    float64
	results    string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML run configuration file")
	cmd.Flags().IntVar(&f.tenure, "tenure", defaults.Tenure, "Iterations an element stays tabu")
	cmd.Flags().IntVar(&f.iterations, "iterations", defaults.Iterations, "Maximum number of neighborhood moves")
	cmd.Flags().Float64Var(&f.timeLimit, "time-limit", defaults.TimeLimit, "Time limit in seconds, 0 disables it")
	cmd.Flags().Uint64Var(&f.seed, "seed", defaults.Seed, "Seed of the construction tie-breaking")
	cmd.Flags().Float64Var(&f.penalty, "penalty", defaults.Penalty, "Penalty per discipline not given its required periods")
	cmd.Flags().StringVar(&f.results, "results", defaults.Results, "File the results history is appended to")
}

func (f *searchFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
		// The file log level applies unless --log was given
		if !cmd.Flags().Changed("log") {
			level, _ := logrus.ParseLevel(cfg.LogLevel) // Validated by Load
			logrus.SetLevel(level)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("tenure") {
		cfg.Tenure = f.tenure
	}
	if flags.Changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if flags.Changed("time-limit") {
		cfg.TimeLimit = f.timeLimit
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("penalty") {
		cfg.Penalty = f.penalty
	}
	if flags.Changed("results") {
		cfg.Results = f.results
	}
	return cfg, cfg.Validate()
}
