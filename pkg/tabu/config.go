package tabu

import (
	"fmt"
	"time"
)

type Config struct {
	// Number of iterations an element stays forbidden after entering or leaving the solution
	Tenure int

	// Maximum number of neighborhood moves
	Iterations int

	// Wall-clock budget for the whole run; zero means no limit
	TimeLimit time.Duration

	// Seed of the random source used to break ties during construction
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Tenure:     20,
		Iterations: 1000,
		TimeLimit:  30 * time.Minute,
		Seed:       0,
	}
}

func (c Config) Validate() error {
	if c.Tenure <= 0 {
		return fmt.Errorf("tenure must be > 0 (got %d)", c.Tenure)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be > 0 (got %d)", c.Iterations)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("time limit must be >= 0 (got %v)", c.TimeLimit)
	}
	return nil
}
