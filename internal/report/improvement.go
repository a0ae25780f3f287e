package report

import (
	"github.com/sirupsen/logrus"

	"github.com/limaJavier/allocation/pkg/tabu"
)

// LogImprovement logs every new incumbent at info level
func LogImprovement(logger *logrus.Entry) tabu.ImprovementFunc {
	return func(improvement tabu.Improvement) {
		logger.WithFields(logrus.Fields{
			"iteration": improvement.Iteration,
			"elapsed":   Seconds(improvement.Elapsed),
			"cost":      improvement.Cost,
			"size":      improvement.Size,
		}).Info("new incumbent")
	}
}

// Chain calls every non nil function in order
func Chain(functions ...tabu.ImprovementFunc) tabu.ImprovementFunc {
	return func(improvement tabu.Improvement) {
		for _, fn := range functions {
			if fn != nil {
				fn(improvement)
			}
		}
	}
}
