package model

import (
	"context"
	"fmt"

	"github.com/limaJavier/allocation/pkg/tabu"
	"github.com/sirupsen/logrus"
)

type tabuTimetabler struct {
	cfg              tabu.Config
	evaluatorOptions []EvaluatorOption
	solverOptions    []tabu.Option[Assignment]
}

type TimetablerOption func(*tabuTimetabler)

func WithEvaluatorOptions(options ...EvaluatorOption) TimetablerOption {
	return func(timetabler *tabuTimetabler) {
		timetabler.evaluatorOptions = append(timetabler.evaluatorOptions, options...)
	}
}

func WithSolverOptions(options ...tabu.Option[Assignment]) TimetablerOption {
	return func(timetabler *tabuTimetabler) {
		timetabler.solverOptions = append(timetabler.solverOptions, options...)
	}
}

func NewTabuTimetabler(cfg tabu.Config, options ...TimetablerOption) Timetabler {
	timetabler := &tabuTimetabler{cfg: cfg}
	for _, option := range options {
		option(timetabler)
	}
	return timetabler
}

func (timetabler *tabuTimetabler) Build(ctx context.Context, modelInput ModelInput) (timetable []Lesson, result tabu.Result[Assignment], err error) {
	//** Initialize dependencies
	evaluator, err := NewEvaluator(modelInput, timetabler.evaluatorOptions...)
	if err != nil {
		return nil, result, err
	}
	solver, err := tabu.New[Assignment](evaluator, timetabler.cfg, timetabler.solverOptions...)
	if err != nil {
		return nil, result, err
	}

	//** Search
	result, err = solver.Solve(ctx)
	if err != nil {
		return nil, result, err
	}

	// Every applied move keeps the solution feasible, a violation here is a bug
	if err := evaluator.Verify(result.Solution); err != nil {
		return nil, result, fmt.Errorf("search produced an infeasible solution: %w", err)
	}
	if !evaluator.Complete(result.Solution) {
		logrus.WithFields(logrus.Fields{
			"instance": modelInput.Name,
			"cost":     result.Cost,
		}).Warn("some disciplines are not given their required periods")
	}

	//** Rooms
	timetable, err = roomAssignment(result.Solution.Elements(), modelInput)
	return timetable, result, err
}

func (timetabler *tabuTimetabler) Verify(timetable []Lesson, modelInput ModelInput) bool {
	return verify(timetable, modelInput)
}
