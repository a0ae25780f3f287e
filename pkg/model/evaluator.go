package model

import (
	"errors"
	"fmt"

	"github.com/limaJavier/allocation/pkg/tabu"
)

// DefaultPenalty charged for every discipline not scheduled exactly its required number of periods
const DefaultPenalty = 100.0

var ErrInfeasible = errors.New("infeasible assignment")

// Evaluator scores professor/discipline/slot assignments for the tabu engine
type Evaluator struct {
	input   ModelInput
	indexer indexer
	penalty float64
}

var _ tabu.Evaluator[Assignment] = (*Evaluator)(nil)

type EvaluatorOption func(*Evaluator)

// WithPenalty overrides the penalty charged per incomplete discipline
func WithPenalty(penalty float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.penalty = penalty
	}
}

func NewEvaluator(input ModelInput, options ...EvaluatorOption) (*Evaluator, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	evaluator := &Evaluator{
		input:   input,
		indexer: newIndexer(input.Professors, input.Disciplines, input.Slots),
		penalty: DefaultPenalty,
	}
	for _, option := range options {
		option(evaluator)
	}
	if evaluator.penalty < 0 {
		return nil, fmt.Errorf("penalty must be >= 0 (got %v)", evaluator.penalty)
	}
	return evaluator, nil
}

func (e *Evaluator) Penalty() float64 {
	return e.penalty
}

// DomainSize is P * D * T
func (e *Evaluator) DomainSize() int {
	return e.indexer.Size()
}

func (e *Evaluator) Element(i int) Assignment {
	professor, discipline, slot := e.indexer.Attributes(i)
	return Assignment{Professor: professor, Discipline: discipline, Slot: slot}
}

func (e *Evaluator) Evaluate(solution *tabu.Solution[Assignment]) float64 {
	solution.Cost = e.Accumulate(solution).Cost()
	return solution.Cost
}

// Score is the value of the maximisation objective, the opposite of the cost
func (e *Evaluator) Score(solution *tabu.Solution[Assignment]) float64 {
	return -e.Accumulate(solution).Cost()
}

func (e *Evaluator) InsertionDelta(assignment Assignment, solution *tabu.Solution[Assignment]) float64 {
	return e.Accumulate(solution).InsertionDelta(assignment)
}

func (e *Evaluator) RemovalDelta(assignment Assignment, solution *tabu.Solution[Assignment]) float64 {
	return e.Accumulate(solution).RemovalDelta(assignment)
}

func (e *Evaluator) ExchangeDelta(in, out Assignment, solution *tabu.Solution[Assignment]) float64 {
	return e.Accumulate(solution).ExchangeDelta(in, out)
}

func (e *Evaluator) RefreshCounters(solution *tabu.Solution[Assignment]) tabu.Counters[Assignment] {
	return e.Accumulate(solution)
}

// Accumulate builds the counters of the solution as it currently is
func (e *Evaluator) Accumulate(solution *tabu.Solution[Assignment]) *Counters {
	return newCounters(e, solution)
}

// Verify reports every hard constraint the solution breaks, joined in a single error
func (e *Evaluator) Verify(solution *tabu.Solution[Assignment]) error {
	counters := e.Accumulate(solution)
	violations := make([]error, 0)

	for d := range e.input.Disciplines {
		if counters.npd[d] > 1 {
			violations = append(violations, fmt.Errorf("%w: discipline %d is given by %d professors", ErrInfeasible, d, counters.npd[d]))
		}
		if counters.ntd[d] > e.input.Periods[d] {
			violations = append(violations, fmt.Errorf("%w: discipline %d is given at %d slots but requires %d", ErrInfeasible, d, counters.ntd[d], e.input.Periods[d]))
		}
	}
	for t := range e.input.Slots {
		if counters.ndt[t] > e.input.Rooms {
			violations = append(violations, fmt.Errorf("%w: slot %d hosts %d disciplines but only %d rooms exist", ErrInfeasible, t, counters.ndt[t], e.input.Rooms))
		}
	}
	for p := range e.input.Professors {
		if counters.ntp[p] > e.input.MaxLoad {
			violations = append(violations, fmt.Errorf("%w: professor %d works %d slots but may work at most %d", ErrInfeasible, p, counters.ntp[p], e.input.MaxLoad))
		}
		for t := range e.input.Slots {
			if counters.z[p][t] > 0 && !counters.ProfessorAvailable(p, t) {
				violations = append(violations, fmt.Errorf("%w: professor %d is not available at slot %d", ErrInfeasible, p, t))
			}
		}
	}

	return errors.Join(violations...)
}

// Complete checks whether every discipline is given exactly its required number of periods
func (e *Evaluator) Complete(solution *tabu.Solution[Assignment]) bool {
	counters := e.Accumulate(solution)
	for d, periods := range e.input.Periods {
		if counters.w[d] != periods || counters.ntd[d] != periods {
			return false
		}
	}
	return true
}
