package tabu

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type Option[E comparable] func(*Solver[E])

// WithImprovementFunc registers a callback invoked every time the incumbent improves
func WithImprovementFunc[E comparable](fn ImprovementFunc) Option[E] {
	return func(solver *Solver[E]) {
		solver.onImprovement = fn
	}
}

// WithMoveFunc registers a callback invoked after every neighborhood move
func WithMoveFunc[E comparable](fn MoveFunc[E]) Option[E] {
	return func(solver *Solver[E]) {
		solver.onMove = fn
	}
}

// Solver runs a randomized greedy construction followed by a tabu search with aspiration
// over insertion, removal and exchange moves. A Solver holds no per-run state, every call
// to Solve starts from scratch with a random source seeded from Config.Seed.
type Solver[E comparable] struct {
	evaluator     Evaluator[E]
	cfg           Config
	onImprovement ImprovementFunc
	onMove        MoveFunc[E]
}

func New[E comparable](evaluator Evaluator[E], cfg Config, options ...Option[E]) (*Solver[E], error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	solver := &Solver[E]{evaluator: evaluator, cfg: cfg}
	for _, option := range options {
		option(solver)
	}
	return solver, nil
}

func (s *Solver[E]) Config() Config {
	return s.cfg
}

// run holds the state of a single Solve call
type run[E comparable] struct {
	*Solver[E]
	rng       *rand.Rand
	start     time.Time
	current   *Solution[E]
	incumbent *Solution[E]
	tabu      *tabuList[E]
	rounds    int
}

// Solve returns the best solution found within the iteration and time budgets. If ctx is
// cancelled the incumbent found so far is returned together with ctx.Err().
func (s *Solver[E]) Solve(ctx context.Context) (Result[E], error) {
	r := &run[E]{
		Solver: s,
		rng:    rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed)),
		start:  time.Now(),
	}

	//** Constructive phase
	r.current = r.construct()
	constructedCost := r.current.Cost
	logrus.WithFields(logrus.Fields{
		"cost":   constructedCost,
		"size":   r.current.Len(),
		"rounds": r.rounds,
	}).Debug("constructive phase finished")

	r.incumbent = r.current.Clone()
	r.tabu = newTabuList[E](s.cfg.Tenure)

	searchCtx := ctx
	if s.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithDeadline(ctx, r.start.Add(s.cfg.TimeLimit))
		defer cancel()
	}

	//** Search phase
	stopped := StoppedIterations
	iteration := 0
	for ; iteration < s.cfg.Iterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return r.result(constructedCost, iteration, StoppedContext), err
		}
		if searchCtx.Err() != nil {
			stopped = StoppedTime
			break
		}

		r.neighborhoodMove(iteration)

		if r.current.Cost < r.incumbent.Cost {
			r.incumbent = r.current.Clone()
			if s.onImprovement != nil {
				s.onImprovement(Improvement{
					Elapsed:   time.Since(r.start),
					Iteration: iteration,
					Cost:      r.incumbent.Cost,
					Size:      r.incumbent.Len(),
				})
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"iterations": iteration,
		"cost":       r.incumbent.Cost,
		"reason":     stopped,
	}).Debug("search finished")

	return r.result(constructedCost, iteration, stopped), nil
}

func (r *run[E]) result(constructedCost float64, iterations int, stopped StopReason) Result[E] {
	return Result[E]{
		Solution:           r.incumbent.Clone(),
		Cost:               r.incumbent.Cost,
		ConstructedCost:    constructedCost,
		ConstructionRounds: r.rounds,
		Iterations:         iterations,
		Duration:           time.Since(r.start),
		Stopped:            stopped,
	}
}

// construct builds the initial solution by repeatedly inserting, uniformly at random, one
// of the candidates tied at the best insertion delta. It stops as soon as a round does not
// improve the cost or no candidate is left; a partial or empty solution is a valid outcome.
func (r *run[E]) construct() *Solution[E] {
	solution := NewSolution[E]()

	for {
		roundCost := solution.Cost
		counters := r.evaluator.RefreshCounters(solution)
		r.rounds++

		candidates := candidateList(r.evaluator, solution, counters)
		if len(candidates) == 0 {
			break
		}

		deltas := lo.Map(candidates, func(candidate E, _ int) float64 {
			return counters.InsertionDelta(candidate)
		})
		minDelta := lo.Min(deltas)
		restricted := lo.Filter(candidates, func(_ E, i int) bool {
			return deltas[i] <= minDelta
		})

		solution.Add(restricted[r.rng.IntN(len(restricted))])
		r.evaluator.Evaluate(solution)

		if !(solution.Cost < roundCost) {
			break
		}
	}

	r.evaluator.Evaluate(solution)
	return solution
}

// neighborhoodMove applies the best admissible insertion, removal or exchange to the
// current solution. A move touching a tabu element is admissible only if it would yield
// a cost strictly lower than the incumbent's.
func (r *run[E]) neighborhoodMove(iteration int) {
	counters := r.evaluator.RefreshCounters(r.current)
	candidates := candidateList(r.evaluator, r.current, counters)
	members := r.current.Elements()

	tabuIn := lo.Map(candidates, func(candidate E, _ int) bool { return r.tabu.Contains(candidate) })
	tabuOut := lo.Map(members, func(member E, _ int) bool { return r.tabu.Contains(member) })

	cost, incumbentCost := r.current.Cost, r.incumbent.Cost
	best := Move[E]{Iteration: iteration, Delta: math.Inf(1), CostBefore: cost, IncumbentCost: incumbentCost}
	consider := func(in, out Entry[E], delta float64, tabu bool) {
		if tabu && !(cost+delta < incumbentCost) {
			return
		}
		if delta < best.Delta {
			best.In, best.Out, best.Delta, best.Aspirated = in, out, delta, tabu
		}
	}

	// Insertions
	for i, candidate := range candidates {
		consider(Some(candidate), None[E](), counters.InsertionDelta(candidate), tabuIn[i])
	}

	// Removals
	for j, member := range members {
		consider(None[E](), Some(member), counters.RemovalDelta(member), tabuOut[j])
	}

	// Exchanges
	for i, candidate := range candidates {
		for j, member := range members {
			consider(Some(candidate), Some(member), counters.ExchangeDelta(candidate, member), tabuIn[i] || tabuOut[j])
		}
	}

	if best.Out.Valid {
		r.current.Remove(best.Out.Element)
	}
	r.tabu.Push(best.Out)
	if best.In.Valid {
		r.current.Add(best.In.Element)
	}
	r.tabu.Push(best.In)

	r.evaluator.Evaluate(r.current)

	if r.onMove != nil {
		r.onMove(best)
	}
}
