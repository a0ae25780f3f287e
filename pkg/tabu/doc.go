// Package tabu implements a problem-agnostic Tabu Search for minimisation problems whose
// solutions are sets of candidate elements.
//
// A run has two phases:
//
//   - Construction: a semi-greedy builder repeatedly inserts one of the candidates tied at
//     the best insertion delta, chosen uniformly at random, until no insertion improves
//     the cost.
//   - Search: every iteration applies the best admissible insertion, removal or exchange.
//     Elements that recently entered or left the solution are tabu for Tenure iterations
//     unless the move would produce a new best cost (aspiration).
//
// Problems plug in through the Evaluator interface, which must compute move deltas
// incrementally from a Counters snapshot refreshed once per iteration.
package tabu
