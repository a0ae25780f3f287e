package tabu

// Evaluator is the problem-specific objective function minimised by the Solver.
// The Solver never looks inside an element; everything it knows about the problem comes
// through this interface.
type Evaluator[E comparable] interface {
	// Returns the number of distinct candidate elements
	DomainSize() int

	// Returns the i-th candidate element, for 0 <= i < DomainSize(). The order defines the
	// candidate-list order and therefore tie-breaking
	Element(i int) E

	// Recomputes the cost of the solution from scratch, stores it in solution.Cost and returns it
	Evaluate(solution *Solution[E]) float64

	// Returns the change in cost of inserting element into the solution, without mutating it
	InsertionDelta(element E, solution *Solution[E]) float64

	// Returns the change in cost of removing element from the solution, without mutating it
	RemovalDelta(element E, solution *Solution[E]) float64

	// Returns the change in cost of removing elementOut and then inserting elementIn
	ExchangeDelta(elementIn, elementOut E, solution *Solution[E]) float64

	// Rebuilds the derived occupancy counters for the solution. The returned value answers
	// feasibility and delta queries for that exact solution version
	RefreshCounters(solution *Solution[E]) Counters[E]
}

// Counters is a snapshot of the derived state of a solution. It must be rebuilt with
// Evaluator.RefreshCounters after every mutation of the solution it was built from.
type Counters[E comparable] interface {
	// Checks whether element may enter the solution
	IsFeasible(element E) bool

	InsertionDelta(element E) float64
	RemovalDelta(element E) float64
	ExchangeDelta(elementIn, elementOut E) float64
}
