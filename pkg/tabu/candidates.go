package tabu

// candidateList returns, in domain order, every feasible element that is not already in
// the solution. counters must have been refreshed for the current version of solution.
func candidateList[E comparable](evaluator Evaluator[E], solution *Solution[E], counters Counters[E]) []E {
	candidates := make([]E, 0)
	for i := range evaluator.DomainSize() {
		element := evaluator.Element(i)
		if solution.Contains(element) || !counters.IsFeasible(element) {
			continue
		}
		candidates = append(candidates, element)
	}
	return candidates
}
