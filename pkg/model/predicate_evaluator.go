package model

// predicateEvaluator gathers the hard constraints an assignment must satisfy to enter a
// solution. Every predicate answers with respect to the solution the evaluator was built from
type predicateEvaluator interface {
	// Checks whether the professor is available to teach at the given slot
	ProfessorAvailable(professor, slot int) bool

	// Checks whether the discipline is already given by a professor other than the given one
	TaughtByOther(professor, discipline int) bool

	// Checks whether the discipline already has all its required periods and is not given at the slot
	DisciplineComplete(discipline, slot int) bool

	// Checks whether the slot already hosts as many disciplines as there are rooms and the discipline is not one of them
	SlotFull(discipline, slot int) bool

	// Checks whether the professor already works the maximum number of slots and the slot is not one of them
	ProfessorFull(professor, slot int) bool
}

// feasible reports whether the assignment satisfies every hard constraint
func feasible(predicates predicateEvaluator, a Assignment) bool {
	p, d, t := a.Professor, a.Discipline, a.Slot
	return !predicates.TaughtByOther(p, d) &&
		!predicates.DisciplineComplete(d, t) &&
		!predicates.SlotFull(d, t) &&
		predicates.ProfessorAvailable(p, t) &&
		!predicates.ProfessorFull(p, t)
}
