package model

import (
	"github.com/limaJavier/allocation/pkg/tabu"
)

// Counters holds the occupancy structures derived from one version of a solution. It
// answers feasibility and move-cost queries in constant time.
type Counters struct {
	input   *ModelInput
	indexer indexer
	penalty float64

	members  []bool // Indexed by indexer
	aptitude int    // Sum of a[p][d] over the assignments

	w   []int   // w[d]: assignments of discipline d
	x   [][]int // x[p][d]: assignments of professor p to discipline d
	y   [][]int // y[d][t]: assignments of discipline d at slot t
	z   [][]int // z[p][t]: assignments of professor p at slot t
	npd []int   // npd[d]: professors giving discipline d
	ntd []int   // ntd[d]: slots at which discipline d is given
	ndt []int   // ndt[t]: disciplines given at slot t
	ntp []int   // ntp[p]: slots worked by professor p
}

var (
	_ tabu.Counters[Assignment] = (*Counters)(nil)
	_ predicateEvaluator        = (*Counters)(nil)
)

func newCounters(evaluator *Evaluator, solution *tabu.Solution[Assignment]) *Counters {
	input := &evaluator.input
	counters := &Counters{
		input:   input,
		indexer: evaluator.indexer,
		penalty: evaluator.penalty,
		members: make([]bool, evaluator.indexer.Size()),
		w:       make([]int, input.Disciplines),
		x:       newMatrix(input.Professors, input.Disciplines),
		y:       newMatrix(input.Disciplines, input.Slots),
		z:       newMatrix(input.Professors, input.Slots),
		npd:     make([]int, input.Disciplines),
		ntd:     make([]int, input.Disciplines),
		ndt:     make([]int, input.Slots),
		ntp:     make([]int, input.Professors),
	}

	for _, assignment := range solution.Elements() {
		p, d, t := assignment.Professor, assignment.Discipline, assignment.Slot

		counters.members[counters.indexer.Index(p, d, t)] = true
		counters.aptitude += input.Aptitude[p][d]
		counters.w[d]++

		if counters.x[p][d] == 0 {
			counters.npd[d]++
		}
		counters.x[p][d]++

		if counters.y[d][t] == 0 {
			counters.ntd[d]++
			counters.ndt[t]++
		}
		counters.y[d][t]++

		if counters.z[p][t] == 0 {
			counters.ntp[p]++
		}
		counters.z[p][t]++
	}

	return counters
}

func newMatrix(rows, columns int) [][]int {
	matrix := make([][]int, rows)
	for i := range matrix {
		matrix[i] = make([]int, columns)
	}
	return matrix
}

// Cost of the solution: minus the aptitude of every assignment plus a flat penalty for each
// discipline not scheduled exactly its required number of periods
func (c *Counters) Cost() float64 {
	cost := -float64(c.aptitude)
	for d := range c.w {
		cost += c.incomplete(d, c.w[d])
	}
	return cost
}

// incomplete returns the penalty owed by discipline d when it has the given number of assignments
func (c *Counters) incomplete(d, assignments int) float64 {
	if assignments != c.input.Periods[d] {
		return c.penalty
	}
	return 0
}

func (c *Counters) contains(a Assignment) bool {
	return c.members[c.indexer.Index(a.Professor, a.Discipline, a.Slot)]
}

func (c *Counters) InsertionDelta(a Assignment) float64 {
	if c.contains(a) {
		return 0
	}
	d := a.Discipline
	return -float64(c.input.Aptitude[a.Professor][d]) + c.incomplete(d, c.w[d]+1) - c.incomplete(d, c.w[d])
}

func (c *Counters) RemovalDelta(a Assignment) float64 {
	if !c.contains(a) {
		return 0
	}
	d := a.Discipline
	return float64(c.input.Aptitude[a.Professor][d]) + c.incomplete(d, c.w[d]-1) - c.incomplete(d, c.w[d])
}

// ExchangeDelta is the cost change of removing out and then inserting in. When in is
// already present, or out is absent, only the remaining half of the move counts.
func (c *Counters) ExchangeDelta(in, out Assignment) float64 {
	if in == out {
		if c.contains(in) {
			return 0
		}
		return c.InsertionDelta(in) // Removing an absent element changes nothing
	} else if c.contains(in) {
		return c.RemovalDelta(out)
	} else if !c.contains(out) {
		return c.InsertionDelta(in)
	}

	delta := float64(c.input.Aptitude[out.Professor][out.Discipline] - c.input.Aptitude[in.Professor][in.Discipline])
	if in.Discipline == out.Discipline {
		return delta // Discipline keeps the same number of assignments
	}

	dIn, dOut := in.Discipline, out.Discipline
	delta += c.incomplete(dOut, c.w[dOut]-1) - c.incomplete(dOut, c.w[dOut])
	delta += c.incomplete(dIn, c.w[dIn]+1) - c.incomplete(dIn, c.w[dIn])
	return delta
}

func (c *Counters) IsFeasible(a Assignment) bool {
	return feasible(c, a)
}

func (c *Counters) ProfessorAvailable(professor, slot int) bool {
	return c.input.Availability[professor][slot]
}

func (c *Counters) TaughtByOther(professor, discipline int) bool {
	return c.npd[discipline] > 0 && c.x[professor][discipline] == 0
}

func (c *Counters) DisciplineComplete(discipline, slot int) bool {
	return c.ntd[discipline] >= c.input.Periods[discipline] && c.y[discipline][slot] == 0
}

func (c *Counters) SlotFull(discipline, slot int) bool {
	return c.ndt[slot] >= c.input.Rooms && c.y[discipline][slot] == 0
}

func (c *Counters) ProfessorFull(professor, slot int) bool {
	return c.ntp[professor] >= c.input.MaxLoad && c.z[professor][slot] == 0
}

// DisciplineProfessors returns the number of professors giving the discipline (npd)
func (c *Counters) DisciplineProfessors(discipline int) int {
	return c.npd[discipline]
}

// DisciplinePeriods returns the number of slots at which the discipline is given (ntd)
func (c *Counters) DisciplinePeriods(discipline int) int {
	return c.ntd[discipline]
}

// SlotDisciplines returns the number of disciplines given at the slot (ndt)
func (c *Counters) SlotDisciplines(slot int) int {
	return c.ndt[slot]
}

// ProfessorLoad returns the number of slots worked by the professor (ntp)
func (c *Counters) ProfessorLoad(professor int) int {
	return c.ntp[professor]
}

// Assignments returns the number of assignments of the discipline (w)
func (c *Counters) Assignments(discipline int) int {
	return c.w[discipline]
}
