package tabu

import "time"

// StopReason tells why the main loop ended.
type StopReason string

const (
	StoppedIterations StopReason = "iterations"
	StoppedTime       StopReason = "time"
	StoppedContext    StopReason = "context"
)

type Result[E comparable] struct {
	// Best solution found (a copy, never aliased to the working solution)
	Solution *Solution[E]
	Cost     float64

	ConstructedCost    float64
	ConstructionRounds int

	// Number of neighborhood moves performed
	Iterations int
	Duration   time.Duration
	Stopped    StopReason
}

// Improvement describes a new incumbent.
type Improvement struct {
	Elapsed   time.Duration
	Iteration int
	Cost      float64
	Size      int
}

type ImprovementFunc func(Improvement)

// Move describes the move applied by one iteration. In and Out are None when the winning
// move had no insertion or no removal part.
type Move[E comparable] struct {
	Iteration     int
	In            Entry[E]
	Out           Entry[E]
	Delta         float64
	Aspirated     bool // the move was tabu and only allowed by the aspiration criterion
	CostBefore    float64
	IncumbentCost float64
}

type MoveFunc[E comparable] func(Move[E])
