package model

import "fmt"

// Assignment states that a professor teaches a discipline at a slot. It is the candidate
// element of the tabu search.
type Assignment struct {
	Professor  int
	Discipline int
	Slot       int
}

func (a Assignment) String() string {
	return fmt.Sprintf("[%d %d %d]", a.Professor, a.Discipline, a.Slot)
}
