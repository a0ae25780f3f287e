package model

import (
	"context"

	"github.com/limaJavier/allocation/pkg/tabu"
)

// Lesson is an assignment placed in a room
type Lesson struct {
	Professor  int `json:"professor"`
	Discipline int `json:"discipline"`
	Slot       int `json:"slot"`
	Room       int `json:"room"`
}

type Timetabler interface {
	Build(
		ctx context.Context,
		modelInput ModelInput,
	) (timetable []Lesson, result tabu.Result[Assignment], err error)

	Verify(
		timetable []Lesson,
		modelInput ModelInput,
	) bool
}
