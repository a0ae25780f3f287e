package model

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/limaJavier/allocation/pkg/tabu"
)

type unassignableError struct {
	slot        int
	disciplines []int
	rooms       int
}

func (err unassignableError) Error() string {
	return fmt.Sprintf("not all disciplines can be assigned a room at slot %d: disciplines %v, rooms %d", err.slot, err.disciplines, err.rooms)
}

// verify checks that the timetable is a feasible solution of the instance and that rooms are
// consistently assigned: a room hosts a single discipline per slot and a discipline keeps
// one room per slot
func verify(timetable []Lesson, modelInput ModelInput) bool {
	//** Initialize dependencies
	evaluator, err := NewEvaluator(modelInput)
	if err != nil {
		return false
	}

	solution := tabu.NewSolution[Assignment]()
	roomDiscipline := make(map[[2]int]int) // (slot, room) -> discipline
	disciplineRoom := make(map[[2]int]int) // (slot, discipline) -> room

	for _, lesson := range timetable {
		// Check that:
		// - Attributes are inside the instance
		// - Assignment is not repeated
		// - Room does not host another discipline at the slot
		// - Discipline is not split across rooms at the slot
		if lesson.Professor < 0 || lesson.Professor >= modelInput.Professors ||
			lesson.Discipline < 0 || lesson.Discipline >= modelInput.Disciplines ||
			lesson.Slot < 0 || lesson.Slot >= modelInput.Slots ||
			lesson.Room < 0 || lesson.Room >= modelInput.Rooms {
			return false
		}
		if !solution.Add(Assignment{Professor: lesson.Professor, Discipline: lesson.Discipline, Slot: lesson.Slot}) {
			return false
		}
		if discipline, ok := roomDiscipline[[2]int{lesson.Slot, lesson.Room}]; ok && discipline != lesson.Discipline {
			return false
		}
		if room, ok := disciplineRoom[[2]int{lesson.Slot, lesson.Discipline}]; ok && room != lesson.Room {
			return false
		}

		roomDiscipline[[2]int{lesson.Slot, lesson.Room}] = lesson.Discipline // Store room usage
		disciplineRoom[[2]int{lesson.Slot, lesson.Discipline}] = lesson.Room // Store discipline placement
	}

	return evaluator.Verify(solution) == nil
}

// roomAssignment places every discipline given at a slot in one of the rooms
func roomAssignment(assignments []Assignment, modelInput ModelInput) ([]Lesson, error) {
	rooms := lo.Range(modelInput.Rooms)
	simultaneous := lo.GroupBy(assignments, func(assignment Assignment) int { return assignment.Slot })

	timetable := make([]Lesson, 0, len(assignments))
	for _, slot := range slices.Sorted(maps.Keys(simultaneous)) {
		disciplines := lo.Uniq(lo.Map(simultaneous[slot], func(assignment Assignment, _ int) int { return assignment.Discipline }))
		slices.Sort(disciplines)

		placement, err := assignRooms(disciplines, rooms)
		if unassignable, ok := err.(unassignableError); ok {
			unassignable.slot = slot
			logrus.WithField("slot", slot).Warnf("cannot assign rooms: %v", unassignable)
			return nil, unassignable
		} else if err != nil {
			return nil, err
		}

		for _, assignment := range simultaneous[slot] {
			timetable = append(timetable, Lesson{
				Professor:  assignment.Professor,
				Discipline: assignment.Discipline,
				Slot:       assignment.Slot,
				Room:       placement[assignment.Discipline],
			})
		}
	}

	slices.SortFunc(timetable, func(a, b Lesson) int {
		return cmp.Or(
			cmp.Compare(a.Slot, b.Slot),
			cmp.Compare(a.Room, b.Room),
			cmp.Compare(a.Professor, b.Professor),
		)
	})
	return timetable, nil
}

// assignRooms computes a maximum matching between disciplines and rooms
func assignRooms(disciplines []int, rooms []int) (map[int]int, error) {
	placement := make(map[int]int, len(disciplines))
	if len(disciplines) > len(rooms) {
		return nil, unassignableError{disciplines: disciplines, rooms: len(rooms)}
	}

	// Any room can host any discipline
	neighbors := func(disciplineAny any, roomAny any) (bool, error) {
		return true, nil
	}

	// Transform disciplines and rooms to slices of any
	disciplinesAny, roomsAny := lo.ToAnySlice(disciplines), lo.ToAnySlice(rooms)

	graph, err := bipartitegraph.NewBipartiteGraph(disciplinesAny, roomsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	// Check the matching is a maximum one
	if len(matching) < len(disciplines) {
		return nil, unassignableError{disciplines: disciplines, rooms: len(rooms)}
	}

	for _, edge := range matching {
		disciplineIndex, roomIndex := edge.Node1, edge.Node2-len(disciplines)
		placement[disciplines[disciplineIndex]] = rooms[roomIndex]
	}

	return placement, nil
}
