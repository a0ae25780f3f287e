package model

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/allocation/pkg/tabu"
)

func testTabuConfig() tabu.Config {
	return tabu.Config{Tenure: 3, Iterations: 200, Seed: 1}
}

func TestBuild(t *testing.T) {
	t.Run("Sample instance", func(t *testing.T) {
		//** Arrange
		input := sampleInput()
		improvements := 0
		timetabler := NewTabuTimetabler(testTabuConfig(), WithSolverOptions(tabu.WithImprovementFunc[Assignment](func(tabu.Improvement) {
			improvements++
		})))

		//** Act
		timetable, result, err := timetabler.Build(context.Background(), input)

		//** Assert
		require.NoError(t, err)
		assert.Len(t, timetable, result.Solution.Len())
		assert.True(t, timetabler.Verify(timetable, input))
		assert.LessOrEqual(t, result.Cost, result.ConstructedCost)
		assert.Equal(t, testTabuConfig().Iterations, result.Iterations)
		for _, lesson := range timetable {
			assert.True(t, result.Solution.Contains(Assignment{lesson.Professor, lesson.Discipline, lesson.Slot}))
		}
	})

	t.Run("Random instances", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(5, 5))
		cfg := testTabuConfig()
		cfg.Iterations = 50

		for range 20 {
			//** Arrange
			input := randomInput(rng)
			timetabler := NewTabuTimetabler(cfg, WithEvaluatorOptions(WithPenalty(50)))

			//** Act
			timetable, result, err := timetabler.Build(context.Background(), input)

			//** Assert
			require.NoError(t, err)
			assert.Len(t, timetable, result.Solution.Len())
			assert.True(t, timetabler.Verify(timetable, input))
		}
	})

	t.Run("Deterministic under a fixed seed", func(t *testing.T) {
		timetable1, result1, err := NewTabuTimetabler(testTabuConfig()).Build(context.Background(), sampleInput())
		require.NoError(t, err)
		timetable2, result2, err := NewTabuTimetabler(testTabuConfig()).Build(context.Background(), sampleInput())
		require.NoError(t, err)

		assert.Equal(t, timetable1, timetable2)
		assert.Equal(t, result1.Cost, result2.Cost)
	})

	t.Run("Invalid input", func(t *testing.T) {
		input := sampleInput()
		input.Rooms = 0

		_, _, err := NewTabuTimetabler(testTabuConfig()).Build(context.Background(), input)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Invalid configuration", func(t *testing.T) {
		_, _, err := NewTabuTimetabler(tabu.Config{}).Build(context.Background(), sampleInput())
		assert.Error(t, err)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		timetable, result, err := NewTabuTimetabler(testTabuConfig()).Build(ctx, sampleInput())

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, timetable)
		assert.NotNil(t, result.Solution)
	})
}

func TestVerifyTimetable(t *testing.T) {
	input := sampleInput()
	valid := []Lesson{
		{Professor: 0, Discipline: 0, Slot: 0, Room: 0},
		{Professor: 1, Discipline: 1, Slot: 0, Room: 1},
		{Professor: 0, Discipline: 0, Slot: 1, Room: 1},
	}
	assert.True(t, verify(valid, input))
	assert.True(t, verify(nil, input))

	scenarios := map[string][]Lesson{
		"Room out of range":       {{Professor: 0, Discipline: 0, Slot: 0, Room: 2}},
		"Professor out of range":  {{Professor: 3, Discipline: 0, Slot: 0, Room: 0}},
		"Repeated assignment":     {valid[0], valid[0]},
		"Shared room":             {valid[0], {Professor: 1, Discipline: 1, Slot: 0, Room: 0}},
		"Professor unavailable":   {{Professor: 1, Discipline: 0, Slot: 2, Room: 0}},
		"Two professors":          {valid[0], {Professor: 1, Discipline: 0, Slot: 1, Room: 0}},
		"Discipline over periods": {{Professor: 1, Discipline: 1, Slot: 0, Room: 0}, {Professor: 1, Discipline: 1, Slot: 1, Room: 0}},
	}
	for name, timetable := range scenarios {
		t.Run(name, func(t *testing.T) {
			assert.False(t, verify(timetable, input))
		})
	}
}

func TestRoomAssignment(t *testing.T) {
	t.Run("Disciplines at a slot get distinct rooms", func(t *testing.T) {
		//** Arrange
		input := sampleInput()
		assignments := []Assignment{{0, 0, 1}, {1, 1, 1}, {0, 0, 0}}

		//** Act
		timetable, err := roomAssignment(assignments, input)

		//** Assert
		require.NoError(t, err)
		require.Len(t, timetable, 3)
		assert.Equal(t, 0, timetable[0].Slot)
		atSlot := lo.Filter(timetable, func(lesson Lesson, _ int) bool { return lesson.Slot == 1 })
		assert.Len(t, lo.UniqBy(atSlot, func(lesson Lesson) int { return lesson.Room }), 2)
		assert.True(t, verify(timetable, input))
	})

	t.Run("More disciplines than rooms", func(t *testing.T) {
		input := sampleInput()
		assignments := []Assignment{{0, 0, 1}, {1, 1, 1}, {2, 2, 1}}

		_, err := roomAssignment(assignments, input)

		var unassignable unassignableError
		require.ErrorAs(t, err, &unassignable)
		assert.Equal(t, 1, unassignable.slot)
		assert.Equal(t, []int{0, 1, 2}, unassignable.disciplines)
	})

	t.Run("Maximum matching", func(t *testing.T) {
		placement, err := assignRooms([]int{4, 7, 9}, []int{0, 1, 2})

		require.NoError(t, err)
		assert.Len(t, placement, 3)
		assert.ElementsMatch(t, []int{0, 1, 2}, lo.Values(placement))
	})
}
