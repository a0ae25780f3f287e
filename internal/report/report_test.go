package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/allocation/pkg/tabu"
)

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func sampleResult() tabu.Result[int] {
	solution := tabu.NewSolution[int]()
	solution.Add(1)
	solution.Add(4)
	return tabu.Result[int]{
		Solution:   solution,
		Cost:       -27,
		Iterations: 1000,
		Duration:   1500 * time.Millisecond,
	}
}

func TestHistoryWriter(t *testing.T) {
	t.Run("Rows", func(t *testing.T) {
		//** Arrange
		var buffer bytes.Buffer
		history := NewHistoryWriter(&buffer)

		//** Act
		require.NoError(t, Write(history, "sample", sampleResult()))
		require.NoError(t, history.Close())

		//** Assert
		assert.Equal(t, "sample;27;1000;1.500;2\n", buffer.String())
	})

	t.Run("Appends to an existing file", func(t *testing.T) {
		//** Arrange
		file := filepath.Join(t.TempDir(), "results.csv")

		//** Act
		for _, instance := range []string{"first", "second"} {
			history, err := OpenHistory(file)
			require.NoError(t, err)
			require.NoError(t, Write(history, instance, sampleResult()))
			require.NoError(t, history.Close())
		}

		//** Assert
		content, err := os.ReadFile(file)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		assert.Equal(t, []string{
			"instance;solutionCost;iterations;time;solutionSize",
			"first;27;1000;1.500;2",
			"second;27;1000;1.500;2",
		}, lines)
	})

	t.Run("A row per improvement", func(t *testing.T) {
		//** Arrange
		var buffer bytes.Buffer
		history := NewHistoryWriter(&buffer)
		fn := history.ImprovementFunc("sample")

		//** Act
		fn(tabu.Improvement{Elapsed: 250 * time.Millisecond, Iteration: 3, Cost: -12, Size: 4})
		fn(tabu.Improvement{Elapsed: 2 * time.Second, Iteration: 40, Cost: -15, Size: 5})

		//** Assert
		require.NoError(t, history.Err())
		require.NoError(t, history.Close())
		assert.Equal(t, "sample;12;3;0.250;4\nsample;15;40;2.000;5\n", buffer.String())
	})

	t.Run("Improvement write errors reach Close", func(t *testing.T) {
		//** Arrange
		history := NewHistoryWriter(failingWriter{})
		fn := history.ImprovementFunc("sample")

		//** Act
		fn(tabu.Improvement{Iteration: 1, Cost: -1, Size: 1})
		fn(tabu.Improvement{Iteration: 2, Cost: -2, Size: 2})

		//** Assert
		assert.Error(t, history.Err())
		assert.ErrorIs(t, history.Close(), errDiskFull)
	})

	t.Run("Unwritable path", func(t *testing.T) {
		_, err := OpenHistory(filepath.Join(t.TempDir(), "missing", "results.csv"))
		assert.Error(t, err)
	})
}

func TestLogImprovement(t *testing.T) {
	//** Arrange
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	calls := 0
	fn := Chain(LogImprovement(logger.WithField("instance", "sample")), nil, func(tabu.Improvement) { calls++ })

	//** Act
	fn(tabu.Improvement{Elapsed: 2 * time.Second, Iteration: 3, Cost: -12, Size: 4})

	//** Assert
	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "new incumbent", entry.Message)
	assert.Equal(t, "sample", entry.Data["instance"])
	assert.Equal(t, 3, entry.Data["iteration"])
	assert.Equal(t, -12.0, entry.Data["cost"])
	assert.Equal(t, "2.000", entry.Data["elapsed"])
	assert.Equal(t, 1, calls)
}
