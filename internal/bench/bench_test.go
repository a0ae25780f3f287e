package bench

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/tabu"
)

const tinyPap = "P 2 D 2 T 2 S 1 H 2 h 1 1 a 3 1 1 3 r 1 1 1 1"

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func tinyCases(t *testing.T) []Case {
	input, err := model.InputFromPapReader("tiny", strings.NewReader(tinyPap))
	require.NoError(t, err)
	return []Case{{Name: "tiny", Input: input}}
}

func TestRunner(t *testing.T) {
	t.Run("Every run is reported and summarised", func(t *testing.T) {
		//** Arrange
		seeds := make(map[uint64]bool)
		runner := Runner{
			Search:   tabu.Config{Tenure: 2, Iterations: 30},
			Runs:     4,
			BaseSeed: 10,
			Workers:  2,
			OnRun:    func(run Run) { seeds[run.Seed] = true },
		}

		//** Act
		records, err := runner.Run(context.Background(), tinyCases(t))

		//** Assert
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "tiny", records[0].Instance)
		assert.Equal(t, 4, records[0].Runs)
		assert.Equal(t, map[uint64]bool{10: true, 11: true, 12: true, 13: true}, seeds)
		// Both professors can take their favourite discipline in distinct slots
		assert.Equal(t, 6.0, records[0].ScoreBest)
		assert.GreaterOrEqual(t, records[0].ScoreBest, records[0].ScoreMean)
		assert.GreaterOrEqual(t, records[0].ScoreMean, records[0].ScoreWorst)
	})

	t.Run("Invalid runner", func(t *testing.T) {
		_, err := Runner{Search: tabu.Config{Tenure: 2, Iterations: 30}}.Run(context.Background(), tinyCases(t))
		assert.Error(t, err)

		_, err = Runner{Runs: 1}.Run(context.Background(), tinyCases(t))
		assert.Error(t, err)
	})

	t.Run("Invalid instance", func(t *testing.T) {
		cases := tinyCases(t)
		cases[0].Input.Rooms = 0

		_, err := Runner{Search: tabu.Config{Tenure: 2, Iterations: 30}, Runs: 2}.Run(context.Background(), cases)

		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Runner{Search: tabu.Config{Tenure: 2, Iterations: 30}, Runs: 2}.Run(ctx, tinyCases(t))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSummarise(t *testing.T) {
	runWith := func(cost float64, duration time.Duration, complete bool) Run {
		return Run{Result: tabu.Result[model.Assignment]{Cost: cost, Duration: duration}, Complete: complete}
	}

	t.Run("Several runs", func(t *testing.T) {
		record := Summarise("sample", []Run{
			runWith(-10, 2*time.Millisecond, true),
			runWith(-14, 4*time.Millisecond, true),
			runWith(-6, 6*time.Millisecond, false),
		})

		assert.Equal(t, 3, record.Runs)
		assert.Equal(t, 2, record.Complete)
		assert.Equal(t, 14.0, record.ScoreBest)
		assert.Equal(t, 6.0, record.ScoreWorst)
		assert.InDelta(t, 10.0, record.ScoreMean, 1e-9)
		assert.InDelta(t, 4.0, record.ScoreStd, 1e-9)
		assert.InDelta(t, 2.0, record.TimeBestMs, 1e-9)
		assert.InDelta(t, 4.0, record.TimeMeanMs, 1e-9)
	})

	t.Run("Single run", func(t *testing.T) {
		record := Summarise("sample", []Run{runWith(-3, time.Millisecond, false)})
		assert.Equal(t, 3.0, record.ScoreMean)
		assert.Zero(t, record.ScoreStd)
	})

	t.Run("No runs", func(t *testing.T) {
		assert.Equal(t, Record{Instance: "sample"}, Summarise("sample", nil))
	})
}

func TestWriteCSV(t *testing.T) {
	var buffer bytes.Buffer

	err := WriteCSV(&buffer, []Record{{Instance: "tiny", Runs: 2, Complete: 1, ScoreBest: 6, ScoreWorst: 4, ScoreMean: 5, ScoreStd: 1.4142135}})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "instance,runs,complete,score_best,score_worst,score_mean,score_std,time_best_ms,time_mean_ms,time_std_ms", lines[0])
	assert.Equal(t, "tiny,2,1,6.000,4.000,5.000,1.414,0.000,0.000,0.000", lines[1])
}

func TestLoadDir(t *testing.T) {
	//** Arrange
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pap"), []byte(tinyPap), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pap"), []byte(tinyPap), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	//** Act
	cases, err := LoadDir(dir)

	//** Assert
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "a", cases[0].Name)
	assert.Equal(t, "b", cases[1].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.pap"), []byte("P 0"), 0o644))
	_, err = LoadDir(dir)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
