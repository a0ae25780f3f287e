package bench

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Record summarises the runs of one instance. Scores are the maximised objective.
type Record struct {
	Instance string
	Runs     int
	Complete int // Runs giving every discipline its required periods

	ScoreBest  float64
	ScoreWorst float64
	ScoreMean  float64
	ScoreStd   float64

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64
}

func Summarise(instance string, runs []Run) Record {
	record := Record{Instance: instance, Runs: len(runs)}
	if len(runs) == 0 {
		return record
	}

	scores := lo.Map(runs, func(run Run, _ int) float64 { return -run.Result.Cost })
	times := lo.Map(runs, func(run Run, _ int) float64 { return float64(run.Result.Duration.Microseconds()) / 1000.0 })

	record.Complete = lo.CountBy(runs, func(run Run) bool { return run.Complete })
	record.ScoreBest, record.ScoreWorst = floats.Max(scores), floats.Min(scores)
	record.ScoreMean, record.ScoreStd = meanStd(scores)
	record.TimeBestMs = floats.Min(times)
	record.TimeMeanMs, record.TimeStdMs = meanStd(times)
	return record
}

// meanStd returns the sample mean and standard deviation, the latter 0 for a single value
func meanStd(values []float64) (float64, float64) {
	if len(values) < 2 {
		return stat.Mean(values, nil), 0
	}
	return stat.MeanStdDev(values, nil)
}

func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)

	header := []string{
		"instance", "runs", "complete",
		"score_best", "score_worst", "score_mean", "score_std",
		"time_best_ms", "time_mean_ms", "time_std_ms",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Instance,
			strconv.Itoa(r.Runs),
			strconv.Itoa(r.Complete),

			ftoa(r.ScoreBest),
			ftoa(r.ScoreWorst),
			ftoa(r.ScoreMean),
			ftoa(r.ScoreStd),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func ftoa(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
