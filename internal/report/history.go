package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/limaJavier/allocation/pkg/tabu"
)

var historyHeader = []string{"instance", "solutionCost", "iterations", "time", "solutionSize"}

// HistoryWriter appends rows to a ";" separated results file
type HistoryWriter struct {
	writer *csv.Writer
	closer io.Closer
	err    error // First error of an improvement row
}

// OpenHistory opens the results file in append mode and writes the header when the file is new
func OpenHistory(path string) (*HistoryWriter, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open results file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("cannot stat results file: %w", err)
	}

	history := NewHistoryWriter(file)
	history.closer = file
	if info.Size() == 0 {
		if err := history.writeRow(historyHeader); err != nil {
			file.Close()
			return nil, err
		}
	}
	return history, nil
}

// NewHistoryWriter writes rows to w without a header
func NewHistoryWriter(w io.Writer) *HistoryWriter {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	return &HistoryWriter{writer: writer}
}

// Write records a finished run: iterations and time are the totals of the run. The cost
// column holds the maximised objective, the opposite of the engine cost.
func Write[E comparable](history *HistoryWriter, instance string, result tabu.Result[E]) error {
	return history.writeRow([]string{
		instance,
		strconv.FormatFloat(-result.Cost, 'f', -1, 64),
		strconv.Itoa(result.Iterations),
		Seconds(result.Duration),
		strconv.Itoa(result.Solution.Len()),
	})
}

// ImprovementFunc appends a row every time the incumbent improves, with the iteration and
// elapsed time of that improvement. The first write error is kept and returned by Err and Close.
func (history *HistoryWriter) ImprovementFunc(instance string) tabu.ImprovementFunc {
	return func(improvement tabu.Improvement) {
		if history.err != nil {
			return
		}
		history.err = history.writeRow([]string{
			instance,
			strconv.FormatFloat(-improvement.Cost, 'f', -1, 64),
			strconv.Itoa(improvement.Iteration),
			Seconds(improvement.Elapsed),
			strconv.Itoa(improvement.Size),
		})
	}
}

func (history *HistoryWriter) Err() error {
	return history.err
}

func (history *HistoryWriter) writeRow(row []string) error {
	if err := history.writer.Write(row); err != nil {
		return fmt.Errorf("cannot write results row: %w", err)
	}
	history.writer.Flush()
	return history.writer.Error()
}

func (history *HistoryWriter) Close() error {
	history.writer.Flush()
	err := history.err
	if err == nil {
		err = history.writer.Error()
	}
	if history.closer != nil {
		if closeErr := history.closer.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

// Seconds formats a duration the way the results file does
func Seconds(duration time.Duration) string {
	return strconv.FormatFloat(duration.Seconds(), 'f', 3, 64)
}
