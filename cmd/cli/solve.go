package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/limaJavier/allocation/internal/config"
	"github.com/limaJavier/allocation/internal/report"
	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/tabu"
)

// timetableOutput is the JSON document written by solve --out
type timetableOutput struct {
	Instance string         `json:"instance"`
	Score    float64        `json:"score"`
	Complete bool           `json:"complete"`
	Lessons  []model.Lesson `json:"lessons"`
}

func newSolveCmd() *cobra.Command {
	var (
		search  searchFlags
		file    string // Instance file
		outFile string // Timetable output file
	)

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one instance and print a summary of the best solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := search.load(cmd)
			if err != nil {
				return err
			}

			input, err := model.InputFromFile(file)
			if err != nil {
				return fmt.Errorf("cannot parse input file: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return solve(ctx, cmd.OutOrStdout(), cfg, input, outFile)
		},
	}

	search.register(solveCmd)
	solveCmd.Flags().StringVar(&file, "file", "", "Path to the instance file (.pap or .json)")
	solveCmd.Flags().StringVar(&outFile, "out", "", "Path to the file where the timetable will be written as JSON")
	_ = solveCmd.MarkFlagRequired("file")
	return solveCmd
}

func solve(ctx context.Context, out io.Writer, cfg config.Config, input model.ModelInput, outFile string) error {
	logger := logrus.WithField("instance", input.Name)
	logger.WithFields(logrus.Fields{
		"tenure":     cfg.Tenure,
		"iterations": cfg.Iterations,
		"time_limit": cfg.TimeLimit,
		"seed":       cfg.Seed,
		"penalty":    cfg.Penalty,
	}).Info("starting search")

	improvements := []tabu.ImprovementFunc{report.LogImprovement(logger)}
	var history *report.HistoryWriter
	if cfg.Results != "" {
		var err error
		if history, err = report.OpenHistory(cfg.Results); err != nil {
			return err
		}
		improvements = append(improvements, history.ImprovementFunc(input.Name))
	}

	timetabler := model.NewTabuTimetabler(
		cfg.Search(),
		model.WithEvaluatorOptions(cfg.EvaluatorOptions()...),
		model.WithSolverOptions(tabu.WithImprovementFunc[model.Assignment](report.Chain(improvements...))),
	)

	timetable, result, err := timetabler.Build(ctx, input)
	if history != nil {
		if closeErr := history.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("cannot write results history: %w", closeErr)
		}
	}
	if errors.Is(err, context.Canceled) && result.Solution != nil {
		logger.Warn("search interrupted, reporting the best solution so far")
	} else if err != nil {
		return fmt.Errorf("an error occurred during timetable construction: %w", err)
	}

	evaluator, err := model.NewEvaluator(input, cfg.EvaluatorOptions()...)
	if err != nil {
		return err
	}
	printSummary(out, evaluator, input, result)

	if outFile != "" && timetable != nil {
		output, err := json.MarshalIndent(timetableOutput{
			Instance: input.Name,
			Score:    -result.Cost,
			Complete: evaluator.Complete(result.Solution),
			Lessons:  timetable,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("an error occurred while building output json: %w", err)
		}
		if err := os.WriteFile(outFile, output, 0o666); err != nil {
			return fmt.Errorf("an error occurred while writing to the output file: %w", err)
		}
	}
	return nil
}

func printSummary(out io.Writer, evaluator *model.Evaluator, input model.ModelInput, result tabu.Result[model.Assignment]) {
	counters := evaluator.Accumulate(result.Solution)
	verification := evaluator.Verify(result.Solution)

	fmt.Fprintf(out, "Instance: %v\n", input.Name)
	fmt.Fprintf(out, "Score: %v\n", -result.Cost)
	fmt.Fprintf(out, "Constructed score: %v (%d rounds)\n", -result.ConstructedCost, result.ConstructionRounds)
	fmt.Fprintf(out, "Iterations: %d (stopped by %v)\n", result.Iterations, result.Stopped)
	fmt.Fprintf(out, "Time: %v s\n", report.Seconds(result.Duration))
	fmt.Fprintf(out, "Assignments: %d\n", result.Solution.Len())
	fmt.Fprintf(out, "Feasible: %v\n", verification == nil)
	fmt.Fprintf(out, "Complete: %v\n", evaluator.Complete(result.Solution))
	if verification != nil {
		fmt.Fprintf(out, "Violations:\n%v\n", verification)
	}

	fmt.Fprintln(out, "Professor load (ntp):")
	for p := range input.Professors {
		fmt.Fprintf(out, "  %d: %d/%d\n", p, counters.ProfessorLoad(p), input.MaxLoad)
	}
	fmt.Fprintln(out, "Discipline periods (ntd):")
	for d := range input.Disciplines {
		fmt.Fprintf(out, "  %d: %d/%d\n", d, counters.DisciplinePeriods(d), input.Periods[d])
	}
	fmt.Fprintln(out, "Assignments [professor discipline slot]:")
	for _, assignment := range result.Solution.Elements() {
		fmt.Fprintf(out, "  %v\n", assignment)
	}
}
