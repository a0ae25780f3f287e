package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/limaJavier/allocation/internal/bench"
	"github.com/limaJavier/allocation/internal/report"
)

func newBenchCmd() *cobra.Command {
	var (
		search  searchFlags
		dir     string // Instances directory
		runs    int    // Seeds per instance
		workers int    // Parallel runs
		outFile string // Summary CSV file
	)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve every instance of a directory with several seeds and summarise the scores",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := search.load(cmd)
			if err != nil {
				return err
			}

			cases, err := bench.LoadDir(dir)
			if err != nil {
				return err
			}
			if len(cases) == 0 {
				return fmt.Errorf("no .pap or .json instances in %s", dir)
			}

			runner := bench.Runner{
				Search:           cfg.Search(),
				EvaluatorOptions: cfg.EvaluatorOptions(),
				Runs:             runs,
				BaseSeed:         cfg.Seed,
				Workers:          workers,
			}

			var historyErr error
			if cfg.Results != "" {
				history, openErr := report.OpenHistory(cfg.Results)
				if openErr != nil {
					return openErr
				}
				defer closeInto(&err, history)

				runner.OnRun = func(run bench.Run) {
					if err := report.Write(history, run.Instance, run.Result); err != nil && historyErr == nil {
						historyErr = err
					}
				}
			}
			runner.OnRun = logRun(runner.OnRun)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			records, err := runner.Run(ctx, cases)
			if err != nil {
				return err
			}
			if historyErr != nil {
				return historyErr
			}

			out := cmd.OutOrStdout()
			if outFile != "" {
				file, createErr := os.Create(outFile)
				if createErr != nil {
					return createErr
				}
				defer closeInto(&err, file)
				out = file
			}
			return bench.WriteCSV(out, records)
		},
	}

	search.register(benchCmd)
	benchCmd.Flags().StringVar(&dir, "dir", "instances", "Directory holding the instances")
	benchCmd.Flags().IntVar(&runs, "runs", 5, "Number of seeds per instance, starting at --seed")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "Maximum parallel runs, 0 runs everything at once")
	benchCmd.Flags().StringVar(&outFile, "out", "", "Summary CSV file; if empty, it'll be written into the Standard Output")
	return benchCmd
}

// closeInto closes c and reports its error through err unless err already holds one
func closeInto(err *error, c io.Closer) {
	if closeErr := c.Close(); closeErr != nil && *err == nil {
		*err = closeErr
	}
}

func logRun(next func(bench.Run)) func(bench.Run) {
	return func(run bench.Run) {
		logrus.WithFields(logrus.Fields{
			"instance": run.Instance,
			"seed":     run.Seed,
			"score":    -run.Result.Cost,
			"complete": run.Complete,
		}).Info("run finished")
		if next != nil {
			next(run)
		}
	}
}
