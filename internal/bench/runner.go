package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/limaJavier/allocation/pkg/model"
	"github.com/limaJavier/allocation/pkg/tabu"
)

type Case struct {
	Name  string
	Input model.ModelInput
}

// Run is one seeded solve of a case
type Run struct {
	Instance string
	Seed     uint64
	Result   tabu.Result[model.Assignment]
	Complete bool
}

type Runner struct {
	Search           tabu.Config // Seed is replaced by BaseSeed + run index
	EvaluatorOptions []model.EvaluatorOption
	Runs             int
	BaseSeed         uint64
	Workers          int // 0 = one per case and run

	// OnRun is called once per finished run, never concurrently
	OnRun func(Run)
}

// Run solves every case Runs times, in parallel, and summarises each case
func (r Runner) Run(ctx context.Context, cases []Case) ([]Record, error) {
	if r.Runs <= 0 {
		return nil, fmt.Errorf("runs must be > 0 (got %d)", r.Runs)
	}
	if err := r.Search.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := r.Workers
	if workers <= 0 {
		workers = len(cases) * r.Runs
	}
	semaphore := make(chan struct{}, max(workers, 1))

	runs := make([][]Run, len(cases))
	for i := range runs {
		runs[i] = make([]Run, r.Runs)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, c := range cases {
		for j := range r.Runs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				run, err := r.solve(ctx, c, r.BaseSeed+uint64(j))

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("instance %s, seed %d: %w", c.Name, r.BaseSeed+uint64(j), err)
						cancel()
					}
					return
				}
				runs[i][j] = run
				if r.OnRun != nil {
					r.OnRun(run)
				}
			}()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return lo.Map(cases, func(c Case, i int) Record {
		return Summarise(c.Name, runs[i])
	}), nil
}

func (r Runner) solve(ctx context.Context, c Case, seed uint64) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}

	evaluator, err := model.NewEvaluator(c.Input, r.EvaluatorOptions...)
	if err != nil {
		return Run{}, err
	}
	cfg := r.Search
	cfg.Seed = seed
	solver, err := tabu.New[model.Assignment](evaluator, cfg)
	if err != nil {
		return Run{}, err
	}

	start := time.Now()
	result, err := solver.Solve(ctx)
	if err != nil {
		return Run{}, err
	}
	logrus.WithFields(logrus.Fields{
		"instance": c.Name,
		"seed":     seed,
		"cost":     result.Cost,
		"elapsed":  time.Since(start),
	}).Debug("run finished")

	return Run{
		Instance: c.Name,
		Seed:     seed,
		Result:   result,
		Complete: evaluator.Complete(result.Solution),
	}, nil
}

// LoadDir reads every ".pap" and ".json" instance of a directory, sorted by file name
func LoadDir(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read instances directory: %w", err)
	}

	names := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		extension := strings.ToLower(filepath.Ext(entry.Name()))
		return entry.Name(), !entry.IsDir() && (extension == ".pap" || extension == ".json")
	})
	slices.Sort(names)

	cases := make([]Case, 0, len(names))
	for _, name := range names {
		input, err := model.InputFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		cases = append(cases, Case{Name: input.Name, Input: input})
	}
	return cases, nil
}
