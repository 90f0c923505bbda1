package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sourcegraph/conc/pool"

	"memeticFlowShop/internal/flowshop"
	"memeticFlowShop/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
}

type Record struct {
	Algo       string
	Jobs       int
	Machines   int
	Runs       int
	LowerBound int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64

	EvaluationsMean float64
}

// Gap - относительное отклонение лучшего makespan от нижней оценки, в процентах.
func (r Record) Gap() float64 {
	if r.LowerBound <= 0 {
		return 0
	}
	return 100 * float64(r.MakespanBest-r.LowerBound) / float64(r.LowerBound)
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	// Parallel - число одновременных запусков; <= 1 - последовательно.
	Parallel int
}

type runOutcome struct {
	makespan    int
	evaluations int
	ms          float64
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)
	inst := flowshop.RandomInstance(c.Jobs, c.Machines, 1, 99, instRng)

	outcomes := make([]runOutcome, r.Runs)
	run := func(i int) error {
		runSeed := r.BaseSeed + int64(i)
		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		defer cancel()

		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)

		if err != nil && runCtx.Err() != nil {
			return fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := res.Check(inst); err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}

		outcomes[i] = runOutcome{
			makespan:    res.Makespan,
			evaluations: res.Evaluations,
			ms:          float64(dur.Microseconds()) / 1000.0,
		}
		return nil
	}

	// Каждый запуск пишет только в свой слот outcomes,
	// поэтому порядок результатов совпадает с порядком сидов
	p := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(max(1, r.Parallel))
	for i := 0; i < r.Runs; i++ {
		i := i
		p.Go(func() error { return run(i) })
	}
	if err := p.Wait(); err != nil {
		return Record{}, err
	}

	makespans := make([]int, r.Runs)
	timesMs := make([]float64, r.Runs)
	evals := make([]int, r.Runs)
	for i, o := range outcomes {
		makespans[i] = o.makespan
		timesMs[i] = o.ms
		evals[i] = o.evaluations
	}

	msStats := CalcIntStats(makespans)
	tStats := CalcFloatStats(timesMs)
	evStats := CalcIntStats(evals)

	return Record{
		Algo:       algo.Name,
		Jobs:       c.Jobs,
		Machines:   c.Machines,
		Runs:       r.Runs,
		LowerBound: inst.LowerBound(),

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,

		EvaluationsMean: evStats.Mean,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "jobs", "machines", "runs", "lower_bound",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
		"gap_pct", "evaluations_mean",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),
			itoa(r.LowerBound),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),

			ftoa(r.Gap()),
			ftoa(r.EvaluationsMean),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
