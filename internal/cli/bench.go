package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"memeticFlowShop/internal/bench"
	"memeticFlowShop/internal/config"
	"memeticFlowShop/internal/store"
)

func newBenchCmd() *cobra.Command {
	var (
		out           string
		pairs         string
		algos         string
		runs          int
		seed          int64
		instanceSeed  int64
		perRunTimeout time.Duration
		parallel      int
		configPath    string
		dbPath        string
		sf            solverFlags
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark solvers on random instances",
		Long: `Bench runs every algorithm several times on random instances of the
given sizes and writes per-case statistics (best, mean and spread of the
makespan and run time, gap to the lower bound) to a CSV file.`,
		Example: `  flowshop bench --pairs 20x5,50x10 --runs 10 --gen 200
  flowshop bench --algos MA --parallel 4 --db results.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs <= 0 {
				return fmt.Errorf("--runs must be > 0 (got %d)", runs)
			}

			file := config.Default()
			if configPath != "" {
				var err error
				if file, err = config.Load(configPath); err != nil {
					return err
				}
				useFileLogging(cmd, file)
			}
			cfg := sf.apply(cmd, file.GAConfig())
			if err := cfg.Validate(); err != nil {
				return err
			}

			cases, err := bench.ParseCases(pairs, instanceSeed)
			if err != nil {
				return err
			}

			// Concurrent runs already fill the CPUs.
			if parallel > 1 && !cmd.Flags().Changed("workers") {
				cfg.Workers = 1
			}

			known, err := bench.DefaultAlgorithms(cfg, logger)
			if err != nil {
				return err
			}
			var selected []bench.Algorithm
			for _, name := range bench.SplitCSV(algos) {
				a, ok := known[name]
				if !ok {
					return fmt.Errorf("unknown algorithm %q (known: %s)", name, knownNames(known))
				}
				selected = append(selected, a)
			}
			if len(selected) == 0 {
				return fmt.Errorf("no algorithms selected")
			}

			runner := bench.Runner{
				Runs:          runs,
				BaseSeed:      seed,
				PerRunTimeout: perRunTimeout,
				Parallel:      parallel,
			}

			host := bench.HostInfo()
			logger.Info("host",
				"platform", host.Platform,
				"cpu", host.CPU,
				"cores", host.Cores,
				"ram", host.RAM,
			)

			ctx := cmd.Context()
			var records []bench.Record
			for _, c := range cases {
				for _, a := range selected {
					logger.Info("case", "algo", a.Name, "jobs", c.Jobs, "machines", c.Machines, "runs", runs)
					rec, err := runner.RunCase(ctx, c, a)
					if err != nil {
						return fmt.Errorf("%s %dx%d: %w", a.Name, c.Jobs, c.Machines, err)
					}
					records = append(records, rec)
					fmt.Fprintf(cmd.OutOrStdout(), "%-3s %4dx%-3d best=%d mean=%.1f lb=%d gap=%.2f%% evals=%s time=%.1fms\n",
						rec.Algo, rec.Jobs, rec.Machines,
						rec.MakespanBest, rec.MakespanMean, rec.LowerBound, rec.Gap(),
						humanize.Comma(int64(rec.EvaluationsMean)), rec.TimeMeanMs,
					)
				}
			}

			if err := bench.WriteCSV(out, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", out)

			if dbPath != "" {
				st, err := store.NewSQLiteStore(dbPath, logger)
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.Migrate(ctx); err != nil {
					return err
				}
				id, err := st.SaveBenchmark(ctx, host, records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded:    %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "results/results.csv", "CSV output path")
	cmd.Flags().StringVar(&pairs, "pairs", "20x5,50x10", "Instance sizes as JOBSxMACHINES, comma separated")
	cmd.Flags().StringVar(&algos, "algos", "MA,GA", "Algorithms to run (MA, GA)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Runs per case")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Seed of the first run; run i uses seed+i")
	cmd.Flags().Int64Var(&instanceSeed, "instance-seed", 1000, "Base seed for instance generation")
	cmd.Flags().DurationVar(&perRunTimeout, "per-run-timeout", 0, "Time limit per run (0 = none)")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "Concurrent runs per case")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Run file (YAML); flags override it")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to record the benchmark in")
	sf.register(cmd.Flags())

	return cmd
}

func knownNames(m map[string]bench.Algorithm) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprint(names)
}
