package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"memeticFlowShop/internal/config"
	"memeticFlowShop/internal/flowshop"
	"memeticFlowShop/internal/ga"
	"memeticFlowShop/internal/store"
)

func newSolveCmd() *cobra.Command {
	var (
		instancePath string
		configPath   string
		demo         bool
		seed         int64
		logEvery     int
		timeout      time.Duration
		dbPath       string
		sf           solverFlags
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one flowshop instance",
		Long: `Solve reads an instance (YAML or JSON with a processing_times matrix,
one row per machine) and prints the best makespan and job order found.`,
		Example: `  flowshop solve --demo --gen 200
  flowshop solve --instance ta001.yaml --config run.yaml --seed 7 --db results.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if demo == (instancePath != "") {
				return errors.New("exactly one of --instance or --demo is required")
			}

			file := config.Default()
			if configPath != "" {
				var err error
				if file, err = config.Load(configPath); err != nil {
					return err
				}
				useFileLogging(cmd, file)
			}
			if cmd.Flags().Changed("seed") {
				file.Seed = seed
			}
			cfg := sf.apply(cmd, file.GAConfig())
			if err := cfg.Validate(); err != nil {
				return err
			}

			inst := demoInstance()
			if instancePath != "" {
				var err error
				if inst, err = flowshop.LoadInstance(instancePath); err != nil {
					return err
				}
			}

			solver, err := ga.New(cfg, rand.New(rand.NewSource(file.Seed)))
			if err != nil {
				return err
			}
			solver.Logger = logger
			if logEvery > 0 {
				solver.OnGeneration = func(generation, best int) {
					if generation%logEvery == 0 || generation == cfg.Generations {
						logger.Info("progress", "generation", generation, "of", cfg.Generations, "best", best)
					}
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			res, solveErr := solver.Solve(ctx, inst)
			if solveErr != nil && !errors.Is(solveErr, context.DeadlineExceeded) {
				return solveErr
			}
			if solveErr != nil {
				logger.Warn("time limit reached", "generation", res.Iterations, "timeout", timeout)
			}

			lb := inst.LowerBound()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Instance:    %s (%d jobs x %d machines)\n", inst.Name, inst.Jobs, inst.Machines)
			fmt.Fprintf(out, "Makespan:    %d\n", res.Makespan)
			fmt.Fprintf(out, "Lower bound: %d (gap %.2f%%)\n", lb, res.Gap(lb))
			fmt.Fprintf(out, "Permutation: %s\n", formatPerm(res.Permutation))
			fmt.Fprintf(out, "Generations: %d, evaluations: %s, time: %s\n",
				res.Iterations, humanize.Comma(int64(res.Evaluations)), res.Duration.Round(time.Millisecond))

			if dbPath != "" {
				id, err := recordSolve(ctx, dbPath, store.SolveRecord{
					Instance:    inst.Name,
					Jobs:        inst.Jobs,
					Machines:    inst.Machines,
					Seed:        file.Seed,
					Makespan:    res.Makespan,
					Permutation: res.Permutation,
					Generations: res.Iterations,
					Evaluations: res.Evaluations,
					Duration:    res.Duration,
					Config:      configMeta(cfg),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Recorded:    %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&instancePath, "instance", "i", "", "Instance file (YAML or JSON)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Solve the built-in 20x5 demo instance")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Run file (YAML); flags override it")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&logEvery, "log-every", 50, "Log progress every N generations (0 = off)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop after this long and report the best so far (0 = no limit)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to record the result in")
	sf.register(cmd.Flags())

	return cmd
}

func recordSolve(ctx context.Context, dbPath string, rec store.SolveRecord) (string, error) {
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		return "", err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return "", err
	}
	return st.SaveSolve(ctx, rec)
}

func configMeta(cfg ga.Config) map[string]any {
	return map[string]any{
		"population":        cfg.Population,
		"generations":       cfg.Generations,
		"elite":             cfg.Elite,
		"tournament_size":   cfg.TournamentSize,
		"crossover_rate":    cfg.CrossoverRate,
		"mutation_rate":     cfg.MutationRate,
		"local_search_rate": cfg.LocalSearchRate,
	}
}

func formatPerm(perm []int) string {
	parts := make([]string, len(perm))
	for i, j := range perm {
		parts[i] = fmt.Sprint(j)
	}
	return strings.Join(parts, " ")
}
