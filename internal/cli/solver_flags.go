package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"memeticFlowShop/internal/ga"
)

// solverFlags are the ga.Config knobs shared by solve and bench.
// Only flags set on the command line override the base config.
type solverFlags struct {
	pop, gen, elite, tour, workers int
	cx, mut, ls                    float64
}

func (f *solverFlags) register(fs *pflag.FlagSet) {
	d := ga.DefaultConfig()
	fs.IntVar(&f.pop, "pop", d.Population, "Population size (even)")
	fs.IntVar(&f.gen, "gen", d.Generations, "Number of generations")
	fs.IntVar(&f.elite, "elite", d.Elite, "Elite individuals kept each generation")
	fs.IntVar(&f.tour, "tour", d.TournamentSize, "Tournament size")
	fs.Float64Var(&f.cx, "cx", d.CrossoverRate, "Crossover probability")
	fs.Float64Var(&f.mut, "mut", d.MutationRate, "Mutation probability")
	fs.Float64Var(&f.ls, "ls", d.LocalSearchRate, "Local search probability per offspring")
	fs.IntVar(&f.workers, "workers", d.Workers, "Evaluation goroutines (0 = number of CPUs)")
}

func (f *solverFlags) apply(cmd *cobra.Command, cfg ga.Config) ga.Config {
	fs := cmd.Flags()
	if fs.Changed("pop") {
		cfg.Population = f.pop
	}
	if fs.Changed("gen") {
		cfg.Generations = f.gen
	}
	if fs.Changed("elite") {
		cfg.Elite = f.elite
	}
	if fs.Changed("tour") {
		cfg.TournamentSize = f.tour
	}
	if fs.Changed("cx") {
		cfg.CrossoverRate = f.cx
	}
	if fs.Changed("mut") {
		cfg.MutationRate = f.mut
	}
	if fs.Changed("ls") {
		cfg.LocalSearchRate = f.ls
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	return cfg
}
