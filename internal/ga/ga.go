package ga

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"memeticFlowShop/internal/flowshop"
	"memeticFlowShop/internal/opt"
)

// ProgressFunc вызывается один раз за поколение: номер поколения (с 1) и
// лучшее найденное значение целевой функции.
type ProgressFunc func(generation, best int)

// Solver - меметический алгоритм для задачи flow-shop: генетический алгоритм
// с PMX, swap-мутацией, элитизмом и локальным поиском для части потомков.
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	OnGeneration ProgressFunc
	Logger       *slog.Logger
}

// New возвращает новый солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Все случайные решения принимаются последовательно на этом генераторе,
// поэтому результат при фиксированном сиде не зависит от Cfg.Workers.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

func (s *Solver) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// Solve - основной цикл поколений.
func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	// Проверка корректности входных данных и конфигурации
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	log := s.logger().With("instance", inst.Name, "jobs", inst.Jobs, "machines", inst.Machines)

	// Начальная популяция; значения целевой функции переносятся между
	// поколениями вместе с особями, так как оценка детерминирована
	pop := RandomPopulation(s.Cfg.Population, inst.Jobs, s.Rng)
	scores := make([]int, len(pop))
	if err := s.evaluate(eval, pop, scores, nil); err != nil {
		return opt.Result{}, err
	}

	best := newBestTracker(inst.Jobs)
	history := make([]int, 0, s.Cfg.Generations)

	finish := func(gens int, meta map[string]any) opt.Result {
		return best.result(eval.Evaluations(), gens, history, start, meta)
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Лучшее решение текущей популяции
		best.observe(pop, scores)

		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			log.Info("прервано", "generation", gen, "best", best.makespan)
			return finish(gen, map[string]any{"stopped": "context"}), err
		}

		pop, scores, err = s.nextGeneration(eval, pop, scores)
		if err != nil {
			return finish(gen, nil), err
		}

		history = append(history, best.makespan)
		log.Debug("поколение", "generation", gen+1, "best", best.makespan)
		if s.OnGeneration != nil {
			s.OnGeneration(gen+1, best.makespan)
		}
	}

	// Лучшее решение фиксируется только в начале поколения, поэтому
	// результат совпадает с последним значением OnGeneration
	res := finish(s.Cfg.Generations, map[string]any{
		"population":  s.Cfg.Population,
		"generations": s.Cfg.Generations,
		"elite":       s.Cfg.Elite,
		"local_rate":  s.Cfg.LocalSearchRate,
	})
	log.Info("завершено",
		"best", res.Makespan,
		"evaluations", res.Evaluations,
		"duration", res.Duration,
	)
	return res, nil
}

// nextGeneration строит следующее поколение из текущего: элита, турнирный
// отбор, PMX и мутация по парам, локальный поиск, замена худших потомков.
// Размер популяции сохраняется.
func (s *Solver) nextGeneration(
	eval *flowshop.Evaluator,
	pop [][]int,
	scores []int,
) ([][]int, []int, error) {
	popSize := len(pop)
	elite := s.Cfg.Elite

	// Сортировка индексов по возрастанию целевой функции (устойчивая)
	idxs := sortedIndices(scores, false)

	// Элитизм (переносим лучших особей без изменений)
	next := make([][]int, 0, popSize)
	nextScores := make([]int, 0, popSize)
	for e := 0; e < elite; e++ {
		next = append(next, flowshop.Clone(pop[idxs[e]]))
		nextScores = append(nextScores, scores[idxs[e]])
	}

	// Турнирный отбор родителей
	parents := SelectParents(scores, popSize, s.Cfg.TournamentSize, s.Rng)

	// Кроссовер и мутация по парам (2k, 2k+1)
	offspring := make([][]int, 0, popSize)
	for k := 0; k+1 < popSize; k += 2 {
		c1, c2 := PMX(pop[parents[k]], pop[parents[k+1]], s.Cfg.CrossoverRate, s.Rng)
		SwapMutate(c1, s.Cfg.MutationRate, s.Rng)
		SwapMutate(c2, s.Cfg.MutationRate, s.Rng)
		offspring = append(offspring, c1, c2)
	}

	// Решения о локальном поиске принимаются до параллельной части
	improve := make([]bool, len(offspring))
	for i := range improve {
		improve[i] = s.Rng.Float64() < s.Cfg.LocalSearchRate
	}

	offScores := make([]int, len(offspring))
	if err := s.evaluate(eval, offspring, offScores, improve); err != nil {
		return nil, nil, err
	}

	// Худшие потомки первыми; первые elite отбрасываются
	order := sortedIndices(offScores, true)
	for _, i := range order[elite:] {
		next = append(next, offspring[i])
		nextScores = append(nextScores, offScores[i])
	}
	return next, nextScores, nil
}

// evaluate заполняет scores; особи с improve[i] == true предварительно
// заменяются результатом локального поиска. Работа распределяется между
// Cfg.Workers горутинами, каждая особь обрабатывается независимо.
func (s *Solver) evaluate(eval *flowshop.Evaluator, perms [][]int, scores []int, improve []bool) error {
	task := func(i int) error {
		if improve != nil && improve[i] {
			better, ms, err := LocalSearch(eval, perms[i])
			if err != nil {
				return err
			}
			perms[i], scores[i] = better, ms
			return nil
		}
		ms, err := eval.Makespan(perms[i])
		if err != nil {
			return err
		}
		scores[i] = ms
		return nil
	}

	workers := s.Cfg.workers()
	if workers <= 1 {
		for i := range perms {
			if err := task(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range perms {
		i := i
		g.Go(func() error { return task(i) })
	}
	return g.Wait()
}

// sortedIndices возвращает индексы scores, устойчиво отсортированные по
// возрастанию (или убыванию при desc).
func sortedIndices(scores []int, desc bool) []int {
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		if desc {
			return scores[idxs[a]] > scores[idxs[b]]
		}
		return scores[idxs[a]] < scores[idxs[b]]
	})
	return idxs
}
