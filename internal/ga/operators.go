package ga

import (
	"math/rand"

	"memeticFlowShop/internal/flowshop"
)

// initPermutation генерирует срез [0, 1, 2, ..., n-1].
// Используется как базовое состояние перед случайной перестановкой.
func initPermutation(p []int) {
	for i := range p {
		p[i] = i
	}
}

// shufflePermutation выполняет случайную перестановку элементов (Fisher-Yates).
func shufflePermutation(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// RandomPopulation создаёт size независимых случайных перестановок длины jobs.
// Особи лежат в общем буфере, но не пересекаются.
func RandomPopulation(size, jobs int, rng *rand.Rand) [][]int {
	backing := make([]int, size*jobs)
	perms := make([][]int, size)
	for i := 0; i < size; i++ {
		perms[i] = backing[i*jobs : (i+1)*jobs : (i+1)*jobs]
		initPermutation(perms[i])
		shufflePermutation(perms[i], rng)
	}
	return perms
}

// TournamentSelect реализует турнирный отбор без повторений внутри турнира.
// Участники выбираются алгоритмом Флойда (min(k, len(scores)) различных индексов)
// в случайном порядке; возвращается индекс участника с минимальным значением
// целевой функции, при равенстве побеждает стоящий раньше.
func TournamentSelect(scores []int, k int, rng *rand.Rand) int {
	n := len(scores)
	if k > n {
		k = n
	}
	drawn := make([]int, 0, k)
	contains := func(v int) bool {
		for _, d := range drawn {
			if d == v {
				return true
			}
		}
		return false
	}
	for j := n - k; j < n; j++ {
		t := rng.Intn(j + 1)
		if contains(t) {
			t = j
		}
		drawn = append(drawn, t)
	}
	// Флойд даёт равномерное множество, но не порядок: при коллизии j
	// всегда попадает в конец. Порядок важен для разрешения ничьих.
	shufflePermutation(drawn, rng)

	best := drawn[0]
	for _, cand := range drawn[1:] {
		if scores[cand] < scores[best] {
			best = cand
		}
	}
	return best
}

// SelectParents проводит count независимых турниров.
// Одна и та же особь может быть выбрана несколько раз.
func SelectParents(scores []int, count, k int, rng *rand.Rand) []int {
	parents := make([]int, count)
	for i := range parents {
		parents[i] = TournamentSelect(scores, k, rng)
	}
	return parents
}

// PMX реализует частично отображающий кроссовер (partially-mapped crossover).
// С вероятностью 1-rate возвращаются копии родителей.
// Родители не изменяются.
func PMX(p1, p2 []int, rate float64, rng *rand.Rand) ([]int, []int) {
	n := len(p1)
	if n < 2 || rng.Float64() >= rate {
		return flowshop.Clone(p1), flowshop.Clone(p2)
	}

	// Две различные точки разреза, a < b
	a := rng.Intn(n)
	b := rng.Intn(n - 1)
	if b >= a {
		b++
	}
	if a > b {
		a, b = b, a
	}
	return pmxWithCuts(p1, p2, a, b)
}

// pmxWithCuts - детерминированная часть PMX для отрезка [a, b] включительно.
func pmxWithCuts(p1, p2 []int, a, b int) ([]int, []int) {
	c1 := make([]int, len(p1))
	c2 := make([]int, len(p2))
	pmxChild(c1, p1, p2, a, b)
	pmxChild(c2, p2, p1, a, b)
	return c1, c2
}

// pmxChild копирует отрезок owner[a..b] в child, остальные позиции берутся из
// donor. Если ген донора уже есть в отрезке, он заменяется по цепочке
// owner[k] -> donor[k], пока не найдётся ген вне отрезка.
func pmxChild(child, owner, donor []int, a, b int) {
	// segPos[v] - позиция гена v в скопированном отрезке или -1
	segPos := make([]int, len(owner))
	for i := range segPos {
		segPos[i] = -1
	}
	for i := a; i <= b; i++ {
		child[i] = owner[i]
		segPos[owner[i]] = i
	}

	for i := range child {
		if i >= a && i <= b {
			continue
		}
		gene := donor[i]
		for segPos[gene] >= 0 {
			gene = donor[segPos[gene]]
		}
		child[i] = gene
	}
}

// SwapMutate реализует оператор мутации Swap: с вероятностью rate меняет
// местами две различные позиции. Возвращает true, если обмен произошёл.
func SwapMutate(p []int, rate float64, rng *rand.Rand) bool {
	if rng.Float64() >= rate || len(p) < 2 {
		return false
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
	return true
}

// LocalSearch - локальный поиск с наилучшим улучшением по окрестности обменов.
// Просматриваются все N(N-1)/2 пар позиций, каждый сосед сравнивается с
// исходной особью; за один вызов делается не более одного обмена.
// Исходный срез не изменяется.
func LocalSearch(eval *flowshop.Evaluator, perm []int) ([]int, int, error) {
	// Префикс до позиции i у соседа swap(i, j) совпадает с исходным
	prefix, err := eval.Prefix(perm)
	if err != nil {
		return nil, 0, err
	}
	bestMakespan := prefix.Makespan()
	bestI, bestJ := -1, -1

	neighbor := flowshop.Clone(perm)
	for i := 0; i < len(neighbor); i++ {
		for j := i + 1; j < len(neighbor); j++ {
			neighbor[i], neighbor[j] = neighbor[j], neighbor[i]
			ms := prefix.MakespanFrom(neighbor, i)
			if ms < bestMakespan {
				bestMakespan = ms
				bestI, bestJ = i, j
			}
			neighbor[i], neighbor[j] = neighbor[j], neighbor[i]
		}
	}

	out := flowshop.Clone(perm)
	if bestI >= 0 {
		out[bestI], out[bestJ] = out[bestJ], out[bestI]
	}
	return out, bestMakespan, nil
}
