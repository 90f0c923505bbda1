package ga

import (
	"math/rand"
	"reflect"
	"testing"

	"memeticFlowShop/internal/flowshop"
)

// permutationsOf enumerates every permutation of 0..n-1 in lexicographic order.
func permutationsOf(n int) [][]int {
	var out [][]int
	used := make([]bool, n)
	cur := make([]int, 0, n)
	var rec func()
	rec = func() {
		if len(cur) == n {
			out = append(out, flowshop.Clone(cur))
			return
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			cur = append(cur, v)
			rec()
			cur = cur[:len(cur)-1]
			used[v] = false
		}
	}
	rec()
	return out
}

func TestRandomPopulation(t *testing.T) {
	pop := RandomPopulation(10, 7, rand.New(rand.NewSource(1)))
	if len(pop) != 10 {
		t.Fatalf("len(pop) = %d, want 10", len(pop))
	}
	for i, p := range pop {
		if err := flowshop.ValidatePermutation(p, 7); err != nil {
			t.Errorf("individual %d: %v", i, err)
		}
	}

	// Соседние особи не должны разделять память
	pop[0] = append(pop[0], 99)
	if pop[1][0] == 99 {
		t.Error("append to one individual overwrote the next")
	}

	again := RandomPopulation(10, 7, rand.New(rand.NewSource(1)))
	if !reflect.DeepEqual(again[1:], pop[1:]) {
		t.Error("same seed produced a different population")
	}
}

func TestTournamentSelect_FullTournamentFindsMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	scores := []int{5, 1, 7}
	for i := 0; i < 200; i++ {
		// Три различных участника из трёх - всегда вся популяция
		if got := TournamentSelect(scores, 3, rng); got != 1 {
			t.Fatalf("draw %d: got index %d, want 1", i, got)
		}
	}
}

func TestTournamentSelect_ClampsToPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	scores := []int{9, 4}
	for i := 0; i < 50; i++ {
		if got := TournamentSelect(scores, 3, rng); got != 1 {
			t.Fatalf("got index %d, want 1", got)
		}
	}
}

func TestTournamentSelect_WorstNeverWinsLargeTournament(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	scores := []int{10, 20, 30, 40, 50, 60}
	counts := make([]int, len(scores))
	for i := 0; i < 2000; i++ {
		counts[TournamentSelect(scores, 3, rng)]++
	}
	// Двое худших не могут выиграть турнир из трёх различных участников
	if counts[4] != 0 || counts[5] != 0 {
		t.Errorf("worst individuals won: counts=%v", counts)
	}
	if counts[0] <= counts[1] || counts[1] <= counts[2] {
		t.Errorf("selection pressure not monotone: counts=%v", counts)
	}
}

func TestTournamentSelect_TiesUnbiased(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	scores := []int{5, 5, 5}
	counts := make([]int, len(scores))
	const draws = 3000
	for i := 0; i < draws; i++ {
		counts[TournamentSelect(scores, 2, rng)]++
	}
	// Каждая особь побеждает примерно в трети турниров
	for i, c := range counts {
		if c < draws/4 || c > draws*5/12 {
			t.Errorf("index %d won %d of %d ties: counts=%v", i, c, draws, counts)
		}
	}

	// Полный турнир из двух равных: без перемешивания всегда побеждал бы 0
	wins := 0
	for i := 0; i < 1000; i++ {
		if TournamentSelect([]int{7, 7}, 2, rng) == 1 {
			wins++
		}
	}
	if wins < 400 || wins > 600 {
		t.Errorf("index 1 won %d of 1000 ties, want about half", wins)
	}
}

func TestSelectParents(t *testing.T) {
	scores := []int{3, 1, 2, 8}
	parents := SelectParents(scores, 4, 3, rand.New(rand.NewSource(5)))
	if len(parents) != 4 {
		t.Fatalf("len(parents) = %d, want 4", len(parents))
	}
	for _, p := range parents {
		if p < 0 || p >= len(scores) {
			t.Errorf("parent index %d out of range", p)
		}
		if p == 3 {
			t.Error("worst individual selected from a tournament of three")
		}
	}
}

func TestPMXWithCuts_KnownExample(t *testing.T) {
	p1 := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	p2 := []int{4, 3, 7, 0, 2, 5, 6, 1, 8}
	c1, c2 := pmxWithCuts(p1, p2, 3, 6)

	want1 := []int{2, 0, 7, 3, 4, 5, 6, 1, 8}
	want2 := []int{3, 1, 4, 0, 2, 5, 6, 7, 8}
	if !reflect.DeepEqual(c1, want1) {
		t.Errorf("child1 = %v, want %v", c1, want1)
	}
	if !reflect.DeepEqual(c2, want2) {
		t.Errorf("child2 = %v, want %v", c2, want2)
	}
}

func TestPMXWithCuts_ExhaustiveClosure(t *testing.T) {
	const n = 4
	perms := permutationsOf(n)
	for _, p1 := range perms {
		for _, p2 := range perms {
			for a := 0; a < n; a++ {
				for b := a + 1; b < n; b++ {
					c1, c2 := pmxWithCuts(p1, p2, a, b)
					if !flowshop.IsPermutation(c1, n) || !flowshop.IsPermutation(c2, n) {
						t.Fatalf("p1=%v p2=%v cuts=[%d,%d]: children %v %v", p1, p2, a, b, c1, c2)
					}
					if !reflect.DeepEqual(c1[a:b+1], p1[a:b+1]) {
						t.Fatalf("child1 segment %v, want %v", c1[a:b+1], p1[a:b+1])
					}
					if !reflect.DeepEqual(c2[a:b+1], p2[a:b+1]) {
						t.Fatalf("child2 segment %v, want %v", c2[a:b+1], p2[a:b+1])
					}
				}
			}
		}
	}
}

func TestPMX_RandomClosure(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for trial := 0; trial < 500; trial++ {
		n := 2 + rng.Intn(30)
		p1, p2 := rng.Perm(n), rng.Perm(n)
		orig1, orig2 := flowshop.Clone(p1), flowshop.Clone(p2)

		c1, c2 := PMX(p1, p2, 1.0, rng)
		if !flowshop.IsPermutation(c1, n) || !flowshop.IsPermutation(c2, n) {
			t.Fatalf("trial %d: invalid children %v %v", trial, c1, c2)
		}
		if !reflect.DeepEqual(p1, orig1) || !reflect.DeepEqual(p2, orig2) {
			t.Fatalf("trial %d: parents modified", trial)
		}
	}
}

func TestPMX_PassThroughCopies(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p1, p2 := []int{0, 1, 2, 3}, []int{3, 2, 1, 0}
	c1, c2 := PMX(p1, p2, 0, rng)
	if !reflect.DeepEqual(c1, p1) || !reflect.DeepEqual(c2, p2) {
		t.Fatalf("rate 0: got %v %v, want parents", c1, c2)
	}
	c1[0] = 42
	if p1[0] != 0 {
		t.Error("pass-through child aliases its parent")
	}

	// Одна работа: точек разреза нет
	s1, s2 := PMX([]int{0}, []int{0}, 1, rng)
	if !reflect.DeepEqual(s1, []int{0}) || !reflect.DeepEqual(s2, []int{0}) {
		t.Errorf("single job: got %v %v", s1, s2)
	}
}

func TestSwapMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(8))

	p := []int{0, 1, 2, 3, 4}
	if SwapMutate(p, 0, rng) {
		t.Error("rate 0 reported a swap")
	}
	if !reflect.DeepEqual(p, []int{0, 1, 2, 3, 4}) {
		t.Errorf("rate 0 changed the individual: %v", p)
	}

	for trial := 0; trial < 200; trial++ {
		q := rng.Perm(6)
		before := flowshop.Clone(q)
		if !SwapMutate(q, 1, rng) {
			t.Fatal("rate 1 did not swap")
		}
		if !flowshop.IsPermutation(q, 6) {
			t.Fatalf("mutation broke the permutation: %v", q)
		}
		diff := 0
		for i := range q {
			if q[i] != before[i] {
				diff++
			}
		}
		if diff != 2 {
			t.Fatalf("%d positions changed, want 2 (%v -> %v)", diff, before, q)
		}
	}

	single := []int{0}
	if SwapMutate(single, 1, rng) {
		t.Error("swap reported on a single job")
	}
}

// bruteForceNeighbor перебирает окрестность обменов полным пересчётом.
func bruteForceNeighbor(eval *flowshop.Evaluator, perm []int) ([]int, int) {
	best := flowshop.Clone(perm)
	bestMs := eval.MustMakespan(perm)
	for i := 0; i < len(perm); i++ {
		for j := i + 1; j < len(perm); j++ {
			nb := flowshop.Clone(perm)
			nb[i], nb[j] = nb[j], nb[i]
			if ms := eval.MustMakespan(nb); ms < bestMs {
				best, bestMs = nb, ms
			}
		}
	}
	return best, bestMs
}

func TestLocalSearch_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for trial := 0; trial < 40; trial++ {
		inst := flowshop.RandomInstance(2+rng.Intn(10), 1+rng.Intn(5), 1, 50, rng)
		eval, _ := flowshop.NewEvaluator(inst)
		perm := rng.Perm(inst.Jobs)
		orig := flowshop.Clone(perm)

		got, gotMs, err := LocalSearch(eval, perm)
		if err != nil {
			t.Fatal(err)
		}
		want, wantMs := bruteForceNeighbor(eval, perm)

		if !reflect.DeepEqual(perm, orig) {
			t.Fatalf("trial %d: input modified", trial)
		}
		if gotMs != wantMs || !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: got %v (%d), want %v (%d)", trial, got, gotMs, want, wantMs)
		}
		if ms := eval.MustMakespan(got); ms != gotMs {
			t.Fatalf("trial %d: reported makespan %d, actual %d", trial, gotMs, ms)
		}
		if gotMs > eval.MustMakespan(orig) {
			t.Fatalf("trial %d: local search worsened %d -> %d", trial, eval.MustMakespan(orig), gotMs)
		}
	}
}

func TestLocalSearch_NoImprovementReturnsOriginal(t *testing.T) {
	inst, _ := flowshop.FromMatrix([][]int{{5, 2, 9, 1}})
	eval, _ := flowshop.NewEvaluator(inst)
	perm := []int{3, 1, 0, 2}
	got, ms, err := LocalSearch(eval, perm)
	if err != nil {
		t.Fatal(err)
	}
	if ms != 17 || !reflect.DeepEqual(got, perm) {
		t.Errorf("got %v (%d), want %v (17)", got, ms, perm)
	}
}

func TestLocalSearch_RejectsInvalid(t *testing.T) {
	inst, _ := flowshop.FromMatrix([][]int{{1, 2, 3}})
	eval, _ := flowshop.NewEvaluator(inst)
	if _, _, err := LocalSearch(eval, []int{0, 0, 1}); err == nil {
		t.Error("expected error for a duplicate job")
	}
}
