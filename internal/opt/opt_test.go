package opt

import (
	"errors"
	"testing"

	"memeticFlowShop/internal/flowshop"
)

func TestResultCheck(t *testing.T) {
	inst, err := flowshop.FromMatrix([][]int{{3, 2, 4}, {1, 5, 2}})
	if err != nil {
		t.Fatal(err)
	}

	if err := (Result{Permutation: []int{1, 0, 2}, Makespan: 11}).Check(inst); err != nil {
		t.Errorf("valid result: %v", err)
	}
	if err := (Result{Permutation: []int{1, 0, 2}, Makespan: 10}).Check(inst); err == nil {
		t.Error("expected error for a wrong makespan")
	}
	err = (Result{Permutation: []int{1, 1, 2}, Makespan: 11}).Check(inst)
	if !errors.Is(err, flowshop.ErrInvalidPermutation) {
		t.Errorf("got %v, want ErrInvalidPermutation", err)
	}
}

func TestResultGap(t *testing.T) {
	tests := []struct {
		makespan, lb int
		want         float64
	}{
		{110, 100, 10},
		{100, 100, 0},
		{50, 0, 0},
	}
	for _, tt := range tests {
		if got := (Result{Makespan: tt.makespan}).Gap(tt.lb); got != tt.want {
			t.Errorf("Gap(%d) with makespan %d = %v, want %v", tt.lb, tt.makespan, got, tt.want)
		}
	}
}
