package flowshop

import (
	"fmt"
	"sync/atomic"
)

// Makespan returns the completion time of the last job on the last machine.
//
// C[i][j] = max(C[i-1][j], C[i][j-1]) + T[i][perm[j]] is kept as one rolling
// row indexed by machine: after job j, row[i] holds C[i][j].
func Makespan(inst *Instance, perm []int) (int, error) {
	if inst == nil {
		return 0, fmt.Errorf("nil instance")
	}
	if err := ValidatePermutation(perm, inst.Jobs); err != nil {
		return 0, err
	}
	row := make([]int, inst.Machines)
	advance(inst, row, perm)
	return row[inst.Machines-1], nil
}

// advance schedules perm after the state held in row.
func advance(inst *Instance, row []int, perm []int) {
	n := inst.Jobs
	for _, job := range perm {
		row[0] += inst.ProcTimes[job]
		for m := 1; m < inst.Machines; m++ {
			left := row[m-1]
			up := row[m]
			if left > up {
				row[m] = left + inst.ProcTimes[m*n+job]
			} else {
				row[m] = up + inst.ProcTimes[m*n+job]
			}
		}
	}
}

// Evaluator wraps an instance and counts makespan computations.
// It holds no scratch state and is safe for concurrent use.
type Evaluator struct {
	inst  *Instance
	evals atomic.Int64
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

func (e *Evaluator) Instance() *Instance { return e.inst }

// Evaluations returns the number of makespans computed so far, prefix-based
// neighbour evaluations included.
func (e *Evaluator) Evaluations() int64 { return e.evals.Load() }

func (e *Evaluator) Makespan(perm []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	ms, err := Makespan(e.inst, perm)
	if err != nil {
		return 0, err
	}
	e.evals.Add(1)
	return ms, nil
}

func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// Prefix stores the completion rows of every prefix of one permutation.
// Not safe for concurrent use: MakespanFrom reuses a scratch row.
type Prefix struct {
	eval     *Evaluator
	machines int
	rows     []int // (Jobs+1) rows of Machines values; row k is the state after k jobs
	scratch  []int
}

// Prefix computes the prefix table of a valid permutation.
func (e *Evaluator) Prefix(perm []int) (*Prefix, error) {
	if err := ValidatePermutation(perm, e.inst.Jobs); err != nil {
		return nil, err
	}
	m := e.inst.Machines
	rows := make([]int, (len(perm)+1)*m)
	for k := range perm {
		cur := rows[(k+1)*m : (k+2)*m]
		copy(cur, rows[k*m:(k+1)*m])
		advance(e.inst, cur, perm[k:k+1])
	}
	e.evals.Add(1)
	return &Prefix{eval: e, machines: m, rows: rows, scratch: make([]int, m)}, nil
}

// Makespan of the permutation the table was built from.
func (p *Prefix) Makespan() int {
	return p.rows[len(p.rows)-1]
}

// MakespanFrom evaluates perm assuming its first start jobs equal those of
// the permutation the table was built from.
func (p *Prefix) MakespanFrom(perm []int, start int) int {
	copy(p.scratch, p.rows[start*p.machines:(start+1)*p.machines])
	advance(p.eval.inst, p.scratch, perm[start:])
	p.eval.evals.Add(1)
	return p.scratch[p.machines-1]
}
