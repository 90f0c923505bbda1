package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
)

// Instance is an immutable processing-time matrix.
type Instance struct {
	Name     string
	Jobs     int
	Machines int
	// ProcTimes is machine-major: ProcTimes[machine*Jobs+job].
	// Length must be Jobs*Machines.
	ProcTimes []int
}

func NewInstance(jobs, machines int, procTimes []int) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, ProcTimes: procTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromMatrix builds an instance from rows of machines and columns of jobs.
// The matrix is copied.
func FromMatrix(times [][]int) (*Instance, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: no machines", ErrEmptyInstance)
	}
	jobs := len(times[0])
	if jobs == 0 {
		return nil, fmt.Errorf("%w: no jobs", ErrEmptyInstance)
	}
	pt := make([]int, 0, jobs*len(times))
	for m, row := range times {
		if len(row) != jobs {
			return nil, fmt.Errorf("%w: row %d has %d jobs, want %d", ErrConfiguration, m, len(row), jobs)
		}
		pt = append(pt, row...)
	}
	return NewInstance(jobs, len(times), pt)
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("%w: jobs must be > 0 (got %d)", ErrEmptyInstance, inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("%w: machines must be > 0 (got %d)", ErrEmptyInstance, inst.Machines)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf("%w: procTimes length must be jobs*machines=%d (got %d)",
			ErrConfiguration, inst.Jobs*inst.Machines, len(inst.ProcTimes))
	}
	for i, v := range inst.ProcTimes {
		if v < 0 {
			return fmt.Errorf("%w: procTimes[%d] must be >= 0 (got %d)", ErrConfiguration, i, v)
		}
	}
	return nil
}

func (inst *Instance) Time(machine, job int) int {
	return inst.ProcTimes[machine*inst.Jobs+job]
}

// Matrix returns a copy of the processing times, one row per machine.
func (inst *Instance) Matrix() [][]int {
	out := make([][]int, inst.Machines)
	for m := range out {
		out[m] = Clone(inst.ProcTimes[m*inst.Jobs : (m+1)*inst.Jobs])
	}
	return out
}

// TotalWork is the sum of all processing times.
func (inst *Instance) TotalWork() int {
	sum := 0
	for _, v := range inst.ProcTimes {
		sum += v
	}
	return sum
}

// LowerBound is the classic machine-based bound: for every machine, its load
// plus the shortest head before it and the shortest tail after it.
func (inst *Instance) LowerBound() int {
	lb := 0
	for m := 0; m < inst.Machines; m++ {
		load := 0
		minHead, minTail := -1, -1
		for j := 0; j < inst.Jobs; j++ {
			load += inst.Time(m, j)
			head, tail := 0, 0
			for k := 0; k < m; k++ {
				head += inst.Time(k, j)
			}
			for k := m + 1; k < inst.Machines; k++ {
				tail += inst.Time(k, j)
			}
			if minHead < 0 || head < minHead {
				minHead = head
			}
			if minTail < 0 || tail < minTail {
				minTail = tail
			}
		}
		if b := load + minHead + minTail; b > lb {
			lb = b
		}
	}
	return lb
}

func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("random source is nil")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	for i := range pt {
		pt[i] = minTime
		if span > 1 {
			pt[i] += rng.Intn(span)
		}
	}
	inst, err := NewInstance(jobs, machines, pt)
	if err != nil {
		panic(err)
	}
	inst.Name = fmt.Sprintf("random-%dx%d", jobs, machines)
	return inst
}
