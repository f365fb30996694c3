package core

import (
	"errors"
	"fmt"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/util"
)

var (
	ErrEmptyProblem          = errors.New("problem has no processes or resources")
	ErrRaggedMatrix          = errors.New("matrix rows have inconsistent lengths")
	ErrDimensionMismatch     = errors.New("problem dimensions do not match")
	ErrNegativeValue         = errors.New("negative resource count")
	ErrDemandBelowAllocation = errors.New("max demand below current allocation")
	ErrTooManyProcesses      = errors.New("too many processes")
)

// Problem is a Banker's algorithm instance: what each process holds, what it may
// ever request and what is currently free.
type Problem struct {
	Allocation [][]int `json:"allocation" yaml:"allocation"`
	MaxDemand  [][]int `json:"max_demand" yaml:"max_demand"`
	Available  []int   `json:"available" yaml:"available"`
}

// DefaultProblem returns the classic five process, three resource instance.
func DefaultProblem() *Problem {
	return &Problem{
		Allocation: [][]int{{0, 1, 0}, {2, 0, 0}, {3, 0, 2}, {2, 1, 1}, {0, 0, 2}},
		MaxDemand:  [][]int{{7, 5, 3}, {3, 2, 2}, {9, 0, 2}, {2, 2, 2}, {4, 3, 3}},
		Available:  []int{3, 3, 2},
	}
}

// RandomProblem samples an instance with allocations in [0,3), max demand exceeding
// the allocation by [1,4) and availability in [1,5) per resource.
func RandomProblem(rng *erand.Rand, n, m int) *Problem {
	p := &Problem{
		Allocation: make([][]int, n),
		MaxDemand:  make([][]int, n),
		Available:  make([]int, m),
	}
	for i := 0; i < n; i++ {
		p.Allocation[i] = make([]int, m)
		p.MaxDemand[i] = make([]int, m)
		for j := 0; j < m; j++ {
			p.Allocation[i][j] = rng.Intn(3)
			p.MaxDemand[i][j] = p.Allocation[i][j] + 1 + rng.Intn(3)
		}
	}
	for j := 0; j < m; j++ {
		p.Available[j] = 1 + rng.Intn(4)
	}
	return p
}

func (p *Problem) NumProcesses() int {
	return len(p.Allocation)
}

func (p *Problem) NumResources() int {
	return len(p.Available)
}

// Need returns MaxDemand[i] - Allocation[i].
func (p *Problem) Need(i int) []int {
	need := make([]int, len(p.Available))
	for j := range need {
		need[j] = p.MaxDemand[i][j] - p.Allocation[i][j]
	}
	return need
}

func (p *Problem) Copy() *Problem {
	return &Problem{
		Allocation: util.CopyIntMatrix(p.Allocation),
		MaxDemand:  util.CopyIntMatrix(p.MaxDemand),
		Available:  util.CopyIntSlice(p.Available),
	}
}

// Validate checks the shape and values of the instance. Environments assume a valid
// problem and do not repeat these checks.
func (p *Problem) Validate() error {
	n, m := len(p.Allocation), len(p.Available)
	if n == 0 || m == 0 {
		return ErrEmptyProblem
	}
	if n > MaxProcesses {
		return fmt.Errorf("%w: %d > %d", ErrTooManyProcesses, n, MaxProcesses)
	}
	if len(p.MaxDemand) != n {
		return fmt.Errorf("%w: %d allocation rows, %d max demand rows", ErrDimensionMismatch, n, len(p.MaxDemand))
	}
	for j, v := range p.Available {
		if v < 0 {
			return fmt.Errorf("%w: available[%d] = %d", ErrNegativeValue, j, v)
		}
	}
	for i := 0; i < n; i++ {
		if len(p.Allocation[i]) != m {
			return fmt.Errorf("%w: allocation row %d has %d columns, want %d", ErrRaggedMatrix, i, len(p.Allocation[i]), m)
		}
		if len(p.MaxDemand[i]) != m {
			return fmt.Errorf("%w: max demand row %d has %d columns, want %d", ErrRaggedMatrix, i, len(p.MaxDemand[i]), m)
		}
		for j := 0; j < m; j++ {
			if p.Allocation[i][j] < 0 {
				return fmt.Errorf("%w: allocation[%d][%d] = %d", ErrNegativeValue, i, j, p.Allocation[i][j])
			}
			if p.MaxDemand[i][j] < 0 {
				return fmt.Errorf("%w: max demand[%d][%d] = %d", ErrNegativeValue, i, j, p.MaxDemand[i][j])
			}
			if p.MaxDemand[i][j] < p.Allocation[i][j] {
				return fmt.Errorf("%w: process %d resource %d", ErrDemandBelowAllocation, i, j)
			}
		}
	}
	return nil
}
