package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	erand "golang.org/x/exp/rand"
)

func TestDefaultProblem_Valid(t *testing.T) {
	p := DefaultProblem()
	require.NoError(t, p.Validate())
	assert.Equal(t, 5, p.NumProcesses())
	assert.Equal(t, 3, p.NumResources())
	assert.Equal(t, []int{7, 4, 3}, p.Need(0))
	assert.Equal(t, []int{1, 2, 2}, p.Need(1))
}

func TestProblem_CopyIsDeep(t *testing.T) {
	p := DefaultProblem()
	c := p.Copy()
	c.Allocation[0][0] = 42
	c.Available[0] = 42
	assert.Equal(t, 0, p.Allocation[0][0])
	assert.Equal(t, 3, p.Available[0])
}

func TestProblem_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *Problem)
		err    error
	}{
		{"empty", func(p *Problem) { p.Allocation = nil }, ErrEmptyProblem},
		{"no resources", func(p *Problem) { p.Available = nil }, ErrEmptyProblem},
		{"row count", func(p *Problem) { p.MaxDemand = p.MaxDemand[:4] }, ErrDimensionMismatch},
		{"ragged allocation", func(p *Problem) { p.Allocation[2] = []int{1} }, ErrRaggedMatrix},
		{"ragged demand", func(p *Problem) { p.MaxDemand[2] = []int{9, 0, 2, 1} }, ErrRaggedMatrix},
		{"negative available", func(p *Problem) { p.Available[1] = -1 }, ErrNegativeValue},
		{"negative allocation", func(p *Problem) { p.Allocation[1][0] = -2 }, ErrNegativeValue},
		{"demand below allocation", func(p *Problem) { p.MaxDemand[1][0] = 1 }, ErrDemandBelowAllocation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultProblem()
			tc.mutate(p)
			assert.ErrorIs(t, p.Validate(), tc.err)
		})
	}
}

func TestProblem_ValidateTooManyProcesses(t *testing.T) {
	p := RandomProblem(erand.New(erand.NewSource(1)), MaxProcesses+1, 1)
	assert.ErrorIs(t, p.Validate(), ErrTooManyProcesses)
}

func TestRandomProblem_Shape(t *testing.T) {
	rng := erand.New(erand.NewSource(7))
	for i := 0; i < 50; i++ {
		p := RandomProblem(rng, 4, 2)
		require.NoError(t, p.Validate())
		for j := 0; j < 2; j++ {
			assert.GreaterOrEqual(t, p.Available[j], 1)
			assert.Less(t, p.Available[j], 5)
			for k := 0; k < 4; k++ {
				assert.Less(t, p.Allocation[k][j], 3)
				assert.Greater(t, p.MaxDemand[k][j], p.Allocation[k][j])
			}
		}
	}
}

func TestRandomProblem_Deterministic(t *testing.T) {
	a := RandomProblem(erand.New(erand.NewSource(3)), 5, 3)
	b := RandomProblem(erand.New(erand.NewSource(3)), 5, 3)
	assert.Equal(t, a, b)
}
