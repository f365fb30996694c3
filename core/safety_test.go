package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeSequence_Default(t *testing.T) {
	seq, ok := SafeSequence(DefaultProblem())
	assert.True(t, ok)
	assert.Equal(t, []Action{1, 3, 4, 0, 2}, seq)
	assert.True(t, IsSafeOrder(DefaultProblem(), seq))
}

func TestSafeSequence_Unsafe(t *testing.T) {
	p := DefaultProblem()
	p.Available = []int{0, 0, 0}
	seq, ok := SafeSequence(p)
	assert.False(t, ok)
	assert.Empty(t, seq)
}

func TestSafeSequence_PartialProgress(t *testing.T) {
	p := &Problem{
		Allocation: [][]int{{1}, {0}},
		MaxDemand:  [][]int{{2}, {5}},
		Available:  []int{1},
	}
	seq, ok := SafeSequence(p)
	assert.False(t, ok)
	assert.Equal(t, []Action{0}, seq)
}

func TestIsSafeOrder(t *testing.T) {
	p := DefaultProblem()
	assert.True(t, IsSafeOrder(p, []Action{3, 1, 4, 2, 0}))
	assert.False(t, IsSafeOrder(p, []Action{0, 1, 2, 3, 4}), "P0 cannot run first")
	assert.False(t, IsSafeOrder(p, []Action{1, 3, 4, 0}), "incomplete order")
	assert.False(t, IsSafeOrder(p, []Action{1, 1, 3, 4, 0}), "repeated process")
	assert.False(t, IsSafeOrder(p, []Action{1, 3, 4, 0, 7}), "unknown process")
}

func TestIsSafeOrder_MatchesEnvironment(t *testing.T) {
	p := DefaultProblem()
	order := []Action{3, 1, 4, 2, 0}
	env := NewEnvironment(p)
	for _, a := range order {
		out := env.Step(a)
		assert.Greater(t, out.Reward, 0.0)
	}
	assert.True(t, env.State().AllFinished())
}
