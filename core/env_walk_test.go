package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	erand "golang.org/x/exp/rand"
)

// walkModel tracks the expected allocation and availability next to an Environment.
type walkModel struct {
	maxDemand [][]int
	alloc     [][]int
	avail     []int
	finished  []bool
}

func newWalkModel(p *Problem) *walkModel {
	m := &walkModel{
		maxDemand: p.MaxDemand,
		alloc:     make([][]int, len(p.Allocation)),
		avail:     append([]int(nil), p.Available...),
		finished:  make([]bool, len(p.Allocation)),
	}
	for i, row := range p.Allocation {
		m.alloc[i] = append([]int(nil), row...)
	}
	return m
}

func (m *walkModel) fits(i int) bool {
	for j := range m.avail {
		if m.maxDemand[i][j]-m.alloc[i][j] > m.avail[j] {
			return false
		}
	}
	return true
}

// expect applies action i to the model and returns the reward the environment should give.
func (m *walkModel) expect(i int) float64 {
	if m.finished[i] {
		return RewardInvalid
	}
	if !m.fits(i) {
		return RewardUnsafe
	}
	for j := range m.avail {
		m.avail[j] += m.alloc[i][j]
		m.alloc[i][j] = 0
	}
	m.finished[i] = true
	for _, f := range m.finished {
		if !f {
			return RewardSafe
		}
	}
	return RewardComplete
}

func TestEnvironment_RandomWalks(t *testing.T) {
	rng := erand.New(erand.NewSource(11))
	for instance := 0; instance < 2000; instance++ {
		n, m := 1+rng.Intn(6), 1+rng.Intn(4)
		p := RandomProblem(rng, n, m)
		env := NewEnvironment(p)
		model := newWalkModel(p)

		for step := 0; step < 3*n; step++ {
			a := rng.Intn(n)
			wantSafe := !model.finished[a] && model.fits(a)
			require.Equal(t, wantSafe, !env.State().Finished(a) && env.IsSafe(Action(a)),
				"instance %d step %d action %d", instance, step, a)

			want := model.expect(a)
			out := env.Step(Action(a))
			require.Equal(t, want, out.Reward, "instance %d step %d action %d", instance, step, a)
			require.Equal(t, want == RewardComplete, out.Terminal)

			for j, v := range env.Available() {
				require.GreaterOrEqual(t, v, 0, "availability of resource %d went negative", j)
			}
			require.Equal(t, model.avail, env.Available())
			require.Equal(t, model.alloc, env.Allocation())
			if out.Terminal {
				break
			}
		}

		s := env.Reset()
		assert.Equal(t, InitialState(n), s)
		assert.Equal(t, p.Available, env.Available())
		assert.Equal(t, p.Allocation, env.Allocation())
	}
}

func TestEnvironment_ResetIsIdempotent(t *testing.T) {
	env := NewEnvironment(DefaultProblem())
	for _, a := range []Action{1, 3, 0, 4} {
		env.Step(a)
	}
	first := env.Reset()
	second := env.Reset()
	assert.Equal(t, first, second)
	assert.Equal(t, []int{3, 3, 2}, env.Available())
}

func TestEnvironment_IsSafeOutOfRange(t *testing.T) {
	env := NewEnvironment(DefaultProblem())
	assert.False(t, env.IsSafe(-1))
	assert.False(t, env.IsSafe(5))
	assert.True(t, env.IsSafe(1))
}
