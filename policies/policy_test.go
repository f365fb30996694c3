package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/core"
)

func pickCounts(p core.Policy, values []float64, epsilon float64, n int) map[core.Action]int {
	counts := make(map[core.Action]int)
	s := core.InitialState(len(values))
	for i := 0; i < n; i++ {
		counts[p.PickAction(s, values, epsilon)]++
	}
	return counts
}

func TestEpsilonGreedy_Greedy(t *testing.T) {
	p := NewEpsilonGreedyPolicy(erand.NewSource(1))
	counts := pickCounts(p, []float64{0, 3, 3, -1}, 0, 100)
	assert.Equal(t, map[core.Action]int{1: 100}, counts)
}

func TestEpsilonGreedy_Explores(t *testing.T) {
	p := NewEpsilonGreedyPolicy(erand.NewSource(1))
	counts := pickCounts(p, []float64{0, 3, 3, -1}, 1, 1000)
	assert.Len(t, counts, 4)
}

func TestUniform_CoversAllActions(t *testing.T) {
	p := NewUniformPolicy(erand.NewSource(2))
	counts := pickCounts(p, []float64{100, 0, 0}, 0, 600)
	assert.Len(t, counts, 3)
	for _, c := range counts {
		assert.InDelta(t, 200, c, 60)
	}
}

func TestSoftmax_PrefersLargerValues(t *testing.T) {
	p := NewSoftmaxPolicy(1, erand.NewSource(3))
	counts := pickCounts(p, []float64{0, 10, -100}, 0, 500)
	assert.Greater(t, counts[1], 450)
	assert.Zero(t, counts[2])
}

func TestSoftmax_HighTemperatureSpreads(t *testing.T) {
	p := NewSoftmaxPolicy(1000, erand.NewSource(4))
	counts := pickCounts(p, []float64{0, 10, -10}, 0, 900)
	assert.Len(t, counts, 3)
}

func TestSoftmax_NoOverflow(t *testing.T) {
	p := NewSoftmaxPolicy(0, erand.NewSource(5))
	counts := pickCounts(p, []float64{1e6, 1e6 - 1000}, 0, 50)
	assert.Equal(t, 50, counts[0])
}
