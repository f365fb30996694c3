package policies

import (
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/zeu5/bankers-rl/core"
)

// EpsilonGreedyPolicy explores uniformly with probability epsilon and otherwise picks
// the first action with the largest value.
type EpsilonGreedyPolicy struct {
	rand *erand.Rand
}

var _ core.Policy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(src erand.Source) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		rand: erand.New(src),
	}
}

func (e *EpsilonGreedyPolicy) PickAction(_ core.State, values []float64, epsilon float64) core.Action {
	if e.rand.Float64() < epsilon {
		return core.Action(e.rand.Intn(len(values)))
	}
	return core.Action(floats.MaxIdx(values))
}
