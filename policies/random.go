package policies

import (
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/core"
)

// UniformPolicy ignores the values and picks any process with equal probability.
type UniformPolicy struct {
	rand *erand.Rand
}

var _ core.Policy = &UniformPolicy{}

func NewUniformPolicy(src erand.Source) *UniformPolicy {
	return &UniformPolicy{
		rand: erand.New(src),
	}
}

func (u *UniformPolicy) PickAction(_ core.State, values []float64, _ float64) core.Action {
	return core.Action(u.rand.Intn(len(values)))
}
