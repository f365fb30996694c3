package policies

import (
	"math"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/zeu5/bankers-rl/core"
)

// SoftmaxPolicy samples the next action according to the softmax of the values with
// a temperature. Epsilon is not used, exploration is governed by the temperature.
type SoftmaxPolicy struct {
	Temperature float64

	rand erand.Source
}

var _ core.Policy = &SoftmaxPolicy{}

func NewSoftmaxPolicy(temperature float64, src erand.Source) *SoftmaxPolicy {
	return &SoftmaxPolicy{
		Temperature: temperature,
		rand:        src,
	}
}

func (s *SoftmaxPolicy) PickAction(_ core.State, values []float64, _ float64) core.Action {
	temp := s.Temperature
	if temp <= 0 {
		temp = 1
	}
	largest := floats.Max(values)

	// Normalizing against the largest value keeps exp from overflowing
	weights := make([]float64, len(values))
	for i, v := range values {
		weights[i] = math.Exp((v - largest) / temp)
	}
	floats.Scale(1/floats.Sum(weights), weights)

	i, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		return core.Action(floats.MaxIdx(values))
	}
	return core.Action(i)
}
