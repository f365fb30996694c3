package policies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/core"
)

func TestLearnerConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultLearnerConfig().Validate())

	cases := map[string]func(c *LearnerConfig){
		"alpha":       func(c *LearnerConfig) { c.Alpha = 0 },
		"gamma":       func(c *LearnerConfig) { c.Gamma = 1.5 },
		"epsilon":     func(c *LearnerConfig) { c.Epsilon = -0.1 },
		"decay":       func(c *LearnerConfig) { c.EpsilonDecay = 0 },
		"floor":       func(c *LearnerConfig) { c.EpsilonMin = 2 },
		"episodes":    func(c *LearnerConfig) { c.MaxEpisodes = 0 },
		"step cap":    func(c *LearnerConfig) { c.StepCap = -1 },
		"exploration": func(c *LearnerConfig) { c.Exploration = "greedy" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := DefaultLearnerConfig()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

			_, err := NewLearner(c, erand.NewSource(1))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLearner_StepCap(t *testing.T) {
	l, err := NewLearner(DefaultLearnerConfig(), erand.NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, 10, l.StepCap(5))

	c := DefaultLearnerConfig()
	c.StepCap = 20
	l, err = NewLearner(c, erand.NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, 20, l.StepCap(5))
}

func TestLearner_UpdateRule(t *testing.T) {
	l, err := NewLearner(DefaultLearnerConfig(), erand.NewSource(1))
	require.NoError(t, err)

	q := NewQTable(5)
	s := core.InitialState(5)
	next := s.With(1)
	q.Set(next, 3, 20)
	q.Set(s, 1, 2)

	l.update(q, s, 1, core.StepOutcome{Next: next, Reward: core.RewardSafe})
	// 0.9*2 + 0.1*(10 + 0.9*20)
	assert.InDelta(t, 4.6, q.Get(s, 1), 1e-9)
}

func TestLearner_RunEpisodeRespectsStepCap(t *testing.T) {
	p := core.DefaultProblem()
	p.Available = []int{0, 0, 0}
	l, err := NewLearner(DefaultLearnerConfig(), erand.NewSource(1))
	require.NoError(t, err)

	q := NewQTable(5)
	r := l.RunEpisode(core.NewEnvironment(p), q, 1)
	assert.Equal(t, 10, r.Steps)
	assert.False(t, r.Terminal)
	assert.False(t, TerminalSuccess(r))
	assert.Equal(t, 1, q.Size(), "only the initial state is ever visited")
	assert.Equal(t, 10*core.RewardUnsafe, r.TotalReward)
}

func TestLearner_TrainDecaysEpsilon(t *testing.T) {
	c := DefaultLearnerConfig()
	c.MaxEpisodes = 100
	c.StreakThreshold = 0

	var seen []EpisodeResult
	l, err := NewLearner(c, erand.NewSource(1), WithProgress(func(r EpisodeResult) {
		seen = append(seen, r)
	}))
	require.NoError(t, err)

	training, err := l.Train(context.Background(), core.NewEnvironment(core.DefaultProblem()))
	require.NoError(t, err)
	assert.Equal(t, 100, training.Episodes)
	assert.False(t, training.Converged)
	assert.Equal(t, c.EpsilonMin, training.Epsilon)

	require.Len(t, seen, 100)
	assert.Equal(t, 0, seen[0].Episode)
	assert.Equal(t, 1.0, seen[0].Epsilon)
	assert.InDelta(t, 0.95, seen[1].Epsilon, 1e-9)
	for i := 1; i < len(seen); i++ {
		assert.LessOrEqual(t, seen[i].Epsilon, seen[i-1].Epsilon)
		assert.GreaterOrEqual(t, seen[i].Epsilon, c.EpsilonMin)
	}
}

func TestLearner_TrainLearnsSafeSequence(t *testing.T) {
	c := DefaultLearnerConfig()
	c.StreakThreshold = 0
	p := core.DefaultProblem()

	successes := 0
	for seed := uint64(1); seed <= 20; seed++ {
		l, err := NewLearner(c, erand.NewSource(seed))
		require.NoError(t, err)
		training, err := l.Train(context.Background(), core.NewEnvironment(p))
		require.NoError(t, err)
		require.Equal(t, c.MaxEpisodes, training.Episodes)

		eval := NewEvaluator(erand.NewSource(seed)).Evaluate(core.NewEnvironment(p), training.Table, 0)
		if eval.Success {
			successes++
			assert.True(t, core.IsSafeOrder(p, eval.Sequence))
		}
	}
	assert.GreaterOrEqual(t, successes, 18)
}

func TestLearner_TrainStopsEarly(t *testing.T) {
	converged := 0
	for seed := uint64(1); seed <= 10; seed++ {
		l, err := NewLearner(DefaultLearnerConfig(), erand.NewSource(seed))
		require.NoError(t, err)
		training, err := l.Train(context.Background(), core.NewEnvironment(core.DefaultProblem()))
		require.NoError(t, err)
		if training.Converged {
			converged++
			assert.LessOrEqual(t, training.Episodes, DefaultLearnerConfig().MaxEpisodes)
			assert.GreaterOrEqual(t, training.Successes, DefaultLearnerConfig().StreakThreshold)
		}
	}
	assert.GreaterOrEqual(t, converged, 8)
}

type stopAfter struct {
	n, seen int
}

func (s *stopAfter) Observe(EpisodeResult) bool {
	s.seen++
	return s.seen >= s.n
}

func (s *stopAfter) Reset() { s.seen = 0 }

func TestLearner_CustomStoppingRuleAndPolicy(t *testing.T) {
	l, err := NewLearner(DefaultLearnerConfig(), erand.NewSource(1),
		WithStoppingRule(&stopAfter{n: 3}),
		WithPolicy(NewUniformPolicy(erand.NewSource(2))),
	)
	require.NoError(t, err)

	training, err := l.Train(context.Background(), core.NewEnvironment(core.DefaultProblem()))
	require.NoError(t, err)
	assert.Equal(t, 3, training.Episodes)
	assert.True(t, training.Converged)
}

func TestLearner_TrainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l, err := NewLearner(DefaultLearnerConfig(), erand.NewSource(1))
	require.NoError(t, err)
	_, err = l.Train(ctx, core.NewEnvironment(core.DefaultProblem()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLearner_Explorations(t *testing.T) {
	for _, exp := range []string{ExplorationEpsilonGreedy, ExplorationSoftmax, ExplorationUniform} {
		t.Run(exp, func(t *testing.T) {
			c := DefaultLearnerConfig()
			c.Exploration = exp
			c.MaxEpisodes = 20
			l, err := NewLearner(c, erand.NewSource(1))
			require.NoError(t, err)
			training, err := l.Train(context.Background(), core.NewEnvironment(core.DefaultProblem()))
			require.NoError(t, err)
			assert.Positive(t, training.Table.Size())
		})
	}
}
