package policies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/metrics"
)

const (
	ExplorationEpsilonGreedy = "epsilon-greedy"
	ExplorationSoftmax       = "softmax"
	ExplorationUniform       = "uniform"
)

var ErrInvalidConfig = errors.New("invalid learner config")

type LearnerConfig struct {
	Alpha        float64 `json:"alpha" yaml:"alpha"`
	Gamma        float64 `json:"gamma" yaml:"gamma"`
	Epsilon      float64 `json:"epsilon" yaml:"epsilon"`
	EpsilonDecay float64 `json:"epsilon_decay" yaml:"epsilon_decay"`
	EpsilonMin   float64 `json:"epsilon_min" yaml:"epsilon_min"`
	MaxEpisodes  int     `json:"max_episodes" yaml:"max_episodes"`
	// StepCap bounds the steps of one episode, 0 means twice the number of processes
	StepCap     int     `json:"step_cap" yaml:"step_cap"`
	Exploration string  `json:"exploration" yaml:"exploration"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	// StreakThreshold is the number of consecutive successful episodes after which
	// training stops early, 0 disables early stopping
	StreakThreshold int `json:"streak_threshold" yaml:"streak_threshold"`
}

func DefaultLearnerConfig() LearnerConfig {
	return LearnerConfig{
		Alpha:           0.1,
		Gamma:           0.9,
		Epsilon:         1.0,
		EpsilonDecay:    0.95,
		EpsilonMin:      0.05,
		MaxEpisodes:     300,
		StepCap:         0,
		Exploration:     ExplorationEpsilonGreedy,
		Temperature:     1.0,
		StreakThreshold: 5,
	}
}

func (c LearnerConfig) Validate() error {
	switch {
	case c.Alpha <= 0 || c.Alpha > 1:
		return fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidConfig, c.Alpha)
	case c.Gamma < 0 || c.Gamma > 1:
		return fmt.Errorf("%w: gamma %v not in [0, 1]", ErrInvalidConfig, c.Gamma)
	case c.Epsilon < 0 || c.Epsilon > 1:
		return fmt.Errorf("%w: epsilon %v not in [0, 1]", ErrInvalidConfig, c.Epsilon)
	case c.EpsilonDecay <= 0 || c.EpsilonDecay > 1:
		return fmt.Errorf("%w: epsilon decay %v not in (0, 1]", ErrInvalidConfig, c.EpsilonDecay)
	case c.EpsilonMin < 0 || c.EpsilonMin > 1:
		return fmt.Errorf("%w: epsilon floor %v not in [0, 1]", ErrInvalidConfig, c.EpsilonMin)
	case c.MaxEpisodes <= 0:
		return fmt.Errorf("%w: max episodes must be positive", ErrInvalidConfig)
	case c.StepCap < 0:
		return fmt.Errorf("%w: step cap must not be negative", ErrInvalidConfig)
	}
	switch c.Exploration {
	case "", ExplorationEpsilonGreedy, ExplorationSoftmax, ExplorationUniform:
	default:
		return fmt.Errorf("%w: unknown exploration %q", ErrInvalidConfig, c.Exploration)
	}
	return nil
}

// Training is the outcome of Learner.Train.
type Training struct {
	Table     *QTable
	Episodes  int
	Successes int
	// Converged is set when the stopping rule fired before the episode budget ran out
	Converged bool
	Epsilon   float64
	Elapsed   time.Duration
}

// Learner builds a QTable with tabular Q-learning.
type Learner struct {
	config   LearnerConfig
	policy   core.Policy
	stopping StoppingRule
	logger   *slog.Logger
	metrics  *metrics.Metrics
	progress func(EpisodeResult)
}

func NewLearner(config LearnerConfig, src erand.Source, opts ...Option) (*Learner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	policy := o.policy
	if policy == nil {
		switch config.Exploration {
		case ExplorationSoftmax:
			policy = NewSoftmaxPolicy(config.Temperature, src)
		case ExplorationUniform:
			policy = NewUniformPolicy(src)
		default:
			policy = NewEpsilonGreedyPolicy(src)
		}
	}
	stopping := o.stopping
	if stopping == nil {
		stopping = NewSuccessStreak(config.StreakThreshold)
	}
	return &Learner{
		config:   config,
		policy:   policy,
		stopping: stopping,
		logger:   o.logger,
		metrics:  o.metrics,
		progress: o.progress,
	}, nil
}

func (l *Learner) Config() LearnerConfig {
	return l.config
}

// StepCap returns the per episode step limit for an environment with n processes.
func (l *Learner) StepCap(n int) int {
	if l.config.StepCap > 0 {
		return l.config.StepCap
	}
	return 2 * n
}

// Train runs episodes against env until the stopping rule fires or the episode budget
// is exhausted. The context is only checked between episodes.
func (l *Learner) Train(ctx context.Context, env *core.Environment) (*Training, error) {
	start := time.Now()
	training := &Training{
		Table:   NewQTable(env.NumProcesses()),
		Epsilon: l.config.Epsilon,
	}
	l.stopping.Reset()

	for episode := 0; episode < l.config.MaxEpisodes; episode++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("training interrupted after %d episodes: %w", training.Episodes, err)
		}

		result := l.RunEpisode(env, training.Table, training.Epsilon)
		result.Episode = episode
		training.Episodes++
		training.Epsilon = max(training.Epsilon*l.config.EpsilonDecay, l.config.EpsilonMin)

		success := TerminalSuccess(result)
		if success {
			training.Successes++
		}
		l.metrics.ObserveEpisode(success, result.Steps)
		if l.progress != nil {
			l.progress(result)
		}
		l.logger.Debug("episode finished",
			"episode", episode,
			"steps", result.Steps,
			"reward", result.TotalReward,
			"terminal", result.Terminal,
			"epsilon", result.Epsilon,
		)

		if l.stopping.Observe(result) {
			training.Converged = true
			break
		}
	}

	training.Elapsed = time.Since(start)
	l.metrics.ObserveTraining(training.Episodes, training.Converged, training.Elapsed)
	l.logger.Info("training finished",
		"episodes", training.Episodes,
		"successes", training.Successes,
		"converged", training.Converged,
		"states", training.Table.Size(),
		"elapsed", training.Elapsed,
	)
	return training, nil
}

// RunEpisode plays one episode against env, updating table in place with the given
// exploration rate.
func (l *Learner) RunEpisode(env *core.Environment, table *QTable, epsilon float64) EpisodeResult {
	state := env.Reset()
	stepCap := l.StepCap(env.NumProcesses())
	result := EpisodeResult{Epsilon: epsilon}

	for result.Steps < stepCap && !result.Terminal {
		action := l.policy.PickAction(state, table.Row(state), epsilon)
		outcome := env.Step(action)
		l.update(table, state, action, outcome)

		result.Steps++
		result.TotalReward += outcome.Reward
		result.LastReward = outcome.Reward
		result.Terminal = outcome.Terminal
		state = outcome.Next
	}
	return result
}

// update applies Q(s,a) <- (1-alpha) Q(s,a) + alpha (r + gamma max Q(s'))
func (l *Learner) update(table *QTable, state core.State, action core.Action, outcome core.StepOutcome) {
	cur := table.Get(state, action)
	next := table.Max(outcome.Next)
	val := (1-l.config.Alpha)*cur + l.config.Alpha*(outcome.Reward+l.config.Gamma*next)
	table.Set(state, action, val)
}
