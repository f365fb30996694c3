package policies

import (
	"log/slog"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/metrics"
)

// Evaluator replays the greedy policy of a QTable. States missing from the table fall
// back to a uniformly random action.
type Evaluator struct {
	rand    *erand.Rand
	name    string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewEvaluator(src erand.Source, opts ...Option) *Evaluator {
	o := newOptions(opts)
	return &Evaluator{
		rand:    erand.New(src),
		name:    o.name,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// DefaultMaxSteps is the evaluation budget used when none is given.
func DefaultMaxSteps(n int) int {
	return 2 * n
}

// Evaluate resets env and follows table greedily for at most maxSteps steps. A
// maxSteps of zero or less means DefaultMaxSteps. The table is never modified.
func (e *Evaluator) Evaluate(env *core.Environment, table *QTable, maxSteps int) *core.Evaluation {
	n := env.NumProcesses()
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps(n)
	}
	eval := &core.Evaluation{
		Sequence: make([]core.Action, 0, n),
		Trace:    core.NewTrace(),
	}

	state := env.Reset()
EvalLoop:
	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			eval.Status = core.StatusTimeout
			break
		}

		action, ok := table.Argmax(state)
		if !ok {
			action = core.Action(e.rand.Intn(n))
		}
		eval.Sequence = append(eval.Sequence, action)
		outcome := env.Step(action)
		eval.Trace.AddStep(&core.Step{State: state, Action: action, Outcome: outcome})

		switch {
		case outcome.Reward == core.RewardInvalid:
			eval.Status = core.StatusInvalidMove
			break EvalLoop
		case outcome.Reward == core.RewardUnsafe:
			eval.Status = core.StatusDeadlock
			break EvalLoop
		case outcome.Terminal && outcome.Reward > 0:
			eval.Status = core.StatusSuccess
			eval.Success = true
			break EvalLoop
		}
		state = outcome.Next
	}

	e.metrics.ObserveEvaluation(e.name, eval.Status)
	e.logger.Debug("evaluation finished",
		"policy", e.name,
		"status", eval.Status,
		"sequence", eval.Sequence,
	)
	return eval
}
