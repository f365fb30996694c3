package arena

import (
	"time"

	"github.com/google/uuid"

	"github.com/zeu5/bankers-rl/core"
)

const (
	OfflinePolicy = "offline"
	OnlinePolicy  = "online"
)

// Result is one side of a comparison.
type Result struct {
	Policy   string        `json:"policy"`
	Success  bool          `json:"success"`
	Status   core.Status   `json:"status"`
	Sequence []core.Action `json:"sequence"`
	// Elapsed includes training time for the online policy
	Elapsed time.Duration `json:"elapsed"`
	// Episodes and Converged are only set for the online policy
	Episodes  int         `json:"episodes,omitempty"`
	Converged bool        `json:"converged,omitempty"`
	Trace     *core.Trace `json:"-"`
}

func newResult(policy string, eval *core.Evaluation, elapsed time.Duration) *Result {
	return &Result{
		Policy:   policy,
		Success:  eval.Success,
		Status:   eval.Status,
		Sequence: eval.Sequence,
		Elapsed:  elapsed,
		Trace:    eval.Trace,
	}
}

// Comparison pairs the offline and online results on the same instance.
type Comparison struct {
	ID   uuid.UUID `json:"id"`
	Seed uint64    `json:"seed"`
	// ProblemHash identifies the instance across comparisons
	ProblemHash string        `json:"problem_hash"`
	Problem     *core.Problem `json:"problem"`
	Offline     *Result       `json:"offline"`
	Online      *Result       `json:"online"`
}

// Runs flattens the comparison for the analyzers.
func (c *Comparison) Runs() []*core.Run {
	runs := make([]*core.Run, 0, 2)
	for _, r := range []*Result{c.Offline, c.Online} {
		if r == nil {
			continue
		}
		runs = append(runs, &core.Run{
			Experiment: r.Policy,
			Seed:       c.Seed,
			Episodes:   r.Episodes,
			Elapsed:    r.Elapsed,
			Problem:    c.Problem,
			Evaluation: &core.Evaluation{
				Success:  r.Success,
				Status:   r.Status,
				Sequence: r.Sequence,
				Trace:    r.Trace,
			},
		})
	}
	return runs
}
