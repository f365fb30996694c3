package core

import "github.com/zeu5/bankers-rl/util"

// Rewards emitted by Environment.Step.
const (
	RewardInvalid  = -100.0
	RewardUnsafe   = -50.0
	RewardSafe     = 10.0
	RewardComplete = 100.0
)

// StepOutcome is the result of a single transition.
type StepOutcome struct {
	Next     State
	Reward   float64
	Terminal bool
}

// Environment simulates the Banker's algorithm for a fixed set of processes.
// Illegal and unsafe moves are not errors, they are reported through the reward.
type Environment struct {
	n int
	m int

	startAlloc [][]int
	startAvail []int
	maxDemand  [][]int

	alloc [][]int
	avail []int
	state State
}

// NewEnvironment snapshots the problem for repeated resets. The problem is assumed
// to be valid, see Problem.Validate.
func NewEnvironment(p *Problem) *Environment {
	e := &Environment{
		n:          p.NumProcesses(),
		m:          p.NumResources(),
		startAlloc: util.CopyIntMatrix(p.Allocation),
		startAvail: util.CopyIntSlice(p.Available),
		maxDemand:  util.CopyIntMatrix(p.MaxDemand),
	}
	e.Reset()
	return e
}

func (e *Environment) NumProcesses() int {
	return e.n
}

func (e *Environment) NumResources() int {
	return e.m
}

// Reset restores the starting allocation and availability and returns the state with
// no finished processes.
func (e *Environment) Reset() State {
	e.alloc = util.CopyIntMatrix(e.startAlloc)
	e.avail = util.CopyIntSlice(e.startAvail)
	e.state = InitialState(e.n)
	return e.state
}

func (e *Environment) State() State {
	return e.state
}

func (e *Environment) Available() []int {
	return util.CopyIntSlice(e.avail)
}

func (e *Environment) Allocation() [][]int {
	return util.CopyIntMatrix(e.alloc)
}

func (e *Environment) Need(i int) []int {
	need := make([]int, e.m)
	for j := 0; j < e.m; j++ {
		need[j] = e.maxDemand[i][j] - e.alloc[i][j]
	}
	return need
}

// IsSafe reports whether process a can run to completion with what is available now.
// Unknown processes are never safe.
func (e *Environment) IsSafe(a Action) bool {
	if int(a) < 0 || int(a) >= e.n {
		return false
	}
	for j := 0; j < e.m; j++ {
		if e.maxDemand[a][j]-e.alloc[a][j] > e.avail[j] {
			return false
		}
	}
	return true
}

// Step tries to run process a to completion. Finished or unknown processes are invalid.
func (e *Environment) Step(a Action) StepOutcome {
	if int(a) < 0 || int(a) >= e.n || e.state.Finished(int(a)) {
		return StepOutcome{Next: e.state, Reward: RewardInvalid}
	}
	if !e.IsSafe(a) {
		return StepOutcome{Next: e.state, Reward: RewardUnsafe}
	}

	for j := 0; j < e.m; j++ {
		e.avail[j] += e.alloc[a][j]
		e.alloc[a][j] = 0
	}
	e.state = e.state.With(int(a))

	if e.state.AllFinished() {
		return StepOutcome{Next: e.state, Reward: RewardComplete, Terminal: true}
	}
	return StepOutcome{Next: e.state, Reward: RewardSafe}
}
