package core

import (
	"fmt"
	"strings"
	"sync"
)

type Step struct {
	State   State
	Action  Action
	Outcome StepOutcome
}

func (s *Step) String() string {
	return fmt.Sprintf("%s --%s--> %s (reward %.0f, terminal %t)", s.State, s.Action, s.Outcome.Next, s.Outcome.Reward, s.Outcome.Terminal)
}

type Trace struct {
	mtx   *sync.Mutex
	steps []*Step
}

func NewTrace() *Trace {
	return &Trace{
		steps: make([]*Step, 0),
		mtx:   &sync.Mutex{},
	}
}

func (t *Trace) AddStep(s *Step) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.steps = append(t.steps, s)
}

func (t *Trace) Step(i int) *Step {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.steps[i]
}

func (t *Trace) Len() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return len(t.steps)
}

func (t *Trace) Last() *Step {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if len(t.steps) == 0 {
		return nil
	}
	return t.steps[len(t.steps)-1]
}

func (t *Trace) String() string {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	var b strings.Builder
	for i, s := range t.steps {
		fmt.Fprintf(&b, "Step %d: %s\n", i, s)
	}
	return b.String()
}
