package common

import (
	"fmt"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/util"
)

// LoadProblem reads and validates a problem file, or returns the default problem when
// p is empty.
func LoadProblem(p string) (*core.Problem, error) {
	if p == "" {
		return core.DefaultProblem(), nil
	}
	problem := &core.Problem{}
	if err := util.LoadYaml(p, problem); err != nil {
		return nil, err
	}
	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("problem %s: %w", p, err)
	}
	return problem, nil
}
