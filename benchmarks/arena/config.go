package arena

import (
	"errors"
	"fmt"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/policies"
)

var ErrInvalidConfig = errors.New("invalid arena config")

// OfflineConfig describes how the fallback offline table is trained when the store
// has none: one episode per randomly generated instance with uniformly random actions.
type OfflineConfig struct {
	Instances int     `json:"instances" yaml:"instances"`
	StepCap   int     `json:"step_cap" yaml:"step_cap"`
	Alpha     float64 `json:"alpha" yaml:"alpha"`
	Gamma     float64 `json:"gamma" yaml:"gamma"`
}

type Config struct {
	Processes int                    `json:"processes" yaml:"processes"`
	Resources int                    `json:"resources" yaml:"resources"`
	Offline   OfflineConfig          `json:"offline" yaml:"offline"`
	Learner   policies.LearnerConfig `json:"learner" yaml:"learner"`
	// MaxSteps is the evaluation budget, 0 means twice the number of processes
	MaxSteps int    `json:"max_steps" yaml:"max_steps"`
	Seed     uint64 `json:"seed" yaml:"seed"`
}

func DefaultOfflineConfig() OfflineConfig {
	return OfflineConfig{
		Instances: 2000,
		StepCap:   20,
		Alpha:     0.1,
		Gamma:     0.9,
	}
}

func DefaultConfig(processes, resources int) Config {
	return Config{
		Processes: processes,
		Resources: resources,
		Offline:   DefaultOfflineConfig(),
		Learner:   policies.DefaultLearnerConfig(),
	}
}

func (c Config) Validate() error {
	if c.Processes <= 0 || c.Processes > core.MaxProcesses {
		return fmt.Errorf("%w: processes %d not in [1, %d]", ErrInvalidConfig, c.Processes, core.MaxProcesses)
	}
	if c.Resources <= 0 {
		return fmt.Errorf("%w: resources must be positive", ErrInvalidConfig)
	}
	if c.Offline.Instances < 0 || c.Offline.StepCap < 0 {
		return fmt.Errorf("%w: offline instances and step cap must not be negative", ErrInvalidConfig)
	}
	if err := c.offlineLearnerConfig().Validate(); err != nil {
		return fmt.Errorf("offline: %w", err)
	}
	return c.Learner.Validate()
}

func (c Config) offlineLearnerConfig() policies.LearnerConfig {
	return policies.LearnerConfig{
		Alpha:        c.Offline.Alpha,
		Gamma:        c.Offline.Gamma,
		Epsilon:      1,
		EpsilonDecay: 1,
		EpsilonMin:   1,
		MaxEpisodes:  max(c.Offline.Instances, 1),
		StepCap:      c.Offline.StepCap,
		Exploration:  policies.ExplorationUniform,
	}
}
