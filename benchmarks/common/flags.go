package common

import (
	"path"

	"github.com/zeu5/bankers-rl/benchmarks/arena"
	"github.com/zeu5/bankers-rl/policies"
	"github.com/zeu5/bankers-rl/util"
)

const (
	StoreFile   = "file"
	StoreBadger = "badger"
	StoreMemory = "memory"
)

type Flags struct {
	SavePath string `json:"save_path" yaml:"save_path"`
	// ProblemPath is a yaml or json problem file, empty means the default problem
	ProblemPath string `json:"problem" yaml:"problem"`
	Seed        uint64 `json:"seed" yaml:"seed"`

	LogFlags     `json:"log" yaml:"log"`
	StoreFlags   `json:"store" yaml:"store"`
	LearnerFlags policies.LearnerConfig `json:"learner" yaml:"learner"`
	ArenaFlags   `json:"arena" yaml:"arena"`
	RunFlags     `json:"run" yaml:"run"`
}

type LogFlags struct {
	LogLevel  string `json:"level" yaml:"level"`
	LogFormat string `json:"format" yaml:"format"`
}

type StoreFlags struct {
	StoreKind string `json:"kind" yaml:"kind"`
	StorePath string `json:"path" yaml:"path"`
}

type ArenaFlags struct {
	Offline  arena.OfflineConfig `json:"offline" yaml:"offline"`
	MaxSteps int                 `json:"max_steps" yaml:"max_steps"`
}

type RunFlags struct {
	NumRuns     int    `json:"num_runs" yaml:"num_runs"`
	Parallelism int    `json:"parallelism" yaml:"parallelism"`
	MetricsOut  string `json:"metrics_out" yaml:"metrics_out"`
	Progress    bool   `json:"progress" yaml:"progress"`
}

func DefaultFlags() *Flags {
	return &Flags{
		SavePath: "results",
		LogFlags: LogFlags{
			LogLevel:  "info",
			LogFormat: "text",
		},
		StoreFlags: StoreFlags{
			StoreKind: StoreFile,
			StorePath: "global_policy.jsonl",
		},
		LearnerFlags: policies.DefaultLearnerConfig(),
		ArenaFlags: ArenaFlags{
			Offline: arena.DefaultOfflineConfig(),
		},
		RunFlags: RunFlags{
			NumRuns:     20,
			Parallelism: 4,
			Progress:    true,
		},
	}
}

// LoadFlags overlays the yaml file at p onto the defaults.
func LoadFlags(p string) (*Flags, error) {
	f := DefaultFlags()
	if p == "" {
		return f, nil
	}
	if err := util.LoadYaml(p, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ArenaConfig builds the arena config for a problem with n processes and m resources.
func (f *Flags) ArenaConfig(n, m int) arena.Config {
	return arena.Config{
		Processes: n,
		Resources: m,
		Offline:   f.Offline,
		Learner:   f.LearnerFlags,
		MaxSteps:  f.MaxSteps,
		Seed:      f.Seed,
	}
}

func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
