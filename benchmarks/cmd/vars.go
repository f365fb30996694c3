package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/bankers-rl/benchmarks/common"
)

var (
	flags      *common.Flags = common.DefaultFlags()
	configPath string

	savePath    string
	problemPath string
	seed        uint64
	logLevel    string
	logFormat   string
	storeKind   string
	storePath   string

	episodes        int
	alpha           float64
	gamma           float64
	epsilon         float64
	epsilonDecay    float64
	epsilonMin      float64
	stepCap         int
	exploration     string
	temperature     float64
	streakThreshold int

	offlineInstances int
	maxSteps         int

	numRuns     int
	parallelism int
	metricsOut  string
	progress    bool
)

func AddFlags(cmd *cobra.Command) {
	d := common.DefaultFlags()
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a yaml config file, flags override its values")
	cmd.PersistentFlags().StringVar(&savePath, "save-path", d.SavePath, "Path to save results")
	cmd.PersistentFlags().StringVar(&problemPath, "problem", d.ProblemPath, "Problem file (yaml or json), default is the classic 5x3 instance")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", d.Seed, "Random seed, 0 picks one from the clock")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", d.LogFormat, "Log format (text, json)")
	cmd.PersistentFlags().StringVar(&storeKind, "store", d.StoreKind, "Policy store kind (file, badger, memory)")
	cmd.PersistentFlags().StringVar(&storePath, "store-path", d.StorePath, "Policy store file or directory")

	cmd.PersistentFlags().IntVar(&episodes, "episodes", d.LearnerFlags.MaxEpisodes, "Maximum training episodes")
	cmd.PersistentFlags().Float64Var(&alpha, "alpha", d.LearnerFlags.Alpha, "Learning rate")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", d.LearnerFlags.Gamma, "Discount factor")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", d.LearnerFlags.Epsilon, "Initial exploration rate")
	cmd.PersistentFlags().Float64Var(&epsilonDecay, "epsilon-decay", d.LearnerFlags.EpsilonDecay, "Multiplicative exploration decay per episode")
	cmd.PersistentFlags().Float64Var(&epsilonMin, "epsilon-min", d.LearnerFlags.EpsilonMin, "Exploration floor")
	cmd.PersistentFlags().IntVar(&stepCap, "step-cap", d.LearnerFlags.StepCap, "Steps per training episode, 0 is twice the number of processes")
	cmd.PersistentFlags().StringVar(&exploration, "exploration", d.LearnerFlags.Exploration, "Exploration strategy (epsilon-greedy, softmax, uniform)")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", d.LearnerFlags.Temperature, "Softmax temperature")
	cmd.PersistentFlags().IntVar(&streakThreshold, "streak", d.LearnerFlags.StreakThreshold, "Consecutive successful episodes before stopping early, 0 disables")

	cmd.PersistentFlags().IntVar(&offlineInstances, "offline-instances", d.Offline.Instances, "Random instances used to train a missing offline policy")
	cmd.PersistentFlags().IntVar(&maxSteps, "max-steps", d.MaxSteps, "Evaluation step budget, 0 is twice the number of processes")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", d.NumRuns, "Number of seeds in a sweep")
	cmd.PersistentFlags().IntVar(&parallelism, "parallelism", d.Parallelism, "Number of parallel runs")
	cmd.PersistentFlags().StringVar(&metricsOut, "metrics-out", d.MetricsOut, "Write prometheus metrics to this file on exit")
	cmd.PersistentFlags().BoolVar(&progress, "progress", d.Progress, "Show live training progress")
}

// UpdateFlags loads the config file if any and applies the flags that were set on the
// command line on top of it.
func UpdateFlags(cmd *cobra.Command) error {
	loaded, err := common.LoadFlags(configPath)
	if err != nil {
		return err
	}
	flags = loaded

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) || configPath == "" {
			apply()
		}
	}
	set("save-path", func() { flags.SavePath = savePath })
	set("problem", func() { flags.ProblemPath = problemPath })
	set("seed", func() { flags.Seed = seed })
	set("log-level", func() { flags.LogLevel = logLevel })
	set("log-format", func() { flags.LogFormat = logFormat })
	set("store", func() { flags.StoreKind = storeKind })
	set("store-path", func() { flags.StorePath = storePath })

	set("episodes", func() { flags.LearnerFlags.MaxEpisodes = episodes })
	set("alpha", func() { flags.LearnerFlags.Alpha = alpha })
	set("gamma", func() { flags.LearnerFlags.Gamma = gamma })
	set("epsilon", func() { flags.LearnerFlags.Epsilon = epsilon })
	set("epsilon-decay", func() { flags.LearnerFlags.EpsilonDecay = epsilonDecay })
	set("epsilon-min", func() { flags.LearnerFlags.EpsilonMin = epsilonMin })
	set("step-cap", func() { flags.LearnerFlags.StepCap = stepCap })
	set("exploration", func() { flags.LearnerFlags.Exploration = exploration })
	set("temperature", func() { flags.LearnerFlags.Temperature = temperature })
	set("streak", func() { flags.LearnerFlags.StreakThreshold = streakThreshold })

	set("offline-instances", func() { flags.Offline.Instances = offlineInstances })
	set("max-steps", func() { flags.MaxSteps = maxSteps })

	set("num-runs", func() { flags.NumRuns = numRuns })
	set("parallelism", func() { flags.Parallelism = parallelism })
	set("metrics-out", func() { flags.MetricsOut = metricsOut })
	set("progress", func() { flags.Progress = progress })
	return nil
}
