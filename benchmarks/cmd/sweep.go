package cmd

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeu5/bankers-rl/analysis"
	"github.com/zeu5/bankers-rl/benchmarks/arena"
	"github.com/zeu5/bankers-rl/benchmarks/common"
	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/policies"
	"github.com/zeu5/bankers-rl/util"
)

// SweepCommand repeats the comparison over a range of seeds and summarizes the outcomes
// of both policies.
func SweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare the policies over many seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, done := interruptContext()
			defer done()

			logger, err := newLogger()
			if err != nil {
				return err
			}
			m := newRunMetrics()
			p, err := common.LoadProblem(flags.ProblemPath)
			if err != nil {
				return err
			}
			st, closer, err := flags.OpenStore(logger)
			if err != nil {
				return err
			}
			defer closer.Close()

			a, err := arena.New(ctx, flags.ArenaConfig(p.NumProcesses(), p.NumResources()), st,
				arena.WithLogger(logger), arena.WithMetrics(m.Metrics))
			if err != nil {
				return err
			}

			first := flags.Seed
			if first == 0 {
				first = 1
			}
			cfg := arena.SweepConfig{
				Seeds:       arena.Seeds(first, flags.NumRuns),
				Parallelism: flags.Parallelism,
			}
			var printer *util.TerminalPrinter
			if flags.Progress {
				printer = util.NewTerminalPrinter(os.Stderr, 200*time.Millisecond)
				lines := make(map[uint64]*util.ParallelOutput, len(cfg.Seeds))
				for _, s := range cfg.Seeds {
					lines[s] = printer.NewOutput(fmt.Sprintf("seed %d", s))
					lines[s].Setf("waiting")
				}
				cfg.Progress = func(seed uint64) func(policies.EpisodeResult) {
					line := lines[seed]
					return func(r policies.EpisodeResult) {
						line.TrySetf("episode %d steps %d reward %.1f", r.Episode+1, r.Steps, r.TotalReward)
					}
				}
				printer.Start(ctx)
			}

			cmps, err := a.Sweep(ctx, p, cfg)
			if printer != nil {
				printer.Stop()
			}
			if err != nil {
				return err
			}
			if err := util.SaveJson(path.Join(flags.SavePath, "comparisons.json"), cmps); err != nil {
				return err
			}

			c := core.NewComparison()
			c.AddAnalysis("outcomes", analysis.NewOutcomeAnalyzerConstructor(), analysis.NewOutcomeComparator(flags.SavePath))
			c.AddAnalysis("failures", analysis.NewFailureAnalyzerConstructor(flags.SavePath), analysis.NewNoOpComparator())
			datasets := c.Analyze(arena.Runs(cmps))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "offline policy source: %s, %d seeds\n", a.Source(), len(cmps))
			for _, exp := range []string{arena.OfflinePolicy, arena.OnlinePolicy} {
				s, ok := analysis.Summary(datasets["outcomes"][exp])
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s: success %d/%d (%.2f), elapsed %.2fms (std %.2f), statuses %v",
					exp, s.Successes, s.Runs, s.SuccessRate, s.MeanElapsedMs, s.StdElapsedMs, s.Statuses)
				if exp == arena.OnlinePolicy {
					fmt.Fprintf(w, ", episodes %.1f (std %.1f)", s.MeanEpisodes, s.StdEpisodes)
				}
				fmt.Fprintln(w)
			}
			return m.flush()
		},
	}
	return cmd
}
