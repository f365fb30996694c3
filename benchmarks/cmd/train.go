package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/benchmarks/common"
	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/policies"
	"github.com/zeu5/bankers-rl/store"
	"github.com/zeu5/bankers-rl/util"
)

// TrainCommand trains a table on the problem, evaluates it greedily and optionally
// writes it out.
func TrainCommand() *cobra.Command {
	var out string
	var toStore bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a Q-table on the problem",
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

			opts := []policies.Option{
				policies.WithLogger(logger),
				policies.WithMetrics(m.Metrics),
			}
			var printer *util.TerminalPrinter
			if flags.Progress {
				printer = util.NewTerminalPrinter(os.Stderr, 200*time.Millisecond)
				line := printer.NewOutput("train")
				opts = append(opts, policies.WithProgress(func(r policies.EpisodeResult) {
					line.TrySetf("episode %d steps %d reward %.1f epsilon %.3f", r.Episode+1, r.Steps, r.TotalReward, r.Epsilon)
				}))
			}

			src := util.NewSource(flags.Seed)
			learner, err := policies.NewLearner(flags.LearnerFlags, src, opts...)
			if err != nil {
				return err
			}
			if printer != nil {
				printer.Start(ctx)
			}
			training, err := learner.Train(ctx, core.NewEnvironment(p))
			if printer != nil {
				printer.Stop()
			}
			if err != nil {
				return err
			}

			evaluator := policies.NewEvaluator(erand.NewSource(src.Uint64()), policies.WithLogger(logger), policies.WithMetrics(m.Metrics), policies.WithName("trained"))
			eval := evaluator.Evaluate(core.NewEnvironment(p), training.Table, flags.MaxSteps)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "episodes: %d (successes %d, converged %v) in %s\n", training.Episodes, training.Successes, training.Converged, training.Elapsed)
			fmt.Fprintf(w, "states: %d\n", training.Table.Size())
			printEvaluation(w, "evaluation", eval)

			if out != "" {
				if err := store.NewFileStore(out).Save(ctx, training.Table); err != nil {
					return err
				}
				logger.Info("saved table", "path", out)
			}
			if toStore {
				st, closer, err := flags.OpenStore(logger)
				if err != nil {
					return err
				}
				defer closer.Close()
				if err := st.Save(ctx, training.Table); err != nil {
					return err
				}
				logger.Info("saved table to the policy store", "kind", flags.StoreKind, "path", flags.StorePath)
			}
			return m.flush()
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the trained table to this jsonl file")
	cmd.Flags().BoolVar(&toStore, "to-store", false, "Save the trained table as the global policy")
	return cmd
}
