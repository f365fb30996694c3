package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeu5/bankers-rl/benchmarks/common"
	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/policies"
	"github.com/zeu5/bankers-rl/store"
	"github.com/zeu5/bankers-rl/util"
)

// EvalCommand evaluates the global policy, or a table file, on the problem.
func EvalCommand() *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a stored Q-table on the problem",
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

			var st store.PolicyStore
			if tablePath != "" {
				st = store.NewFileStore(tablePath)
			} else {
				s, closer, err := flags.OpenStore(logger)
				if err != nil {
					return err
				}
				defer closer.Close()
				st = s
			}
			table, err := st.Load(ctx)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no stored policy, run train or compare first: %w", err)
			} else if err != nil {
				return err
			}
			if table.Actions() != p.NumProcesses() {
				return fmt.Errorf("%w: table has %d actions, problem has %d processes", core.ErrDimensionMismatch, table.Actions(), p.NumProcesses())
			}

			evaluator := policies.NewEvaluator(util.NewSource(flags.Seed), policies.WithLogger(logger), policies.WithMetrics(m.Metrics), policies.WithName("stored"))
			eval := evaluator.Evaluate(core.NewEnvironment(p), table, flags.MaxSteps)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "states: %d\n", table.Size())
			printEvaluation(w, "evaluation", eval)
			if eval.Trace != nil && !eval.Success {
				fmt.Fprint(w, eval.Trace.String())
			}
			return m.flush()
		},
	}
	cmd.Flags().StringVar(&tablePath, "table", "", "Read the table from this jsonl file instead of the policy store")
	return cmd
}
