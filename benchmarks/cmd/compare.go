package cmd

import (
	"fmt"
	"io"
	"path"

	"github.com/spf13/cobra"

	"github.com/zeu5/bankers-rl/benchmarks/arena"
	"github.com/zeu5/bankers-rl/benchmarks/common"
	"github.com/zeu5/bankers-rl/util"
)

// CompareCommand runs the offline and online policies on the problem once.
func CompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the stored offline policy with one trained on the problem",
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
			cmp, err := a.Compare(ctx, p)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "offline policy source: %s\n", a.Source())
			printResult(w, cmp.Offline)
			printResult(w, cmp.Online)
			if err := util.SaveJson(path.Join(flags.SavePath, "comparison.json"), cmp); err != nil {
				return err
			}
			return m.flush()
		},
	}
	return cmd
}

func printResult(w io.Writer, r *arena.Result) {
	fmt.Fprintf(w, "%s: %s in %s", r.Policy, r.Status, r.Elapsed)
	if r.Episodes > 0 {
		fmt.Fprintf(w, " (%d episodes, converged %v)", r.Episodes, r.Converged)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  sequence: %s\n", formatSequence(r.Sequence))
}
