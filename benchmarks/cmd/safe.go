package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeu5/bankers-rl/benchmarks/common"
	"github.com/zeu5/bankers-rl/core"
)

// SafeCommand prints the safe sequence found by the classic safety check, or checks the
// order given as arguments.
func SafeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safe [order...]",
		Short: "Run the safety check on the problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := common.LoadProblem(flags.ProblemPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				order, err := parseOrder(args)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "order %s safe: %v\n", formatSequence(order), core.IsSafeOrder(p, order))
				return nil
			}

			seq, ok := core.SafeSequence(p)
			if !ok {
				fmt.Fprintln(out, "unsafe: no safe sequence exists")
				return nil
			}
			fmt.Fprintf(out, "safe: %s\n", formatSequence(seq))
			return nil
		},
	}
	return cmd
}

// parseOrder accepts process indices with or without the P prefix.
func parseOrder(args []string) ([]core.Action, error) {
	order := make([]core.Action, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(arg), "P"))
		if err != nil {
			return nil, fmt.Errorf("invalid process %q", arg)
		}
		order[i] = core.Action(v)
	}
	return order, nil
}
