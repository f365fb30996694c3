package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bankers",
		Short:         "Learn safe process orderings for the Banker's algorithm",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := UpdateFlags(cmd); err != nil {
				return err
			}
			if err := os.MkdirAll(flags.SavePath, 0755); err != nil {
				return err
			}
			return flags.Record()
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		SafeCommand(),
		TrainCommand(),
		EvalCommand(),
		CompareCommand(),
		SweepCommand(),
	)

	return cmd
}
