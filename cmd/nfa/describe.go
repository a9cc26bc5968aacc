package main

import (
	"fmt"

	"github.com/aretw0/nfa/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Print the five-tuple and the transition table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := loadEngine(cmd, args)
		if err != nil {
			return err
		}

		md := tui.Describe(eng.Name(), eng.Automaton())
		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		out, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print Markdown without terminal styling")
}
