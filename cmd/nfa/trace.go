package main

import (
	"github.com/aretw0/nfa/internal/cli"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <word>",
	Short: "Show every step of a word computation in δ* notation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, g, err := loadEngine(cmd, nil)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		delay, _ := cmd.Flags().GetDuration("delay")

		t, err := cli.TraceWord(cmd.Context(), eng, args[0], cli.RunOptions{
			Sep:   g.Sep,
			JSON:  jsonMode,
			Delay: delay,
			Out:   cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		if t.Rejected() || !t.Verdict.IsAccepted() {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().Bool("json", false, "Emit JSON lines instead of δ* notation")
	traceCmd.Flags().Duration("delay", 0, "Pause between trace lines")
}
