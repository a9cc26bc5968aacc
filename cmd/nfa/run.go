package main

import (
	"context"

	"github.com/aretw0/nfa/internal/cli"
	"github.com/aretw0/nfa/pkg/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive console",
	Long: `Asks for the five-tuple M = (Σ, Q, δ, S, F) and then computes words typed by the user.
With --file the automaton is loaded from disk and the prompts are skipped.

At the word prompt, '<<' defines a new automaton, 'ε' is the empty word and 'exit' quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := readGlobals(cmd)
		delay, _ := cmd.Flags().GetDuration("delay")
		jsonMode, _ := cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.RunConsole(ctx, cli.RunOptions{
			File:  g.File,
			Sep:   g.Sep,
			Debug: g.Debug,
			JSON:  jsonMode,
			Delay: delay,
			In:    cmd.InOrStdin(),
			Out:   cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Duration("delay", runner.DefaultConsoleDelay, "Pause between trace lines")
	runCmd.Flags().Bool("json", false, "Emit JSON lines instead of δ* notation")
}
