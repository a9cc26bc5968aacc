package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/nfa/internal/presentation/graph"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the automaton. With --word the states
visited while computing the word are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, g, err := loadEngine(cmd, args)
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if cmd.Flags().Changed("word") {
			word, _ := cmd.Flags().GetString("word")
			t, err := eng.Trace(cmd.Context(), domain.SplitWord(word, g.Sep))
			if err != nil && !errors.Is(err, domain.ErrUndefinedTransition) {
				return err
			}
			overlay = graph.OverlayFromTrace(t)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Automaton(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("word", "", "Highlight the states visited by this word")
}
