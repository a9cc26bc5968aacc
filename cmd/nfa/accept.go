package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/runner"
	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept <word>...",
	Short: "Decide whether each word is accepted",
	Long: `Prints one line per word with its verdict. The exit status is 1 when any word
is rejected, including words abandoned by an undefined transition.
Use 'ε' or "" for the empty word.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, g, err := loadEngine(cmd, nil)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		allAccepted := true
		for _, word := range args {
			clean, err := runner.SanitizeLine(word)
			if err != nil {
				return err
			}

			verdict, err := eng.AcceptsString(cmd.Context(), clean, g.Sep)
			var undefined *domain.UndefinedTransitionError
			switch {
			case errors.As(err, &undefined):
				allAccepted = false
				fmt.Fprintf(out, "%s\t%s\t(%v)\n", displayWord(clean), domain.Rejected, undefined)
			case err != nil:
				return err
			default:
				allAccepted = allAccepted && verdict.IsAccepted()
				fmt.Fprintf(out, "%s\t%s\n", displayWord(clean), verdict)
			}
		}

		if !allAccepted {
			return errRejected
		}
		return nil
	},
}

func displayWord(w string) string {
	if w == "" {
		return domain.EmptyWordToken
	}
	return w
}

func init() {
	rootCmd.AddCommand(acceptCmd)
}
