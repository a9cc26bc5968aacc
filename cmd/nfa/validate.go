package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/nfa/internal/validator"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check the automaton definition for consistency",
	Long: `Loads the definition and checks, in order, that the initial state, every final
state and every rule destination belong to Q.

A valid automaton is then linted for unreachable states, dead states, missing
rules and symbols outside Σ. Lint findings are warnings unless --strict is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := loadEngine(cmd, args)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		a := eng.Automaton()
		out := cmd.OutOrStdout()

		issues := validator.Lint(a)
		if validateStrict && len(issues) > 0 {
			return fmt.Errorf("validation failed: %w", validator.Report(issues))
		}

		fmt.Fprintf(out, "Automaton %q is valid! ✅ (%d symbols, %d states, %d rules)\n",
			eng.Name(), len(a.Alphabet()), len(a.StateNames()), len(a.Rules()))
		for _, issue := range issues {
			fmt.Fprintf(out, "⚠️  %s\n", issue)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat lint findings as errors")
	rootCmd.AddCommand(validateCmd)
}
