package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/cli"
	"github.com/spf13/cobra"
)

// errRejected makes the process exit with status 1 without being printed as a failure.
var errRejected = errors.New("at least one word was rejected")

var rootCmd = &cobra.Command{
	Use:   "nfa",
	Short: "nfa runs nondeterministic finite automata",
	Long: `nfa computes words on a nondeterministic finite automaton M = (Σ, Q, δ, S, F).

Define the automaton interactively with 'nfa run', or describe it in a YAML/JSON
file and pass it with --file to the other commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "", "Automaton definition file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("sep", "", "Symbol separator for words (default: every character is a symbol)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

type globalFlags struct {
	File  string
	Sep   string
	Debug bool
}

func readGlobals(cmd *cobra.Command) globalFlags {
	file, _ := cmd.Flags().GetString("file")
	sep, _ := cmd.Flags().GetString("sep")
	debug, _ := cmd.Flags().GetBool("debug")
	return globalFlags{File: file, Sep: sep, Debug: debug}
}

// loadEngine loads the --file automaton. A positional argument is accepted instead
// of --file by commands that take no other arguments.
func loadEngine(cmd *cobra.Command, args []string) (*nfa.Engine, globalFlags, error) {
	g := readGlobals(cmd)
	if g.File == "" && len(args) > 0 {
		g.File = args[0]
	}
	eng, err := cli.LoadEngine(g.File, cli.NewLogger(g.Debug), g.Debug)
	return eng, g, err
}
