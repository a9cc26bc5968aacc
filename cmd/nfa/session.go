package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/nfa/internal/cli"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage resumable computations",
	Long: `Start, feed, inspect and remove computations fed one symbol at a time.
Computations are stored under ` + cli.DefaultStoreDir + ` unless --redis is given.

Set ` + cli.EnvStoreKey + ` to a hex encoded 32 byte key to encrypt them at rest, and
` + cli.EnvRedact + ` to comma separated patterns of symbols to mask when saved.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start [id]",
	Short: "Start a computation at the initial state",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openSessionEnv(cmd, true)
		if err != nil {
			return err
		}
		defer env.close()

		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		c, err := env.manager.Start(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Started computation '%s' at %s\n", c.ID, c.Active)
		return nil
	},
}

var sessionFeedCmd = &cobra.Command{
	Use:   "feed <id> <symbol>...",
	Short: "Read symbols into a computation",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openSessionEnv(cmd, true)
		if err != nil {
			return err
		}
		defer env.close()

		out := cmd.OutOrStdout()
		for _, symbol := range args[1:] {
			c, err := env.manager.Feed(cmd.Context(), args[0], symbol)
			if err != nil {
				var undefined *domain.UndefinedTransitionError
				if errors.As(err, &undefined) {
					fmt.Fprintf(out, "%s: %v\n", symbol, undefined)
					return errRejected
				}
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", symbol, c.Active)
		}

		verdict, _, err := env.manager.Verdict(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "verdict if the word ended now: %s\n", verdict)
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Print a computation as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openSessionEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.close()

		c, err := env.backend.Store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading computation '%s': %w", args[0], err)
		}

		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored computations",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openSessionEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.close()

		ids, err := env.backend.Store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing computations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No computations found.")
			return nil
		}
		fmt.Fprintln(out, "Computations:")
		for _, id := range ids {
			fmt.Fprintln(out, "- "+id)
		}
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Remove one or more computations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openSessionEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.close()

		var errs []error
		for _, id := range args {
			if err := env.backend.Store.Delete(cmd.Context(), id); err != nil {
				errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed computation '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.PersistentFlags().String("dir", cli.DefaultStoreDir, "Directory holding computations")
	sessionCmd.PersistentFlags().String("redis", "", "Redis address for computations (env "+cli.EnvRedisAddr+")")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionFeedCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
