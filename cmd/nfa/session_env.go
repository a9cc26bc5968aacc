package main

import (
	"github.com/aretw0/nfa/internal/cli"
	"github.com/aretw0/nfa/pkg/session"
	"github.com/spf13/cobra"
)

type sessionEnv struct {
	backend *cli.Backend
	manager *session.Manager
}

func (e *sessionEnv) close() {
	_ = e.backend.Close()
}

// openSessionEnv opens the computation store. Commands that step computations
// also need the automaton (--file).
func openSessionEnv(cmd *cobra.Command, needEngine bool) (*sessionEnv, error) {
	dir, _ := cmd.Flags().GetString("dir")
	redisFlag, _ := cmd.Flags().GetString("redis")

	backend, err := cli.OpenBackend(cmd.Context(), cli.RedisAddr(redisFlag), dir)
	if err != nil {
		return nil, err
	}
	env := &sessionEnv{backend: backend}

	if needEngine {
		eng, g, err := loadEngine(cmd, nil)
		if err != nil {
			_ = backend.Close()
			return nil, err
		}
		env.manager = backend.Manager(eng, cli.NewLogger(g.Debug))
	}
	return env, nil
}
