package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/cli"
	httpAdapter "github.com/aretw0/nfa/pkg/adapters/http"
	"github.com/aretw0/nfa/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Start the HTTP server",
	Long: `Serves the automaton as a JSON API over HTTP, including resumable computations.

Computations are kept in memory unless --redis (or NFA_REDIS_ADDR) points at a Redis
server. With --watch the definition file is reloaded whenever it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := readGlobals(cmd)
		if g.File == "" && len(args) > 0 {
			g.File = args[0]
		}
		port, _ := cmd.Flags().GetString("port")
		redisFlag, _ := cmd.Flags().GetString("redis")
		watch, _ := cmd.Flags().GetBool("watch")
		rate, _ := cmd.Flags().GetInt("rate-limit")

		logger := cli.NewLogger(g.Debug)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)
		engineOpts := cli.EngineOptions(logger, g.Debug, metrics.Hooks())

		eng, err := cli.LoadEngine(g.File, logger, g.Debug, metrics.Hooks())
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		backend, err := cli.OpenBackend(sigCtx, cli.RedisAddr(redisFlag), "")
		if err != nil {
			return err
		}
		defer backend.Close()

		server := httpAdapter.NewServer(eng, backend.Manager(eng, logger),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(reg),
			httpAdapter.WithRateLimit(rate, time.Minute),
			httpAdapter.WithCORS(),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		group, ctx := errgroup.WithContext(sigCtx)

		group.Go(func() error {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting nfa server on %s\n", srv.Addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving automaton %q (%s store)\n", eng.Name(), backend.Kind)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "nfa server stopped gracefully")
			return nil
		})

		if watch {
			group.Go(func() error {
				return cli.WatchEngine(ctx, g.File, engineOpts, logger, func(next *nfa.Engine) {
					server.Reload(next)
				})
			})
		}

		return group.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for computations (env "+cli.EnvRedisAddr+")")
	serveCmd.Flags().Bool("watch", false, "Reload the automaton when the file changes")
	serveCmd.Flags().Int("rate-limit", 600, "Requests per minute per client IP (0 disables)")
}
