package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/dto"
	"github.com/aretw0/nfa/internal/logging"
	"github.com/aretw0/nfa/internal/presentation/trace"
	"github.com/aretw0/nfa/pkg/adapters/file"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports"
	"github.com/aretw0/nfa/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// AutomatonURI is the resource exposing the automaton definition.
const AutomatonURI = "nfa://automaton"

// Engine defines the interface required by the MCP server.
type Engine interface {
	ports.Stepper
	Name() string
}

// WordArgs names a word split on Sep, or per character when Sep is empty.
type WordArgs struct {
	Word string `json:"word"`
	Sep  string `json:"sep,omitempty"`
}

// StepArgs applies δ to a comma-separated active set.
type StepArgs struct {
	Active string `json:"active"`
	Symbol string `json:"symbol"`
}

// Rejection describes an undefined transition that abandoned a word.
type Rejection struct {
	Message string   `json:"message" jsonschema_description:"Human readable description"`
	Symbol  string   `json:"symbol" jsonschema_description:"Symbol that could not be read"`
	Active  []string `json:"active" jsonschema_description:"Active states when the symbol was read"`
}

// AcceptResult is the decision for a word.
type AcceptResult struct {
	Verdict   domain.Verdict `json:"verdict" jsonschema_description:"accepted or rejected"`
	Active    []string       `json:"active" jsonschema_description:"Active states after the last symbol read"`
	Rejection *Rejection     `json:"rejection,omitempty" jsonschema_description:"Set when an undefined transition abandoned the word"`
}

// TraceResult is the δ* derivation of a word.
type TraceResult struct {
	AcceptResult
	Notation    []string            `json:"notation" jsonschema_description:"δ* derivation, one line per entry"`
	Checkpoints []domain.Checkpoint `json:"checkpoints" jsonschema_description:"Active states after every symbol"`
}

// StepResult is the next active set.
type StepResult struct {
	Active    []string   `json:"active"`
	Rejection *Rejection `json:"rejection,omitempty"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("nfa-mcp", strings.TrimSpace(nfa.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mostly for tests and custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	acceptsTool := mcp.NewTool("accepts_word",
		mcp.WithDescription("Decide whether the automaton accepts a word."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The word to compute. 'ε' or an empty string is the empty word.")),
		mcp.WithString("sep", mcp.Description("Symbol separator. When omitted every character is a symbol.")),
		mcp.WithOutputSchema[AcceptResult](),
	)
	s.mcpServer.AddTool(acceptsTool, mcp.NewStructuredToolHandler(s.handleAccepts))

	traceTool := mcp.NewTool("trace_word",
		mcp.WithDescription("Compute a word and return every intermediate active-state set in δ* notation."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The word to compute.")),
		mcp.WithString("sep", mcp.Description("Symbol separator. When omitted every character is a symbol.")),
		mcp.WithOutputSchema[TraceResult](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleTrace))

	stepTool := mcp.NewTool("step",
		mcp.WithDescription("Apply the transition function once to a set of active states."),
		mcp.WithString("active", mcp.Required(), mcp.Description("Comma-separated active states, e.g. q0,q1")),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Symbol to read")),
		mcp.WithOutputSchema[StepResult](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleStep))
}

func (s *Server) word(args WordArgs) ([]string, error) {
	clean, err := runner.SanitizeLine(args.Word)
	if err != nil {
		s.logger.Warn("MCP: input rejected", "err", err, "size", len(args.Word))
		return nil, fmt.Errorf("input rejected: %w", err)
	}
	return domain.SplitWord(clean, args.Sep), nil
}

func (s *Server) run(ctx context.Context, args WordArgs) (*domain.Trace, *Rejection, error) {
	word, err := s.word(args)
	if err != nil {
		return nil, nil, err
	}

	t, err := s.engine.Trace(ctx, word)
	if err != nil {
		var undefined *domain.UndefinedTransitionError
		if !errors.As(err, &undefined) {
			return nil, nil, err
		}
		return t, rejection(undefined), nil
	}
	return t, nil, nil
}

func rejection(e *domain.UndefinedTransitionError) *Rejection {
	return &Rejection{Message: e.Error(), Symbol: e.Symbol, Active: e.Active}
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest, args WordArgs) (AcceptResult, error) {
	t, rej, err := s.run(ctx, args)
	if err != nil {
		return AcceptResult{}, err
	}
	if rej != nil {
		return AcceptResult{Verdict: domain.Rejected, Active: rej.Active, Rejection: rej}, nil
	}
	return AcceptResult{Verdict: t.Verdict, Active: t.Final().Sorted()}, nil
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args WordArgs) (TraceResult, error) {
	t, rej, err := s.run(ctx, args)
	if err != nil {
		return TraceResult{}, err
	}

	res := TraceResult{Checkpoints: t.Checkpoints}
	for _, line := range trace.Lines(t, args.Sep) {
		res.Notation = append(res.Notation, line.Text)
	}
	if rej != nil {
		res.AcceptResult = AcceptResult{Verdict: domain.Rejected, Active: rej.Active, Rejection: rej}
	} else {
		res.AcceptResult = AcceptResult{Verdict: t.Verdict, Active: t.Final().Sorted()}
	}
	return res, nil
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest, args StepArgs) (StepResult, error) {
	active := domain.NewStateSet(file.ParseList(args.Active)...)

	next, err := s.engine.Step(ctx, active, strings.TrimSpace(args.Symbol))
	if err != nil {
		var undefined *domain.UndefinedTransitionError
		if errors.As(err, &undefined) {
			return StepResult{Active: []string{}, Rejection: rejection(undefined)}, nil
		}
		return StepResult{}, fmt.Errorf("step failed: %w", err)
	}
	return StepResult{Active: next.Sorted()}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(AutomatonURI, "Current Automaton Definition",
		mcp.WithMIMEType("application/yaml"),
	), s.readAutomaton)
}

func (s *Server) readAutomaton(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc := dto.FromDomain(s.engine.Name(), s.engine.Automaton().Definition())
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode automaton: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      AutomatonURI,
			MIMEType: "application/yaml",
			Text:     string(data),
		},
	}, nil
}
