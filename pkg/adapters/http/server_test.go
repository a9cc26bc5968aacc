package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/dto"
	"github.com/aretw0/nfa/internal/testutils"
	"github.com/aretw0/nfa/pkg/adapters/memory"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/observability"
	"github.com/aretw0/nfa/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...nfa.Option) *Server {
	t.Helper()

	eng, err := nfa.New(testutils.ExampleDefinition(), append([]nfa.Option{nfa.WithName("example")}, opts...)...)
	require.NoError(t, err)
	return NewServer(eng, session.NewManager(eng, memory.NewStore()))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestGetAutomaton(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodGet, "/automaton", nil)
	require.Equal(t, http.StatusOK, w.Code)

	def := decodeBody[dto.Definition](t, w)
	assert.Equal(t, "example", def.Name)
	assert.Equal(t, []string{"q0", "q1", "qf"}, def.States)
	assert.Equal(t, "q0", def.Initial)
	assert.Len(t, def.Rules, 6)
}

func TestAccept(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name    string
		body    WordRequest
		verdict domain.Verdict
		active  []string
	}{
		{"accepted", WordRequest{Word: "ab"}, domain.Accepted, []string{"q0", "qf"}},
		{"rejected", WordRequest{Word: "aa"}, domain.Rejected, []string{"q0", "q1"}},
		{"empty word", WordRequest{Word: "ε"}, domain.Rejected, []string{"q0"}},
		{"separator", WordRequest{Word: "a, b", Sep: ","}, domain.Accepted, []string{"q0", "qf"}},
		{"symbols", WordRequest{Symbols: []string{"b", "a", "b"}}, domain.Accepted, []string{"q0", "qf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/accept", tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp struct {
				Verdict domain.Verdict `json:"verdict"`
				Active  []string       `json:"active"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.verdict, resp.Verdict)
			assert.Equal(t, tt.active, resp.Active)
		})
	}
}

func TestAccept_UndefinedTransition(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodPost, "/accept", WordRequest{Word: "abc"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeBody[ErrorResponse](t, w)
	assert.Equal(t, KindUndefinedTransition, resp.Kind)
	assert.Equal(t, "c", resp.Symbol)
	assert.Equal(t, []string{"q0", "qf"}, resp.Active)
	assert.NotEmpty(t, resp.Error)
}

func TestAccept_BadBody(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/accept", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, KindInvalidRequest, decodeBody[ErrorResponse](t, w).Kind)
}

func TestTrace(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodPost, "/trace", WordRequest{Word: "ab"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Verdict     domain.Verdict `json:"verdict"`
		Checkpoints []struct {
			Index  int      `json:"index"`
			Active []string `json:"active"`
		} `json:"checkpoints"`
		Rejection *ErrorResponse `json:"rejection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.Accepted, resp.Verdict)
	require.Len(t, resp.Checkpoints, 3)
	assert.Equal(t, []string{"q0", "q1"}, resp.Checkpoints[1].Active)
	assert.Nil(t, resp.Rejection)

	w = do(t, h, http.MethodPost, "/trace", WordRequest{Word: "abz"})
	require.Equal(t, http.StatusOK, w.Code)
	resp.Rejection = nil
	resp.Checkpoints = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Rejection)
	assert.Equal(t, "z", resp.Rejection.Symbol)
	assert.Len(t, resp.Checkpoints, 3)
}

func TestStep(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodPost, "/step", StepRequest{Active: []string{"q0", "q1"}, Symbol: "b"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Active []string `json:"active"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"q0", "qf"}, resp.Active)

	w = do(t, h, http.MethodPost, "/step", StepRequest{Active: []string{"q1"}, Symbol: "a"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, KindUndefinedTransition, decodeBody[ErrorResponse](t, w).Kind)
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeBody[map[string]string](t, w)
	assert.Equal(t, "example", info["automaton"])
	assert.NotEmpty(t, info["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	eng, err := nfa.New(testutils.ExampleDefinition(), nfa.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)
	h := NewHandler(eng, session.NewManager(eng, memory.NewStore()), WithMetrics(reg))

	do(t, h, http.MethodPost, "/accept", WordRequest{Word: "ab"})

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `nfa_verdicts_total{verdict="accepted"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	h := newTestServer(t).Handler()
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", nil).Code)
}

func TestRateLimit(t *testing.T) {
	eng, err := nfa.New(testutils.ExampleDefinition())
	require.NoError(t, err)
	h := NewHandler(eng, session.NewManager(eng, memory.NewStore()), WithRateLimit(2, time.Minute))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/automaton", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/automaton", nil).Code)

	w := do(t, h, http.MethodGet, "/automaton", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
}

func TestCORS(t *testing.T) {
	eng, err := nfa.New(testutils.ExampleDefinition())
	require.NoError(t, err)
	h := NewHandler(eng, session.NewManager(eng, memory.NewStore()), WithCORS())

	w := do(t, h, http.MethodOptions, "/accept", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
