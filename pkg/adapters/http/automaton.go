package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/dto"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/runner"
)

// WordRequest names a word either as text split on Sep or as explicit symbols.
type WordRequest struct {
	Word    string   `json:"word"`
	Sep     string   `json:"sep,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}

func (req WordRequest) symbols() ([]string, error) {
	if req.Symbols != nil {
		return req.Symbols, nil
	}
	word, err := runner.SanitizeLine(req.Word)
	if err != nil {
		return nil, err
	}
	return domain.SplitWord(word, req.Sep), nil
}

// AcceptResponse is the decision for a word.
type AcceptResponse struct {
	Verdict domain.Verdict  `json:"verdict"`
	Active  domain.StateSet `json:"active"`
}

// TraceResponse is every checkpoint of a word plus, when abandoned, the undefined transition.
type TraceResponse struct {
	*domain.Trace
	Rejection *ErrorResponse `json:"rejection,omitempty"`
}

// StepRequest applies δ to an arbitrary active set.
type StepRequest struct {
	Active []string `json:"active"`
	Symbol string   `json:"symbol"`
}

// StepResponse is the next active set.
type StepResponse struct {
	Active domain.StateSet `json:"active"`
}

// GetAutomaton handles GET /automaton.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	eng, _ := s.current()
	writeJSON(w, s.logger, http.StatusOK, dto.FromDomain(eng.Name(), eng.Automaton().Definition()))
}

// Accept handles POST /accept.
func (s *Server) Accept(w http.ResponseWriter, r *http.Request) {
	var body WordRequest
	if err := decode(r, &body); err != nil {
		s.badRequest(w, "invalid request body", err)
		return
	}
	word, err := body.symbols()
	if err != nil {
		s.writeError(w, err)
		return
	}

	eng, _ := s.current()
	t, err := eng.Trace(r.Context(), word)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, AcceptResponse{Verdict: t.Verdict, Active: t.Final()})
}

// Trace handles POST /trace. An abandoned word is still a 200 with a rejection.
func (s *Server) Trace(w http.ResponseWriter, r *http.Request) {
	var body WordRequest
	if err := decode(r, &body); err != nil {
		s.badRequest(w, "invalid request body", err)
		return
	}
	word, err := body.symbols()
	if err != nil {
		s.writeError(w, err)
		return
	}

	eng, _ := s.current()
	t, err := eng.Trace(r.Context(), word)
	resp := TraceResponse{Trace: t}
	if err != nil {
		if !errors.Is(err, domain.ErrUndefinedTransition) {
			s.writeError(w, err)
			return
		}
		resp.Rejection = &ErrorResponse{
			Error:  err.Error(),
			Kind:   KindUndefinedTransition,
			Symbol: t.Rejection.Symbol,
			Active: t.Rejection.Active,
		}
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}

// Step handles POST /step.
func (s *Server) Step(w http.ResponseWriter, r *http.Request) {
	var body StepRequest
	if err := decode(r, &body); err != nil {
		s.badRequest(w, "invalid request body", err)
		return
	}

	eng, _ := s.current()
	next, err := eng.Step(r.Context(), domain.NewStateSet(body.Active...), body.Symbol)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, StepResponse{Active: next})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	eng, _ := s.current()
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":       "nfa-http",
		"version":   strings.TrimSpace(nfa.Version),
		"automaton": eng.Name(),
	})
}
