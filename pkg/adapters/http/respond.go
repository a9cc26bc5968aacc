package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/runner"
)

// Error kinds reported in the "kind" field of error bodies.
const (
	KindInvalidRequest      = "invalid_request"
	KindUndefinedTransition = "undefined_transition"
	KindNotFound            = "not_found"
	KindHalted              = "halted"
	KindInternal            = "internal"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind"`
	Symbol string   `json:"symbol,omitempty"`
	Active []string `json:"active,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

// writeError maps err to a status code and an ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var undefined *domain.UndefinedTransitionError
	switch {
	case errors.As(err, &undefined):
		status = http.StatusUnprocessableEntity
		resp.Kind = KindUndefinedTransition
		resp.Symbol = undefined.Symbol
		resp.Active = undefined.Active
	case errors.Is(err, domain.ErrComputationNotFound):
		status = http.StatusNotFound
		resp.Kind = KindNotFound
	case errors.Is(err, domain.ErrComputationHalted):
		status = http.StatusConflict
		resp.Kind = KindHalted
	case errors.Is(err, runner.ErrInputTooLarge), errors.Is(err, runner.ErrInvalidUTF8):
		status = http.StatusBadRequest
		resp.Kind = KindInvalidRequest
	default:
		resp.Kind = KindInternal
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, s.logger, status, resp)
}

func (s *Server) badRequest(w http.ResponseWriter, msg string, err error) {
	s.logger.Warn(msg, "err", err)
	writeJSON(w, s.logger, http.StatusBadRequest, ErrorResponse{Error: msg, Kind: KindInvalidRequest})
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
