package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// StartRequest optionally names the computation.
type StartRequest struct {
	ID string `json:"id,omitempty"`
}

// FeedRequest reads one symbol.
type FeedRequest struct {
	Symbol string `json:"symbol"`
}

// FeedResponse is the computation after a feed. Rejection is set when the
// symbol abandoned the word.
type FeedResponse struct {
	*domain.Computation
	Rejection *ErrorResponse `json:"rejection,omitempty"`
}

// VerdictResponse decides a computation as if its word ended now.
type VerdictResponse struct {
	Verdict     domain.Verdict      `json:"verdict"`
	Computation *domain.Computation `json:"computation"`
}

// ListResponse lists stored computation IDs.
type ListResponse struct {
	IDs []string `json:"ids"`
}

// StartComputation handles POST /computations.
func (s *Server) StartComputation(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if err := decode(r, &body); err != nil {
		s.badRequest(w, "invalid request body", err)
		return
	}

	_, sessions := s.current()
	c, err := sessions.Start(r.Context(), body.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusCreated, c)
}

// ListComputations handles GET /computations.
func (s *Server) ListComputations(w http.ResponseWriter, r *http.Request) {
	_, sessions := s.current()
	ids, err := sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.logger, http.StatusOK, ListResponse{IDs: ids})
}

// GetComputation handles GET /computations/{id}.
func (s *Server) GetComputation(w http.ResponseWriter, r *http.Request) {
	_, sessions := s.current()
	c, err := sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, c)
}

// DeleteComputation handles DELETE /computations/{id}.
func (s *Server) DeleteComputation(w http.ResponseWriter, r *http.Request) {
	_, sessions := s.current()
	if err := sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FeedComputation handles POST /computations/{id}/feed.
//
// An undefined transition answers 422 with the computation, now rejected, in the body.
func (s *Server) FeedComputation(w http.ResponseWriter, r *http.Request) {
	var body FeedRequest
	if err := decode(r, &body); err != nil {
		s.badRequest(w, "invalid request body", err)
		return
	}

	id := chi.URLParam(r, "id")
	_, sessions := s.current()
	c, err := sessions.Feed(r.Context(), id, body.Symbol)

	var undefined *domain.UndefinedTransitionError
	switch {
	case errors.As(err, &undefined):
		s.publish(c)
		writeJSON(w, s.logger, http.StatusUnprocessableEntity, FeedResponse{
			Computation: c,
			Rejection: &ErrorResponse{
				Error:  undefined.Error(),
				Kind:   KindUndefinedTransition,
				Symbol: undefined.Symbol,
				Active: undefined.Active,
			},
		})
	case err != nil:
		s.writeError(w, err)
	default:
		s.publish(c)
		writeJSON(w, s.logger, http.StatusOK, FeedResponse{Computation: c})
	}
}

// GetVerdict handles GET /computations/{id}/verdict.
func (s *Server) GetVerdict(w http.ResponseWriter, r *http.Request) {
	_, sessions := s.current()
	v, c, err := sessions.Verdict(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, VerdictResponse{Verdict: v, Computation: c})
}

func (s *Server) publish(c *domain.Computation) {
	data, err := json.Marshal(c)
	if err != nil {
		s.logger.Warn("failed to encode computation event", "err", err)
		return
	}
	s.Streams.Broadcast(c.ID, string(data))
}
