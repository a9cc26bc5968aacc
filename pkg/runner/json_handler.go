package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/nfa/pkg/domain"
)

// Record types emitted by JSONHandler, one JSON object per line.
const (
	RecordCheckpoint = "checkpoint"
	RecordVerdict    = "verdict"
	RecordRejection  = "rejection"
	RecordMessage    = "message"
	RecordError      = "error"
)

// Record is one NDJSON line.
type Record struct {
	Type       string             `json:"type"`
	Word       string             `json:"word,omitempty"`
	Checkpoint *domain.Checkpoint `json:"checkpoint,omitempty"`
	Verdict    domain.Verdict     `json:"verdict,omitempty"`
	Final      domain.StateSet    `json:"final,omitempty"`
	Index      int                `json:"index,omitempty"`
	Symbol     string             `json:"symbol,omitempty"`
	Active     []string           `json:"active,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// JSONHandler implements TraceHandler for structured JSON-Lines output.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler writing to w (Stdout when nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Trace(ctx context.Context, t *domain.Trace, sep string) error {
	word := domain.JoinWord(t.Word, sep)
	for i := range t.Checkpoints {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.Encoder.Encode(Record{Type: RecordCheckpoint, Word: word, Checkpoint: &t.Checkpoints[i]}); err != nil {
			return err
		}
	}

	if t.Rejection != nil {
		return h.Encoder.Encode(Record{
			Type:    RecordRejection,
			Word:    word,
			Index:   len(t.Checkpoints),
			Symbol:  t.Rejection.Symbol,
			Active:  t.Rejection.Active,
			Message: t.Rejection.Error(),
		})
	}
	return h.Encoder.Encode(Record{Type: RecordVerdict, Word: word, Verdict: t.Verdict, Final: t.Final()})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Record{Type: RecordMessage, Message: msg})
}

func (h *JSONHandler) Error(ctx context.Context, err error) error {
	return h.Encoder.Encode(Record{Type: RecordError, Message: err.Error()})
}
