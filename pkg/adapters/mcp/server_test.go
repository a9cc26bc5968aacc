package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/dto"
	"github.com/aretw0/nfa/internal/testutils"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	eng, err := nfa.New(testutils.ExampleDefinition(), nfa.WithName("example"))
	require.NoError(t, err)
	return NewServer(eng)
}

func TestAcceptsWord(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    WordArgs
		verdict domain.Verdict
		active  []string
		undef   bool
	}{
		{"accepted", WordArgs{Word: "ab"}, domain.Accepted, []string{"q0", "qf"}, false},
		{"rejected", WordArgs{Word: "aa"}, domain.Rejected, []string{"q0", "q1"}, false},
		{"separator", WordArgs{Word: "b,a,b", Sep: ","}, domain.Accepted, []string{"q0", "qf"}, false},
		{"empty", WordArgs{Word: ""}, domain.Rejected, []string{"q0"}, false},
		{"undefined", WordArgs{Word: "abc"}, domain.Rejected, []string{"q0", "qf"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleAccepts(ctx, mcp.CallToolRequest{}, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.verdict, res.Verdict)
			assert.Equal(t, tt.active, res.Active)
			if tt.undef {
				require.NotNil(t, res.Rejection)
				assert.Equal(t, "c", res.Rejection.Symbol)
			} else {
				assert.Nil(t, res.Rejection)
			}
		})
	}
}

func TestAcceptsWord_InputRejected(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleAccepts(context.Background(), mcp.CallToolRequest{}, WordArgs{Word: "a\xffb"})
	assert.Error(t, err)
}

func TestTraceWord(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleTrace(context.Background(), mcp.CallToolRequest{}, WordArgs{Word: "ab"})
	require.NoError(t, err)

	assert.Equal(t, domain.Accepted, res.Verdict)
	assert.Len(t, res.Checkpoints, 3)
	require.NotEmpty(t, res.Notation)
	assert.Equal(t, "δ*({q0}, ab) =", res.Notation[0])
	assert.Equal(t, "{q0, qf} ∩ {qf} ≠ Ø >>>> WORD ACCEPTED", res.Notation[len(res.Notation)-1])

	res, err = s.handleTrace(context.Background(), mcp.CallToolRequest{}, WordArgs{Word: "bz"})
	require.NoError(t, err)
	require.NotNil(t, res.Rejection)
	assert.Equal(t, domain.Rejected, res.Verdict)
	assert.Len(t, res.Checkpoints, 2)
}

func TestStep(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleStep(ctx, mcp.CallToolRequest{}, StepArgs{Active: "q0, q1", Symbol: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"q0", "qf"}, res.Active)
	assert.Nil(t, res.Rejection)

	res, err = s.handleStep(ctx, mcp.CallToolRequest{}, StepArgs{Active: "qf", Symbol: "a"})
	require.NoError(t, err)
	assert.Empty(t, res.Active)
	require.NotNil(t, res.Rejection)
	assert.Equal(t, []string{"qf"}, res.Rejection.Active)
}

func TestAutomatonResource(t *testing.T) {
	s := newTestServer(t)

	contents, err := s.readAutomaton(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, AutomatonURI, text.URI)

	var doc dto.Definition
	require.NoError(t, yaml.Unmarshal([]byte(text.Text), &doc))
	assert.Equal(t, "example", doc.Name)
	assert.Equal(t, []string{"qf"}, doc.Finals)
	assert.Len(t, doc.Rules, 6)
}

func TestNewServer_RegistersCapabilities(t *testing.T) {
	s := newTestServer(t)
	require.NotNil(t, s.MCPServer())
}
