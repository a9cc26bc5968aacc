package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/stretchr/testify/require"
)

// ExampleDefinition returns the reference automaton used across the test suites:
//
//	Σ = {a, b}, Q = {q0, q1, qf}, S = q0, F = {qf}
//	δ(q0, a) = {q0, q1}   δ(q0, b) = {q0}
//	δ(q1, a) = -          δ(q1, b) = {qf}
//	δ(qf, a) = -          δ(qf, b) = -
func ExampleDefinition() domain.Definition {
	return domain.Definition{
		Alphabet: []string{"a", "b"},
		States:   []string{"q0", "q1", "qf"},
		Rules: []domain.Rule{
			domain.NewRule("q0", "a", "q0", "q1"),
			domain.NewRule("q0", "b", "q0"),
			domain.NewRule("q1", "a", "-"),
			domain.NewRule("q1", "b", "qf"),
			domain.NewRule("qf", "a", "-"),
			domain.NewRule("qf", "b", "-"),
		},
		Initial: "q0",
		Finals:  []string{"qf"},
	}
}

// ExampleAutomaton builds ExampleDefinition, failing the test on error.
func ExampleAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()

	a, err := domain.NewAutomaton(ExampleDefinition())
	require.NoError(t, err, "reference automaton must be valid")
	return a
}

// ExampleYAML is ExampleDefinition in the file format read by the file adapter.
const ExampleYAML = `alphabet: [a, b]
states: [q0, q1, qf]
initial: q0
finals: [qf]
rules:
  - {from: q0, symbol: a, to: [q0, q1]}
  - {from: q0, symbol: b, to: [q0]}
  - {from: q1, symbol: a, to: "-"}
  - {from: q1, symbol: b, to: qf}
  - {from: qf, symbol: a, to: "-"}
  - {from: qf, symbol: b, to: "-"}
`

// WriteFile writes content to name inside a fresh temp directory and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write fixture")
	return path
}
