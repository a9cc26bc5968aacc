package file_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/nfa/internal/testutils"
	"github.com/aretw0/nfa/pkg/adapters/file"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"q0", "q1", "qf"}, file.ParseList(" q0, q1 ,qf "))
	assert.Equal(t, []string{"-"}, file.ParseList("-"))
	assert.Equal(t, []string{"a", "b"}, file.ParseList("a,,b,"))
	assert.Nil(t, file.ParseList("   "))
}

func TestLoadDefinition_YAML(t *testing.T) {
	path := testutils.WriteFile(t, "example.yaml", testutils.ExampleYAML)

	def, err := file.LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, testutils.ExampleDefinition(), *def)
}

func TestLoadDefinition_JSON(t *testing.T) {
	path := testutils.WriteFile(t, "example.json", `{
  "alphabet": ["a", "b"],
  "states": ["q0", "q1", "qf"],
  "initial": "q0",
  "finals": ["qf"],
  "rules": [
    {"from": "q0", "symbol": "a", "to": ["q0", "q1"]},
    {"from": "q0", "symbol": "b", "to": ["q0"]},
    {"from": "q1", "symbol": "a", "to": ["-"]},
    {"from": "q1", "symbol": "b", "to": ["qf"]},
    {"from": "qf", "symbol": "a", "to": "-"},
    {"from": "qf", "symbol": "b", "to": "-"}
  ]
}`)

	def, err := file.LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, testutils.ExampleDefinition(), *def)
}

func TestLoad_CommaShorthand(t *testing.T) {
	path := testutils.WriteFile(t, "short.yml", `name: shorthand
alphabet: "a, b"
states: "q0, q1"
initial: q0
finals: q1
rules:
  - {from: q0, symbol: a, to: "q0, q1"}
  - {from: q1, symbol: b, to: "-"}
`)

	doc, err := file.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "shorthand", doc.Name)
	assert.Equal(t, []string{"a", "b"}, doc.Alphabet)
	assert.Equal(t, []string{"q0", "q1"}, doc.States)
	assert.Equal(t, []string{"q1"}, doc.Finals)
	assert.Equal(t, []string{"q0", "q1"}, doc.Rules[0].To)

	def := doc.ToDomain()
	assert.Equal(t, domain.Undefined(), def.Rules[1].Destinations[0])
}

func TestLoad_NumericStates(t *testing.T) {
	path := testutils.WriteFile(t, "numeric.yaml", `alphabet: [0, 1]
states: [1, 2]
initial: 1
finals: [2]
rules:
  - {from: 1, symbol: 0, to: [2]}
`)

	def, err := file.LoadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, def.States)
	assert.Equal(t, "1", def.Initial)
	assert.Equal(t, "0", def.Rules[0].Symbol)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("reserved state name", func(t *testing.T) {
		path := testutils.WriteFile(t, "reserved.yaml", `states: [q0, "-"]
initial: q0
`)
		_, err := file.Load(path)
		assert.ErrorIs(t, err, file.ErrReservedStateName)
	})

	t.Run("undefined token outside Q", func(t *testing.T) {
		initial := testutils.WriteFile(t, "initial.yaml", `states: [q0]
initial: "-"
`)
		def, err := file.LoadDefinition(initial)
		require.NoError(t, err)
		_, err = domain.NewAutomaton(*def)
		var unknownInitial *domain.UnknownInitialStateError
		require.ErrorAs(t, err, &unknownInitial)
		assert.Equal(t, "-", unknownInitial.State)
		assert.NotErrorIs(t, err, file.ErrReservedStateName)

		final := testutils.WriteFile(t, "final.yaml", `states: [q0]
initial: q0
finals: ["-"]
`)
		def, err = file.LoadDefinition(final)
		require.NoError(t, err)
		_, err = domain.NewAutomaton(*def)
		assert.ErrorIs(t, err, domain.ErrUnknownFinalState)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := testutils.WriteFile(t, "typo.yaml", "stats: [q0]\n")
		_, err := file.Load(path)
		assert.ErrorContains(t, err, "invalid automaton document")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := testutils.WriteFile(t, "bad.yaml", "states: [q0\n")
		_, err := file.Load(path)
		assert.ErrorContains(t, err, "failed to parse automaton yaml")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := testutils.WriteFile(t, "bad.json", "{")
		_, err := file.Load(path)
		assert.ErrorContains(t, err, "failed to parse automaton json")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := file.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read automaton definition")
	})
}
