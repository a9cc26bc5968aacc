package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/testutils"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleAnswers defines the reference automaton through the console prompts.
var exampleAnswers = []string{
	"a, b",
	"q0, q1, qf",
	"q0,q1", // δ(q0, a)
	"q0",    // δ(q0, b)
	"-",     // δ(q1, a)
	"qf",    // δ(q1, b)
	"-",     // δ(qf, a)
	"-",     // δ(qf, b)
	"q0",
	"qf",
}

func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func newTestConsole(r io.Reader, opts ...ConsoleOption) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	h := NewTextHandler(&out, WithColorProfile(termenv.Ascii))
	return NewConsole(r, h, opts...), &out
}

func TestConsole_DefineAndCompute(t *testing.T) {
	lines := append([]string{""}, exampleAnswers...)
	lines = append(lines, "ab", "aa", "exit")

	c, out := newTestConsole(script(lines...))
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "δ(q0, a) = ")
	assert.Contains(t, text, "δ(qf, b) = ")
	assert.Contains(t, text, "{q0, qf} ∩ {qf} ≠ Ø >>>> WORD ACCEPTED")
	assert.Contains(t, text, "{q0, q1} ∩ {qf} = Ø >>>> WORD REJECTED")
	assert.Less(t, strings.Index(text, "δ(q0, b) = "), strings.Index(text, "δ(q1, a) = "),
		"rules are asked state by state")

	require.NotNil(t, c.Engine())
	assert.Equal(t, []string{"q0", "q1", "qf"}, c.Engine().Automaton().StateNames())
}

func TestConsole_Help(t *testing.T) {
	lines := append([]string{"h", ""}, exampleAnswers...)
	lines = append(lines, "exit")

	c, out := newTestConsole(script(lines...))
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "INSTRUCTIONS")
}

func TestConsole_InvalidDefinitionIsAskedAgain(t *testing.T) {
	lines := []string{
		"",
		// First attempt: S is not in Q.
		"a", "q0", "q0", "qx", "q0",
	}
	lines = append(lines, exampleAnswers...)
	lines = append(lines, "b", "exit")

	c, out := newTestConsole(script(lines...))
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, `initial state "qx" is not part of the listed states Q`)
	assert.Contains(t, text, ErrRedefine.Error())
	assert.Contains(t, text, "{q0} ∩ {qf} = Ø >>>> WORD REJECTED")
}

func TestConsole_ReservedStateName(t *testing.T) {
	lines := []string{"", "a", "q0, -"}
	lines = append(lines, exampleAnswers...)
	lines = append(lines, "exit")

	c, out := newTestConsole(script(lines...))
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), ErrRedefine.Error())
	assert.NotNil(t, c.Engine())
}

func TestConsole_UndefinedTransitionKeepsRunning(t *testing.T) {
	lines := append([]string{""}, exampleAnswers...)
	lines = append(lines, "abc", "ab", "exit")

	c, out := newTestConsole(script(lines...))
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, `reading "c" is undefined`)
	assert.Contains(t, text, "WORD ACCEPTED")
}

func TestConsole_Redefine(t *testing.T) {
	lines := append([]string{""}, exampleAnswers...)
	lines = append(lines, "<<")
	// Second automaton accepts only the empty word.
	lines = append(lines, "x", "s", "-", "s", "s", "ε", "exit")

	c, out := newTestConsole(script(lines...))
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []string{"s"}, c.Engine().Automaton().StateNames())
	assert.Contains(t, out.String(), "δ*({s}, ε) =\n{s} ∩ {s} ≠ Ø >>>> WORD ACCEPTED")
}

func TestConsole_WithEngineAndSeparator(t *testing.T) {
	eng, err := nfa.New(testutils.ExampleDefinition())
	require.NoError(t, err)

	c, out := newTestConsole(script("a, b", "exit"), WithEngine(eng), WithSeparator(","))
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.NotContains(t, text, "Σ =", "an existing automaton is not asked again")
	assert.Contains(t, text, "δ*({q0}, a,b) =")
	assert.Contains(t, text, "WORD ACCEPTED")
}

func TestConsole_EndOfInput(t *testing.T) {
	c, _ := newTestConsole(script("", "a"))
	assert.NoError(t, c.Run(context.Background()))
	assert.Nil(t, c.Engine())
}

func TestConsole_ContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	c, _ := newTestConsole(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
