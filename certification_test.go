package nfa_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/pkg/domain"
)

// certCase is one expectation from a cases.yaml file.
type certCase struct {
	Word      string   `yaml:"word"`
	Sep       string   `yaml:"sep"`
	Verdict   string   `yaml:"verdict"`
	Final     []string `yaml:"final"`
	Undefined bool     `yaml:"undefined"`
}

// TestCertificationSuite runs every automaton under testdata/certification against its cases.
func TestCertificationSuite(t *testing.T) {
	suiteDir := filepath.Join("testdata", "certification")

	entries, err := os.ReadDir(suiteDir)
	require.NoError(t, err, "failed to list certification automata")
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			runCertification(t, filepath.Join(suiteDir, entry.Name()))
		})
	}
}

func runCertification(t *testing.T, dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "automaton.*"))
	require.NoError(t, err)
	require.Len(t, matches, 1, "expected exactly one automaton definition in %s", dir)

	eng, err := nfa.Load(matches[0])
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "cases.yaml"))
	require.NoError(t, err)
	var cases []certCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	ctx := context.Background()
	for _, tc := range cases {
		name := domain.JoinWord(domain.SplitWord(tc.Word, tc.Sep), tc.Sep)
		t.Run(name, func(t *testing.T) {
			word := domain.SplitWord(tc.Word, tc.Sep)

			verdict, err := eng.Accepts(ctx, word)

			trace, traceErr := eng.Trace(ctx, word)
			require.NotNil(t, trace)

			if tc.Undefined {
				assert.ErrorIs(t, err, domain.ErrUndefinedTransition)
				assert.ErrorIs(t, traceErr, domain.ErrUndefinedTransition)
				assert.True(t, trace.Rejected())
				return
			}

			require.NoError(t, err)
			require.NoError(t, traceErr)
			assert.Equal(t, domain.Verdict(tc.Verdict), verdict)
			assert.Equal(t, domain.Verdict(tc.Verdict), trace.Verdict)
			assert.Len(t, trace.Checkpoints, len(word)+1)
			if tc.Final != nil {
				assert.Equal(t, tc.Final, trace.Final().Sorted())
			}
		})
	}
}
