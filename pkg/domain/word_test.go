package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWord(t *testing.T) {
	tests := []struct {
		name string
		word string
		sep  string
		want []string
	}{
		{name: "runes", word: "babba", want: []string{"b", "a", "b", "b", "a"}},
		{name: "empty", word: "", want: nil},
		{name: "epsilon", word: "ε", want: nil},
		{name: "blank", word: "   ", want: nil},
		{name: "unicode runes", word: "αβ", want: []string{"α", "β"}},
		{name: "separator", word: "go, stop ,go", sep: ",", want: []string{"go", "stop", "go"}},
		{name: "separator drops empties", word: "a,,b,", sep: ",", want: []string{"a", "b"}},
		{name: "epsilon with separator", word: " ε ", sep: ",", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitWord(tt.word, tt.sep))
		})
	}
}

func TestJoinWord(t *testing.T) {
	assert.Equal(t, "ε", JoinWord(nil, ""))
	assert.Equal(t, "ab", JoinWord([]string{"a", "b"}, ""))
	assert.Equal(t, "go,stop", JoinWord([]string{"go", "stop"}, ","))
}
