package domain

import "strings"

// EmptyWordToken is the console notation for the empty word.
const EmptyWordToken = "ε"

// SplitWord tokenizes a word into symbols.
// With an empty sep every rune is a symbol; otherwise the word is split on sep and
// each symbol is trimmed. The empty string and "ε" both denote the empty word.
func SplitWord(word, sep string) []string {
	word = strings.TrimSpace(word)
	if word == "" || word == EmptyWordToken {
		return nil
	}

	if sep == "" {
		symbols := make([]string, 0, len(word))
		for _, r := range word {
			symbols = append(symbols, string(r))
		}
		return symbols
	}

	parts := strings.Split(word, sep)
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			symbols = append(symbols, p)
		}
	}
	return symbols
}

// JoinWord renders symbols back into a word, using "ε" for the empty word.
func JoinWord(symbols []string, sep string) string {
	if len(symbols) == 0 {
		return EmptyWordToken
	}
	return strings.Join(symbols, sep)
}
