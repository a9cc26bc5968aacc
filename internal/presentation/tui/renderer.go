package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It falls back to the raw markdown when no terminal renderer can be built.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Describe writes the five-tuple as Markdown: a summary list and the δ table,
// one row per state and one column per symbol. Undefined cells show "-".
func Describe(name string, a *domain.Automaton) string {
	var b strings.Builder

	title := name
	if title == "" {
		title = "Automaton"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Σ** = %s\n", braces(a.Alphabet()))
	fmt.Fprintf(&b, "- **Q** = %s\n", braces(a.StateNames()))
	fmt.Fprintf(&b, "- **S** = %s\n", a.Initial())
	fmt.Fprintf(&b, "- **F** = %s\n\n", a.Finals().String())

	b.WriteString("| δ |")
	for _, sym := range a.Alphabet() {
		fmt.Fprintf(&b, " %s |", escapeCell(sym))
	}
	b.WriteString("\n|---|")
	for range a.Alphabet() {
		b.WriteString("---|")
	}
	b.WriteByte('\n')

	for _, st := range a.StateNames() {
		label := st
		if st == a.Initial() {
			label = "→ " + label
		}
		if a.IsFinal(st) {
			label = "* " + label
		}
		fmt.Fprintf(&b, "| %s |", escapeCell(label))
		for _, sym := range a.Alphabet() {
			fmt.Fprintf(&b, " %s |", escapeCell(cell(a, st, sym)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cell(a *domain.Automaton, state, symbol string) string {
	rules := a.RulesFor(state, symbol)
	if len(rules) == 0 {
		return domain.UndefinedToken
	}
	set := domain.NewStateSet()
	a.Transitions(state, symbol, set)
	if set.Len() == 0 {
		return domain.UndefinedToken
	}
	return set.String()
}

func braces(items []string) string {
	return "{" + strings.Join(items, ", ") + "}"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
