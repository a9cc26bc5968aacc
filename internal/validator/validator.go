package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfa/pkg/domain"
)

// Kind classifies a lint finding. None of them make the automaton invalid.
type Kind string

const (
	KindUnreachable   Kind = "unreachable"    // no path from S reaches the state
	KindDead          Kind = "dead"           // no path from the state reaches F
	KindMissingRule   Kind = "missing_rule"   // no rule for (state, symbol): the transition is undefined
	KindUnknownSymbol Kind = "unknown_symbol" // a rule reads a symbol outside Σ
	KindNoFinals      Kind = "no_finals"      // F is empty, every word is rejected
)

// Issue is one lint finding.
type Issue struct {
	Kind   Kind   `json:"kind"`
	State  string `json:"state,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

func (i Issue) String() string {
	switch i.Kind {
	case KindUnreachable:
		return fmt.Sprintf("state '%s' is unreachable from the initial state", i.State)
	case KindDead:
		return fmt.Sprintf("state '%s' cannot reach a final state", i.State)
	case KindMissingRule:
		return fmt.Sprintf("δ(%s, %s) has no rule and is undefined", i.State, i.Symbol)
	case KindUnknownSymbol:
		return fmt.Sprintf("rule from '%s' reads '%s', which is not in Σ", i.State, i.Symbol)
	case KindNoFinals:
		return "the automaton has no final states and rejects every word"
	}
	return string(i.Kind)
}

// Lint inspects a validated automaton for likely mistakes.
// Findings are ordered by kind, then by state declaration order.
func Lint(a *domain.Automaton) []Issue {
	var issues []Issue

	if a.Finals().Len() == 0 {
		issues = append(issues, Issue{Kind: KindNoFinals})
	}

	reachable := crawl(a.Initial(), successors(a))
	for _, q := range a.StateNames() {
		if !reachable[q] {
			issues = append(issues, Issue{Kind: KindUnreachable, State: q})
		}
	}

	// A state is live when F is reachable from it on the reversed graph.
	live := make(map[string]bool)
	preds := predecessors(a)
	for _, f := range a.StateNames() {
		if a.IsFinal(f) {
			for q := range crawl(f, preds) {
				live[q] = true
			}
		}
	}
	if a.Finals().Len() > 0 {
		for _, q := range a.StateNames() {
			if !live[q] {
				issues = append(issues, Issue{Kind: KindDead, State: q})
			}
		}
	}

	for _, q := range a.StateNames() {
		for _, sym := range a.Alphabet() {
			if len(a.RulesFor(q, sym)) == 0 {
				issues = append(issues, Issue{Kind: KindMissingRule, State: q, Symbol: sym})
			}
		}
	}

	sigma := make(map[string]bool)
	for _, sym := range a.Alphabet() {
		sigma[sym] = true
	}
	for _, r := range a.Rules() {
		if !sigma[r.Symbol] {
			issues = append(issues, Issue{Kind: KindUnknownSymbol, State: r.Origin, Symbol: r.Symbol})
		}
	}

	return issues
}

// Report folds issues into a single error, or nil when there are none.
func Report(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d issues:\n- %s", len(issues), strings.Join(lines, "\n- "))
}

func successors(a *domain.Automaton) map[string][]string {
	out := make(map[string][]string)
	for _, r := range a.Rules() {
		for _, d := range r.Destinations {
			if d.IsDefined() {
				out[r.Origin] = append(out[r.Origin], d.State())
			}
		}
	}
	return out
}

func predecessors(a *domain.Automaton) map[string][]string {
	out := make(map[string][]string)
	for from, tos := range successors(a) {
		for _, to := range tos {
			out[to] = append(out[to], from)
		}
	}
	return out
}

// crawl returns every state reachable from start, start included.
func crawl(start string, edges map[string][]string) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}
