package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/nfa/pkg/domain"
)

// Overlay contains computation data to highlight on the graph.
type Overlay struct {
	Visited domain.StateSet
	Active  domain.StateSet
}

// OverlayFromTrace marks every state a trace went through, and its final active set.
func OverlayFromTrace(t *domain.Trace) *Overlay {
	o := &Overlay{Visited: domain.NewStateSet(), Active: t.Final()}
	for _, cp := range t.Checkpoints {
		for st := range cp.Active {
			o.Visited.Add(st)
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart for the automaton.
// It applies the usual state-diagram shapes:
// - Initial state: entered by an arrow from an unlabeled point
// - Final states: (((Double circle)))
// - Other states: ((Circle))
// Arrows sharing origin and destination are merged into one edge labeled with every symbol.
// Undefined transitions draw no edge.
func GenerateMermaid(a *domain.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	sb.WriteString("    __start[ ]:::hidden\n")
	for _, st := range a.StateNames() {
		opener, closer := "((", "))"
		if a.IsFinal(st) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(st), opener, escapeLabel(st), closer))
	}
	sb.WriteString(fmt.Sprintf("    __start --> %s\n", sanitizeMermaidID(a.Initial())))

	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)
	for _, r := range a.Rules() {
		for _, d := range r.Destinations {
			if !d.IsDefined() {
				continue
			}
			e := edge{from: r.Origin, to: d.State()}
			if _, seen := labels[e]; !seen {
				order = append(order, e)
			}
			labels[e] = appendUnique(labels[e], r.Symbol)
		}
	}
	for _, e := range order {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(e.from), escapeLabel(strings.Join(labels[e], ", ")), sanitizeMermaidID(e.to)))
	}

	sb.WriteString("    classDef hidden display:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, st := range overlay.Visited.Sorted() {
			if overlay.Active.Contains(st) {
				continue
			}
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", sanitizeMermaidID(st)))
		}
		for _, st := range overlay.Active.Sorted() {
			sb.WriteString(fmt.Sprintf("    class %s active;\n", sanitizeMermaidID(st)))
		}
	}

	return sb.String()
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "\"", "_")
	return "s_" + r.Replace(id)
}
