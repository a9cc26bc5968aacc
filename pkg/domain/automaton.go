package domain

// Definition is the raw five-tuple M = (Σ, Q, δ, S, F) before validation.
type Definition struct {
	Alphabet []string `json:"alphabet"`
	States   []string `json:"states"`
	Rules    []Rule   `json:"rules"`
	Initial  string   `json:"initial"`
	Finals   []string `json:"finals"`
}

type ruleKey struct {
	origin string
	symbol string
}

// Automaton is a validated nondeterministic finite automaton.
// It is immutable once built and safe to share between concurrent computations.
type Automaton struct {
	alphabet []string
	order    []string // Q in declaration order
	states   StateSet
	rules    []Rule
	index    map[ruleKey][]int
	initial  string
	finals   StateSet
	fOrder   []string
}

// NewAutomaton validates def and returns the immutable automaton.
//
// Checks run in a fixed order and stop at the first violation:
// the initial state, then the final states, then every rule destination.
// No automaton is returned when validation fails.
func NewAutomaton(def Definition) (*Automaton, error) {
	states := NewStateSet(def.States...)

	if !states.Contains(def.Initial) {
		return nil, &UnknownInitialStateError{State: def.Initial}
	}

	for _, f := range def.Finals {
		if !states.Contains(f) {
			return nil, &UnknownFinalStateError{State: f}
		}
	}

	for _, r := range def.Rules {
		for _, d := range r.Destinations {
			if d.IsDefined() && !states.Contains(d.State()) {
				return nil, &UnknownDestinationStateError{
					State:  d.State(),
					Origin: r.Origin,
					Symbol: r.Symbol,
				}
			}
		}
	}

	a := &Automaton{
		alphabet: append([]string(nil), def.Alphabet...),
		order:    append([]string(nil), def.States...),
		states:   states,
		rules:    make([]Rule, len(def.Rules)),
		index:    make(map[ruleKey][]int),
		initial:  def.Initial,
		finals:   NewStateSet(def.Finals...),
		fOrder:   append([]string(nil), def.Finals...),
	}
	for i, r := range def.Rules {
		a.rules[i] = r.clone()
		k := ruleKey{origin: r.Origin, symbol: r.Symbol}
		a.index[k] = append(a.index[k], i)
	}
	return a, nil
}

// Alphabet returns Σ in declaration order.
func (a *Automaton) Alphabet() []string {
	return append([]string(nil), a.alphabet...)
}

// StateNames returns Q in declaration order.
func (a *Automaton) StateNames() []string {
	return append([]string(nil), a.order...)
}

// States returns Q as a set.
func (a *Automaton) States() StateSet {
	return a.states.Clone()
}

// Rules returns every production rule in declaration order.
func (a *Automaton) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	for i, r := range a.rules {
		out[i] = r.clone()
	}
	return out
}

// RulesFor returns all rules matching (origin, symbol). More than one rule may match;
// their destinations are combined by the stepper.
func (a *Automaton) RulesFor(origin, symbol string) []Rule {
	idx := a.index[ruleKey{origin: origin, symbol: symbol}]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Rule, len(idx))
	for i, j := range idx {
		out[i] = a.rules[j].clone()
	}
	return out
}

// Initial returns the initial state S.
func (a *Automaton) Initial() string { return a.initial }

// Finals returns F.
func (a *Automaton) Finals() StateSet {
	return a.finals.Clone()
}

// IsFinal reports whether state belongs to F.
func (a *Automaton) IsFinal(state string) bool {
	return a.finals.Contains(state)
}

// Definition returns the five-tuple the automaton was built from.
func (a *Automaton) Definition() Definition {
	return Definition{
		Alphabet: a.Alphabet(),
		States:   a.StateNames(),
		Rules:    a.Rules(),
		Initial:  a.initial,
		Finals:   append([]string(nil), a.fOrder...),
	}
}

// Transitions adds the defined destinations of every rule matching (origin, symbol)
// to defined, and reports whether any rule matched at all.
func (a *Automaton) Transitions(origin, symbol string, defined StateSet) (matched bool) {
	idx := a.index[ruleKey{origin: origin, symbol: symbol}]
	for _, j := range idx {
		for _, d := range a.rules[j].Destinations {
			if d.IsDefined() {
				defined.Add(d.State())
			}
		}
	}
	return len(idx) > 0
}
