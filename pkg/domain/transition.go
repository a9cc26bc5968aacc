package domain

import (
	"encoding/json"
	"strings"
)

// UndefinedToken is the textual form of an undefined transition.
// It is only interpreted by ParseDestination; the domain uses the Destination variant.
const UndefinedToken = "-"

// Destination is the target of a production rule.
// It is either a defined state (To) or the explicit absence of a transition (Undefined).
type Destination struct {
	state   string
	defined bool
}

// To returns a destination pointing at the given state.
func To(state string) Destination {
	return Destination{state: state, defined: true}
}

// Undefined returns the destination declaring that no transition exists.
func Undefined() Destination {
	return Destination{}
}

// ParseDestination converts a textual token into a Destination.
// The token "-" is the undefined marker; anything else names a state.
func ParseDestination(token string) Destination {
	token = strings.TrimSpace(token)
	if token == UndefinedToken {
		return Undefined()
	}
	return To(token)
}

// IsDefined reports whether the destination names a state.
func (d Destination) IsDefined() bool { return d.defined }

// State returns the destination state, or "" when undefined.
func (d Destination) State() string { return d.state }

func (d Destination) String() string {
	if !d.defined {
		return UndefinedToken
	}
	return d.state
}

// MarshalJSON encodes the destination as its textual token.
func (d Destination) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a state name, the "-" token, or null (undefined).
func (d *Destination) UnmarshalJSON(data []byte) error {
	var token *string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	if token == nil {
		*d = Undefined()
		return nil
	}
	*d = ParseDestination(*token)
	return nil
}

// Rule defines one production δ(Origin, Symbol) = Destinations.
type Rule struct {
	Origin       string        `json:"from"`
	Symbol       string        `json:"symbol"`
	Destinations []Destination `json:"to"`
}

// NewRule builds a rule from textual destination tokens ("-" meaning undefined).
func NewRule(origin, symbol string, tokens ...string) Rule {
	dests := make([]Destination, 0, len(tokens))
	for _, t := range tokens {
		dests = append(dests, ParseDestination(t))
	}
	return Rule{Origin: origin, Symbol: symbol, Destinations: dests}
}

// Tokens returns the textual form of the destinations.
func (r Rule) Tokens() []string {
	out := make([]string, len(r.Destinations))
	for i, d := range r.Destinations {
		out[i] = d.String()
	}
	return out
}

func (r Rule) clone() Rule {
	r.Destinations = append([]Destination(nil), r.Destinations...)
	return r
}
