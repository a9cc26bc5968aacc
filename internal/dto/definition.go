package dto

import (
	"github.com/aretw0/nfa/pkg/domain"
)

// Definition is the on-disk shape of an automaton.
// It uses "mapstructure" tags so YAML and JSON documents decode through the same path.
type Definition struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Alphabet    []string `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	States      []string `json:"states" yaml:"states" mapstructure:"states"`
	Initial     string   `json:"initial" yaml:"initial" mapstructure:"initial"`
	Finals      []string `json:"finals" yaml:"finals" mapstructure:"finals"`
	Rules       []Rule   `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// Rule is one production. To holds destination tokens, "-" meaning undefined.
type Rule struct {
	From   string   `json:"from" yaml:"from" mapstructure:"from"`
	Symbol string   `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	To     []string `json:"to" yaml:"to,flow" mapstructure:"to"`
}

// ToDomain converts the document into the five-tuple the core validates.
func (d *Definition) ToDomain() domain.Definition {
	rules := make([]domain.Rule, 0, len(d.Rules))
	for _, r := range d.Rules {
		rules = append(rules, domain.NewRule(r.From, r.Symbol, r.To...))
	}
	return domain.Definition{
		Alphabet: append([]string(nil), d.Alphabet...),
		States:   append([]string(nil), d.States...),
		Rules:    rules,
		Initial:  d.Initial,
		Finals:   append([]string(nil), d.Finals...),
	}
}

// FromDomain converts a five-tuple into its document form.
func FromDomain(name string, def domain.Definition) *Definition {
	rules := make([]Rule, 0, len(def.Rules))
	for _, r := range def.Rules {
		rules = append(rules, Rule{From: r.Origin, Symbol: r.Symbol, To: r.Tokens()})
	}
	return &Definition{
		Name:     name,
		Alphabet: append([]string(nil), def.Alphabet...),
		States:   append([]string(nil), def.States...),
		Initial:  def.Initial,
		Finals:   append([]string(nil), def.Finals...),
		Rules:    rules,
	}
}
