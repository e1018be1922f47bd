// Package ownership maps free-text ownership-group strings to canonical
// operator names using an ordered, first-match-wins rule table.
package ownership

import (
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rule maps any input matching Pattern to Name.
type Rule struct {
	Pattern *regexp.Regexp
	Name    string
}

// Normalizer canonicalizes ownership groups. It is read-only after
// construction and safe for concurrent use.
type Normalizer struct {
	rules []Rule
}

// New creates a Normalizer over the given rules, evaluated in order.
func New(rules []Rule) *Normalizer {
	return &Normalizer{rules: rules}
}

// NewDefault creates a Normalizer over DefaultRules.
func NewDefault() *Normalizer {
	return New(DefaultRules())
}

// Rules returns a copy of the rule table.
func (n *Normalizer) Rules() []Rule {
	out := make([]Rule, len(n.rules))
	copy(out, n.rules)
	return out
}

// Normalize returns the canonical name of the first rule whose pattern
// matches raw, or raw unchanged when none does. Blank input returns "".
func (n *Normalizer) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	for _, r := range n.rules {
		if r.Pattern.MatchString(raw) {
			return r.Name
		}
	}
	return raw
}

// defaultTable lists known brands and rebrands. Order matters: more specific
// patterns precede the broader ones they overlap with.
var defaultTable = []ruleSpec{
	{Pattern: `holiday`, Name: "Atria Senior Living"},
	{Pattern: `atria`, Name: "Atria Senior Living"},
	{Pattern: `capital senior living|sonida`, Name: "Sonida Senior Living"},
	{Pattern: `brookdale|emeritus`, Name: "Brookdale Senior Living"},
	{Pattern: `sunrise`, Name: "Sunrise Senior Living"},
	{Pattern: `five star|alerislife`, Name: "Five Star Senior Living"},
	{Pattern: `life care services|\blcs\b`, Name: "LCS"},
	{Pattern: `life care centers`, Name: "Life Care Centers of America"},
	{Pattern: `benchmark`, Name: "Benchmark Senior Living"},
	{Pattern: `erickson`, Name: "Erickson Senior Living"},
	{Pattern: `enlivant`, Name: "Enlivant"},
	{Pattern: `senior lifestyle`, Name: "Senior Lifestyle"},
	{Pattern: `discovery senior`, Name: "Discovery Senior Living"},
	{Pattern: `watermark`, Name: "Watermark Retirement Communities"},
	{Pattern: `merrill gardens`, Name: "Merrill Gardens"},
	{Pattern: `american house`, Name: "American House Senior Living"},
	{Pattern: `frontier (senior|management)`, Name: "Frontier Senior Living"},
	{Pattern: `silverado`, Name: "Silverado"},
}

// DefaultRules returns the built-in rule table.
func DefaultRules() []Rule {
	rules, err := compile(defaultTable)
	if err != nil {
		panic(err) // built-in table is static
	}
	return rules
}

type ruleSpec struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
}

// LoadRules reads an ordered rule table from a YAML file of the form:
//
//	ownership:
//	  - pattern: "holiday"
//	    name: "Atria Senior Living"
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ownership: read rules %s", path)
	}

	var wrapper struct {
		Ownership []ruleSpec `yaml:"ownership"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "ownership: parse rules")
	}
	if len(wrapper.Ownership) == 0 {
		return nil, eris.Errorf("ownership: no rules in %s", path)
	}
	return compile(wrapper.Ownership)
}

func compile(specs []ruleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		if s.Pattern == "" || s.Name == "" {
			return nil, eris.Errorf("ownership: rule %d needs pattern and name", i)
		}
		re, err := regexp.Compile(`(?i)` + s.Pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "ownership: compile rule %d %q", i, s.Pattern)
		}
		rules = append(rules, Rule{Pattern: re, Name: s.Name})
	}
	return rules, nil
}
