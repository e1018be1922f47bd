// Package jobtitle classifies free-text job titles into the fixed set of
// organizational categories used by the staff directory.
package jobtitle

import (
	"os"
	"regexp"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Category is one organizational level.
type Category string

const (
	ExecutiveDirector Category = "Executive Director"
	CommunitySales    Category = "Community Sales"
	VicePresident     Category = "Vice President"
	RegionalDirector  Category = "Regional Director"
	CLevel            Category = "C-Level Executives"
	Other             Category = "Other"
)

// DisplayOrder is the top-down order of the organizational chart.
var DisplayOrder = []Category{
	CLevel,
	VicePresident,
	ExecutiveDirector,
	RegionalDirector,
	CommunitySales,
	Other,
}

// KPIOrder is the order of the role counters on the facility overview.
var KPIOrder = []Category{
	ExecutiveDirector,
	Other,
	CommunitySales,
	VicePresident,
	RegionalDirector,
	CLevel,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range DisplayOrder {
		if string(c) == s {
			return c, nil
		}
	}
	return "", eris.Errorf("jobtitle: unknown category %q", s)
}

// Rule assigns Category to titles matching Pattern.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
}

// Classifier evaluates rules top to bottom; the first match wins and
// unmatched titles fall back to Other.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier over rules in order.
func New(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// NewDefault creates a Classifier over DefaultRules.
func NewDefault() *Classifier {
	return New(DefaultRules())
}

// Classify returns the category of title.
func (c *Classifier) Classify(title string) Category {
	for _, r := range c.rules {
		if r.Pattern.MatchString(title) {
			return r.Category
		}
	}
	return Other
}

// Acronyms are anchored on word boundaries so that "coordinator" is not read
// as COO and prefixed forms such as "svp", "avp" or "rvp" still count as vice
// president.
var defaultTable = []ruleSpec{
	{Category: string(ExecutiveDirector), Pattern: `executive director`},
	{Category: string(CommunitySales), Pattern: `community sales|sales director|director of sales`},
	{Category: string(VicePresident), Pattern: `vice president|\b[a-z]?vp\b`},
	{Category: string(RegionalDirector), Pattern: `regional director|area director`},
	{Category: string(CLevel), Pattern: `\b(ceo|cfo|coo|cio)\b|chief executive officer|president|chief (financial|operating|information) officer`},
	{Category: string(Other), Pattern: `\bdon\b|director of nursing|chief nursing officer|\bcno\b|operations|program director|strategy|analytics`},
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
	Category string `yaml:"category"`
	Pattern  string `yaml:"pattern"`
}

// LoadRules reads an ordered rule table from YAML:
//
//	job_titles:
//	  - category: "Vice President"
//	    pattern: "vice president|\\bvp\\b"
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "jobtitle: read rules %s", path)
	}

	var wrapper struct {
		JobTitles []ruleSpec `yaml:"job_titles"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "jobtitle: parse rules")
	}
	if len(wrapper.JobTitles) == 0 {
		return nil, eris.Errorf("jobtitle: no rules in %s", path)
	}
	return compile(wrapper.JobTitles)
}

func compile(specs []ruleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		cat, err := ParseCategory(s.Category)
		if err != nil {
			return nil, eris.Wrapf(err, "jobtitle: rule %d", i)
		}
		if s.Pattern == "" {
			return nil, eris.Errorf("jobtitle: rule %d has no pattern", i)
		}
		re, err := regexp.Compile(`(?i)` + s.Pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "jobtitle: compile rule %d %q", i, s.Pattern)
		}
		rules = append(rules, Rule{Category: cat, Pattern: re})
	}
	return rules, nil
}
