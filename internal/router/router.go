// Package router maps an atomic task's description to the cheapest capable
// solver. Routing is a cost-minimization heuristic: an ordered rule table is
// evaluated top to bottom, and a word-count fallback guarantees that every
// description resolves to some solver.
package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ShayCichocki/taskmill/pkg/models"
)

// defaultRules is the built-in routing table, ordered cheapest first.
// Earlier entries win; keep cheap solvers at the top.
var defaultRules = []Rule{
	{Match: `(?i)count\s+(the\s+)?files|list\s+(the\s+)?(director|folder)|get\s+(the\s+)?size`, Solver: models.SolverProcedure},
	{Match: `(?i)extract|match\s+pattern|find\s+(all\s+)?(email|url|pattern)`, Solver: models.SolverPattern},
	{Match: `(?i)summarize\s+briefly|classify\s+simple|translate\s+(a\s+)?word`, Solver: models.SolverModelLight},
	{Match: `(?i)analyze|review|explain|describe|compare`, Solver: models.SolverModelStandard},
	{Match: `(?i)design|plan|create\s+complex|strategize|architect`, Solver: models.SolverModelHeavy},
}

// Word-count bounds for the fallback tier selection.
const (
	shortTaskWords  = 8
	mediumTaskWords = 20
)

// Rule is one (pattern, solver) entry of the routing table.
type Rule struct {
	// Match is the regular expression tested against the description.
	Match string `yaml:"match"`
	// Solver is the name of the solver chosen when Match hits.
	Solver string `yaml:"solver"`

	re *regexp.Regexp
}

// Router routes task descriptions to solver names. Pure and deterministic
// for a fixed rule table.
type Router struct {
	rules []Rule
}

// New creates a Router with the built-in rule table.
func New() *Router {
	r, err := NewWithRules(defaultRules)
	if err != nil {
		// The built-in table is compiled in tests; a bad pattern here is a
		// programming error.
		panic(fmt.Sprintf("router: invalid built-in rule: %v", err))
	}
	return r
}

// NewWithRules creates a Router from an explicit ordered rule list,
// compiling each pattern.
func NewWithRules(rules []Rule) (*Router, error) {
	compiled := make([]Rule, len(rules))
	for i, rule := range rules {
		re, err := regexp.Compile(rule.Match)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, rule.Match, err)
		}
		compiled[i] = Rule{Match: rule.Match, Solver: rule.Solver, re: re}
	}
	return &Router{rules: compiled}, nil
}

// Route returns the name of the cheapest solver whose rule matches the
// description, falling back to word-count tier selection when no rule
// matches. It never fails.
func (r *Router) Route(description string) string {
	for _, rule := range r.rules {
		if rule.re.MatchString(description) {
			return rule.Solver
		}
	}
	return routeByLength(description)
}

// routeByLength selects a model tier from the description's word count:
// short tasks go to the cheapest tier, long ones to the most capable.
func routeByLength(description string) string {
	words := len(strings.Fields(description))
	switch {
	case words <= shortTaskWords:
		return models.SolverModelLight
	case words <= mediumTaskWords:
		return models.SolverModelStandard
	default:
		return models.SolverModelHeavy
	}
}
