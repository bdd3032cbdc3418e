package router

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/taskmill/pkg/models"
)

// rulesFile is the YAML shape of a routing rules override file: an ordered
// list of match/solver pairs.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads an ordered routing rule list from a YAML file. File order
// is preserved; the first matching rule wins, exactly as with the built-in
// table.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	for i, rule := range f.Rules {
		if rule.Match == "" {
			return nil, fmt.Errorf("rule %d in %s has an empty match pattern", i, path)
		}
		if !knownSolver(rule.Solver) {
			return nil, fmt.Errorf("rule %d in %s names unknown solver %q", i, path, rule.Solver)
		}
	}

	return f.Rules, nil
}

// knownSolver reports whether a rules file references a registered solver name.
func knownSolver(name string) bool {
	switch name {
	case models.SolverPattern, models.SolverProcedure,
		models.SolverModelLight, models.SolverModelStandard, models.SolverModelHeavy:
		return true
	default:
		return false
	}
}
