package solver

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPattern indicates the pattern solver has no extraction matching the
// task description.
var ErrNoPattern = errors.New("no pattern extraction matches the task")

// patternEntry names one fixed regex extraction, keyed by a substring of
// the task description.
type patternEntry struct {
	keyword string
	name    string
	pattern string
}

// patternTable is the fixed set of named extractions the pattern solver
// knows. The result of a pattern task is the extraction's regex source.
var patternTable = []patternEntry{
	{keyword: "email", name: "email", pattern: `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`},
	{keyword: "url", name: "url", pattern: `https?://[^\s]+`},
	{keyword: "phone", name: "phone", pattern: `\+?\d[\d\s().-]{6,}\d`},
	{keyword: "ip", name: "ipv4", pattern: `\b(?:\d{1,3}\.){3}\d{1,3}\b`},
	{keyword: "number", name: "number", pattern: `-?\d+(?:\.\d+)?`},
}

// SolvePattern resolves a pattern task: the first table entry whose keyword
// appears in the description wins, and its regex is the result.
func SolvePattern(description string) (string, error) {
	lower := strings.ToLower(description)
	for _, entry := range patternTable {
		if strings.Contains(lower, entry.keyword) {
			return fmt.Sprintf("%s pattern: %s", entry.name, entry.pattern), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoPattern, description)
}
