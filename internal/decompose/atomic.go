package decompose

import (
	"regexp"
	"strings"
)

// atomicPatterns are lexical cues that a task is a single-step operation:
// a simple verb acting on a simple object, or a range/comparison phrasing.
// These are heuristics for cost control, not correctness guarantees.
var atomicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(read|write|save|load|get|set|extract|count|calculate|compute|find|check|validate|list)\b.*\b(file|files|text|string|number|numbers|list|value|values|directory|folder|path|size|word|words|line|lines)\b`),
	regexp.MustCompile(`(?i)\bfrom\s+\S+\s+to\s+\S+`),
	regexp.MustCompile(`(?i)\bbetween\s+\S+\s+and\s+\S+`),
}

// Classifier decides whether a task description is simple enough to execute
// directly. Pure; no side effects and no failure modes.
type Classifier struct {
	maxChars int
	maxWords int
}

// NewClassifier creates a Classifier with the given shortness thresholds.
func NewClassifier(maxChars, maxWords int) *Classifier {
	return &Classifier{
		maxChars: maxChars,
		maxWords: maxWords,
	}
}

// IsAtomic returns true if the description matches a single-step lexical
// pattern, or is short on both the character and word-count axes.
// False negatives cost one extra decomposition round-trip; false positives
// execute a composite task directly, a known limitation of the heuristic.
func (c *Classifier) IsAtomic(description string) bool {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return true
	}

	for _, pattern := range atomicPatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}

	if len(trimmed) < c.maxChars && len(strings.Fields(trimmed)) <= c.maxWords {
		return true
	}

	return false
}
