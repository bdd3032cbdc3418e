// Package llm provides the text-completion collaborator boundary.
// Providers return typed errors; the literal "ERROR:" sentinel convention
// exists only where results are serialized for reports and run records.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ShayCichocki/taskmill/internal/config"
)

// ErrorSentinel is the reserved prefix used when a failure is serialized
// into report or store text in place of a result.
const ErrorSentinel = "ERROR:"

// ErrUnknownProvider indicates an unrecognized llm.provider value.
var ErrUnknownProvider = errors.New("unknown llm provider")

// Completer is the contract the engine needs from a collaborator: one
// prompt in, one raw text response out. Implementations handle their own
// transport, timeout, and retry policy.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error)
}

// New constructs the configured collaborator provider.
func New(cfg *config.Config) (Completer, error) {
	switch cfg.LLM.Provider {
	case "lmstudio", "openai", "":
		return NewOpenAICompleter(cfg.LLM), nil
	case "anthropic":
		return NewAnthropicCompleter(cfg.LLM)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.LLM.Provider)
	}
}

// SentinelString converts an error into its serialized sentinel form.
func SentinelString(err error) string {
	return fmt.Sprintf("%s %v", ErrorSentinel, err)
}

// IsSentinel reports whether a serialized result string carries the
// error sentinel prefix.
func IsSentinel(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), ErrorSentinel)
}
