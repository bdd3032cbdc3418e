package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ShayCichocki/taskmill/internal/config"
)

// OpenAICompleter talks to any OpenAI-compatible chat-completions server,
// which is how a local LMStudio instance is addressed. Each call retries a
// fixed number of times with a fixed delay before reporting failure.
type OpenAICompleter struct {
	client     *openai.Client
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAICompleter creates a completer against cfg.BaseURL.
func NewOpenAICompleter(cfg config.LLMConfig) *OpenAICompleter {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		// LMStudio ignores the key but the client requires one.
		opts = append(opts, option.WithAPIKey("lm-studio"))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &OpenAICompleter{
		client:     &client,
		maxRetries: maxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// Complete sends a single-turn chat completion and returns the raw text.
func (c *OpenAICompleter) Complete(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			MaxTokens:   openai.Int(int64(maxTokens)),
			Temperature: openai.Float(temperature),
		})
		if err != nil {
			lastErr = err
			continue
		}
		if len(completion.Choices) == 0 {
			lastErr = fmt.Errorf("empty choices in completion response")
			continue
		}

		return completion.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries, lastErr)
}
