package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskmill/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify Taskmill configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/taskmill/config.yaml
Project-specific overrides can be placed in .taskmill.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask API key if set
	apiKeyDisplay := "(not set)"
	if cfg.LLM.APIKey != "" {
		apiKeyDisplay = "****"
	}

	fmt.Printf("llm.provider: %s\n", cfg.LLM.Provider)
	fmt.Printf("llm.base_url: %s\n", cfg.LLM.BaseURL)
	fmt.Printf("llm.api_key: %s\n", apiKeyDisplay)
	fmt.Printf("llm.max_retries: %d\n", cfg.LLM.MaxRetries)
	fmt.Printf("llm.retry_delay: %s\n", cfg.LLM.RetryDelay)
	fmt.Printf("models.light: %s\n", cfg.Models.Light)
	fmt.Printf("models.standard: %s\n", cfg.Models.Standard)
	fmt.Printf("models.heavy: %s\n", cfg.Models.Heavy)
	fmt.Printf("decompose.max_depth: %d\n", cfg.Decompose.MaxDepth)
	fmt.Printf("decompose.max_subtasks: %d\n", cfg.Decompose.MaxSubtasks)
	fmt.Printf("decompose.atomic_max_chars: %d\n", cfg.Decompose.AtomicMaxChars)
	fmt.Printf("decompose.atomic_max_words: %d\n", cfg.Decompose.AtomicMaxWords)
	fmt.Printf("executor.task_delay: %s\n", cfg.Executor.TaskDelay)
	fmt.Printf("output.dir: %s\n", cfg.Output.Dir)
	fmt.Printf("store.enabled: %t\n", cfg.Store.Enabled)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "llm.provider":
		return cfg.LLM.Provider, nil
	case "llm.base_url":
		return cfg.LLM.BaseURL, nil
	case "llm.api_key":
		if cfg.LLM.APIKey == "" {
			return "(not set)", nil
		}
		return "****", nil
	case "llm.max_retries":
		return strconv.Itoa(cfg.LLM.MaxRetries), nil
	case "llm.retry_delay":
		return cfg.LLM.RetryDelay.String(), nil
	case "models.light":
		return cfg.Models.Light, nil
	case "models.standard":
		return cfg.Models.Standard, nil
	case "models.heavy":
		return cfg.Models.Heavy, nil
	case "decompose.max_depth":
		return strconv.Itoa(cfg.Decompose.MaxDepth), nil
	case "decompose.max_subtasks":
		return strconv.Itoa(cfg.Decompose.MaxSubtasks), nil
	case "decompose.atomic_max_chars":
		return strconv.Itoa(cfg.Decompose.AtomicMaxChars), nil
	case "decompose.atomic_max_words":
		return strconv.Itoa(cfg.Decompose.AtomicMaxWords), nil
	case "executor.task_delay":
		return cfg.Executor.TaskDelay.String(), nil
	case "output.dir":
		return cfg.Output.Dir, nil
	case "store.enabled":
		return strconv.FormatBool(cfg.Store.Enabled), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "llm.provider":
		cfg.LLM.Provider = value
	case "llm.base_url":
		cfg.LLM.BaseURL = value
	case "llm.api_key":
		cfg.LLM.APIKey = value
	case "llm.max_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_retries: %w", err)
		}
		cfg.LLM.MaxRetries = n
	case "llm.retry_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for retry_delay: %w", err)
		}
		cfg.LLM.RetryDelay = d
	case "models.light":
		cfg.Models.Light = value
	case "models.standard":
		cfg.Models.Standard = value
	case "models.heavy":
		cfg.Models.Heavy = value
	case "decompose.max_depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_depth: %w", err)
		}
		cfg.Decompose.MaxDepth = n
	case "decompose.max_subtasks":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_subtasks: %w", err)
		}
		cfg.Decompose.MaxSubtasks = n
	case "decompose.atomic_max_chars":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for atomic_max_chars: %w", err)
		}
		cfg.Decompose.AtomicMaxChars = n
	case "decompose.atomic_max_words":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for atomic_max_words: %w", err)
		}
		cfg.Decompose.AtomicMaxWords = n
	case "executor.task_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for task_delay: %w", err)
		}
		cfg.Executor.TaskDelay = d
	case "output.dir":
		cfg.Output.Dir = value
	case "store.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for store.enabled: %w", err)
		}
		cfg.Store.Enabled = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
