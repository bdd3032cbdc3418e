// Package config handles configuration loading and management for taskmill.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for taskmill.
type Config struct {
	LLM       LLMConfig       `mapstructure:"llm"`
	Models    ModelsConfig    `mapstructure:"models"`
	Decompose DecomposeConfig `mapstructure:"decompose"`
	Executor  ExecutorConfig  `mapstructure:"executor"`
	Output    OutputConfig    `mapstructure:"output"`
	Store     StoreConfig     `mapstructure:"store"`
}

// LLMConfig holds collaborator endpoint settings.
type LLMConfig struct {
	// Provider selects the collaborator backend: "lmstudio" or "anthropic".
	Provider string `mapstructure:"provider"`
	// BaseURL is the OpenAI-compatible endpoint for the lmstudio provider.
	BaseURL string `mapstructure:"base_url"`
	// APIKey is the API key, if the endpoint requires one.
	APIKey string `mapstructure:"api_key"`
	// MaxRetries is the per-call retry limit at the collaborator seam.
	MaxRetries int `mapstructure:"max_retries"`
	// RetryDelay is the pause between retry attempts.
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// Bedrock routes the anthropic provider through AWS Bedrock.
	Bedrock bool `mapstructure:"bedrock"`
	// AWSRegion is the AWS region for Bedrock.
	AWSRegion string `mapstructure:"aws_region"`
	// AWSProfile is the optional AWS profile name for Bedrock.
	AWSProfile string `mapstructure:"aws_profile"`
}

// ModelsConfig names the model for each LLM solver tier.
type ModelsConfig struct {
	Light    string `mapstructure:"light"`
	Standard string `mapstructure:"standard"`
	Heavy    string `mapstructure:"heavy"`
}

// DecomposeConfig holds decomposition bounds and atomicity thresholds.
type DecomposeConfig struct {
	// MaxDepth bounds the decomposition recursion.
	MaxDepth int `mapstructure:"max_depth"`
	// MaxSubtasks caps the children produced per decomposition call.
	MaxSubtasks int `mapstructure:"max_subtasks"`
	// MaxTokens is the token budget for decomposition calls.
	MaxTokens int `mapstructure:"max_tokens"`
	// Temperature is the sampling temperature for decomposition calls.
	Temperature float64 `mapstructure:"temperature"`
	// AtomicMaxChars is the length threshold below which a task is atomic.
	AtomicMaxChars int `mapstructure:"atomic_max_chars"`
	// AtomicMaxWords is the word-count threshold below which a task is atomic.
	AtomicMaxWords int `mapstructure:"atomic_max_words"`
}

// ExecutorConfig holds execution pacing and model-call settings.
type ExecutorConfig struct {
	// TaskDelay is the fixed pause between successive executed tasks.
	TaskDelay time.Duration `mapstructure:"task_delay"`
	// MaxTokens is the token budget for model-solver calls.
	MaxTokens int `mapstructure:"max_tokens"`
	// Temperature is the sampling temperature for model-solver calls.
	Temperature float64 `mapstructure:"temperature"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	// Dir is the directory report files are written to.
	Dir string `mapstructure:"dir"`
}

// StoreConfig holds run-history persistence settings.
type StoreConfig struct {
	// Enabled toggles recording runs to the sqlite store.
	Enabled bool `mapstructure:"enabled"`
}

// ModelFor returns the configured model name for a solver tier name.
// Unknown names fall back to the standard tier.
func (m ModelsConfig) ModelFor(tier string) string {
	switch tier {
	case "light":
		return m.Light
	case "heavy":
		return m.Heavy
	default:
		return m.Standard
	}
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (TASKMILL_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)
// 2. Project config (.taskmill.yaml in current directory or parent)
// 3. User config (~/.config/taskmill/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("TASKMILL")

	// Map specific environment variables
	v.BindEnv("llm.api_key", "TASKMILL_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY")
	v.BindEnv("llm.base_url", "TASKMILL_BASE_URL")
	v.BindEnv("llm.provider", "TASKMILL_PROVIDER")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references and a leading ~ in paths
	cfg.LLM.APIKey = os.ExpandEnv(cfg.LLM.APIKey)
	cfg.Output.Dir = expandHome(os.ExpandEnv(cfg.Output.Dir))

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.LLM.APIKey = os.ExpandEnv(cfg.LLM.APIKey)
	cfg.Output.Dir = expandHome(os.ExpandEnv(cfg.Output.Dir))

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("llm.provider", cfg.LLM.Provider)
	v.Set("llm.base_url", cfg.LLM.BaseURL)
	v.Set("llm.api_key", cfg.LLM.APIKey)
	v.Set("llm.max_retries", cfg.LLM.MaxRetries)
	v.Set("llm.retry_delay", cfg.LLM.RetryDelay.String())
	v.Set("llm.bedrock", cfg.LLM.Bedrock)
	v.Set("llm.aws_region", cfg.LLM.AWSRegion)
	v.Set("llm.aws_profile", cfg.LLM.AWSProfile)
	v.Set("models.light", cfg.Models.Light)
	v.Set("models.standard", cfg.Models.Standard)
	v.Set("models.heavy", cfg.Models.Heavy)
	v.Set("decompose.max_depth", cfg.Decompose.MaxDepth)
	v.Set("decompose.max_subtasks", cfg.Decompose.MaxSubtasks)
	v.Set("decompose.max_tokens", cfg.Decompose.MaxTokens)
	v.Set("decompose.temperature", cfg.Decompose.Temperature)
	v.Set("decompose.atomic_max_chars", cfg.Decompose.AtomicMaxChars)
	v.Set("decompose.atomic_max_words", cfg.Decompose.AtomicMaxWords)
	v.Set("executor.task_delay", cfg.Executor.TaskDelay.String())
	v.Set("executor.max_tokens", cfg.Executor.MaxTokens)
	v.Set("executor.temperature", cfg.Executor.Temperature)
	v.Set("output.dir", cfg.Output.Dir)
	v.Set("store.enabled", cfg.Store.Enabled)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Collaborator defaults: a local LMStudio-compatible server.
	v.SetDefault("llm.provider", "lmstudio")
	v.SetDefault("llm.base_url", "http://localhost:1234/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.bedrock", false)
	v.SetDefault("llm.aws_region", "")
	v.SetDefault("llm.aws_profile", "")

	// Model tier defaults
	v.SetDefault("models.light", "llama-3.2-1b-instruct")
	v.SetDefault("models.standard", "llama-3.2-8b-instruct")
	v.SetDefault("models.heavy", "qwen2.5-14b-instruct")

	// Decomposition defaults
	v.SetDefault("decompose.max_depth", 3)
	v.SetDefault("decompose.max_subtasks", 5)
	v.SetDefault("decompose.max_tokens", 500)
	v.SetDefault("decompose.temperature", 0.3)
	v.SetDefault("decompose.atomic_max_chars", 40)
	v.SetDefault("decompose.atomic_max_words", 6)

	// Executor defaults
	v.SetDefault("executor.task_delay", "500ms")
	v.SetDefault("executor.max_tokens", 800)
	v.SetDefault("executor.temperature", 0.7)

	// Output defaults
	v.SetDefault("output.dir", "~/taskmill/reports")

	// Store defaults
	v.SetDefault("store.enabled", true)
}

// getUserConfigDir returns the XDG config directory for taskmill.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "taskmill")
	}

	// Fall back to ~/.config/taskmill
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "taskmill")
	}
	return filepath.Join(home, ".config", "taskmill")
}

// findProjectConfig searches for .taskmill.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".taskmill.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:   "lmstudio",
			BaseURL:    "http://localhost:1234/v1",
			MaxRetries: 3,
			RetryDelay: time.Second,
		},
		Models: ModelsConfig{
			Light:    "llama-3.2-1b-instruct",
			Standard: "llama-3.2-8b-instruct",
			Heavy:    "qwen2.5-14b-instruct",
		},
		Decompose: DecomposeConfig{
			MaxDepth:       3,
			MaxSubtasks:    5,
			MaxTokens:      500,
			Temperature:    0.3,
			AtomicMaxChars: 40,
			AtomicMaxWords: 6,
		},
		Executor: ExecutorConfig{
			TaskDelay:   500 * time.Millisecond,
			MaxTokens:   800,
			Temperature: 0.7,
		},
		Output: OutputConfig{
			Dir: "~/taskmill/reports",
		},
		Store: StoreConfig{
			Enabled: true,
		},
	}
}
