package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LLM.Provider != "lmstudio" {
		t.Errorf("expected default provider 'lmstudio', got %q", cfg.LLM.Provider)
	}

	if cfg.LLM.BaseURL != "http://localhost:1234/v1" {
		t.Errorf("expected default base_url 'http://localhost:1234/v1', got %q", cfg.LLM.BaseURL)
	}

	if cfg.LLM.MaxRetries != 3 {
		t.Errorf("expected max_retries 3, got %d", cfg.LLM.MaxRetries)
	}

	if cfg.Decompose.MaxDepth != 3 {
		t.Errorf("expected max_depth 3, got %d", cfg.Decompose.MaxDepth)
	}

	if cfg.Decompose.MaxSubtasks != 5 {
		t.Errorf("expected max_subtasks 5, got %d", cfg.Decompose.MaxSubtasks)
	}

	if cfg.Executor.TaskDelay != 500*time.Millisecond {
		t.Errorf("expected task_delay 500ms, got %v", cfg.Executor.TaskDelay)
	}

	if !cfg.Store.Enabled {
		t.Error("expected store.enabled to be true")
	}
}

func TestLoadFromPath(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
llm:
  provider: anthropic
  base_url: http://10.0.0.5:1234/v1
  api_key: test-key
  max_retries: 5
  retry_delay: 2s
models:
  light: tiny-model
  heavy: big-model
decompose:
  max_depth: 4
  max_subtasks: 3
  atomic_max_chars: 80
executor:
  task_delay: 250ms
store:
  enabled: false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic', got %q", cfg.LLM.Provider)
	}

	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("expected api_key 'test-key', got %q", cfg.LLM.APIKey)
	}

	if cfg.LLM.MaxRetries != 5 {
		t.Errorf("expected max_retries 5, got %d", cfg.LLM.MaxRetries)
	}

	if cfg.LLM.RetryDelay != 2*time.Second {
		t.Errorf("expected retry_delay 2s, got %v", cfg.LLM.RetryDelay)
	}

	if cfg.Decompose.MaxDepth != 4 {
		t.Errorf("expected max_depth 4, got %d", cfg.Decompose.MaxDepth)
	}

	if cfg.Decompose.MaxSubtasks != 3 {
		t.Errorf("expected max_subtasks 3, got %d", cfg.Decompose.MaxSubtasks)
	}

	if cfg.Decompose.AtomicMaxChars != 80 {
		t.Errorf("expected atomic_max_chars 80, got %d", cfg.Decompose.AtomicMaxChars)
	}

	// Unset keys keep their defaults
	if cfg.Models.Standard != "llama-3.2-8b-instruct" {
		t.Errorf("expected default standard model, got %q", cfg.Models.Standard)
	}

	if cfg.Executor.TaskDelay != 250*time.Millisecond {
		t.Errorf("expected task_delay 250ms, got %v", cfg.Executor.TaskDelay)
	}

	if cfg.Store.Enabled {
		t.Error("expected store.enabled to be false")
	}
}

func TestAPIKeyExpansion(t *testing.T) {
	os.Setenv("TEST_TASKMILL_KEY", "expanded-value")
	defer os.Unsetenv("TEST_TASKMILL_KEY")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := "llm:\n  api_key: ${TEST_TASKMILL_KEY}\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.LLM.APIKey != "expanded-value" {
		t.Errorf("expected 'expanded-value', got %q", cfg.LLM.APIKey)
	}
}

func TestGetUserConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	defer os.Unsetenv("XDG_CONFIG_HOME")

	dir := getUserConfigDir()
	expected := "/custom/config/taskmill"
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestModelFor(t *testing.T) {
	m := ModelsConfig{Light: "l", Standard: "s", Heavy: "h"}

	tests := []struct {
		tier string
		want string
	}{
		{"light", "l"},
		{"standard", "s"},
		{"heavy", "h"},
		{"unknown", "s"},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			if got := m.ModelFor(tt.tier); got != tt.want {
				t.Errorf("ModelFor(%q) = %q, want %q", tt.tier, got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got := expandHome("~/taskmill/reports")
	want := filepath.Join(home, "taskmill", "reports")
	if got != want {
		t.Errorf("expandHome = %q, want %q", got, want)
	}

	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome should leave absolute paths alone, got %q", got)
	}
}
