package llm

import (
	"errors"
	"testing"

	"github.com/ShayCichocki/taskmill/internal/config"
)

func TestNewProviderSelection(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantErr  bool
	}{
		{"lmstudio", "lmstudio", false},
		{"openai alias", "openai", false},
		{"empty defaults to lmstudio", "", false},
		{"unknown", "oracle", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.LLM.Provider = tt.provider

			completer, err := New(cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownProvider) {
					t.Errorf("New() error = %v, want ErrUnknownProvider", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if completer == nil {
				t.Fatal("New() returned nil completer")
			}
		})
	}
}

func TestSentinelString(t *testing.T) {
	s := SentinelString(errors.New("connection refused"))
	if s != "ERROR: connection refused" {
		t.Errorf("SentinelString = %q", s)
	}
	if !IsSentinel(s) {
		t.Error("IsSentinel should detect serialized errors")
	}
}

func TestIsSentinel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain result", "Found 3 files", false},
		{"sentinel", "ERROR: timeout", true},
		{"sentinel with leading space", "  ERROR: timeout", true},
		{"empty", "", false},
		{"error word mid-string", "no ERROR: here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSentinel(tt.in); got != tt.want {
				t.Errorf("IsSentinel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
