package main

import (
	"testing"
	"time"

	"github.com/ShayCichocki/taskmill/internal/config"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{48 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	long := "a task description that goes on for quite a while"
	got := truncate(long, 20)
	if len(got) != 20 {
		t.Errorf("len = %d, want 20", len(got))
	}
	if got[17:] != "..." {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()

	runMaxDepth = 5
	runMaxSubtasks = 7
	runOutputDir = "/tmp/out"
	runDelay = "250ms"
	defer func() {
		runMaxDepth, runMaxSubtasks, runOutputDir, runDelay = 0, 0, "", ""
	}()

	applyOverrides(cfg)

	if cfg.Decompose.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d", cfg.Decompose.MaxDepth)
	}
	if cfg.Decompose.MaxSubtasks != 7 {
		t.Errorf("MaxSubtasks = %d", cfg.Decompose.MaxSubtasks)
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Errorf("Dir = %q", cfg.Output.Dir)
	}
	if cfg.Executor.TaskDelay != 250*time.Millisecond {
		t.Errorf("TaskDelay = %v", cfg.Executor.TaskDelay)
	}
}

func TestApplyOverridesZeroValuesKeepConfig(t *testing.T) {
	cfg := config.Default()
	runMaxDepth, runMaxSubtasks, runOutputDir, runDelay = 0, 0, "", ""

	applyOverrides(cfg)

	if cfg.Decompose.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want default 3", cfg.Decompose.MaxDepth)
	}
	if cfg.Executor.TaskDelay != 500*time.Millisecond {
		t.Errorf("TaskDelay = %v, want default 500ms", cfg.Executor.TaskDelay)
	}
}
