package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const fileTimestampLayout = "20060102_150405"

// Write saves the rendered report into dir as a timestamped file and
// returns the full path. The directory is created if it does not exist.
func Write(dir, rendered string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	name := fmt.Sprintf("taskmill_report_%s.txt", time.Now().Format(fileTimestampLayout))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
