package solver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNoProcedure indicates the task description does not parse as any known
// filesystem-inspection operation.
var ErrNoProcedure = errors.New("no procedure matches the task")

// Capture-group parsers for the fixed procedure table. The single capture
// is the filesystem path the operation applies to.
var (
	countFilesRe = regexp.MustCompile(`(?i)count\s+(?:the\s+)?files\s+in\s+(.+)`)
	pathSizeRe   = regexp.MustCompile(`(?i)get\s+(?:the\s+)?size\s+of\s+(.+)`)
	listDirRe    = regexp.MustCompile(`(?i)list\s+(?:the\s+)?(?:director(?:y|ies)|folder)(?:\s+contents)?\s+(?:of\s+|in\s+)?(.+)`)
)

// SolveProcedure parses the description into one of the fixed filesystem
// operations and runs it. Unparseable descriptions and missing paths are
// errors; the executor records them as failed results.
func SolveProcedure(description string) (string, error) {
	if m := countFilesRe.FindStringSubmatch(description); m != nil {
		return countFiles(cleanPath(m[1]))
	}
	if m := pathSizeRe.FindStringSubmatch(description); m != nil {
		return pathSize(cleanPath(m[1]))
	}
	if m := listDirRe.FindStringSubmatch(description); m != nil {
		return listDir(cleanPath(m[1]))
	}
	return "", fmt.Errorf("%w: %q", ErrNoProcedure, description)
}

// cleanPath strips quotes and trailing punctuation from a captured path.
func cleanPath(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"'.`)
}

// countFiles counts the non-directory entries directly inside path.
func countFiles(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", path, err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	return fmt.Sprintf("Found %d files in %s", count, path), nil
}

// pathSize reports the size of a file, or the total size of all files under
// a directory.
func pathSize(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Sprintf("Size of %s: %d bytes", path, info.Size()), nil
	}

	var total int64
	err = filepath.Walk(path, func(_ string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			total += fi.Size()
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walk %s: %w", path, err)
	}
	return fmt.Sprintf("Size of %s: %d bytes", path, total), nil
}

// listDir returns the entry names directly inside path.
func listDir(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", path, err)
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return fmt.Sprintf("Contents of %s: %s", path, strings.Join(names, ", ")), nil
}
