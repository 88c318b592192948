package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// ════════════════════════════════════════════════════════════════════
// File Writer
// ════════════════════════════════════════════════════════════════════

// WriteFile writes a rendered report to path, creating parent
// directories as needed. An existing file is overwritten; since the
// document is reproducible there is nothing to preserve.
func WriteFile(html string, path string) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
