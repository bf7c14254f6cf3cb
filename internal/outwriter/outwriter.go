// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
)

// WriteWorkbook saves the rendered rating workbook to path.
func WriteWorkbook(path string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("no workbook was rendered")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote workbook to %s\n", path)
	return nil
}
