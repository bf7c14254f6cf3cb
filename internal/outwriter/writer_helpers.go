package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/mediascore/internal/contract"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// terminalWidth returns the configured width, the detected terminal width,
// or a conservative default.
func terminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxTableLabelWidth calculates the maximum width for labels in table output
// given the number of value columns next to them.
func getMaxTableLabelWidth(cfg *contract.Config, valueColumns int) int {
	// Every value column takes the number plus borders/padding
	baseWidth := valueColumns * (cfg.Precision + 6)

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	available := terminalWidth(cfg) - baseWidth
	if available < 20 {
		// Minimum reasonable label width
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}

// indentLabel prefixes a rating tree label according to its depth.
func indentLabel(label string, depth, maxWidth int) string {
	indent := strings.Repeat("  ", max(depth-1, 0))
	return indent + contract.TruncateLabel(label, max(maxWidth-len(indent), 4))
}

// colorLabel returns the rating label, colored when the config asks for it.
func colorLabel(label string, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(label)
	}
	return label
}
