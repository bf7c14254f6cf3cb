package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Rating label constants, matching schema.GetPlainLabel.
const (
	StrongValue = "Strong"
	FairValue   = "Fair"
	WeakValue   = "Weak"
	PoorValue   = "Poor"
)

// Color variables for console output.
var (
	StrongColor = color.New(color.FgGreen, color.Bold)
	FairColor   = color.New(color.FgCyan)
	WeakColor   = color.New(color.FgYellow)
	PoorColor   = color.New(color.FgRed, color.Bold)
)

// GetColorLabel returns a colored rating label for console output (table).
func GetColorLabel(label string) string {
	switch label {
	case StrongValue:
		return StrongColor.Sprint(label)
	case FairValue:
		return FairColor.Sprint(label)
	case WeakValue:
		return WeakColor.Sprint(label)
	default:
		return PoorColor.Sprint(label)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDocumentDBFilePath returns the path to the SQLite DB file for the document store.
func GetDocumentDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mediascore_documents.db"
	}
	return filepath.Join(homeDir, ".mediascore_documents.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for build history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mediascore_history.db"
	}
	return filepath.Join(homeDir, ".mediascore_history.db")
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so that at least one character of content remains.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
