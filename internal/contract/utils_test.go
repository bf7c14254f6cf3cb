package contract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	for _, label := range []string{StrongValue, FairValue, WeakValue, PoorValue} {
		assert.Equal(t, label, GetColorLabel(label))
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestGetDBFilePaths(t *testing.T) {
	doc := GetDocumentDBFilePath()
	history := GetHistoryDBFilePath()
	assert.True(t, strings.HasSuffix(doc, ".mediascore_documents.db"))
	assert.True(t, strings.HasSuffix(history, ".mediascore_history.db"))
	assert.NotEqual(t, doc, history)
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label    string
		width    int
		expected string
	}{
		{"Diversity of Roles", 30, "Diversity of Roles"},
		{"Diversity of Roles", 10, "Diversi..."},
		{"abc", 2, "abc"},
		{"Ünïcödé label", 8, "Ünïcö..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TruncateLabel(tt.label, tt.width))
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input     string
		expected  bool
		expectErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogConfig{Level: "warn"})

	logger.Info().Msg("hidden")
	logger.Warn().Str("outlet", "Daily Sun").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"outlet":"Daily Sun"`)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	fallback := NewLoggerTo(&buf, LogConfig{Level: "nonsense"})
	assert.Equal(t, zerolog.InfoLevel, fallback.GetLevel())
}
