package contract

import (
	"testing"
	"time"

	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.ChildrenTree, cfg.Tree)
				assert.Equal(t, 4, cfg.BucketLimit)
				assert.Equal(t, 0.8, cfg.Decay)
				assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.True(t, cfg.UseColors)
				assert.InDelta(t, float64(DefaultLookbackDays*24), cfg.Filter.End.Sub(cfg.Filter.Start).Hours(), 0.01)
			},
		},
		{
			name: "filter fields",
			modify: func(in *ConfigRawInput) {
				in.Start = "2024-01-01"
				in.End = "2024-02-01T00:00:00Z"
				in.Media = " Daily Sun, ,City Press "
				in.Country = "za"
				in.Person = 7
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"Daily Sun", "City Press"}, cfg.Filter.Media)
				assert.Equal(t, "za", cfg.Filter.Country)
				assert.Equal(t, int64(7), cfg.Filter.PersonID)
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Filter.Start)
			},
		},
		{
			name:   "tree file implies custom tree",
			modify: func(in *ConfigRawInput) { in.TreeFile = "tree.yaml" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.CustomTree, cfg.Tree)
			},
		},
		{name: "custom tree without file", modify: func(in *ConfigRawInput) { in.Tree = "custom" }, expectError: true},
		{name: "unknown tree", modify: func(in *ConfigRawInput) { in.Tree = "sports" }, expectError: true},
		{name: "zero bucket limit", modify: func(in *ConfigRawInput) { in.BucketLimit = 0 }, expectError: true},
		{name: "start after end", modify: func(in *ConfigRawInput) { in.Start = "2025-01-02"; in.End = "2025-01-01" }, expectError: true},
		{name: "bad start", modify: func(in *ConfigRawInput) { in.Start = "yesterday" }, expectError: true},
		{name: "decay out of range", modify: func(in *ConfigRawInput) { in.Decay = 1 }, expectError: true},
		{name: "inverted thresholds", modify: func(in *ConfigRawInput) { in.TrendUp = -1; in.TrendDown = 1 }, expectError: true},
		{name: "zero quote limit", modify: func(in *ConfigRawInput) { in.QuoteLimit = 0 }, expectError: true},
		{name: "bad output", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "bad precision", modify: func(in *ConfigRawInput) { in.Precision = 0 }, expectError: true},
		{name: "bad color", modify: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: true},
		{name: "bad log level", modify: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "negative person", modify: func(in *ConfigRawInput) { in.Person = -1 }, expectError: true},
		{name: "none document backend", modify: func(in *ConfigRawInput) { in.DocumentBackend = "none" }, expectError: true},
		{
			name: "shared sqlite file",
			modify: func(in *ConfigRawInput) {
				in.HistoryBackend = "sqlite"
				in.DocumentDBConnect = "/tmp/same.db"
				in.HistoryDBConnect = "/tmp/same.db"
			},
			expectError: true,
		},
		{
			name:   "sqlite history on default paths",
			modify: func(in *ConfigRawInput) { in.HistoryBackend = "SQLite" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := DefaultRawInput()
			if tt.modify != nil {
				tt.modify(&input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(cfg, &input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql ok", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/media", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql no tcp", schema.MySQLBackend, "user@localhost/media", true},
		{"postgres ok", schema.PostgreSQLBackend, "host=localhost dbname=media", false},
		{"postgres no host", schema.PostgreSQLBackend, "dbname=media", true},
		{"postgres no dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigCloneAndParams(t *testing.T) {
	cfg := &Config{
		Tree:        schema.ChildrenTree,
		BucketLimit: 4,
		Filter:      schema.DocumentFilter{Media: []string{"A"}, Country: "za"},
	}
	clone := cfg.Clone()
	clone.Filter.Media[0] = "B"
	assert.Equal(t, "A", cfg.Filter.Media[0])

	params := cfg.Params()
	assert.Equal(t, "children", params["tree"])
	assert.Equal(t, 4, params["bucket_limit"])
	assert.Equal(t, "za", params["country"])
	assert.NotContains(t, params, "nature")
}

func TestRevalidateFilter(t *testing.T) {
	base := Config{Filter: schema.DocumentFilter{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}}

	tests := []struct {
		name        string
		start, end  string
		media       string
		expectError string
		check       func(*testing.T, *Config)
	}{
		{name: "no changes", check: func(t *testing.T, cfg *Config) {
			assert.Equal(t, base.Filter, cfg.Filter)
		}},
		{name: "dates and media", start: "2025-01-10", end: "2025-01-20", media: "City Press, Daily Sun", check: func(t *testing.T, cfg *Config) {
			assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), cfg.Filter.Start)
			assert.Equal(t, []string{"City Press", "Daily Sun"}, cfg.Filter.Media)
		}},
		{name: "bad start", start: "yesterday-ish", expectError: "invalid start"},
		{name: "bad end", end: "soon", expectError: "invalid end"},
		{name: "start after end", start: "2025-02-10", expectError: "cannot be after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base.Clone()
			err := RevalidateFilter(cfg, tt.start, tt.end, tt.media)
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
