package contract

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/huangsam/mediascore/core/algo"
	"github.com/huangsam/mediascore/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays      = 30
	DefaultPrecision         = 3
	DefaultTopPeople         = 20
	DefaultTrendLimit        = 10
	DefaultQuoteLimit        = 10
	DefaultQuotesPerDocument = 2
	MaxBucketLimit           = 20
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a build or report.
// This struct remains the "final, validated" config.
type Config struct {
	Filter schema.DocumentFilter

	Tree         schema.TreeKind
	TreeFile     string // custom tree declaration, implies CustomTree
	BucketLimit  int
	WorkbookFile string

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	DocumentBackend   schema.DatabaseBackend
	DocumentDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Decay             float64
	TrendUp           float64
	TrendDown         float64
	TopPeople         int
	TrendLimit        int
	QuoteLimit        int
	QuotesPerDocument int

	Log LogConfig
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Document filter ---
	Start   string `mapstructure:"start"`
	End     string `mapstructure:"end"`
	Country string `mapstructure:"country"`
	Nature  string `mapstructure:"nature"`
	Media   string `mapstructure:"media"`
	Person  int64  `mapstructure:"person"`
	Query   string `mapstructure:"query"`

	// --- Output ---
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	// --- Stores ---
	DocumentBackend   string `mapstructure:"document-backend"`
	DocumentDBConnect string `mapstructure:"document-db-connect"`
	HistoryBackend    string `mapstructure:"history-backend"`
	HistoryDBConnect  string `mapstructure:"history-db-connect"`

	// --- Logging ---
	LogLevel  string `mapstructure:"log-level"`
	LogPretty bool   `mapstructure:"log-pretty"`

	// --- Fields from ratingCmd.Flags() ---
	Tree        string `mapstructure:"tree"`
	TreeFile    string `mapstructure:"tree-file"`
	BucketLimit int    `mapstructure:"bucket-limit"`
	Workbook    string `mapstructure:"workbook"`

	// --- Fields from trendsCmd.Flags() ---
	Decay             float64 `mapstructure:"decay"`
	TrendUp           float64 `mapstructure:"trend-up"`
	TrendDown         float64 `mapstructure:"trend-down"`
	TopPeople         int     `mapstructure:"top-people"`
	TrendLimit        int     `mapstructure:"trend-limit"`
	QuoteLimit        int     `mapstructure:"quote-limit"`
	QuotesPerDocument int     `mapstructure:"quotes-per-document"`
}

// DefaultRawInput returns the raw input with every default filled in.
func DefaultRawInput() ConfigRawInput {
	return ConfigRawInput{
		Precision:         DefaultPrecision,
		Output:            string(schema.TextOut),
		Color:             "yes",
		DocumentBackend:   string(schema.SQLiteBackend),
		HistoryBackend:    string(schema.NoneBackend),
		LogLevel:          "info",
		Tree:              string(schema.ChildrenTree),
		BucketLimit:       algo.DefaultBucketLimit,
		Decay:             algo.DefaultDecay,
		TrendUp:           algo.DefaultTrendUp,
		TrendDown:         algo.DefaultTrendDown,
		TopPeople:         DefaultTopPeople,
		TrendLimit:        DefaultTrendLimit,
		QuoteLimit:        DefaultQuoteLimit,
		QuotesPerDocument: DefaultQuotesPerDocument,
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Filter.Media != nil {
		clone.Filter.Media = make([]string, len(c.Filter.Media))
		copy(clone.Filter.Media, c.Filter.Media)
	}
	return &clone
}

// Params returns the settings recorded with a build in the history store.
func (c *Config) Params() map[string]any {
	params := map[string]any{
		"tree":         string(c.Tree),
		"bucket_limit": c.BucketLimit,
		"start":        c.Filter.Start.Format(DateTimeFormat),
		"end":          c.Filter.End.Format(DateTimeFormat),
	}
	if c.TreeFile != "" {
		params["tree_file"] = c.TreeFile
	}
	if c.Filter.Country != "" {
		params["country"] = c.Filter.Country
	}
	if c.Filter.Nature != "" {
		params["nature"] = c.Filter.Nature
	}
	if len(c.Filter.Media) > 0 {
		params["media"] = c.Filter.Media
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processRatingInputs(cfg, input); err != nil {
		return err
	}
	if err := processTrendInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates document and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Document Backend Validation ---
	cfg.DocumentBackend = schema.DatabaseBackend(strings.ToLower(input.DocumentBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.DocumentBackend]; !ok || cfg.DocumentBackend == schema.NoneBackend {
		return fmt.Errorf("invalid document backend '%s'. must be sqlite, mysql, postgresql", input.DocumentBackend)
	}
	cfg.DocumentDBConnect = input.DocumentDBConnect
	if err := ValidateDatabaseConnectionString(cfg.DocumentBackend, cfg.DocumentDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.DocumentBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		docPath := cfg.DocumentDBConnect
		if docPath == "" {
			docPath = GetDocumentDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if docPath == historyPath {
			return fmt.Errorf("document and history storage must use different SQLite database files. Both resolve to %q", docPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates output, filter and store fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Filter.Country = strings.TrimSpace(input.Country)
	cfg.Filter.Nature = strings.TrimSpace(input.Nature)
	cfg.Filter.Query = strings.TrimSpace(input.Query)
	cfg.Filter.Media = splitList(input.Media)

	if input.Person < 0 {
		return fmt.Errorf("person must be a positive id (received %d)", input.Person)
	}
	cfg.Filter.PersonID = input.Person

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 1 and 6 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 2. Logging ---
	level := strings.ToLower(input.LogLevel)
	if level == "" {
		level = "info"
	}
	if _, ok := validLogLevels[level]; !ok {
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}
	cfg.Log = LogConfig{Level: level, Pretty: input.LogPretty}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processTimeRange handles the date parsing and time range validation.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.Filter.End = now
	cfg.Filter.Start = now.Add(-DefaultLookbackDays * 24 * time.Hour)

	if input.Start != "" {
		t, err := ParseTimeArg(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %w", input.Start, err)
		}
		cfg.Filter.Start = t
	}

	if input.End != "" {
		t, err := ParseTimeArg(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %w", input.End, err)
		}
		cfg.Filter.End = t
	}

	if cfg.Filter.Start.After(cfg.Filter.End) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.Filter.Start.Format(DateTimeFormat), cfg.Filter.End.Format(DateTimeFormat))
	}
	return nil
}

// processRatingInputs handles the tree choice, bucket limit and workbook path.
func processRatingInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TreeFile = strings.TrimSpace(input.TreeFile)
	cfg.WorkbookFile = strings.TrimSpace(input.Workbook)

	cfg.Tree = schema.TreeKind(strings.ToLower(input.Tree))
	if cfg.TreeFile != "" {
		cfg.Tree = schema.CustomTree
	}
	if _, ok := schema.ValidTreeKinds[cfg.Tree]; !ok {
		return fmt.Errorf("invalid tree '%s'. must be children, media-diversity", input.Tree)
	}
	if cfg.Tree == schema.CustomTree && cfg.TreeFile == "" {
		return fmt.Errorf("--tree-file is required for a custom tree")
	}

	if input.BucketLimit < 1 || input.BucketLimit > MaxBucketLimit {
		return fmt.Errorf("bucket limit must be between 1 and %d (received %d)", MaxBucketLimit, input.BucketLimit)
	}
	cfg.BucketLimit = input.BucketLimit
	return nil
}

// processTrendInputs handles the source trend parameters.
func processTrendInputs(cfg *Config, input *ConfigRawInput) error {
	if math.IsNaN(input.Decay) || input.Decay <= 0 || input.Decay >= 1 {
		return fmt.Errorf("decay must be between 0 and 1 exclusive (received %v)", input.Decay)
	}
	if input.TrendDown > input.TrendUp {
		return fmt.Errorf("trend-down (%v) cannot exceed trend-up (%v)", input.TrendDown, input.TrendUp)
	}

	limits := []struct {
		name  string
		value int
	}{
		{"top-people", input.TopPeople},
		{"trend-limit", input.TrendLimit},
		{"quote-limit", input.QuoteLimit},
		{"quotes-per-document", input.QuotesPerDocument},
	}
	for _, l := range limits {
		if l.value < 1 {
			return fmt.Errorf("%s must be at least 1 (received %d)", l.name, l.value)
		}
	}

	cfg.Decay = input.Decay
	cfg.TrendUp = input.TrendUp
	cfg.TrendDown = input.TrendDown
	cfg.TopPeople = input.TopPeople
	cfg.TrendLimit = input.TrendLimit
	cfg.QuoteLimit = input.QuoteLimit
	cfg.QuotesPerDocument = input.QuotesPerDocument
	return nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// RevalidateFilter applies per-request date bounds and media to a cloned config.
// Empty values keep what cfg already holds.
func RevalidateFilter(cfg *Config, start, end, media string) error {
	now := time.Now()
	if start != "" {
		t, err := ParseTimeArg(start, now)
		if err != nil {
			return fmt.Errorf("invalid start '%s': %w", start, err)
		}
		cfg.Filter.Start = t
	}
	if end != "" {
		t, err := ParseTimeArg(end, now)
		if err != nil {
			return fmt.Errorf("invalid end '%s': %w", end, err)
		}
		cfg.Filter.End = t
	}
	if cfg.Filter.Start.After(cfg.Filter.End) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.Filter.Start.Format(DateTimeFormat), cfg.Filter.End.Format(DateTimeFormat))
	}
	if media != "" {
		cfg.Filter.Media = splitList(media)
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
