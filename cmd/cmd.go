// Package cmd defines the command-line interface for mediascore.
package cmd

import (
	"github.com/huangsam/mediascore/core/algo"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(ratingCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(treesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeSeedCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601 or time ago (default: 30 days before end)")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601 or time ago (default: now)")
	rootCmd.PersistentFlags().String("country", "", "Only documents published in this country")
	rootCmd.PersistentFlags().String("nature", "", "Only documents analysed for this analysis nature")
	rootCmd.PersistentFlags().String("media", "", "Comma-separated list of outlet names to compare")
	rootCmd.PersistentFlags().Int64("person", 0, "Only documents quoting this person ID")
	rootCmd.PersistentFlags().String("query", "", "Only documents whose title or summary contains this text")
	rootCmd.PersistentFlags().String("tree-file", "", "YAML file declaring a custom rating tree")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("document-backend", string(schema.SQLiteBackend), "Document store backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("document-db-connect", "", "Database connection string for the document store")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Build history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for build history (must differ from document-db-connect)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Human readable log lines on stderr")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of ratingCmd to Viper
	ratingCmd.Flags().String("tree", string(schema.ChildrenTree), "Built-in rating tree: children or media-diversity")
	ratingCmd.Flags().Int("bucket-limit", algo.DefaultBucketLimit, "Number of named buckets kept before the rest fold into Other")
	ratingCmd.Flags().String("workbook", "", "Optional path to write the score sheet as an XLSX workbook")
	if err := viper.BindPFlags(ratingCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rating flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().Float64("decay", algo.DefaultDecay, "Per-day decay applied to older utterances")
	trendsCmd.Flags().Float64("trend-up", algo.DefaultTrendUp, "Normalised trend at or above which a person is trending up")
	trendsCmd.Flags().Float64("trend-down", algo.DefaultTrendDown, "Normalised trend at or below which a person is trending down")
	trendsCmd.Flags().Int("top-people", contract.DefaultTopPeople, "Number of most used source people")
	trendsCmd.Flags().Int("trend-limit", contract.DefaultTrendLimit, "Number of people per trending list")
	trendsCmd.Flags().Int("quote-limit", contract.DefaultQuoteLimit, "Number of quotes kept per person")
	trendsCmd.Flags().Int("quotes-per-document", contract.DefaultQuotesPerDocument, "Number of quotes taken from a single document")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Both migrate commands share the target version flag
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}
