package cmd

import (
	"github.com/huangsam/mediascore/core"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/spf13/cobra"
)

// trendsCmd reports on the people quoted as sources.
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show the most used sources and who is trending up or down.",
	Long: `Analyse the source people quoted in the selected documents.

Reports:
- The most used source people with their utterance counts
- People trending up or down, using a decayed daily trend
- Their most repeated quotes
- Frequent sources whose gender, race or affiliation is unknown

Examples:
  # Trends over the last 30 days
  mediascore trends

  # Focus on one outlet and a faster decay
  mediascore trends --media "Daily Sun" --decay 0.9

  # Only report the top 5 people as JSON
  mediascore trends --top-people 5 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrends(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build trend report", err)
		}
	},
}
