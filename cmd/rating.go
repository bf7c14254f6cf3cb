package cmd

import (
	"github.com/huangsam/mediascore/core"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/spf13/cobra"
)

// ratingCmd builds the score sheet and evaluates a rating tree per outlet.
var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Rate the selected outlets with a weighted rating tree.",
	Long: `Select the analysed documents in a period, compute every named score per outlet
and evaluate a weighted rating tree over them.

Each outlet gets a value for every node of the tree, from the leaf scores up to the
final rating. Outlets are then ranked by their final rating and labelled
Strong, Fair, Weak or Poor.

Trees:
  children        - How outlets cover children as sources and subjects
  media-diversity - How diverse the sources, topics and voices are

A custom tree can be declared in YAML with --tree-file. Its leaves must name
scores the built-in trees already compute.

Examples:
  # Rate every outlet over the last 30 days
  mediascore rating

  # Compare two outlets in January with the diversity tree
  mediascore rating --tree media-diversity --media "City Press,Daily Sun" \
    --start 2025-01-01 --end 2025-01-31

  # Keep the score sheet as a workbook with live formulas
  mediascore rating --workbook rating.xlsx

  # Export the tree values to CSV
  mediascore rating --output csv --output-file rating.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRating(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build rating", err)
		}
	},
}
