package cmd

import (
	"fmt"

	"github.com/huangsam/mediascore/core"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// treesCmd lists the rating trees without touching any store.
var treesCmd = &cobra.Command{
	Use:   "trees",
	Short: "List the rating trees with their weights and leaf scores.",
	Long: `Print every built-in rating tree, and the custom tree when --tree-file is set.

Examples:
  # Show the built-in trees
  mediascore trees

  # Check a custom tree declaration
  mediascore trees --tree-file my-tree.yaml --output json`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return treesSetup()
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrees(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list rating trees", err)
		}
	},
}

// treesSetup validates the config like sharedSetup but opens no store.
func treesSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return contract.ProcessAndValidate(cfg, input)
}
