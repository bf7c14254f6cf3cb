package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/docstore"
	"github.com/huangsam/mediascore/internal/outwriter"
	"github.com/huangsam/mediascore/internal/stores"
	"github.com/huangsam/mediascore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads the minimal configuration needed for document store operations.
// History is never recorded by these commands.
func storeSetup(openStore bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	maintenanceLogger()

	backend := schema.DatabaseBackend(viper.GetString("document-backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok || backend == schema.NoneBackend {
		return fmt.Errorf("invalid document backend '%s'. must be sqlite, mysql, postgresql", backend)
	}
	connStr := viper.GetString("document-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.DocumentBackend = backend
	cfg.DocumentDBConnect = connStr

	if !openStore {
		return nil
	}
	if err := stores.InitStores(backend, connStr, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}
	return nil
}

// storeCmd focused on the document store.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the document store holding analysed documents",
	Long: `Manage the document store that rating and trend reports read from.

The store holds outlets, documents, their analyses, the people quoted as
sources and their utterances.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show table sizes and connection info
  seed    - Load a YAML corpus into the store
  migrate - Run database schema migrations

Examples:
  # Create a local store with the bundled sample corpus
  mediascore store seed

  # Check what the store holds
  mediascore store status`,
}

// storeStatusCmd shows document store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display document store statistics and connection details",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeSetup(true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		status, err := stores.Manager.GetDocumentStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get document store status", err)
		}
		outwriter.WriteDocumentStatus(os.Stdout, status)
	},
}

// storeSeedCmd loads a corpus into the document store.
var storeSeedCmd = &cobra.Command{
	Use:   "seed [corpus.yaml]",
	Short: "Load a YAML corpus into the document store",
	Long: `Insert the outlets, people, documents and sources of a YAML corpus.

Without an argument the bundled sample corpus is loaded. Reference rows such as
outlets, roles and people are reused when they already exist.

Examples:
  # Load the sample corpus
  mediascore store seed

  # Load your own corpus into PostgreSQL
  mediascore store seed corpus.yaml --document-backend postgresql \
    --document-db-connect "host=localhost user=media dbname=media"`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeSetup(true)
	},
	Run: func(_ *cobra.Command, args []string) {
		corpus := docstore.SampleCorpus()
		if len(args) == 1 {
			loaded, err := docstore.LoadCorpus(args[0])
			if err != nil {
				contract.LogFatal("Failed to load corpus", err)
			}
			corpus = loaded
		}
		if err := stores.Manager.GetDocumentStore().Seed(rootCtx, corpus); err != nil {
			contract.LogFatal("Failed to seed document store", err)
		}
		fmt.Printf("Seeded %d documents quoting %d people.\n", len(corpus.Documents), len(corpus.People))
	},
}

// storeMigrateCmd runs database migrations for the document store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run document store schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the document store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  mediascore store migrate

  # Rollback to initial state
  mediascore store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeSetup(false)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion, _ := cmd.Flags().GetInt("target-version")
		if err := docstore.Migrate(cfg.DocumentBackend, cfg.DocumentDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
