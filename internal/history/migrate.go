package history

import (
	"embed"
	"fmt"
	"os"

	"github.com/huangsam/mediascore/internal/migration"
	"github.com/huangsam/mediascore/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// migrations share a database with the document store, so they keep their own version table.
var migrations = migration.Set{
	FS:       migrationsFS,
	Table:    migrationsTable,
	Database: "mediascore_history",
	Store:    "History store",
}

// Migrate runs database migrations for the history store.
// See migration.Set.Apply for the meaning of targetVersion.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return migrations.Apply(db, backend, targetVersion, os.Stdout)
}
