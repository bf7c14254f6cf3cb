package docstore

import (
	"embed"
	"fmt"
	"os"

	"github.com/huangsam/mediascore/internal/migration"
	"github.com/huangsam/mediascore/schema"
)

//go:embed migrations
var migrationsFS embed.FS

var migrations = migration.Set{
	FS:       migrationsFS,
	Table:    migrationsTable,
	Database: "mediascore",
	Store:    "Document store",
}

// Migrate runs database migrations for the document store.
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
