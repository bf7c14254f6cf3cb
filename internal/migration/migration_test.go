package migration

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func widgetSet() Set {
	return Set{
		FS: fstest.MapFS{
			"migrations/sqlite/1_widgets.up.sql":     {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY);")},
			"migrations/sqlite/1_widgets.down.sql":   {Data: []byte("DROP TABLE widgets;")},
			"migrations/sqlite/2_gadgets.up.sql":     {Data: []byte("CREATE TABLE gadgets (id INTEGER PRIMARY KEY);")},
			"migrations/sqlite/2_gadgets.down.sql":   {Data: []byte("DROP TABLE gadgets;")},
			"migrations/postgres/1_widgets.up.sql":   {Data: []byte("CREATE TABLE widgets (id SERIAL PRIMARY KEY);")},
			"migrations/postgres/1_widgets.down.sql": {Data: []byte("DROP TABLE widgets;")},
		},
		Table:    "widget_migrations",
		Database: "widgets",
		Store:    "Widget store",
	}
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "widgets.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func hasTable(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count))
	return count == 1
}

func TestApply(t *testing.T) {
	db := openSQLite(t)
	set := widgetSet()
	var out bytes.Buffer

	require.NoError(t, set.Apply(db, schema.SQLiteBackend, -1, &out))
	assert.Contains(t, out.String(), "Successfully migrated from version 0 to version 2")
	assert.True(t, hasTable(t, db, "gadgets"))
	assert.True(t, hasTable(t, db, "widget_migrations"))
	assert.False(t, hasTable(t, db, "schema_migrations"))
	assert.Equal(t, uint(2), set.Version(db))

	out.Reset()
	require.NoError(t, set.Apply(db, schema.SQLiteBackend, -1, &out))
	assert.Equal(t, "No migration needed. Widget store is already at the latest version.\n", out.String())

	out.Reset()
	require.NoError(t, set.Apply(db, schema.SQLiteBackend, 1, &out))
	assert.Contains(t, out.String(), "from version 2 to version 1")
	assert.False(t, hasTable(t, db, "gadgets"))
	assert.True(t, hasTable(t, db, "widgets"))
	assert.Equal(t, uint(1), set.Version(db))

	out.Reset()
	require.NoError(t, set.Apply(db, schema.SQLiteBackend, 0, &out))
	assert.Contains(t, out.String(), "rolled back from version 1 to version 0")
	assert.False(t, hasTable(t, db, "widgets"))
	assert.Equal(t, uint(0), set.Version(db))
}

func TestApply_UnsupportedBackend(t *testing.T) {
	db := openSQLite(t)
	err := widgetSet().Apply(db, schema.NoneBackend, -1, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestDialect(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		expected string
	}{
		{schema.SQLiteBackend, "sqlite"},
		{schema.MySQLBackend, "mysql"},
		{schema.PostgreSQLBackend, "postgres"},
	}
	for _, tt := range tests {
		got, err := Dialect(tt.backend)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
	_, err := Dialect("oracle")
	assert.Error(t, err)
}
