package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("creates file and directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "sim.db")

		db, err := Open(context.Background(), Config{Path: dbPath, WALMode: true, BusyTimeout: 5})
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck // Test cleanup

		require.NoError(t, db.HealthCheck(context.Background()))
		_, err = os.Stat(filepath.Dir(dbPath))
		assert.NoError(t, err)
		assert.Equal(t, dbPath, db.Path())
	})

	t.Run("in memory", func(t *testing.T) {
		db, err := Open(context.Background(), Config{Path: MemoryPath, BusyTimeout: 1})
		require.NoError(t, err)
		defer db.Close() //nolint:errcheck // Test cleanup

		_, err = db.ExecContext(context.Background(), "CREATE TABLE t (x INTEGER)")
		require.NoError(t, err)
		_, err = db.ExecContext(context.Background(), "INSERT INTO t VALUES (1)")
		require.NoError(t, err)

		var n int
		require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM t").Scan(&n))
		assert.Equal(t, 1, n)
	})
}

func TestClose(t *testing.T) {
	db, err := Open(context.Background(), Config{Path: MemoryPath})
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

var testMigrations = fstest.MapFS{
	"20260101_000000_first.up.sql":    {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
	"20260101_000000_first.down.sql":  {Data: []byte("DROP TABLE a;")},
	"20260102_000000_second.up.sql":   {Data: []byte("CREATE TABLE b (id INTEGER PRIMARY KEY);")},
	"20260102_000000_second.down.sql": {Data: []byte("DROP TABLE b;")},
	"README.md":                       {Data: []byte("ignored")},
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Config{Path: MemoryPath})
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck // Test cleanup

	require.NoError(t, db.Migrate(ctx, testMigrations))
	require.NoError(t, db.Migrate(ctx, testMigrations), "second run is a no-op")

	versions, err := db.AppliedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101_000000", "20260102_000000"}, versions)

	require.NoError(t, db.MigrateDown(ctx, testMigrations))
	versions, err = db.AppliedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101_000000"}, versions)

	_, err = db.ExecContext(ctx, "INSERT INTO b (id) VALUES (1)")
	assert.Error(t, err, "table b was dropped")
}

func TestMigrate_FailureRollsBackThatMigration(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Config{Path: MemoryPath})
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck // Test cleanup

	broken := fstest.MapFS{
		"20260101_000000_ok.up.sql":     {Data: []byte("CREATE TABLE ok (id INTEGER);")},
		"20260102_000000_broken.up.sql": {Data: []byte("CREATE TABLE broken (id INTEGER); NOT SQL;")},
	}
	require.Error(t, db.Migrate(ctx, broken))

	versions, err := db.AppliedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101_000000"}, versions)
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		file    string
		version string
		name    string
		up      bool
		ok      bool
	}{
		{"20260118_120000_initial_schema.up.sql", "20260118_120000", "initial_schema", true, true},
		{"20260118_120000_initial_schema.down.sql", "20260118_120000", "initial_schema", false, true},
		{"20260118_120000.up.sql", "20260118_120000", "", true, true},
		{"notes.sql", "", "", false, false},
		{"20260118_120000_x.up.txt", "", "", false, false},
		{"single.up.sql", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, name, up, ok := parseMigrationFilename(tt.file)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.up, up)
			if up {
				assert.Equal(t, tt.name, name)
			}
		})
	}
}
