package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create dining tables", "create_dining_tables"},
		{"Create-Dining-Tables", "create_dining_tables"},
		{"CREATE_DINING_TABLES", "create_dining_tables"},
		{"create__dining__tables", "create_dining_tables"},
		{"Add Zone 123", "add_zone_123"},
		{"add-stock-movement-index", "add_stock_movement_index"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	tmpDir := t.TempDir()

	mf, err := CreateMigration(tmpDir, "add table zone", "Add zone column to dining tables")
	require.NoError(t, err)
	require.NotNil(t, mf)

	// Version format is YYYYMMDDHHMMSS
	assert.Len(t, mf.Version, 14)

	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add table zone")
	assert.Contains(t, string(upContent), "Add zone column to dining tables")
	assert.Contains(t, string(upContent), "Write your UP migration SQL here")

	downContent, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
	assert.Contains(t, string(downContent), "Write your DOWN migration SQL here")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "migrations")

	mf, err := CreateMigration(nestedPath, "test", "test migration")
	require.NoError(t, err)
	assert.NotNil(t, mf)

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"000002_create_stock_tables.up.sql",
		"000002_create_stock_tables.down.sql",
		"000001_create_catalog_tables.up.sql",
		"000001_create_catalog_tables.down.sql",
		"000003_create_dining_tables.up.sql",
		"000003_create_dining_tables.down.sql",
	}

	for _, f := range files {
		err := os.WriteFile(filepath.Join(tmpDir, f), []byte("-- test"), 0644)
		require.NoError(t, err)
	}

	migrations, err := ListMigrations(tmpDir)
	require.NoError(t, err)

	// One entry per pair, sorted by version
	assert.Equal(t, []string{
		"000001_create_catalog_tables",
		"000002_create_stock_tables",
		"000003_create_dining_tables",
	}, migrations)
}

func TestShippedMigrations(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "migrations")

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	// every migration ships as a complete up/down pair
	for _, name := range migrations {
		up, err := os.ReadFile(filepath.Join(dir, name+".up.sql"))
		require.NoError(t, err, name)
		assert.NotEmpty(t, up, name)

		down, err := os.ReadFile(filepath.Join(dir, name+".down.sql"))
		require.NoError(t, err, name)
		assert.NotEmpty(t, down, name)
	}

	// an ingredient exists only while its product does, and the ledger
	// only while its ingredient does
	stock, err := os.ReadFile(filepath.Join(dir, "20250301000002_create_stock_tables.up.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(stock), "REFERENCES products (id) ON DELETE CASCADE")
	assert.Contains(t, string(stock), "REFERENCES ingredients (id) ON DELETE CASCADE")
}

func TestListMigrations_EmptyDirectory(t *testing.T) {
	migrations, err := ListMigrations(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	migrations, err := ListMigrations("/nonexistent/path/to/migrations")
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestListMigrations_IgnoresNonMigrationFiles(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"000001_init.up.sql",
		"000001_init.down.sql",
		"README.md",
		"config.yaml",
		".gitkeep",
	}

	for _, f := range files {
		err := os.WriteFile(filepath.Join(tmpDir, f), []byte("test"), 0644)
		require.NoError(t, err)
	}

	migrations, err := ListMigrations(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init"}, migrations)
}

func TestListMigrations_IgnoresDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "000001_init.up.sql"), []byte("test"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "000001_init.down.sql"), []byte("test"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "subdir.up.sql"), 0755))

	migrations, err := ListMigrations(tmpDir)
	require.NoError(t, err)
	assert.Len(t, migrations, 1)
}
