package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(Overrides{DataDir: dir}, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "bookKeeper_bookList.txt"), cfg.InventoryPath())
	assert.Equal(t, filepath.Join(dir, "bookKeeper_loanList.txt"), cfg.LoansPath())
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.HistoryPath())
	assert.True(t, cfg.HistoryEnabled())
	assert.False(t, cfg.Debug)
}

func TestLoadJSONCFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
		// keep the journal out of the data dir
		"history_file": "/var/tmp/bk-history.db",
		"inventory_file": "books.txt",
		"history": false,
		"debug": true, // trailing comma is fine
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(content), 0o644))

	cfg, err := Load(Overrides{DataDir: dir}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/var/tmp/bk-history.db", cfg.HistoryPath())
	assert.Equal(t, filepath.Join(dir, "books.txt"), cfg.InventoryPath())
	assert.Equal(t, filepath.Join(dir, "bookKeeper_loanList.txt"), cfg.LoansPath())
	assert.False(t, cfg.HistoryEnabled())
	assert.True(t, cfg.Debug)
}

func TestLoadPrecedence(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	env := map[string]string{"BOOKKEEPER_DATA_DIR": envDir, "BOOKKEEPER_DEBUG": "true"}

	cfg, err := Load(Overrides{}, env)
	require.NoError(t, err)
	assert.Equal(t, envDir, cfg.DataDir)
	assert.True(t, cfg.Debug)

	off, on := false, true
	cfg, err = Load(Overrides{DataDir: flagDir, Debug: &off, History: &off}, env)
	require.NoError(t, err)
	assert.Equal(t, flagDir, cfg.DataDir)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.HistoryEnabled())

	cfg, err = Load(Overrides{DataDir: flagDir, History: &on}, env)
	require.NoError(t, err)
	assert.True(t, cfg.HistoryEnabled())
}

func TestLoadExplicitConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(Overrides{DataDir: dir, ConfigPath: filepath.Join(dir, "missing.jsonc")}, nil)
	assert.ErrorIs(t, err, ErrConfigFileRead)

	bad := filepath.Join(dir, "bad.jsonc")
	require.NoError(t, os.WriteFile(bad, []byte(`{"debug": `), 0o644))
	_, err = Load(Overrides{DataDir: dir, ConfigPath: bad}, nil)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}
