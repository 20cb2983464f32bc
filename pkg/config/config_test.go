package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("exports", "income.csv"), cfg.IncomeCSV)
	assert.Equal(t, filepath.Join("exports", "cc-dues.csv"), cfg.CCDuesCSV)
}

func TestLoadHonorsEnvironment(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/dashboard")
	t.Setenv("INCOME_CSV", "/tmp/income-export.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/dashboard", cfg.DataDir)
	assert.Equal(t, "/tmp/income-export.csv", cfg.IncomeCSV)
	// Unset sources still default under ExportDir.
	assert.Equal(t, filepath.Join("exports", "a2p.csv"), cfg.A2PCSV)
}

func TestTargetPathsCoverAllStores(t *testing.T) {
	cfg := &Config{DataDir: "data"}
	paths := cfg.TargetPaths()
	require.Len(t, paths, 4)
	assert.Contains(t, paths, filepath.Join("data", "billing-periods.json"))
	assert.Contains(t, paths, filepath.Join("data", "clients.json"))
}

func TestValidate(t *testing.T) {
	cfg := &Config{DataDir: "", BackupDir: "backups"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DataDir: "data", BackupDir: ""}
	assert.Error(t, cfg.Validate())
}

func TestSourceFilesOrder(t *testing.T) {
	cfg := &Config{ExportDir: "exports"}
	cfg.applyDefaults()

	files := cfg.SourceFiles()
	require.Len(t, files, 5)
	assert.Equal(t, "income", files[0].Name)
	assert.Equal(t, "cc-dues", files[4].Name)
}
