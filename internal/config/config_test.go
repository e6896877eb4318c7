package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "sheets source",
			cfg:  Config{Source: SourceSheets, SpreadsheetID: "sheet123", SheetTab: "Rules"},
		},
		{
			name: "csv source",
			cfg:  Config{Source: SourceCSV, CSVPath: "rules.csv"},
		},
		{
			name: "postgres source",
			cfg:  Config{Source: SourcePostgres, DatabaseURL: "postgres://localhost/cb", GridName: "campaign"},
		},
		{
			name:    "missing source",
			cfg:     Config{CSVPath: "rules.csv"},
			wantErr: "validation failed",
		},
		{
			name:    "unknown source",
			cfg:     Config{Source: "excel"},
			wantErr: "validation failed",
		},
		{
			name:    "sheets source without tab",
			cfg:     Config{Source: SourceSheets, SpreadsheetID: "sheet123"},
			wantErr: "SheetTab",
		},
		{
			name:    "csv source without path",
			cfg:     Config{Source: SourceCSV, SpreadsheetID: "sheet123"},
			wantErr: "CSVPath",
		},
		{
			name:    "postgres source without grid name",
			cfg:     Config{Source: SourcePostgres, DatabaseURL: "postgres://localhost/cb"},
			wantErr: "GridName",
		},
		{
			name: "invalid layout",
			cfg: Config{
				Source:  SourceCSV,
				CSVPath: "rules.csv",
				Layout:  &compiler.Layout{},
			},
			wantErr: "invalid layout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLayoutOrDefault(t *testing.T) {
	cfg := &Config{Source: SourceCSV, CSVPath: "rules.csv"}
	assert.Equal(t, compiler.DefaultLayout(), cfg.LayoutOrDefault())

	custom := compiler.DefaultLayout()
	custom.FirstConditionRow = 12
	cfg.Layout = &custom
	assert.Equal(t, 12, cfg.LayoutOrDefault().FirstConditionRow)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cb_script_builder_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
source: sheets
spreadsheetID: "1AbC"
sheetTab: "CB Rules"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, SourceSheets, cfg.Source)
	assert.Equal(t, "1AbC", cfg.SpreadsheetID)
	assert.Equal(t, "CB Rules", cfg.SheetTab)
	assert.Equal(t, compiler.DefaultLayout(), cfg.LayoutOrDefault())
}

func TestLoadFromPath_PartialLayoutOverride(t *testing.T) {
	path := writeConfig(t, `
source: csv
csvPath: rules.csv
layout:
  firstConditionRow: 10
  weightColumn: 3
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	want := compiler.DefaultLayout()
	want.FirstConditionRow = 10
	want.WeightColumn = 3
	assert.Equal(t, want, cfg.LayoutOrDefault())
}

func TestLoadFromPath_InvalidLayoutOverride(t *testing.T) {
	path := writeConfig(t, `
source: csv
csvPath: rules.csv
layout:
  clauseWidth: 2
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid layout")
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	path := writeConfig(t, `
source: postgres
databaseURL: postgres://localhost/cb
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "source: [csv\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("HOME", t.TempDir())

	content := "source: csv\ncsvPath: staging.csv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cb_script_builder_config.staging.yaml"), []byte(content), 0644))

	cfg, err := LoadWithEnv("staging")
	require.NoError(t, err)
	assert.Equal(t, "staging.csv", cfg.CSVPath)

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find config file")
}

func TestLoadWithEnv_HomeDirectory(t *testing.T) {
	chdirForTest(t, t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	content := "source: csv\ncsvPath: home.csv\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "cb_script_builder_config.yaml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "home.csv", cfg.CSVPath)
}

// chdirForTest changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}
