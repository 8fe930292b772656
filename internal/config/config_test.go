package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ff-standings-mcp/internal/merge"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("SWID", "{ABC-123}")
	t.Setenv("ESPN_S2", "s2token")

	path := writeConfig(t, `
league_id: 487404
year: 2025
output_file: out/LeagueData.json
external_file: results.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 487404, cfg.LeagueID)
	assert.Equal(t, 2025, cfg.Year)
	assert.Equal(t, "out/LeagueData.json", cfg.OutputFile)
	assert.Equal(t, "results.json", cfg.ExternalFile)
	assert.Equal(t, "data/raw", cfg.RawRoot)
	assert.Equal(t, "{ABC-123}", cfg.SWID)
	assert.Equal(t, "s2token", cfg.ESPNS2)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("SWID", "")
	t.Setenv("ESPN_S2", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "LeagueData.json", cfg.OutputFile)
	assert.NotZero(t, cfg.Year)
}

func TestValidate_MissingCredentialsIsFatal(t *testing.T) {
	cfg := Default()
	cfg.LeagueID = 1

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWID")
}

func TestValidate_MissingLeagueID(t *testing.T) {
	cfg := Default()
	cfg.SWID = "x"
	cfg.ESPNS2 = "y"

	assert.Error(t, cfg.Validate())
}

func TestTable_AliasOverride(t *testing.T) {
	t.Setenv("SWID", "x")
	t.Setenv("ESPN_S2", "y")

	path := writeConfig(t, `
league_id: 1
aliases:
  name: ["Franchise"]
  points_for: ["Season PF"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	tbl := cfg.Table()
	row := merge.ExternalRow{"Franchise": "The Commish", "Season PF": 99.5}
	assert.Equal(t, "The Commish", tbl.Name(row))
	assert.Equal(t, 99.5, tbl.Number(row, merge.FieldPointsFor))
}

func TestTable_DefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, merge.DefaultTable(), Default().Table())
}
