// Package config loads the report configuration: a YAML file for the
// league/output settings and the external header alias table, plus ESPN
// credentials which come from the environment only.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ff-standings-mcp/internal/merge"
)

// Config drives one report run. The zero value is unusable; build one
// with Load (or by hand in tests) and check Validate before computing.
type Config struct {
	LeagueID     int    `yaml:"league_id"`
	Year         int    `yaml:"year"`          // 0 = current calendar year
	OutputFile   string `yaml:"output_file"`   // report artifact path
	ExternalFile string `yaml:"external_file"` // optional partial-season results
	RawRoot      string `yaml:"raw_root"`      // raw ESPN response cache

	// Aliases overrides the external header alias table. Empty keeps the
	// compiled defaults.
	Aliases map[string][]string `yaml:"aliases"`

	// Credentials, environment-only (SWID / ESPN_S2). Never read from or
	// written to the YAML file.
	SWID   string `yaml:"-"`
	ESPNS2 string `yaml:"-"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Year:       time.Now().Year(),
		OutputFile: "LeagueData.json",
		RawRoot:    "data/raw",
	}
}

// Load reads the YAML config at path (skipped when path is empty),
// overlays credentials from the environment, and fills defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "LeagueData.json"
	}
	if cfg.RawRoot == "" {
		cfg.RawRoot = "data/raw"
	}

	cfg.SWID = strings.TrimSpace(os.Getenv("SWID"))
	cfg.ESPNS2 = strings.TrimSpace(os.Getenv("ESPN_S2"))

	return cfg, nil
}

// Validate reports the first fatal configuration error. A run aborts on
// any of these before touching the network or writing anything.
func (c Config) Validate() error {
	if c.LeagueID == 0 {
		return fmt.Errorf("league_id is required")
	}
	if c.SWID == "" || c.ESPNS2 == "" {
		return fmt.Errorf("missing SWID or ESPN_S2 environment variables")
	}
	return nil
}

// Table returns the header alias table: the configured override when
// present, otherwise the compiled defaults.
func (c Config) Table() merge.Table {
	if len(c.Aliases) == 0 {
		return merge.DefaultTable()
	}
	return merge.Table(c.Aliases)
}
