// Package config loads YAML-based CLI defaults for the abaplus
// binaries, mirroring pkg/korel/config's LoadTaxonomy/LoadStoplist
// shape: a plain struct decoded straight off a YAML file via
// gopkg.in/yaml.v3, no env var or flag overlay.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Solver configures the external ASP solver defaults a CLI binary
// falls back on when no flag overrides them.
type Solver struct {
	ClingoPath  string `yaml:"clingo_path"`
	DlvPath     string `yaml:"dlv_path"`
	EncodingDir string `yaml:"encoding_dir"`
	Semantics   string `yaml:"semantics"`
}

// Config is the top-level CLI configuration document.
type Config struct {
	Solver Solver `yaml:"solver"`

	// AutoRepairWCP runs wcp.Repair automatically when wcp.Check fails
	// instead of only reporting the violation.
	AutoRepairWCP bool `yaml:"auto_repair_wcp"`

	// OutputFormat selects the CLI binaries' rendering: "text" for
	// report.Reporter's human-readable lines, "json" for
	// report.JSONReport's machine-readable document.
	OutputFormat string `yaml:"output_format"`

	// Color forces colored report output on or off; nil defers to
	// isatty detection.
	Color *bool `yaml:"color"`
}

// Default returns the configuration a CLI binary uses when no
// -config flag is given.
func Default() Config {
	return Config{
		Solver: Solver{
			ClingoPath:  "clingo",
			DlvPath:     "dlv",
			EncodingDir: ".",
			Semantics:   "admissible",
		},
		AutoRepairWCP: false,
		OutputFormat:  "text",
	}
}

// Load reads path and decodes it over Default(), so a file that sets
// only a few keys still yields a fully populated Config.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
