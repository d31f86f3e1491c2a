// Package config resolves gantry settings from an optional YAML file and
// GANTRY_* environment variables. Environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting.
type Config struct {
	DBPath          string `yaml:"db_path"`
	LegacyStatePath string `yaml:"legacy_state_path"`
	LogFile         string `yaml:"log_file"`
	Debug           bool   `yaml:"debug"`

	DefaultPhaseDays int `yaml:"default_phase_days"`
	ChartCellWidth   int `yaml:"chart_cell_width"`
	ChartMaxDays     int `yaml:"chart_max_days"`
}

// Dir returns the per-user state directory, ~/.gantry.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".gantry"), nil
}

// Default returns the settings used when nothing is configured. Paths are
// left empty when the home directory cannot be found.
func Default() Config {
	cfg := Config{
		DefaultPhaseDays: 5,
		ChartCellWidth:   2,
		ChartMaxDays:     120,
	}
	if dir, err := Dir(); err == nil {
		cfg.DBPath = filepath.Join(dir, "gantry.db")
		cfg.LegacyStatePath = filepath.Join(dir, "state.json")
	}
	return cfg
}

// Path returns the config file location: GANTRY_CONFIG or ~/.gantry/config.yaml.
func Path() string {
	if v := os.Getenv("GANTRY_CONFIG"); v != "" {
		return v
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTRY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GANTRY_LEGACY_STATE"); v != "" {
		cfg.LegacyStatePath = v
	}
	if v := os.Getenv("GANTRY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("GANTRY_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GANTRY_DEFAULT_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultPhaseDays = n
		}
	}
	if v := os.Getenv("GANTRY_CELL_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChartCellWidth = n
		}
	}
}

// normalize replaces out-of-range numbers from the file with defaults.
func (c *Config) normalize() {
	def := Default()
	if c.DefaultPhaseDays < 1 {
		c.DefaultPhaseDays = def.DefaultPhaseDays
	}
	if c.ChartCellWidth < 1 {
		c.ChartCellWidth = def.ChartCellWidth
	}
	if c.ChartMaxDays < 7 {
		c.ChartMaxDays = def.ChartMaxDays
	}
}
