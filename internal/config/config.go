package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TimetableConfig points at the university reporting service the HTML path
// scrapes.
type TimetableConfig struct {
	// BaseURL is the reporting endpoint serving most campus rooms.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// EngineeringURL serves the engineering complex, which runs on a
	// separate reporting instance. Falls back to BaseURL when empty.
	EngineeringURL string `yaml:"engineering_url" json:"engineering_url"`
	// FetchTimeoutSeconds bounds each per-room fetch.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
}

// ProbeConfig controls the periodic upstream health probe.
type ProbeConfig struct {
	// Cron is a cron-style schedule string; empty disables the probe.
	Cron string `yaml:"cron" json:"cron"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone the campus lives in (e.g.
	// "Africa/Johannesburg"). All schedule arithmetic happens in this zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// LocationsPath is the JSON file holding the canonical campus location
	// list.
	LocationsPath string `yaml:"locations_path" json:"locations_path"`

	Timetable TimetableConfig `yaml:"timetable" json:"timetable"`

	// DegradedRoomsOpen treats rooms whose schedule could not be fetched as
	// open. Defaults to true; set false to hide rooms with unknown state.
	DegradedRoomsOpen *bool `yaml:"degraded_rooms_open" json:"degraded_rooms_open"`

	Probe ProbeConfig `yaml:"probe" json:"probe"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	open := true
	return &Config{
		Listen:        "127.0.0.1:8080",
		Timezone:      "Africa/Johannesburg",
		LocationsPath: "data/locations.json",
		Timetable: TimetableConfig{
			BaseURL:             "https://splus.sun.ac.za:8080/Reporting/individual",
			EngineeringURL:      "https://splus.sun.ac.za:8081/Reporting/individual",
			FetchTimeoutSeconds: 15,
		},
		DegradedRoomsOpen: &open,
		Probe: ProbeConfig{
			Cron: "*/5 * * * *",
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.LocationsPath == "" {
		c.LocationsPath = def.LocationsPath
	}
	if c.Timetable.BaseURL == "" {
		c.Timetable.BaseURL = def.Timetable.BaseURL
	}
	if c.Timetable.EngineeringURL == "" {
		c.Timetable.EngineeringURL = c.Timetable.BaseURL
	}
	if c.Timetable.FetchTimeoutSeconds <= 0 {
		c.Timetable.FetchTimeoutSeconds = def.Timetable.FetchTimeoutSeconds
	}
	if c.DegradedRoomsOpen == nil {
		c.DegradedRoomsOpen = def.DegradedRoomsOpen
	}
}

// DegradedOpen reports the effective degrade policy.
func (c *Config) DegradedOpen() bool {
	return c.DegradedRoomsOpen == nil || *c.DegradedRoomsOpen
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist a default config is written there (0600,
// parent created as needed) and returned; otherwise the file is read,
// unmarshalled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename)
// with 0600 permissions, creating the parent directory as needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tussenuur-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
