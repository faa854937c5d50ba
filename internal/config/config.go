package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds device-level settings that live outside the database: timer
// durations, the serve address, and the optional S3 sync target.
type Config struct {
	SitMinutes   int    `yaml:"sit_minutes"`
	StandMinutes int    `yaml:"stand_minutes"`
	AutoRestart  bool   `yaml:"auto_restart"`
	ServeAddr    string `yaml:"serve_addr"`
	S3Bucket     string `yaml:"s3_bucket"`
	S3Key        string `yaml:"s3_key"`
}

func Default() Config {
	return Config{
		SitMinutes:   45,
		StandMinutes: 5,
		AutoRestart:  true,
		ServeAddr:    "127.0.0.1:8099",
		S3Key:        "db/daytrack.db",
	}
}

// Load reads the YAML config file, filling unset fields with defaults. A
// missing file is not an error; defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SitMinutes <= 0 {
		cfg.SitMinutes = Default().SitMinutes
	}
	if cfg.StandMinutes <= 0 {
		cfg.StandMinutes = Default().StandMinutes
	}
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = Default().ServeAddr
	}
	return cfg, nil
}

// Save writes the config back out, creating the file with user-only write.
func Save(path string, cfg Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
