package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration. Secrets (JWT signing
// key, VAPID key pair) come from the environment, not from this file.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DatabasePath is the SQLite database file.
	DatabasePath string `yaml:"database_path"`

	// NotifyCron is the cron schedule for the notification pass
	// (e.g. "*/5 * * * *" or "@every 1m").
	NotifyCron string `yaml:"notify_cron"`

	// TokenTTLHours is the lifetime of issued bearer tokens.
	TokenTTLHours int `yaml:"token_ttl_hours"`

	// PushSubscriber is the contact address sent to push services with
	// VAPID-signed requests.
	PushSubscriber string `yaml:"push_subscriber"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:         "127.0.0.1:6060",
		DatabasePath:   "./calpal.db",
		NotifyCron:     "@every 1m",
		TokenTTLHours:  24,
		PushSubscriber: "mailto:admin@localhost",
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.DatabasePath == "" {
		c.DatabasePath = def.DatabasePath
	}
	if c.NotifyCron == "" {
		c.NotifyCron = def.NotifyCron
	}
	if c.TokenTTLHours <= 0 {
		c.TokenTTLHours = def.TokenTTLHours
	}
	if c.PushSubscriber == "" {
		c.PushSubscriber = def.PushSubscriber
	}
}

// Load reads configuration from a YAML file. A missing file is a first run:
// a default config is written there (0600) and returned.
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

// Save writes the configuration atomically via a temp file + rename.
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

	tmp, err := os.CreateTemp(dir, ".calpal-config-*.tmp")
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
