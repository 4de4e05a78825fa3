// Package config loads the optional chanroute configuration file.
//
// The file is TOML. Every key is optional; missing keys and a missing file
// keep the defaults from [Default].
//
//	[geometry]
//	column_width = 1
//	track_height = 1
//
//	[render]
//	scale = 20.0
//	labels = true
//	grid = false
//
//	[cache]
//	enabled = true
//	url = ""      # redis://host:6379/0 selects the Redis backend
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
)

// Config is the decoded configuration file.
type Config struct {
	Geometry channel.Geometry `toml:"geometry"`
	Render   Render           `toml:"render"`
	Cache    Cache            `toml:"cache"`
	Server   Server           `toml:"server"`
}

type Render struct {
	Scale  float64 `toml:"scale"`
	Labels bool    `toml:"labels"`
	Grid   bool    `toml:"grid"`
}

type Cache struct {
	Enabled bool     `toml:"enabled"`
	URL     string   `toml:"url"`
	TTL     Duration `toml:"ttl"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Geometry: channel.DefaultGeometry,
		Render:   Render{Scale: 20.0, Labels: true},
		Cache:    Cache{Enabled: true, TTL: Duration{24 * time.Hour}},
		Server:   Server{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/chanroute/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "chanroute", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "chanroute", "config.toml")
}

// Load reads the file at path over the defaults. A missing file is not an
// error unless required is set, which the CLI does for an explicit --config.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects non-positive dimensions and a negative cache TTL.
func (c Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateDimension("render.scale", c.Render.Scale); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}
