// Package config loads roadtower's settings.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, $XDG_CONFIG_HOME/roadtower/config.toml unless a path is given
//  3. environment variables ROADTOWER_BACKEND_URL, ROADTOWER_HANDOFF and
//     ROADTOWER_REDIS_ADDR
//
// Command-line flags are applied on top by the CLI.
//
// Example file:
//
//	[backend]
//	url = "http://localhost:5000"
//	timeout = "2m"
//
//	[handoff]
//	backend = "file"
//	ttl = "1h"
//
//	[render.palette]
//	connector-color = "#e4572e"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roadtower/pkg/client"
	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/handoff"
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvBackendURL = "ROADTOWER_BACKEND_URL"
	EnvHandoff    = "ROADTOWER_HANDOFF"
	EnvRedisAddr  = "ROADTOWER_REDIS_ADDR"
)

// Config is the complete settings tree.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Handoff HandoffConfig `toml:"handoff"`
	Server  ServerConfig  `toml:"server"`
	Render  RenderConfig  `toml:"render"`
}

// BackendConfig locates the roadmap service.
type BackendConfig struct {
	URL     string        `toml:"url"`
	Timeout time.Duration `toml:"timeout"`
}

// HandoffConfig selects the slot backend between fetching and rendering.
type HandoffConfig struct {
	Backend string        `toml:"backend"`
	Name    string        `toml:"name"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
	Redis   RedisConfig   `toml:"redis"`
}

// RedisConfig is used by the redis handoff backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RenderConfig overrides diagram colours.
type RenderConfig struct {
	Palette map[string]string `toml:"palette"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend: BackendConfig{URL: client.DefaultBaseURL, Timeout: client.DefaultTimeout},
		Handoff: HandoffConfig{Backend: handoff.BackendFile, Name: handoff.DefaultSlot, TTL: handoff.DefaultTTL},
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/roadtower/config.toml, falling back to
// the user config directory of the platform.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config directory")
		}
	}
	return filepath.Join(dir, "roadtower", "config.toml"), nil
}

// Load reads the file at path over the defaults and applies the environment.
// With an empty path the default location is used, and a missing file there
// is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	default:
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from the environment. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvBackendURL); v != "" {
		c.Backend.URL = v
	}
	if v := getenv(EnvHandoff); v != "" {
		c.Handoff.Backend = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Handoff.Redis.Addr = v
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "backend url must not be empty")
	}
	if c.Backend.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "backend timeout must not be negative")
	}
	backends := []string{handoff.BackendMemory, handoff.BackendFile, handoff.BackendRedis}
	if !slices.Contains(backends, c.Handoff.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "handoff backend %q is not one of %v", c.Handoff.Backend, backends)
	}
	return nil
}

// HandoffSlot returns the slot settings in the form [handoff.Open] takes.
func (c Config) HandoffSlot() handoff.Config {
	return handoff.Config{
		Backend:       c.Handoff.Backend,
		Name:          c.Handoff.Name,
		TTL:           c.Handoff.TTL,
		Dir:           c.Handoff.Dir,
		RedisAddr:     c.Handoff.Redis.Addr,
		RedisPassword: c.Handoff.Redis.Password,
		RedisDB:       c.Handoff.Redis.DB,
	}
}
